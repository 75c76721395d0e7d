// Package index abstracts the search backend behind a small Searcher
// interface and provides the Elasticsearch implementation plus the
// decorators the factor layer is composed from: retry with exponential
// backoff, a circuit breaker, and a badger-backed result cache.
package index
