// Package graph implements the set-reduction and expansion logic over
// nested factor trees: depth-bounded flattening, two-level union merges,
// intersection reduce, keep-set pruning, and degree expansion with
// bounded parallel fan-out.
//
// All functions here are pure over types.Tree; fetching lives behind the
// SuggestionSource interface so the expansion engine can be tested
// without a search backend.
package graph
