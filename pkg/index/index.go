package index

import (
	"context"
	"fmt"

	"github.com/linkalytics/factorlink/pkg/types"
)

// AllFields is the sentinel field name for the all-fields fallback query.
// The legacy index exposed this as the "_all" meta field; modern backends
// implement it as a phrase multi-match across every field.
const AllFields = "*"

// DefaultSize is the result-size cap applied when none is configured.
const DefaultSize = 500

// Hit is one document returned by a query.
type Hit struct {
	ID     string         `json:"id"`
	Source types.Document `json:"source"`
}

// Result is the typed shape of a query response.
type Result struct {
	Total int   `json:"total"`
	Hits  []Hit `json:"hits"`
}

// Searcher is the query surface the factor layer is built on. Every call
// carries a context and is bounded by the configured result-size cap.
type Searcher interface {
	// MatchPhrase runs a phrase match on field. Passing AllFields queries
	// every field.
	MatchPhrase(ctx context.Context, field, value string) (*Result, error)

	// Match runs a plain match query on field.
	Match(ctx context.Context, field, value string) (*Result, error)

	// IDs fetches the documents with the given identifiers.
	IDs(ctx context.Context, ids []string) (*Result, error)
}

// StatusError is returned when the backend answers with a non-2xx status.
type StatusError struct {
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("index: status %d: %s", e.Status, e.Body)
}

// Temporary reports whether the failure is worth retrying: server-side
// errors and throttling, not client mistakes.
func (e *StatusError) Temporary() bool {
	return e.Status >= 500 || e.Status == 429
}
