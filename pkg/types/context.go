package types

// ContextKey is the type used for context values set by the server and
// read by the telemetry handler.
type ContextKey string

const (
	// ContextKeyEntityID carries the entity an operation is rooted at.
	ContextKeyEntityID ContextKey = "entity_id"
	// ContextKeyDegree carries the current expansion degree label.
	ContextKeyDegree ContextKey = "degree"
	// ContextKeyRequestSource marks where a request originated (server, cli).
	ContextKeyRequestSource ContextKey = "request_source"
)
