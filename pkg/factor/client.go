package factor

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/linkalytics/factorlink/pkg/graph"
	"github.com/linkalytics/factorlink/pkg/index"
	"github.com/linkalytics/factorlink/pkg/types"
)

// Client answers factor queries against a search backend.
type Client struct {
	index  index.Searcher
	state  index.Searcher
	logger *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithStateIndex sets the searcher used by Status. Without it Status
// returns ErrNoStateIndex.
func WithStateIndex(s index.Searcher) Option {
	return func(c *Client) { c.state = s }
}

// WithLogger sets a custom logger. Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewClient creates a factor client over the given searcher.
func NewClient(searcher index.Searcher, opts ...Option) *Client {
	c := &Client{
		index:  searcher,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Available returns the sorted set of field names present across the hits
// for an entity. Re-running against unchanged backing data returns the
// same field set.
func (c *Client) Available(ctx context.Context, entity string) ([]string, error) {
	res, err := c.index.MatchPhrase(ctx, "_id", entity)
	if err != nil {
		return nil, fmt.Errorf("factor: available %q: %w", entity, err)
	}

	fields := make(types.ValueSet)
	for _, hit := range res.Hits {
		for _, name := range hit.Source.FieldNames() {
			fields.Add(name)
		}
	}
	return fields.Sorted(), nil
}

// Lookup returns the flattened values of field across the documents
// matching the entity identifier. Hits without the field are skipped.
func (c *Client) Lookup(ctx context.Context, entity, field string) ([]string, error) {
	res, err := c.index.IDs(ctx, []string{entity})
	if err != nil {
		return nil, fmt.Errorf("factor: lookup %q/%q: %w", entity, field, err)
	}

	var values []string
	for _, hit := range res.Hits {
		v, ok := hit.Source[field]
		if !ok {
			continue
		}
		values = append(values, v.Strings()...)
	}
	return values, nil
}

// ReverseLookup returns the entity ids whose field phrase-matches value.
// When the initial query yields zero total hits, it is retried exactly
// once against the all-fields query.
func (c *Client) ReverseLookup(ctx context.Context, field, value string) ([]string, error) {
	res, err := c.index.MatchPhrase(ctx, field, value)
	if err != nil {
		return nil, fmt.Errorf("factor: reverse lookup %q=%q: %w", field, value, err)
	}

	if res.Total == 0 {
		c.logger.Debug("reverse lookup fallback to all fields", "field", field)
		res, err = c.index.MatchPhrase(ctx, index.AllFields, value)
		if err != nil {
			return nil, fmt.Errorf("factor: reverse lookup fallback %q: %w", value, err)
		}
	}

	ids := make([]string, 0, len(res.Hits))
	for _, hit := range res.Hits {
		ids = append(ids, hit.ID)
	}
	return ids, nil
}

// Suggest returns the known values for one factor of one entity as a
// single-entity tree. An entity with no values for the factor is an
// absence: the tree is nil and so is the error.
func (c *Client) Suggest(ctx context.Context, entity, factor string) (types.Tree, error) {
	values, err := c.Lookup(ctx, entity, factor)
	if err != nil {
		return nil, err
	}
	if len(values) == 0 {
		return nil, nil
	}
	return types.Tree{
		entity: types.Branch(types.Tree{
			factor: types.Leaf(types.NewValueSet(values...)),
		}),
	}, nil
}

// Initialize builds the per-entity factor-to-values mapping for the
// requested factors. Factors with no discovered values are omitted; an
// entity with nothing at all yields a nil tree.
func (c *Client) Initialize(ctx context.Context, entity string, factors ...string) (types.Tree, error) {
	suggestions := make([]types.Tree, 0, len(factors))
	for _, f := range factors {
		s, err := c.Suggest(ctx, entity, f)
		if err != nil {
			return nil, err
		}
		suggestions = append(suggestions, s)
	}
	return graph.CombineAll(suggestions), nil
}

// GetAll builds the factor mapping across every field the entity carries.
func (c *Client) GetAll(ctx context.Context, entity string) (types.Tree, error) {
	factors, err := c.Available(ctx, entity)
	if err != nil {
		return nil, err
	}
	return c.Initialize(ctx, entity, factors...)
}

// Reduce combines the requested factors of an entity and reduces them to
// the values common to every factor.
func (c *Client) Reduce(ctx context.Context, entity string, factors ...string) ([]string, error) {
	combined, err := c.Initialize(ctx, entity, factors...)
	if err != nil {
		return nil, err
	}
	reduced := graph.Reduce(combined, entity, factors...)
	return reduced.Sorted(), nil
}

// Status returns the first raw hit for an entity from the state index.
func (c *Client) Status(ctx context.Context, entity string) (*index.Hit, error) {
	if c.state == nil {
		return nil, ErrNoStateIndex
	}
	res, err := c.state.Match(ctx, "_id", entity)
	if err != nil {
		return nil, fmt.Errorf("factor: status %q: %w", entity, err)
	}
	if len(res.Hits) == 0 {
		return nil, fmt.Errorf("factor: status %q: %w", entity, ErrEntityNotFound)
	}
	hit := res.Hits[0]
	return &hit, nil
}
