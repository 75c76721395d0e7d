package factorlink

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/linkalytics/factorlink/pkg/factor"
	"github.com/linkalytics/factorlink/pkg/graph"
	"github.com/linkalytics/factorlink/pkg/index"
	"github.com/linkalytics/factorlink/pkg/types"
)

// Client is the top-level factorlink client. It composes the factor query
// layer with a concurrent network expander over a shared search backend.
type Client struct {
	factors  *factor.Client
	expander *graph.Expander
	logger   *slog.Logger
}

// ClientOption configures a Client.
type ClientOption func(*clientOptions)

type clientOptions struct {
	stateIndex    index.Searcher
	logger        *slog.Logger
	poolSize      int
	frontierDepth int
}

// WithStateIndex sets the searcher backing Status queries.
func WithStateIndex(s index.Searcher) ClientOption {
	return func(o *clientOptions) { o.stateIndex = s }
}

// WithLogger sets the logger for the client and its expander.
func WithLogger(logger *slog.Logger) ClientOption {
	return func(o *clientOptions) { o.logger = logger }
}

// WithPoolSize bounds the expansion worker pool.
func WithPoolSize(size int) ClientOption {
	return func(o *clientOptions) { o.poolSize = size }
}

// WithFrontierDepth overrides the flatten depth used to pick expansion
// frontiers.
func WithFrontierDepth(depth int) ClientOption {
	return func(o *clientOptions) { o.frontierDepth = depth }
}

// NewClient creates a client over the given searcher.
func NewClient(searcher index.Searcher, opts ...ClientOption) *Client {
	var o clientOptions
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}

	factorOpts := []factor.Option{factor.WithLogger(o.logger)}
	if o.stateIndex != nil {
		factorOpts = append(factorOpts, factor.WithStateIndex(o.stateIndex))
	}
	factors := factor.NewClient(searcher, factorOpts...)

	expanderOpts := []graph.Option{graph.WithLogger(o.logger)}
	if o.poolSize > 0 {
		expanderOpts = append(expanderOpts, graph.WithPoolSize(o.poolSize))
	}
	if o.frontierDepth > 0 {
		expanderOpts = append(expanderOpts, graph.WithFrontierDepth(o.frontierDepth))
	}

	return &Client{
		factors:  factors,
		expander: graph.NewExpander(factors, expanderOpts...),
		logger:   o.logger,
	}
}

// Available implements FactorQuerier.
func (c *Client) Available(ctx context.Context, entity string) ([]string, error) {
	return c.factors.Available(ctx, entity)
}

// Lookup implements FactorQuerier.
func (c *Client) Lookup(ctx context.Context, entity, field string) ([]string, error) {
	return c.factors.Lookup(ctx, entity, field)
}

// ReverseLookup implements FactorQuerier.
func (c *Client) ReverseLookup(ctx context.Context, field, value string) ([]string, error) {
	return c.factors.ReverseLookup(ctx, field, value)
}

// Suggest implements FactorQuerier.
func (c *Client) Suggest(ctx context.Context, entity, factor string) (types.Tree, error) {
	return c.factors.Suggest(ctx, entity, factor)
}

// Status implements FactorQuerier.
func (c *Client) Status(ctx context.Context, entity string) (*index.Hit, error) {
	return c.factors.Status(ctx, entity)
}

// Initialize implements FactorBuilder.
func (c *Client) Initialize(ctx context.Context, entity string, factors ...string) (types.Tree, error) {
	return c.factors.Initialize(ctx, entity, factors...)
}

// GetAll implements FactorBuilder.
func (c *Client) GetAll(ctx context.Context, entity string) (types.Tree, error) {
	return c.factors.GetAll(ctx, entity)
}

// Reduce implements FactorBuilder.
func (c *Client) Reduce(ctx context.Context, entity string, factors ...string) ([]string, error) {
	return c.factors.Reduce(ctx, entity, factors...)
}

// Expand builds the factor map for an entity and extends it through the
// requested number of degrees. When no factors are named, every field the
// entity carries is used.
func (c *Client) Expand(ctx context.Context, entity string, degrees int, factors ...string) (types.Tree, error) {
	if degrees < 0 {
		return nil, fmt.Errorf("factorlink: degrees must be non-negative, got %d", degrees)
	}

	var err error
	if len(factors) == 0 {
		factors, err = c.factors.Available(ctx, entity)
		if err != nil {
			return nil, err
		}
	}

	tree, err := c.factors.Initialize(ctx, entity, factors...)
	if err != nil {
		return nil, err
	}
	if tree == nil {
		return nil, fmt.Errorf("factorlink: expand %q: %w", entity, factor.ErrEntityNotFound)
	}

	for i := 1; i <= degrees; i++ {
		degree := strconv.Itoa(i)
		c.logger.Info("expanding network", "entity", entity, "degree", degree)
		tree, err = c.expander.Extend(ctx, tree, factors, degree)
		if err != nil {
			return nil, fmt.Errorf("factorlink: expand %q degree %s: %w", entity, degree, err)
		}
	}
	return tree, nil
}

// Extend implements NetworkExpander.
func (c *Client) Extend(ctx context.Context, tree types.Tree, factors []string, degree string) (types.Tree, error) {
	return c.expander.Extend(ctx, tree, factors, degree)
}

// Diff implements NetworkExpander.
func (c *Client) Diff(a, b types.Tree) graph.Comparison {
	return graph.Diff(a, b)
}
