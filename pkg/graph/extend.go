package graph

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"sync"

	"github.com/panjf2000/ants/v2"

	"github.com/linkalytics/factorlink/pkg/types"
)

// DefaultFrontierDepth bounds how deep the flatten pass collecting the
// expansion frontier descends.
const DefaultFrontierDepth = 10

// SuggestionSource provides per-entity factor suggestions. An entity with
// nothing to suggest yields a nil tree, not an error.
type SuggestionSource interface {
	Initialize(ctx context.Context, entity string, factors ...string) (types.Tree, error)
}

// Expander grows a factor graph by degrees, fanning out the per-entity
// factor queries through a bounded worker pool.
type Expander struct {
	source        SuggestionSource
	poolSize      int
	frontierDepth int
	logger        *slog.Logger
}

// Option configures an Expander.
type Option func(*Expander)

// WithPoolSize sets the worker pool size for the per-entity fan-out.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(e *Expander) {
		if size < 1 {
			size = 1
		}
		e.poolSize = size
	}
}

// WithFrontierDepth sets how deep the frontier flatten descends.
func WithFrontierDepth(depth int) Option {
	return func(e *Expander) {
		if depth < 1 {
			depth = DefaultFrontierDepth
		}
		e.frontierDepth = depth
	}
}

// WithLogger sets a custom logger. Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(e *Expander) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// NewExpander creates an expansion engine over the given source.
func NewExpander(source SuggestionSource, opts ...Option) *Expander {
	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}
	e := &Expander{
		source:        source,
		poolSize:      poolSize,
		frontierDepth: DefaultFrontierDepth,
		logger:        slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extend grows the graph by one degree: it gathers the values already
// known per degree, collects the expansion frontier, fetches factor
// suggestions for each frontier entity concurrently, keeps only the
// subtrees carrying values not seen before, and unions them into a new
// entry under the degree label. The input graph is not mutated; the
// newly-seen check always builds fresh sets rather than removing from a
// collection while walking it.
func (e *Expander) Extend(ctx context.Context, graph types.Tree, factors []string, degree string) (types.Tree, error) {
	out := graph.Clone()
	if out == nil {
		out = make(types.Tree)
	}

	// Values already present anywhere in the graph, one nesting step per
	// degree entry.
	known := make(types.ValueSet)
	for _, sub := range out {
		if sub.IsLeaf() {
			known = known.Union(sub.Leaf)
			continue
		}
		known = known.Union(Flatten(sub.Branch, 1))
	}

	frontier := Flatten(out, e.frontierDepth)
	e.logger.Debug("extending graph", "degree", degree, "frontier", len(frontier), "known", len(known))

	pool, err := ants.NewPool(e.poolSize)
	if err != nil {
		return nil, fmt.Errorf("graph: create worker pool: %w", err)
	}
	defer pool.Release()

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)
	additions := make(types.Tree)

	fail := func(err error) {
		mu.Lock()
		if firstErr == nil {
			firstErr = err
			cancel()
		}
		mu.Unlock()
	}

	for _, entity := range frontier.Sorted() {
		entity := entity
		wg.Add(1)
		submitErr := pool.Submit(func() {
			defer wg.Done()
			if runCtx.Err() != nil {
				return
			}

			addition, err := e.source.Initialize(runCtx, entity, factors...)
			if err != nil {
				fail(fmt.Errorf("graph: expand %q: %w", entity, err))
				return
			}
			if len(addition) == 0 {
				return
			}

			fresh := Flatten(addition, 1).Diff(known)
			pruned := Prune(addition, fresh)
			if len(pruned) == 0 {
				return
			}

			mu.Lock()
			merged := CombineTwo(additions, pruned)
			additions = merged
			mu.Unlock()
		})
		if submitErr != nil {
			wg.Done()
			fail(fmt.Errorf("graph: submit expansion work: %w", submitErr))
			break
		}
	}
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out[degree] = types.Branch(additions)
	return out, nil
}
