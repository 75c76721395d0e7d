package factorlink

import (
	"context"

	"github.com/linkalytics/factorlink/pkg/graph"
	"github.com/linkalytics/factorlink/pkg/index"
	"github.com/linkalytics/factorlink/pkg/types"
)

// This file defines focused interfaces composed into the main Factorlink
// interface. Consumers should depend on the smallest interface that meets
// their needs.

// FactorQuerier answers per-entity factor questions against the index.
type FactorQuerier interface {
	// Available returns the sorted field names an entity carries.
	Available(ctx context.Context, entity string) ([]string, error)

	// Lookup returns the flattened values of one field for an entity.
	Lookup(ctx context.Context, entity, field string) ([]string, error)

	// ReverseLookup returns the entity ids whose field matches value,
	// falling back to an all-fields query when the first yields nothing.
	ReverseLookup(ctx context.Context, field, value string) ([]string, error)

	// Suggest returns one factor of one entity as a single-entity tree,
	// or nil without error when the entity has no values for it.
	Suggest(ctx context.Context, entity, factor string) (types.Tree, error)

	// Status returns the raw state record for an entity.
	Status(ctx context.Context, entity string) (*index.Hit, error)
}

// FactorBuilder assembles per-entity factor maps.
type FactorBuilder interface {
	// Initialize builds the factor-to-values mapping for the requested
	// factors of an entity.
	Initialize(ctx context.Context, entity string, factors ...string) (types.Tree, error)

	// GetAll builds the mapping across every field the entity carries.
	GetAll(ctx context.Context, entity string) (types.Tree, error)

	// Reduce returns the values common to every requested factor.
	Reduce(ctx context.Context, entity string, factors ...string) ([]string, error)
}

// NetworkExpander grows and compares factor networks.
type NetworkExpander interface {
	// Expand builds an entity's factor map and extends it the given
	// number of degrees through shared factor values.
	Expand(ctx context.Context, entity string, degrees int, factors ...string) (types.Tree, error)

	// Extend performs a single degree of expansion on an existing tree.
	Extend(ctx context.Context, tree types.Tree, factors []string, degree string) (types.Tree, error)

	// Diff compares two factor networks.
	Diff(a, b types.Tree) graph.Comparison
}

// Factorlink composes the focused interfaces.
type Factorlink interface {
	FactorQuerier
	FactorBuilder
	NetworkExpander
}

var _ Factorlink = (*Client)(nil)
