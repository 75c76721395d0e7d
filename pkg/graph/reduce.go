package graph

import (
	"math"

	"github.com/linkalytics/factorlink/pkg/types"
)

// Reduce computes, across the requested factors of one entity, the
// intersection of the union of each factor's discovered values: a value
// is in the result iff it appears under every requested factor. A factor
// with no values makes the result empty.
func Reduce(tree types.Tree, entity string, factors ...string) types.ValueSet {
	if len(factors) == 0 {
		return make(types.ValueSet)
	}

	sub, ok := tree[entity]
	if !ok || sub.IsLeaf() {
		return make(types.ValueSet)
	}

	var result types.ValueSet
	for _, f := range factors {
		values := factorUnion(sub.Branch, f)
		if result == nil {
			result = values
			continue
		}
		result = result.Intersect(values)
	}
	return result
}

// factorUnion unions every leaf value reachable under the factor entry.
// A factor holding a nested mapping contributes all of its descendant
// values; a missing factor contributes the empty set.
func factorUnion(entityTree types.Tree, factor string) types.ValueSet {
	sub, ok := entityTree[factor]
	if !ok {
		return make(types.ValueSet)
	}
	if sub.IsLeaf() {
		return sub.Leaf.Union(nil)
	}
	return Flatten(sub.Branch, math.MaxInt)
}
