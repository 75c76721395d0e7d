package graph

import (
	"github.com/linkalytics/factorlink/pkg/types"
)

// Flatten collects every leaf value reachable within level nesting steps
// into a flat set. Leaf sets are always collected when reached; nested
// mappings are only descended while remaining depth is positive, so
// level 0 flattens only the top-level leaf collections and a large level
// recurses through all nested mappings.
//
// The traversal is an explicit worklist carrying remaining depth; the
// input tree is never mutated.
func Flatten(tree types.Tree, level int) types.ValueSet {
	out := make(types.ValueSet)

	type frame struct {
		tree      types.Tree
		remaining int
	}
	work := []frame{{tree: tree, remaining: level}}

	for len(work) > 0 {
		f := work[len(work)-1]
		work = work[:len(work)-1]

		for _, sub := range f.tree {
			if sub.IsLeaf() {
				for v := range sub.Leaf {
					out.Add(v)
				}
				continue
			}
			if f.remaining > 0 {
				work = append(work, frame{tree: sub.Branch, remaining: f.remaining - 1})
			}
		}
	}
	return out
}
