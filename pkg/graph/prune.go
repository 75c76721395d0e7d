package graph

import (
	"github.com/linkalytics/factorlink/pkg/types"
)

// Prune returns a copy of tree retaining only the subtrees that overlap
// the keep-set: a leaf entry survives when its value set shares at least
// one value with keep, and a branch entry survives when any descendant
// leaf does. Surviving leaves keep their full value sets; pruning selects
// subtrees, it does not filter values inside them.
//
// An empty keep-set prunes everything.
func Prune(tree types.Tree, keep types.ValueSet) types.Tree {
	out := make(types.Tree)
	for k, sub := range tree {
		if sub.IsLeaf() {
			if sub.Leaf.Intersects(keep) {
				out[k] = types.Leaf(sub.Leaf.Union(nil))
			}
			continue
		}
		pruned := Prune(sub.Branch, keep)
		if len(pruned) > 0 {
			out[k] = types.Branch(pruned)
		}
	}
	return out
}
