package graph

import (
	"github.com/linkalytics/factorlink/pkg/types"
)

// CombineTwo unions addition into a copy of original with the source's
// shallow two-level semantics: first-level keys merge, and under a shared
// first-level key the addition's second-level entries win on collision,
// so CombineTwo({x:{1:1}}, {x:{2:2}}) yields {x:{1:1,2:2}}. When both
// sides hold a leaf at the same position the value sets are unioned.
// Neither input is mutated.
func CombineTwo(original, addition types.Tree) types.Tree {
	out := original.Clone()
	if out == nil {
		out = make(types.Tree)
	}

	for k1, sub := range addition {
		existing, ok := out[k1]
		if !ok {
			out[k1] = cloneSubtree(sub)
			continue
		}
		if sub.IsLeaf() {
			if existing.IsLeaf() {
				out[k1] = types.Leaf(existing.Leaf.Union(sub.Leaf))
			} else {
				out[k1] = cloneSubtree(sub)
			}
			continue
		}
		if existing.IsLeaf() {
			out[k1] = cloneSubtree(sub)
			continue
		}
		merged := existing.Branch
		for k2, sub2 := range sub.Branch {
			merged[k2] = cloneSubtree(sub2)
		}
		out[k1] = types.Branch(merged)
	}
	return out
}

// CombineAll unions multiple trees left to right. Nil entries are skipped,
// mirroring absent suggestions.
func CombineAll(trees []types.Tree) types.Tree {
	var out types.Tree
	for _, t := range trees {
		if t == nil {
			continue
		}
		if out == nil {
			out = t.Clone()
			continue
		}
		out = CombineTwo(out, t)
	}
	return out
}

func cloneSubtree(s types.Subtree) types.Subtree {
	if s.IsLeaf() {
		return types.Leaf(s.Leaf.Union(nil))
	}
	return types.Branch(s.Branch.Clone())
}
