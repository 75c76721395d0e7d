package types

import (
	"encoding/json"
	"sort"
)

// ValueSet is a set of discovered factor values. All merging in factorlink
// is done with set semantics so duplicate elimination never requires
// mutating a collection while iterating it.
type ValueSet map[string]struct{}

// NewValueSet builds a set from the given values.
func NewValueSet(values ...string) ValueSet {
	s := make(ValueSet, len(values))
	for _, v := range values {
		s[v] = struct{}{}
	}
	return s
}

// Add inserts v into the set.
func (s ValueSet) Add(v string) { s[v] = struct{}{} }

// Has reports membership.
func (s ValueSet) Has(v string) bool {
	_, ok := s[v]
	return ok
}

// Union returns a new set containing every value in s or other.
func (s ValueSet) Union(other ValueSet) ValueSet {
	out := make(ValueSet, len(s)+len(other))
	for v := range s {
		out[v] = struct{}{}
	}
	for v := range other {
		out[v] = struct{}{}
	}
	return out
}

// Intersect returns a new set containing the values present in both sets.
func (s ValueSet) Intersect(other ValueSet) ValueSet {
	small, large := s, other
	if len(large) < len(small) {
		small, large = large, small
	}
	out := make(ValueSet)
	for v := range small {
		if large.Has(v) {
			out[v] = struct{}{}
		}
	}
	return out
}

// Diff returns a new set containing the values in s that are not in other.
func (s ValueSet) Diff(other ValueSet) ValueSet {
	out := make(ValueSet)
	for v := range s {
		if !other.Has(v) {
			out[v] = struct{}{}
		}
	}
	return out
}

// Intersects reports whether the two sets share at least one value.
func (s ValueSet) Intersects(other ValueSet) bool {
	small, large := s, other
	if len(large) < len(small) {
		small, large = large, small
	}
	for v := range small {
		if large.Has(v) {
			return true
		}
	}
	return false
}

// Sorted returns the set contents as a sorted slice.
func (s ValueSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for v := range s {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// MarshalJSON renders the set as a sorted JSON array.
func (s ValueSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Sorted())
}

// UnmarshalJSON reads a JSON array back into a set.
func (s *ValueSet) UnmarshalJSON(data []byte) error {
	var values []string
	if err := json.Unmarshal(data, &values); err != nil {
		return err
	}
	*s = NewValueSet(values...)
	return nil
}

// Tree is the nested factor-graph structure: degree label to entity id to
// factor name to value set. Each key maps either to a further Tree or to
// a leaf ValueSet, never both.
type Tree map[string]Subtree

// Subtree is one entry of a Tree: a branch into a nested Tree or a leaf
// set of values.
type Subtree struct {
	Branch Tree
	Leaf   ValueSet
}

// Leaf wraps a value set as a tree entry.
func Leaf(values ValueSet) Subtree { return Subtree{Leaf: values} }

// Branch wraps a nested tree as a tree entry.
func Branch(t Tree) Subtree { return Subtree{Branch: t} }

// IsLeaf reports whether the entry holds values rather than a subtree.
func (s Subtree) IsLeaf() bool { return s.Branch == nil }

// Clone returns a deep copy of the tree. Expansion merges never alias
// input trees.
func (t Tree) Clone() Tree {
	if t == nil {
		return nil
	}
	out := make(Tree, len(t))
	for k, sub := range t {
		if sub.IsLeaf() {
			out[k] = Leaf(sub.Leaf.Union(nil))
		} else {
			out[k] = Branch(sub.Branch.Clone())
		}
	}
	return out
}

// MarshalJSON renders branches as objects and leaves as sorted arrays,
// matching the shape the original index documents serialize to.
func (s Subtree) MarshalJSON() ([]byte, error) {
	if s.IsLeaf() {
		return json.Marshal(s.Leaf)
	}
	return json.Marshal(s.Branch)
}

// UnmarshalJSON reads either an object (branch) or an array (leaf).
func (s *Subtree) UnmarshalJSON(data []byte) error {
	trimmed := bytesTrimLeft(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var leaf ValueSet
		if err := json.Unmarshal(data, &leaf); err != nil {
			return err
		}
		*s = Leaf(leaf)
		return nil
	}
	var branch Tree
	if err := json.Unmarshal(data, &branch); err != nil {
		return err
	}
	*s = Branch(branch)
	return nil
}

func bytesTrimLeft(data []byte) []byte {
	for i, b := range data {
		switch b {
		case ' ', '\t', '\n', '\r':
			continue
		default:
			return data[i:]
		}
	}
	return nil
}
