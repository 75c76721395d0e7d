package graph

import (
	"fmt"

	"github.com/linkalytics/factorlink/pkg/types"
)

// Comparison is the result of diffing two factor states. Labels identify
// a factor occurrence as "factor_value"; the network maps record which
// entity each label was discovered on so an analyst can back-track the
// order factors were found in.
type Comparison struct {
	Intersection types.ValueSet      `json:"intersection"`
	OnlyA        types.ValueSet      `json:"workflow_a"`
	OnlyB        types.ValueSet      `json:"workflow_b"`
	NetworkA     map[string][]string `json:"network_a"`
	NetworkB     map[string][]string `json:"network_b"`
}

// Diff compares two factor states: the factor labels present in both,
// and those unique to either side, together with the entity relationships
// backing each side's labels.
func Diff(a, b types.Tree) Comparison {
	labelsA, networkA := collectLabels(a)
	labelsB, networkB := collectLabels(b)

	return Comparison{
		Intersection: labelsA.Intersect(labelsB),
		OnlyA:        labelsA.Diff(labelsB),
		OnlyB:        labelsB.Diff(labelsA),
		NetworkA:     networkA,
		NetworkB:     networkB,
	}
}

// collectLabels walks a tree and gathers factor labels plus the entity
// each was found on. An entity is any branch whose children include leaf
// factor entries; deeper branches are walked the same way so extension
// degrees contribute too.
func collectLabels(tree types.Tree) (types.ValueSet, map[string][]string) {
	labels := make(types.ValueSet)
	network := make(map[string][]string)
	walkEntities(tree, func(entity string, factors types.Tree) {
		for factor, sub := range factors {
			if !sub.IsLeaf() {
				continue
			}
			for _, v := range sub.Leaf.Sorted() {
				label := fmt.Sprintf("%s_%s", factor, v)
				labels.Add(label)
				network[entity] = append(network[entity], label)
			}
		}
	})
	return labels, network
}

func walkEntities(tree types.Tree, visit func(entity string, factors types.Tree)) {
	for k, sub := range tree {
		if sub.IsLeaf() {
			continue
		}
		hasLeafChild := false
		for _, child := range sub.Branch {
			if child.IsLeaf() {
				hasLeafChild = true
				break
			}
		}
		if hasLeafChild {
			visit(k, sub.Branch)
		}
		walkEntities(sub.Branch, visit)
	}
}
