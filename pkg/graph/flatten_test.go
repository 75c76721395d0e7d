package graph

import (
	"reflect"
	"testing"

	"github.com/linkalytics/factorlink/pkg/types"
)

func sampleGraph() types.Tree {
	return types.Tree{
		"original": types.Branch(types.Tree{
			"63166071": types.Branch(types.Tree{
				"phone": types.Leaf(types.NewValueSet("555-0100")),
				"email": types.Leaf(types.NewValueSet("a@x.com", "b@x.com")),
			}),
		}),
		"top": types.Leaf(types.NewValueSet("t1")),
	}
}

func TestFlattenLevels(t *testing.T) {
	tree := sampleGraph()

	tests := []struct {
		name  string
		level int
		want  []string
	}{
		{
			name:  "level 0 flattens only top-level leaf collections",
			level: 0,
			want:  []string{"t1"},
		},
		{
			name:  "level 1 stops above the factor leaves",
			level: 1,
			want:  []string{"t1"},
		},
		{
			name:  "level 2 reaches the factor values",
			level: 2,
			want:  []string{"555-0100", "a@x.com", "b@x.com", "t1"},
		},
		{
			name:  "large level recurses through all nested mappings",
			level: 10,
			want:  []string{"555-0100", "a@x.com", "b@x.com", "t1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Flatten(tree, tt.level).Sorted()
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Flatten(level=%d) = %v, want %v", tt.level, got, tt.want)
			}
		})
	}
}

func TestFlattenDoesNotMutateInput(t *testing.T) {
	tree := sampleGraph()
	before := len(tree["original"].Branch["63166071"].Branch["email"].Leaf)
	_ = Flatten(tree, 10)
	after := len(tree["original"].Branch["63166071"].Branch["email"].Leaf)
	if before != after {
		t.Errorf("input leaf size changed from %d to %d", before, after)
	}
}

func TestFlattenEmpty(t *testing.T) {
	if got := Flatten(nil, 5); len(got) != 0 {
		t.Errorf("Flatten(nil) = %v, want empty", got)
	}
	if got := Flatten(types.Tree{}, 0); len(got) != 0 {
		t.Errorf("Flatten(empty) = %v, want empty", got)
	}
}
