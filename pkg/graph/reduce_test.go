package graph

import (
	"reflect"
	"testing"

	"github.com/linkalytics/factorlink/pkg/types"
)

func TestReduceMembershipProperty(t *testing.T) {
	// v is in the result iff v is in union(A) and v is in union(B).
	tree := types.Tree{
		"ad1": types.Branch(types.Tree{
			"phone": types.Leaf(types.NewValueSet("1", "2", "3")),
			"email": types.Leaf(types.NewValueSet("2", "3", "4")),
		}),
	}

	got := Reduce(tree, "ad1", "phone", "email").Sorted()
	want := []string{"2", "3"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Reduce = %v, want %v", got, want)
	}
}

func TestReduceSingleFactor(t *testing.T) {
	tree := types.Tree{
		"ad1": types.Branch(types.Tree{
			"phone": types.Leaf(types.NewValueSet("1", "2")),
		}),
	}

	got := Reduce(tree, "ad1", "phone").Sorted()
	want := []string{"1", "2"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Reduce = %v, want %v", got, want)
	}
}

func TestReduceMissingFactorEmptiesResult(t *testing.T) {
	tree := types.Tree{
		"ad1": types.Branch(types.Tree{
			"phone": types.Leaf(types.NewValueSet("1")),
		}),
	}

	if got := Reduce(tree, "ad1", "phone", "email"); len(got) != 0 {
		t.Errorf("Reduce with missing factor = %v, want empty", got.Sorted())
	}
}

func TestReduceUnknownEntity(t *testing.T) {
	if got := Reduce(types.Tree{}, "nope", "phone"); len(got) != 0 {
		t.Errorf("Reduce unknown entity = %v, want empty", got.Sorted())
	}
}

func TestReduceNestedFactorValues(t *testing.T) {
	// A factor holding a nested mapping contributes all descendant values.
	tree := types.Tree{
		"ad1": types.Branch(types.Tree{
			"text": types.Branch(types.Tree{
				"para1": types.Leaf(types.NewValueSet("x", "y")),
			}),
			"title": types.Leaf(types.NewValueSet("y", "z")),
		}),
	}

	got := Reduce(tree, "ad1", "text", "title").Sorted()
	want := []string{"y"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Reduce nested = %v, want %v", got, want)
	}
}
