package types

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestValueSetOps(t *testing.T) {
	a := NewValueSet("1", "2", "3")
	b := NewValueSet("2", "3", "4")

	if got := a.Union(b).Sorted(); !reflect.DeepEqual(got, []string{"1", "2", "3", "4"}) {
		t.Errorf("Union = %v", got)
	}
	if got := a.Intersect(b).Sorted(); !reflect.DeepEqual(got, []string{"2", "3"}) {
		t.Errorf("Intersect = %v", got)
	}
	if got := a.Diff(b).Sorted(); !reflect.DeepEqual(got, []string{"1"}) {
		t.Errorf("Diff = %v", got)
	}
	if !a.Intersects(b) {
		t.Error("Intersects = false, want true")
	}
	if a.Intersects(NewValueSet("9")) {
		t.Error("Intersects disjoint = true, want false")
	}
}

func TestTreeJSONRoundTrip(t *testing.T) {
	tree := Tree{
		"original": Branch(Tree{
			"63166071": Branch(Tree{
				"phone": Leaf(NewValueSet("555-0100", "555-0101")),
				"email": Leaf(NewValueSet("a@x.com")),
			}),
		}),
	}

	data, err := json.Marshal(tree)
	if err != nil {
		t.Fatalf("Marshal error = %v", err)
	}
	want := `{"original":{"63166071":{"email":["a@x.com"],"phone":["555-0100","555-0101"]}}}`
	if string(data) != want {
		t.Errorf("Marshal = %s, want %s", data, want)
	}

	var back Tree
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal error = %v", err)
	}
	if !reflect.DeepEqual(back, tree) {
		t.Errorf("round trip = %#v, want %#v", back, tree)
	}
}

func TestTreeClone(t *testing.T) {
	tree := Tree{
		"e1": Branch(Tree{
			"phone": Leaf(NewValueSet("555-0100")),
		}),
	}
	clone := tree.Clone()
	clone["e1"].Branch["phone"].Leaf.Add("555-0199")

	if tree["e1"].Branch["phone"].Leaf.Has("555-0199") {
		t.Error("Clone aliases the original leaf set")
	}
}
