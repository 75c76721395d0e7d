package types

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestValueUnmarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		json string
		want []string
	}{
		{
			name: "string scalar",
			json: `"555-0100"`,
			want: []string{"555-0100"},
		},
		{
			name: "number keeps integer form",
			json: `63166071`,
			want: []string{"63166071"},
		},
		{
			name: "bool",
			json: `true`,
			want: []string{"true"},
		},
		{
			name: "null is absent",
			json: `null`,
			want: nil,
		},
		{
			name: "flat list",
			json: `["a@x.com","b@x.com"]`,
			want: []string{"a@x.com", "b@x.com"},
		},
		{
			name: "nested list flattens in order",
			json: `["a",["b",["c"]],"d"]`,
			want: []string{"a", "b", "c", "d"},
		},
		{
			name: "object leaves in key order",
			json: `{"b":"2","a":"1"}`,
			want: []string{"1", "2"},
		},
		{
			name: "mixed nesting",
			json: `{"phones":["555-0100",555]}`,
			want: []string{"555-0100", "555"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var v Value
			if err := json.Unmarshal([]byte(tt.json), &v); err != nil {
				t.Fatalf("Unmarshal(%s) error = %v", tt.json, err)
			}
			got := v.Strings()
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Strings() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestValueIsZero(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		want bool
	}{
		{"empty scalar", Scalar(""), true},
		{"scalar", Scalar("x"), false},
		{"empty list", List(), true},
		{"list", List(Scalar("x")), false},
		{"empty object", Object(nil), true},
		{"object", Object(map[string]Value{"k": Scalar("x")}), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.IsZero(); got != tt.want {
				t.Errorf("IsZero() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestValueMarshalRoundTrip(t *testing.T) {
	in := `{"email":["a@x.com"],"phone":"555-0100"}`
	var v Value
	if err := json.Unmarshal([]byte(in), &v); err != nil {
		t.Fatalf("Unmarshal error = %v", err)
	}
	out, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("Marshal error = %v", err)
	}
	if string(out) != in {
		t.Errorf("round trip = %s, want %s", out, in)
	}
}

func TestDocumentHas(t *testing.T) {
	doc := Document{
		"phone": Scalar("555-0100"),
		"email": List(),
	}
	if !doc.Has("phone") {
		t.Error("Has(phone) = false, want true")
	}
	if doc.Has("email") {
		t.Error("Has(email) = true for empty list, want false")
	}
	if doc.Has("title") {
		t.Error("Has(title) = true for missing field, want false")
	}
}
