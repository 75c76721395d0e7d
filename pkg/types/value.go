package types

import (
	"encoding/json"
	"fmt"
	"sort"
)

// Kind discriminates the variant forms a document field can take.
type Kind int

const (
	// KindScalar is a single string-valued leaf. Numbers and booleans
	// decode to their canonical string form; null decodes to an empty
	// scalar which is treated as absent.
	KindScalar Kind = iota
	// KindList is an ordered collection of values, possibly nested.
	KindList
	// KindObject is a nested mapping of field name to value.
	KindObject
)

// Value is a tagged variant representing one field of a schema-less index
// document: a scalar, a list of values, or a nested mapping. Using an
// explicit variant instead of interface{} makes exhaustive handling of the
// three shapes visible at every use site.
type Value struct {
	kind   Kind
	scalar string
	list   []Value
	fields map[string]Value
}

// Scalar returns a scalar value.
func Scalar(s string) Value {
	return Value{kind: KindScalar, scalar: s}
}

// List returns a list value.
func List(items ...Value) Value {
	return Value{kind: KindList, list: items}
}

// Object returns a nested mapping value.
func Object(fields map[string]Value) Value {
	return Value{kind: KindObject, fields: fields}
}

// Kind reports the variant form of v.
func (v Value) Kind() Kind { return v.kind }

// String returns the scalar form. It is only meaningful for KindScalar.
func (v Value) String() string { return v.scalar }

// Items returns the list elements. It is only meaningful for KindList.
func (v Value) Items() []Value { return v.list }

// Fields returns the nested mapping. It is only meaningful for KindObject.
func (v Value) Fields() map[string]Value { return v.fields }

// IsZero reports whether v carries no data at all: an empty scalar, an
// empty list, or an empty mapping.
func (v Value) IsZero() bool {
	switch v.kind {
	case KindScalar:
		return v.scalar == ""
	case KindList:
		return len(v.list) == 0
	case KindObject:
		return len(v.fields) == 0
	}
	return true
}

// Strings collects every scalar leaf reachable from v into a flat slice,
// recursing through lists and nested mappings. Empty scalars are skipped.
// The traversal is iterative so arbitrarily nested documents cannot blow
// the stack.
func (v Value) Strings() []string {
	var out []string
	stack := []Value{v}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		switch cur.kind {
		case KindScalar:
			if cur.scalar != "" {
				out = append(out, cur.scalar)
			}
		case KindList:
			for i := len(cur.list) - 1; i >= 0; i-- {
				stack = append(stack, cur.list[i])
			}
		case KindObject:
			keys := make([]string, 0, len(cur.fields))
			for k := range cur.fields {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for i := len(keys) - 1; i >= 0; i-- {
				stack = append(stack, cur.fields[keys[i]])
			}
		}
	}
	return out
}

// UnmarshalJSON decodes arbitrary JSON into the variant. json.Number is
// used so numeric identifiers such as phone numbers survive without
// float mangling.
func (v *Value) UnmarshalJSON(data []byte) error {
	var raw interface{}
	dec := newNumberDecoder(data)
	if err := dec.Decode(&raw); err != nil {
		return fmt.Errorf("decode value: %w", err)
	}
	parsed, err := fromInterface(raw)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// MarshalJSON renders the variant back to its natural JSON shape.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindScalar:
		return json.Marshal(v.scalar)
	case KindList:
		return json.Marshal(v.list)
	case KindObject:
		return json.Marshal(v.fields)
	}
	return []byte("null"), nil
}

func fromInterface(raw interface{}) (Value, error) {
	switch t := raw.(type) {
	case nil:
		return Scalar(""), nil
	case string:
		return Scalar(t), nil
	case json.Number:
		return Scalar(t.String()), nil
	case bool:
		if t {
			return Scalar("true"), nil
		}
		return Scalar("false"), nil
	case []interface{}:
		items := make([]Value, 0, len(t))
		for _, item := range t {
			parsed, err := fromInterface(item)
			if err != nil {
				return Value{}, err
			}
			items = append(items, parsed)
		}
		return List(items...), nil
	case map[string]interface{}:
		fields := make(map[string]Value, len(t))
		for k, item := range t {
			parsed, err := fromInterface(item)
			if err != nil {
				return Value{}, err
			}
			fields[k] = parsed
		}
		return Object(fields), nil
	default:
		return Value{}, fmt.Errorf("unsupported document value type %T", raw)
	}
}
