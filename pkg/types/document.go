package types

import (
	"bytes"
	"encoding/json"
)

// Document is the full set of key/value attributes returned by the search
// index for one entity. Field names are not fixed; they are discovered at
// query time.
type Document map[string]Value

// FieldNames returns the set of field names present in the document.
func (d Document) FieldNames() []string {
	names := make([]string, 0, len(d))
	for k := range d {
		names = append(names, k)
	}
	return names
}

// Has reports whether the document carries a non-empty value for field.
func (d Document) Has(field string) bool {
	v, ok := d[field]
	return ok && !v.IsZero()
}

func newNumberDecoder(data []byte) *json.Decoder {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	return dec
}
