// Package tabular parses and serializes in-memory tables: headerless
// delimited text with caller-supplied column names, line-delimited JSON
// records, and delimited text with a header row.
package tabular

import (
	"bytes"
	"encoding/json"
)

// Table is a fully loaded dataset. Each cell holds one JSON-encoded value;
// a nil cell is a missing value and serializes as null or an empty field.
type Table struct {
	Columns []string
	Rows    [][]json.RawMessage
}

// marshalNoEscape encodes v as compact JSON, leaving <, > and & as-is.
func marshalNoEscape(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
