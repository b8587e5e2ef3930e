package jsonutil

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// FlexibleStringValue renders a single JSON value as a plain text cell.
// Strings are unquoted, numbers keep their literal text (so 3.0 stays "3.0"
// and large integers keep full precision), booleans become "true"/"false".
// Returns empty string for null/empty.
func FlexibleStringValue(raw json.RawMessage) string {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || string(trimmed) == "null" {
		return ""
	}

	// Try string first
	var strVal string
	if err := json.Unmarshal(trimmed, &strVal); err == nil {
		return strVal
	}

	// Try number, keeping the literal
	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.UseNumber()
	var numVal any
	if err := dec.Decode(&numVal); err == nil {
		if n, ok := numVal.(json.Number); ok {
			return n.String()
		}
	}

	// Try boolean
	var boolVal bool
	if err := json.Unmarshal(trimmed, &boolVal); err == nil {
		return strconv.FormatBool(boolVal)
	}

	// Fallback: return raw string representation
	return string(trimmed)
}
