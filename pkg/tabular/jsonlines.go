package tabular

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/ekaya-inc/fileconv/pkg/apperrors"
	"github.com/ekaya-inc/fileconv/pkg/logging"
)

const maxLinePreview = 80

// ReadJSONLines loads a file of one JSON object per line. The file is read in
// full.
func ReadJSONLines(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseJSONLines(data)
}

// ParseJSONLines decodes one JSON object per non-blank line. Columns are the
// union of record keys in first-seen order; a key missing from a record
// leaves a nil cell.
func ParseJSONLines(data []byte) (*Table, error) {
	var records []*orderedmap.OrderedMap[string, json.RawMessage]
	var columns []string
	index := make(map[string]int)

	for i, line := range bytes.Split(data, []byte("\n")) {
		line = bytes.TrimSpace(line)
		if len(line) == 0 {
			continue
		}
		// json.Unmarshal checks the whole line before the ordered map sees it.
		rec := orderedmap.New[string, json.RawMessage]()
		if err := json.Unmarshal(line, rec); err != nil {
			return nil, fmt.Errorf("%w: line %d is not a JSON object (%s): %v",
				apperrors.ErrMalformedInput, i+1, logging.TruncateString(string(line), maxLinePreview), err)
		}
		for pair := rec.Oldest(); pair != nil; pair = pair.Next() {
			if _, seen := index[pair.Key]; !seen {
				index[pair.Key] = len(columns)
				columns = append(columns, pair.Key)
			}
		}
		records = append(records, rec)
	}

	table := &Table{Columns: columns, Rows: make([][]json.RawMessage, 0, len(records))}
	for _, rec := range records {
		row := make([]json.RawMessage, len(columns))
		for pair := rec.Oldest(); pair != nil; pair = pair.Next() {
			row[index[pair.Key]] = pair.Value
		}
		table.Rows = append(table.Rows, row)
	}
	return table, nil
}

// WriteJSONLines writes t as one compact JSON object per line, replacing any
// existing file.
func WriteJSONLines(path string, t *Table) error {
	var buf bytes.Buffer
	if err := EncodeJSONLines(&buf, t); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}

// EncodeJSONLines writes each row as a JSON object with keys in column order.
// Nil cells are written as null.
func EncodeJSONLines(w io.Writer, t *Table) error {
	if t == nil {
		return errors.New("nil table")
	}
	keys := make([][]byte, len(t.Columns))
	for i, c := range t.Columns {
		k, err := marshalNoEscape(c)
		if err != nil {
			return err
		}
		keys[i] = k
	}

	var buf bytes.Buffer
	for _, row := range t.Rows {
		buf.Reset()
		buf.WriteByte('{')
		for j, key := range keys {
			if j > 0 {
				buf.WriteByte(',')
			}
			buf.Write(key)
			buf.WriteByte(':')
			if j < len(row) && len(row[j]) > 0 {
				buf.Write(row[j])
			} else {
				buf.WriteString("null")
			}
		}
		buf.WriteString("}\n")
		if _, err := w.Write(buf.Bytes()); err != nil {
			return err
		}
	}
	return nil
}
