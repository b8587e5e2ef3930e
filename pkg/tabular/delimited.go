package tabular

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/ekaya-inc/fileconv/pkg/apperrors"
	"github.com/ekaya-inc/fileconv/pkg/jsonutil"
)

// columnKind is the inferred JSON type of a delimited column.
type columnKind int

const (
	kindEmpty columnKind = iota // no non-empty value seen yet
	kindInt
	kindFloat
	kindBool
	kindString
)

var jsonNumberLiteral = regexp.MustCompile(`^-?(0|[1-9][0-9]*)(\.[0-9]+)?([eE][+-]?[0-9]+)?$`)

// ReadDelimited loads a headerless delimited file and names its fields with
// columns. The file is read in full.
func ReadDelimited(path string, columns []string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseDelimited(bytes.NewReader(data), columns)
}

// ParseDelimited parses headerless comma-delimited text. Each column gets a
// single inferred type: integer, number, boolean or string, with empty fields
// becoming null. Rows shorter than columns are padded with null; longer rows
// are malformed.
func ParseDelimited(r io.Reader, columns []string) (*Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: parse delimited text: %v", apperrors.ErrMalformedInput, err)
	}

	kinds := make([]columnKind, len(columns))
	for i, rec := range records {
		if len(rec) > len(columns) {
			return nil, fmt.Errorf("%w: record %d has %d fields, expected at most %d",
				apperrors.ErrMalformedInput, i+1, len(rec), len(columns))
		}
		for j, v := range rec {
			kinds[j] = mergeKind(kinds[j], kindOf(v))
		}
	}

	table := &Table{
		Columns: append([]string(nil), columns...),
		Rows:    make([][]json.RawMessage, 0, len(records)),
	}
	for _, rec := range records {
		row := make([]json.RawMessage, len(columns))
		for j := range columns {
			if j >= len(rec) {
				row[j] = json.RawMessage("null")
				continue
			}
			cell, err := encodeCell(rec[j], kinds[j])
			if err != nil {
				return nil, err
			}
			row[j] = cell
		}
		table.Rows = append(table.Rows, row)
	}
	return table, nil
}

func kindOf(v string) columnKind {
	if v == "" {
		return kindEmpty
	}
	if _, err := strconv.ParseInt(v, 10, 64); err == nil {
		return kindInt
	}
	if f, err := strconv.ParseFloat(v, 64); err == nil && !math.IsInf(f, 0) && !math.IsNaN(f) {
		return kindFloat
	}
	if strings.EqualFold(v, "true") || strings.EqualFold(v, "false") {
		return kindBool
	}
	return kindString
}

func mergeKind(current, next columnKind) columnKind {
	switch {
	case next == kindEmpty:
		return current
	case current == kindEmpty || current == next:
		return next
	case (current == kindInt && next == kindFloat) || (current == kindFloat && next == kindInt):
		return kindFloat
	default:
		return kindString
	}
}

func encodeCell(v string, kind columnKind) (json.RawMessage, error) {
	if v == "" {
		return json.RawMessage("null"), nil
	}
	switch kind {
	case kindInt:
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, err
		}
		return json.RawMessage(strconv.FormatInt(n, 10)), nil
	case kindFloat:
		if jsonNumberLiteral.MatchString(v) {
			return json.RawMessage(v), nil
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, err
		}
		return json.RawMessage(strconv.FormatFloat(f, 'g', -1, 64)), nil
	case kindBool:
		return json.RawMessage(strconv.FormatBool(strings.EqualFold(v, "true"))), nil
	default:
		return marshalNoEscape(v)
	}
}

// WriteDelimited writes t as comma-delimited text with a header row,
// replacing any existing file.
func WriteDelimited(path string, t *Table) error {
	var buf bytes.Buffer
	if err := EncodeDelimited(&buf, t); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}

// EncodeDelimited writes a header row followed by one row per record. Cells
// are rendered with jsonutil.FlexibleStringValue, so null becomes an empty
// field.
func EncodeDelimited(w io.Writer, t *Table) error {
	if t == nil {
		return errors.New("nil table")
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Columns); err != nil {
		return err
	}
	fields := make([]string, len(t.Columns))
	for _, row := range t.Rows {
		for j := range t.Columns {
			fields[j] = ""
			if j < len(row) {
				fields[j] = jsonutil.FlexibleStringValue(row[j])
			}
		}
		if err := cw.Write(fields); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
