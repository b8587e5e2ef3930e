package models

import (
	"bytes"
	"encoding/json"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// ColumnMapping maps dataset name to its column names in position order.
// Dataset keys are unique and keep insertion order, which is also the order
// bulk conversions visit them. Built once, then read-only.
type ColumnMapping struct {
	datasets *orderedmap.OrderedMap[string, []string]
}

// NewColumnMapping returns an empty mapping.
func NewColumnMapping() *ColumnMapping {
	return &ColumnMapping{datasets: orderedmap.New[string, []string]()}
}

func (m *ColumnMapping) ensure() {
	if m.datasets == nil {
		m.datasets = orderedmap.New[string, []string]()
	}
}

// Set adds or replaces the column list for a dataset.
func (m *ColumnMapping) Set(dataset string, columns []string) {
	m.ensure()
	m.datasets.Set(dataset, columns)
}

// Columns returns the column names for a dataset.
func (m *ColumnMapping) Columns(dataset string) ([]string, bool) {
	if m == nil || m.datasets == nil {
		return nil, false
	}
	return m.datasets.Get(dataset)
}

// Has reports whether the dataset has a column list.
func (m *ColumnMapping) Has(dataset string) bool {
	_, ok := m.Columns(dataset)
	return ok
}

// Datasets returns dataset names in insertion order.
func (m *ColumnMapping) Datasets() []string {
	if m == nil || m.datasets == nil {
		return nil
	}
	names := make([]string, 0, m.datasets.Len())
	for pair := m.datasets.Oldest(); pair != nil; pair = pair.Next() {
		names = append(names, pair.Key)
	}
	return names
}

// Len returns the number of datasets.
func (m *ColumnMapping) Len() int {
	if m == nil || m.datasets == nil {
		return 0
	}
	return m.datasets.Len()
}

// MarshalJSON writes datasets in order without HTML escaping.
func (m *ColumnMapping) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)

	buf.WriteByte('{')
	for i, name := range m.Datasets() {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := enc.Encode(name); err != nil {
			return nil, err
		}
		buf.Truncate(buf.Len() - 1) // Encode appends a newline
		buf.WriteByte(':')

		columns, _ := m.Columns(name)
		if columns == nil {
			columns = []string{}
		}
		if err := enc.Encode(columns); err != nil {
			return nil, err
		}
		buf.Truncate(buf.Len() - 1)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (m *ColumnMapping) UnmarshalJSON(data []byte) error {
	datasets := orderedmap.New[string, []string]()
	if err := datasets.UnmarshalJSON(data); err != nil {
		return err
	}
	m.datasets = datasets
	return nil
}
