package models

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// ColumnDescriptor is one column entry of a schema document.
// Fields other than name and position are carried but not interpreted.
type ColumnDescriptor struct {
	ColumnName     string `json:"column_name"`
	ColumnPosition int    `json:"column_position"`
	DataType       string `json:"data_type,omitempty"`
}

// SchemaDocument maps dataset name to its column descriptors, in the order the
// datasets appear in schemas.json. Descriptor order within a dataset is
// whatever the file declares; use ProjectColumns for position order.
type SchemaDocument struct {
	datasets *orderedmap.OrderedMap[string, []ColumnDescriptor]
}

// NewSchemaDocument returns an empty document.
func NewSchemaDocument() *SchemaDocument {
	return &SchemaDocument{datasets: orderedmap.New[string, []ColumnDescriptor]()}
}

func (d *SchemaDocument) ensure() {
	if d.datasets == nil {
		d.datasets = orderedmap.New[string, []ColumnDescriptor]()
	}
}

// Set adds or replaces the descriptors for a dataset. Intended for building a
// document; a loaded document is treated as immutable.
func (d *SchemaDocument) Set(dataset string, columns []ColumnDescriptor) {
	d.ensure()
	d.datasets.Set(dataset, columns)
}

// Columns returns the descriptors for a dataset as declared.
func (d *SchemaDocument) Columns(dataset string) ([]ColumnDescriptor, bool) {
	if d == nil || d.datasets == nil {
		return nil, false
	}
	return d.datasets.Get(dataset)
}

// Datasets returns dataset names in document order.
func (d *SchemaDocument) Datasets() []string {
	if d == nil || d.datasets == nil {
		return nil
	}
	names := make([]string, 0, d.datasets.Len())
	for pair := d.datasets.Oldest(); pair != nil; pair = pair.Next() {
		names = append(names, pair.Key)
	}
	return names
}

// Len returns the number of datasets.
func (d *SchemaDocument) Len() int {
	if d == nil || d.datasets == nil {
		return 0
	}
	return d.datasets.Len()
}

func (d *SchemaDocument) UnmarshalJSON(data []byte) error {
	datasets := orderedmap.New[string, []ColumnDescriptor]()
	if err := datasets.UnmarshalJSON(data); err != nil {
		return err
	}
	d.datasets = datasets
	return nil
}
