package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchemaDocument_Unmarshal(t *testing.T) {
	raw := `{
		"departments": [
			{"column_name": "department_name", "data_type": "string", "column_position": 2},
			{"column_name": "department_id", "data_type": "integer", "column_position": 1}
		],
		"categories": [
			{"column_name": "category_id", "column_position": 1, "extra": {"ignored": true}}
		]
	}`

	var doc SchemaDocument
	require.NoError(t, json.Unmarshal([]byte(raw), &doc))

	assert.Equal(t, 2, doc.Len())
	assert.Equal(t, []string{"departments", "categories"}, doc.Datasets())

	cols, ok := doc.Columns("departments")
	require.True(t, ok)
	assert.Equal(t, []ColumnDescriptor{
		{ColumnName: "department_name", ColumnPosition: 2, DataType: "string"},
		{ColumnName: "department_id", ColumnPosition: 1, DataType: "integer"},
	}, cols)

	cols, ok = doc.Columns("categories")
	require.True(t, ok)
	assert.Equal(t, "category_id", cols[0].ColumnName)
}

func TestSchemaDocument_UnmarshalRejectsNonObject(t *testing.T) {
	var doc SchemaDocument
	err := json.Unmarshal([]byte(`[{"column_name": "a"}]`), &doc)
	assert.Error(t, err)
}

func TestSchemaDocument_Empty(t *testing.T) {
	var doc SchemaDocument
	require.NoError(t, json.Unmarshal([]byte(`{}`), &doc))

	assert.Equal(t, 0, doc.Len())
	_, ok := doc.Columns("departments")
	assert.False(t, ok)
}
