package services

import (
	"cmp"
	"slices"

	"github.com/ekaya-inc/fileconv/pkg/models"
)

// ProjectColumns derives the column mapping from a schema document: for each
// dataset, descriptors are ordered by column_position ascending (ties keep
// their declared order) and reduced to their column names. The document is
// not modified.
func ProjectColumns(doc *models.SchemaDocument) *models.ColumnMapping {
	mapping := models.NewColumnMapping()
	for _, dataset := range doc.Datasets() {
		descriptors, _ := doc.Columns(dataset)

		sorted := slices.Clone(descriptors)
		slices.SortStableFunc(sorted, func(a, b models.ColumnDescriptor) int {
			return cmp.Compare(a.ColumnPosition, b.ColumnPosition)
		})

		columns := make([]string, len(sorted))
		for i, d := range sorted {
			columns[i] = d.ColumnName
		}
		mapping.Set(dataset, columns)
	}
	return mapping
}

// ProjectFromLiterals pairs dataset names with column lists by index.
// When the slices differ in length the extra entries of the longer one are
// dropped.
func ProjectFromLiterals(datasets []string, columns [][]string) *models.ColumnMapping {
	mapping := models.NewColumnMapping()
	n := min(len(datasets), len(columns))
	for i := 0; i < n; i++ {
		mapping.Set(datasets[i], slices.Clone(columns[i]))
	}
	return mapping
}
