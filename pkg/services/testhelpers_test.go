package services

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const (
	testCSVRoot  = "retail_db"
	testJSONRoot = "retail_db_json"
)

const departmentsSchema = `{
    "departments": [
        {"column_name": "department_name", "data_type": "string", "column_position": 2},
        {"column_name": "department_id", "data_type": "integer", "column_position": 1}
    ],
    "categories": [
        {"column_name": "category_id", "data_type": "integer", "column_position": 1},
        {"column_name": "category_department_id", "data_type": "integer", "column_position": 2},
        {"column_name": "category_name", "data_type": "string", "column_position": 3}
    ]
}`

// writeFile creates path (and its parents) under dir with content.
func writeFile(t *testing.T, dir, rel, content string) string {
	t.Helper()
	path := filepath.Join(dir, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}
