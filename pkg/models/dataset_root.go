package models

import "path/filepath"

// Conventional file names inside a dataset root.
const (
	SchemaFileName   = "schemas.json"
	MetadataFileName = "metadata.json"

	SourcePartFile    = "part-00000"
	JSONPartFile      = "part-00000-json"
	DelimitedPartFile = "part-00000-csv"
)

// DatasetRoot locates one data tree, data/{name}.
type DatasetRoot struct {
	DataDir string
	Name    string
}

// Dir returns the root directory.
func (r DatasetRoot) Dir() string {
	return filepath.Join(r.DataDir, r.Name)
}

// SchemaPath returns data/{root}/schemas.json.
func (r DatasetRoot) SchemaPath() string {
	return filepath.Join(r.Dir(), SchemaFileName)
}

// MetadataPath returns data/{root}/metadata.json.
func (r DatasetRoot) MetadataPath() string {
	return filepath.Join(r.Dir(), MetadataFileName)
}

// SourcePath returns data/{root}/{dataset}/part-00000.
func (r DatasetRoot) SourcePath(dataset string) string {
	return filepath.Join(r.Dir(), dataset, SourcePartFile)
}

// OutputPath returns the converted sibling of the part file for a direction.
func (r DatasetRoot) OutputPath(dataset string, direction Direction) string {
	return filepath.Join(r.Dir(), dataset, direction.OutputFileName())
}
