package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/ekaya-inc/fileconv/pkg/apperrors"
	"github.com/ekaya-inc/fileconv/pkg/models"
)

// SchemaLoader loads the schema document of a dataset root.
type SchemaLoader interface {
	Load(rootName string) (*models.SchemaDocument, error)
}

// SchemaRegistry reads data/{root}/schemas.json. When a root has no schema
// document it borrows the one from its alternate root and copies it into
// place, so later loads of the same root read it directly.
type SchemaRegistry struct {
	dataDir    string
	alternates map[string]string
	logger     *zap.Logger
}

var _ SchemaLoader = (*SchemaRegistry)(nil)

// NewSchemaRegistry creates a registry for the two known roots, each the
// other's alternate.
func NewSchemaRegistry(dataDir, delimitedRoot, jsonRoot string, logger *zap.Logger) *SchemaRegistry {
	return &SchemaRegistry{
		dataDir: dataDir,
		alternates: map[string]string{
			delimitedRoot: jsonRoot,
			jsonRoot:      delimitedRoot,
		},
		logger: logger.Named("schema-registry"),
	}
}

// Alternate returns the root paired with rootName.
func (r *SchemaRegistry) Alternate(rootName string) (string, bool) {
	alt, ok := r.alternates[rootName]
	return alt, ok
}

// Load returns the schema document for rootName.
// Returns an error wrapping apperrors.ErrSchemaNotFound when neither the root
// nor its alternate has a usable schema document, and one wrapping
// apperrors.ErrMalformedInput when a document exists but does not parse.
func (r *SchemaRegistry) Load(rootName string) (*models.SchemaDocument, error) {
	root := models.DatasetRoot{DataDir: r.dataDir, Name: rootName}
	path := root.SchemaPath()

	doc, err := readSchemaDocument(path)
	if err == nil {
		r.logger.Debug("Loaded schema document",
			zap.String("root", rootName),
			zap.String("path", path),
			zap.Int("datasets", doc.Len()))
		return doc, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	altName, ok := r.Alternate(rootName)
	if !ok {
		return nil, fmt.Errorf("%w: %s (no alternate root for %q)", apperrors.ErrSchemaNotFound, path, rootName)
	}
	altPath := models.DatasetRoot{DataDir: r.dataDir, Name: altName}.SchemaPath()

	altDoc, err := readSchemaDocument(altPath)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: checked %s and %s", apperrors.ErrSchemaNotFound, path, altPath)
	}
	if err != nil {
		return nil, err
	}
	if altDoc.Len() == 0 {
		r.logger.Warn("Alternate schema document has no datasets, not copying",
			zap.String("root", rootName),
			zap.String("alternate_path", altPath))
		return nil, fmt.Errorf("%w: %s is missing and %s is empty", apperrors.ErrSchemaNotFound, path, altPath)
	}

	if err := copyFile(altPath, path); err != nil {
		return nil, fmt.Errorf("failed to copy schema document from %s: %w", altPath, err)
	}
	r.logger.Info("Copied schema document from alternate root",
		zap.String("root", rootName),
		zap.String("alternate_root", altName),
		zap.String("path", path))

	return readSchemaDocument(path)
}

func readSchemaDocument(path string) (*models.SchemaDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	doc := models.NewSchemaDocument()
	if err := json.Unmarshal(data, doc); err != nil {
		return nil, fmt.Errorf("%w: schema document %s: %v", apperrors.ErrMalformedInput, path, err)
	}
	return doc, nil
}

// copyFile duplicates src at dst byte for byte, creating dst's directory.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
