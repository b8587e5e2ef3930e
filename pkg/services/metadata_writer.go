package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/ekaya-inc/fileconv/pkg/models"
)

const metadataIndent = "    "

// MetadataWriter persists a resolved column mapping as data/{root}/metadata.json.
type MetadataWriter struct {
	dataDir string
	logger  *zap.Logger
}

func NewMetadataWriter(dataDir string, logger *zap.Logger) *MetadataWriter {
	return &MetadataWriter{
		dataDir: dataDir,
		logger:  logger.Named("metadata"),
	}
}

// Write replaces metadata.json with the mapping, indented by four spaces and
// with non-ASCII text left unescaped.
func (w *MetadataWriter) Write(mapping *models.ColumnMapping, rootName string) error {
	root := models.DatasetRoot{DataDir: w.dataDir, Name: rootName}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", metadataIndent)
	if err := enc.Encode(mapping); err != nil {
		return fmt.Errorf("failed to encode column mapping: %w", err)
	}

	if err := os.MkdirAll(root.Dir(), 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", root.Dir(), err)
	}
	if err := os.WriteFile(root.MetadataPath(), buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", root.MetadataPath(), err)
	}

	w.logger.Info("Wrote column mapping metadata",
		zap.String("root", rootName),
		zap.String("path", root.MetadataPath()),
		zap.Int("datasets", mapping.Len()))
	return nil
}
