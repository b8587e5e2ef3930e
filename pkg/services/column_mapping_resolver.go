package services

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/ekaya-inc/fileconv/pkg/apperrors"
	"github.com/ekaya-inc/fileconv/pkg/models"
)

// ResolveColumnMapping loads and projects the schema document of rootName.
// When no schema document can be found it returns defaults instead; a nil
// defaults leaves the ErrSchemaNotFound error for the caller.
func ResolveColumnMapping(loader SchemaLoader, rootName string, defaults *models.ColumnMapping, logger *zap.Logger) (*models.ColumnMapping, error) {
	doc, err := loader.Load(rootName)
	if err == nil {
		return ProjectColumns(doc), nil
	}
	if !errors.Is(err, apperrors.ErrSchemaNotFound) || defaults == nil {
		return nil, fmt.Errorf("failed to load schema for %q: %w", rootName, err)
	}

	logger.Warn("No schema document found, using default schema set",
		zap.String("root", rootName),
		zap.Int("datasets", defaults.Len()),
		zap.Error(err))
	return defaults, nil
}
