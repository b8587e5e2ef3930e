package services

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"go.uber.org/zap"

	"github.com/ekaya-inc/fileconv/pkg/apperrors"
	"github.com/ekaya-inc/fileconv/pkg/models"
	"github.com/ekaya-inc/fileconv/pkg/tabular"
)

// DatasetResult describes one converted dataset.
type DatasetResult struct {
	Dataset    string
	Rows       int
	OutputPath string
}

// ConversionReport collects what a conversion did. Skipped holds the
// recoverable per-dataset errors (missing source file, dataset not in
// mapping) that were reported and passed over.
type ConversionReport struct {
	Direction models.Direction
	Root      string
	Converted []DatasetResult
	Skipped   []error
}

// ConversionService converts part files between headerless delimited text
// and line-delimited JSON, writing the result next to the source file.
// Sources are read fully into memory; nothing is streamed.
type ConversionService struct {
	dataDir string
	logger  *zap.Logger
}

func NewConversionService(dataDir string, logger *zap.Logger) *ConversionService {
	return &ConversionService{
		dataDir: dataDir,
		logger:  logger.Named("conversion"),
	}
}

// ConvertAllDelimitedToJSON converts part-00000 of every dataset in mapping to
// part-00000-json. Datasets without a source file are reported and skipped.
func (s *ConversionService) ConvertAllDelimitedToJSON(ctx context.Context, rootName string, mapping *models.ColumnMapping) (*ConversionReport, error) {
	root := s.root(rootName)
	report := &ConversionReport{Direction: models.DelimitedToJSON, Root: rootName}

	for _, dataset := range mapping.Datasets() {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		columns, _ := mapping.Columns(dataset)
		if err := s.settle(report, s.delimitedToJSON(root, dataset, columns, report)); err != nil {
			return report, err
		}
	}
	s.warnUnmapped(root, mapping)
	return report, nil
}

// ConvertOneDelimitedToJSON converts a single dataset. A dataset missing from
// mapping is reported without touching the filesystem.
func (s *ConversionService) ConvertOneDelimitedToJSON(ctx context.Context, rootName string, mapping *models.ColumnMapping, dataset string) (*ConversionReport, error) {
	root := s.root(rootName)
	report := &ConversionReport{Direction: models.DelimitedToJSON, Root: rootName}

	columns, ok := mapping.Columns(dataset)
	if !ok {
		return report, s.settle(report, &apperrors.DatasetError{Dataset: dataset, Err: apperrors.ErrDatasetNotInMapping})
	}
	if err := ctx.Err(); err != nil {
		return report, err
	}
	return report, s.settle(report, s.delimitedToJSON(root, dataset, columns, report))
}

// ConvertAllJSONToDelimited converts part-00000 of every dataset in mapping
// from line-delimited JSON to part-00000-csv with a header row. Datasets
// without a source file are reported and skipped.
func (s *ConversionService) ConvertAllJSONToDelimited(ctx context.Context, rootName string, mapping *models.ColumnMapping) (*ConversionReport, error) {
	root := s.root(rootName)
	report := &ConversionReport{Direction: models.JSONToDelimited, Root: rootName}

	for _, dataset := range mapping.Datasets() {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		if err := s.settle(report, s.jsonToDelimited(root, dataset, report)); err != nil {
			return report, err
		}
	}
	s.warnUnmapped(root, mapping)
	return report, nil
}

// ConvertOneJSONToDelimited converts a single dataset. JSON records carry
// their own field names, so no column mapping is needed.
func (s *ConversionService) ConvertOneJSONToDelimited(ctx context.Context, rootName, dataset string) (*ConversionReport, error) {
	report := &ConversionReport{Direction: models.JSONToDelimited, Root: rootName}
	if err := ctx.Err(); err != nil {
		return report, err
	}
	return report, s.settle(report, s.jsonToDelimited(s.root(rootName), dataset, report))
}

func (s *ConversionService) root(rootName string) models.DatasetRoot {
	return models.DatasetRoot{DataDir: s.dataDir, Name: rootName}
}

func (s *ConversionService) delimitedToJSON(root models.DatasetRoot, dataset string, columns []string, report *ConversionReport) error {
	source := root.SourcePath(dataset)
	if err := s.checkSource(source, dataset); err != nil {
		return err
	}

	table, err := tabular.ReadDelimited(source, columns)
	if err != nil {
		return &apperrors.DatasetError{Dataset: dataset, Path: source, Err: err}
	}

	output := root.OutputPath(dataset, models.DelimitedToJSON)
	if err := tabular.WriteJSONLines(output, table); err != nil {
		return fmt.Errorf("failed to write %s: %w", output, err)
	}
	s.converted(report, dataset, len(table.Rows), output)
	return nil
}

func (s *ConversionService) jsonToDelimited(root models.DatasetRoot, dataset string, report *ConversionReport) error {
	source := root.SourcePath(dataset)
	if err := s.checkSource(source, dataset); err != nil {
		return err
	}

	table, err := tabular.ReadJSONLines(source)
	if err != nil {
		return &apperrors.DatasetError{Dataset: dataset, Path: source, Err: err}
	}

	output := root.OutputPath(dataset, models.JSONToDelimited)
	if err := tabular.WriteDelimited(output, table); err != nil {
		return fmt.Errorf("failed to write %s: %w", output, err)
	}
	s.converted(report, dataset, len(table.Rows), output)
	return nil
}

// checkSource returns an ErrSourceFileMissing dataset error when the part
// file is absent.
func (s *ConversionService) checkSource(source, dataset string) error {
	info, err := os.Stat(source)
	if err == nil && !info.IsDir() {
		return nil
	}
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		s.logger.Warn("Could not stat source file",
			zap.String("dataset", dataset),
			zap.String("path", source),
			zap.Error(err))
	}
	return &apperrors.DatasetError{Dataset: dataset, Path: source, Err: apperrors.ErrSourceFileMissing}
}

// settle records a recoverable dataset error as a skip and returns nil;
// any other error is returned unchanged.
func (s *ConversionService) settle(report *ConversionReport, err error) error {
	var dsErr *apperrors.DatasetError
	if apperrors.IsRecoverable(err) && errors.As(err, &dsErr) {
		s.skip(report, dsErr)
		return nil
	}
	return err
}

func (s *ConversionService) skip(report *ConversionReport, err *apperrors.DatasetError) {
	s.logger.Warn("Skipping dataset",
		zap.String("root", report.Root),
		zap.String("dataset", err.Dataset),
		zap.String("path", err.Path),
		zap.Error(err.Err))
	report.Skipped = append(report.Skipped, err)
}

func (s *ConversionService) converted(report *ConversionReport, dataset string, rows int, output string) {
	s.logger.Info("Converted dataset",
		zap.String("root", report.Root),
		zap.String("dataset", dataset),
		zap.Stringer("direction", report.Direction),
		zap.Int("rows", rows),
		zap.String("output", output))
	report.Converted = append(report.Converted, DatasetResult{Dataset: dataset, Rows: rows, OutputPath: output})
}

// warnUnmapped logs dataset directories under root that have no column list.
func (s *ConversionService) warnUnmapped(root models.DatasetRoot, mapping *models.ColumnMapping) {
	entries, err := os.ReadDir(root.Dir())
	if err != nil {
		s.logger.Debug("Could not list dataset root", zap.String("root", root.Name), zap.Error(err))
		return
	}
	for _, entry := range entries {
		if entry.IsDir() && !mapping.Has(entry.Name()) {
			s.logger.Warn("Dataset directory has no column mapping",
				zap.String("root", root.Name),
				zap.String("dataset", entry.Name()))
		}
	}
}
