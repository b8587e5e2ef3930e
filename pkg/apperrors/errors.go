package apperrors

import (
	"errors"
	"fmt"
)

var (
	ErrSchemaNotFound      = errors.New("schema document not found")
	ErrSourceFileMissing   = errors.New("source file missing")
	ErrDatasetNotInMapping = errors.New("dataset not found in column mapping")
	ErrMalformedInput      = errors.New("malformed input")
)

// DatasetError ties a failure to the dataset and file it concerns.
type DatasetError struct {
	Dataset string
	Path    string
	Err     error
}

func (e *DatasetError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("dataset %q: %v", e.Dataset, e.Err)
	}
	return fmt.Sprintf("dataset %q: %v: %s", e.Dataset, e.Err, e.Path)
}

func (e *DatasetError) Unwrap() error {
	return e.Err
}

// IsRecoverable reports whether err is a per-dataset condition that should be
// reported and skipped rather than ending the run.
func IsRecoverable(err error) bool {
	return errors.Is(err, ErrSourceFileMissing) || errors.Is(err, ErrDatasetNotInMapping)
}
