package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDatasetError_MessageNamesDatasetAndPath(t *testing.T) {
	err := &DatasetError{Dataset: "orders", Path: "data/retail_db/orders/part-00000", Err: ErrSourceFileMissing}

	assert.Equal(t, `dataset "orders": source file missing: data/retail_db/orders/part-00000`, err.Error())
	assert.ErrorIs(t, err, ErrSourceFileMissing)
}

func TestDatasetError_WithoutPath(t *testing.T) {
	err := &DatasetError{Dataset: "unknown", Err: ErrDatasetNotInMapping}

	assert.Equal(t, `dataset "unknown": dataset not found in column mapping`, err.Error())
}

func TestIsRecoverable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"missing source", &DatasetError{Dataset: "a", Err: ErrSourceFileMissing}, true},
		{"not in mapping", fmt.Errorf("convert: %w", ErrDatasetNotInMapping), true},
		{"malformed", &DatasetError{Dataset: "a", Err: ErrMalformedInput}, false},
		{"schema not found", ErrSchemaNotFound, false},
		{"other", errors.New("disk full"), false},
		{"nil", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsRecoverable(tt.err))
		})
	}
}
