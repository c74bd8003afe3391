package csvproc

import (
	"errors"
	"fmt"
)

// ErrColumnNotFound is wrapped by every ColumnError.
var ErrColumnNotFound = errors.New("column not found")

// ColumnError reports a mapped column missing from the file header.
// It aborts the processing of the file.
type ColumnError struct {
	Key    string   // mapping key
	Column string   // mapped header name
	File   string   // file being processed
	Found  []string // header names found in the file

	msg string
}

func (e *ColumnError) Error() string { return e.msg }
func (e *ColumnError) Unwrap() error { return ErrColumnNotFound }

// RowError reports an invalid value in the current row. The row is
// reported and skipped, the processing goes on with the next row.
type RowError struct {
	Key   string
	Value string
	Err   error
}

// NewRowError returns a RowError for the value of key.
func NewRowError(key, value string, err error) *RowError {
	return &RowError{Key: key, Value: value, Err: err}
}

func (e *RowError) Error() string {
	if e.Key == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("invalid %s value %q: %v", e.Key, e.Value, e.Err)
}

func (e *RowError) Unwrap() error { return e.Err }
