package apperrors

import (
	"errors"
	"fmt"
)

// ErrDataFetch indicates that the rate document could not be retrieved or decoded.
var ErrDataFetch = errors.New("data fetch error")

// ErrSchema indicates that the rate document is missing required fields.
var ErrSchema = errors.New("schema error")

// ErrPersistence indicates a connection, statement or commit failure while loading.
var ErrPersistence = errors.New("persistence error")

// DataFetchError is returned by the extract stage.
type DataFetchError struct {
	Message    string
	StatusCode int // zero when no HTTP response was received
	Err        error
}

func (e *DataFetchError) Error() string {
	msg := "failed to fetch conversion rates: " + e.Message
	if e.StatusCode != 0 {
		msg = fmt.Sprintf("%s (status %d)", msg, e.StatusCode)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *DataFetchError) Unwrap() error { return e.Err }

// Is lets errors.Is(err, ErrDataFetch) match any DataFetchError.
func (e *DataFetchError) Is(target error) bool { return target == ErrDataFetch }

// NewDataFetchError creates a DataFetchError.
func NewDataFetchError(message string, statusCode int, err error) *DataFetchError {
	return &DataFetchError{Message: message, StatusCode: statusCode, Err: err}
}

// SchemaError is returned by the transform stage when a required field is absent.
type SchemaError struct {
	Field string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("rate document is missing required field %q", e.Field)
}

func (e *SchemaError) Is(target error) bool { return target == ErrSchema }

// NewSchemaError creates a SchemaError for the named field.
func NewSchemaError(field string) *SchemaError {
	return &SchemaError{Field: field}
}

// PersistenceError is returned by the load stage.
type PersistenceError struct {
	Op  string // connect, begin, insert, commit
	Row int    // index of the failing record for insert, -1 otherwise
	Err error
}

func (e *PersistenceError) Error() string {
	if e.Row >= 0 {
		return fmt.Sprintf("failed to %s row %d: %v", e.Op, e.Row, e.Err)
	}
	return fmt.Sprintf("failed to %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

func (e *PersistenceError) Is(target error) bool { return target == ErrPersistence }

// NewPersistenceError creates a PersistenceError not tied to a specific row.
func NewPersistenceError(op string, err error) *PersistenceError {
	return &PersistenceError{Op: op, Row: -1, Err: err}
}

// NewRowPersistenceError creates a PersistenceError for the record at index row.
func NewRowPersistenceError(op string, row int, err error) *PersistenceError {
	return &PersistenceError{Op: op, Row: row, Err: err}
}
