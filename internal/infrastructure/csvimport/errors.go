package csvimport

import (
	"errors"
	"fmt"
)

// Row error codes
const (
	CodeRequiredField     = "REQUIRED_FIELD"
	CodeInvalidType       = "INVALID_TYPE"
	CodeInvalidFormat     = "INVALID_FORMAT"
	CodeInvalidRange      = "INVALID_RANGE"
	CodeDuplicateInFile   = "DUPLICATE_IN_FILE"
	CodeAlreadyExists     = "ALREADY_EXISTS"
	CodeReferenceNotFound = "REFERENCE_NOT_FOUND"
	CodeValidation        = "VALIDATION_ERROR"
)

var (
	// ErrEmptyFile is returned when the CSV file is empty
	ErrEmptyFile = errors.New("CSV file is empty")

	// ErrInvalidEncoding is returned when the file is not UTF-8
	ErrInvalidEncoding = errors.New("CSV file must be UTF-8 encoded")

	// ErrMissingHeader is returned when the CSV file has no header row
	ErrMissingHeader = errors.New("CSV file missing header row")

	// ErrTooManyRows is returned when a file exceeds the configured row limit
	ErrTooManyRows = errors.New("CSV file has too many rows")
)

// RowError describes why one imported row was rejected
type RowError struct {
	Row     int    `json:"row"`
	Field   string `json:"field,omitempty"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Value   string `json:"value,omitempty"`
}

// Error implements the error interface
func (e RowError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("row %d, field '%s': %s", e.Row, e.Field, e.Message)
	}
	return fmt.Sprintf("row %d: %s", e.Row, e.Message)
}

// ErrorCollection keeps the first maxErrors row errors and counts the rest
type ErrorCollection struct {
	errors     []RowError
	maxErrors  int
	totalCount int
}

// NewErrorCollection creates a new ErrorCollection with a maximum error limit
func NewErrorCollection(maxErrors int) *ErrorCollection {
	if maxErrors <= 0 {
		maxErrors = 100
	}
	return &ErrorCollection{
		errors:    make([]RowError, 0),
		maxErrors: maxErrors,
	}
}

// Add adds an error to the collection
func (ec *ErrorCollection) Add(err RowError) {
	ec.totalCount++
	if len(ec.errors) < ec.maxErrors {
		ec.errors = append(ec.errors, err)
	}
}

// AddRequired records a missing required field
func (ec *ErrorCollection) AddRequired(row int, field string) {
	ec.Add(RowError{Row: row, Field: field, Code: CodeRequiredField, Message: fmt.Sprintf("field '%s' is required", field)})
}

// AddType records a value that does not parse as the expected type
func (ec *ErrorCollection) AddType(row int, field, expected, value string) {
	ec.Add(RowError{Row: row, Field: field, Code: CodeInvalidType, Message: "expected " + expected, Value: value})
}

// AddDuplicate records a unique value repeated in the file or already stored
func (ec *ErrorCollection) AddDuplicate(row int, field, value string, inDB bool) {
	if inDB {
		ec.Add(RowError{Row: row, Field: field, Code: CodeAlreadyExists,
			Message: fmt.Sprintf("value '%s' already exists", value), Value: value})
		return
	}
	ec.Add(RowError{Row: row, Field: field, Code: CodeDuplicateInFile,
		Message: fmt.Sprintf("duplicate value '%s' found in file", value), Value: value})
}

// AddReference records a reference to a record that does not exist
func (ec *ErrorCollection) AddReference(row int, field, value, refType string) {
	ec.Add(RowError{Row: row, Field: field, Code: CodeReferenceNotFound,
		Message: fmt.Sprintf("%s '%s' not found", refType, value), Value: value})
}

// AddMessage records an error with an explicit code
func (ec *ErrorCollection) AddMessage(row int, field, code, message string) {
	ec.Add(RowError{Row: row, Field: field, Code: code, Message: message})
}

// Errors returns the collected errors, never nil
func (ec *ErrorCollection) Errors() []RowError {
	return ec.errors
}

// TotalCount returns the number of errors including those not kept
func (ec *ErrorCollection) TotalCount() int {
	return ec.totalCount
}

// HasErrors returns true if there are any errors
func (ec *ErrorCollection) HasErrors() bool {
	return ec.totalCount > 0
}

// IsTruncated returns true if some errors were dropped by the limit
func (ec *ErrorCollection) IsTruncated() bool {
	return ec.totalCount > ec.maxErrors
}
