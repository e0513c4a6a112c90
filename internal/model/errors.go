package model

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a processing failure.
type ErrorKind string

const (
	// ValidationError covers a wrong extension, a missing required column or
	// a file that does not parse into a rectangular table.
	ValidationError ErrorKind = "validation_error"
	// EmptyDataError means the file parsed but holds no data rows.
	EmptyDataError ErrorKind = "empty_data_error"
	// ParserError means the file is structurally corrupt.
	ParserError ErrorKind = "parser_error"
	// ProcessingError covers any other failure during row transformation.
	ProcessingError ErrorKind = "processing_error"
)

// ProcessError is a classified failure. The original message is preserved so
// callers can surface it in run records.
type ProcessError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *ProcessError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
	return string(e.Kind)
}

func (e *ProcessError) Unwrap() error {
	return e.Err
}

// NewProcessError builds a ProcessError wrapping an optional cause.
func NewProcessError(kind ErrorKind, message string, err error) *ProcessError {
	return &ProcessError{Kind: kind, Message: message, Err: err}
}

// KindOf extracts the error kind from err, defaulting to ProcessingError.
func KindOf(err error) ErrorKind {
	var pe *ProcessError
	if errors.As(err, &pe) {
		return pe.Kind
	}
	return ProcessingError
}
