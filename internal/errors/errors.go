// Package errors holds the coded errors returned by the crossdome engine.
// Every error kind is an AppError with a Code, so callers can match kinds
// with errors.Is against the exported sentinels regardless of wrapping.
package errors

import (
	"fmt"
)

// AppError represents a structured application error
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Is matches on Code so sentinels compare equal to any error of their kind.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// New creates a new AppError
func New(code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Newf creates a new AppError with a formatted message
func Newf(code, format string, args ...interface{}) *AppError {
	return New(code, fmt.Sprintf(format, args...))
}

// Wrap wraps an error with additional context. The code of a wrapped
// AppError is kept.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	if appErr, ok := err.(*AppError); ok {
		return &AppError{
			Code:    appErr.Code,
			Message: message,
			Cause:   appErr,
		}
	}
	return &AppError{
		Code:    CodeInternalError,
		Message: message,
		Cause:   err,
	}
}

// Wrapf wraps an error with formatted additional context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// WithCode wraps err under a new code, keeping err as the cause.
func WithCode(code string, err error, message string) error {
	if err == nil {
		return nil
	}
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   err,
	}
}

// GetCode returns the error code if it's an AppError, otherwise returns "UNKNOWN"
func GetCode(err error) string {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Code
	}
	return "UNKNOWN"
}

// Error codes
const (
	CodeInvalidLength       = "INVALID_LENGTH"
	CodeInvalidResidue      = "INVALID_RESIDUE"
	CodeConstruction        = "CONSTRUCTION"
	CodeStatisticsUndefined = "STATISTICS_UNDEFINED"
	CodeMissingColumn       = "MISSING_COLUMN"
	CodeInvalidWeights      = "INVALID_WEIGHTS"
	CodeInvalidCondition    = "INVALID_CONDITION"
	CodeIO                  = "IO_ERROR"
	CodeInternalError       = "INTERNAL_ERROR"
)

// Sentinels for errors.Is
var (
	ErrInvalidLength       = New(CodeInvalidLength, "invalid peptide length")
	ErrInvalidResidue      = New(CodeInvalidResidue, "invalid residue")
	ErrConstruction        = New(CodeConstruction, "failed to construct background")
	ErrStatisticsUndefined = New(CodeStatisticsUndefined, "statistics undefined")
	ErrMissingColumn       = New(CodeMissingColumn, "missing column")
	ErrInvalidWeights      = New(CodeInvalidWeights, "invalid position weights")
	ErrInvalidCondition    = New(CodeInvalidCondition, "invalid filter condition")
	ErrIO                  = New(CodeIO, "i/o failure")
)

// MissingColumn is returned when a requested column is absent from a table
func MissingColumn(column string) *AppError {
	return Newf(CodeMissingColumn, "column %q not found", column)
}

// IO wraps a collaborator failure (file not found, write failure, etc)
func IO(err error, format string, args ...interface{}) error {
	return WithCode(CodeIO, err, fmt.Sprintf(format, args...))
}
