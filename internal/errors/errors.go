package errors

import (
	stderrors "errors"
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

// New creates a new AppError
func New(code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an error with additional context
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

// GetCode returns the error code if it's an AppError, otherwise returns "UNKNOWN"
func GetCode(err error) string {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Code
	}
	var combErr *UnsupportedCombinationError
	if stderrors.As(err, &combErr) {
		return CodeUnsupportedCombination
	}
	return "UNKNOWN"
}

// Predefined error codes
const (
	CodeSchema                 = "SCHEMA_ERROR"
	CodeInsufficientData       = "INSUFFICIENT_DATA"
	CodeUnsupportedCombination = "UNSUPPORTED_COMBINATION"
	CodeConfigInvalid          = "CONFIG_INVALID"
	CodeDataSource             = "DATASOURCE_ERROR"
	CodeInternalError          = "INTERNAL_ERROR"
)

// Schema reports malformed or misaligned input. Not recoverable by retrying.
func Schema(message string) *AppError {
	return New(CodeSchema, message)
}

// Schemaf is Schema with fmt-style formatting.
func Schemaf(format string, args ...interface{}) *AppError {
	return New(CodeSchema, fmt.Sprintf(format, args...))
}

// InsufficientData reports too few observations or too few groups. The caller
// can recover by supplying more data.
func InsufficientData(message string) *AppError {
	return New(CodeInsufficientData, message)
}

// InsufficientDataf is InsufficientData with fmt-style formatting.
func InsufficientDataf(format string, args ...interface{}) *AppError {
	return New(CodeInsufficientData, fmt.Sprintf(format, args...))
}

// ConfigInvalid reports invalid configuration values.
func ConfigInvalid(message string) *AppError {
	return New(CodeConfigInvalid, message)
}

// DataSource reports a failure while reading from a tabular backend.
func DataSource(message string, cause error) *AppError {
	return &AppError{Code: CodeDataSource, Message: message, Cause: cause}
}

// UnsupportedCombinationError reports a (group count, paired, approach)
// combination for which no test is implemented. The offending tuple is
// carried so callers can branch on it rather than parse a message.
type UnsupportedCombinationError struct {
	K        int
	Paired   bool
	Approach string
}

func (e *UnsupportedCombinationError) Error() string {
	return fmt.Sprintf("no implemented test for combination (k=%d, paired=%t, approach=%q)",
		e.K, e.Paired, e.Approach)
}

// UnsupportedCombination constructs an UnsupportedCombinationError.
func UnsupportedCombination(k int, paired bool, approach string) *UnsupportedCombinationError {
	return &UnsupportedCombinationError{K: k, Paired: paired, Approach: approach}
}

// IsSchema reports whether err carries the schema error code.
func IsSchema(err error) bool {
	return GetCode(err) == CodeSchema
}

// IsInsufficientData reports whether err carries the insufficient data code.
func IsInsufficientData(err error) bool {
	return GetCode(err) == CodeInsufficientData
}

// IsUnsupportedCombination reports whether err is an UnsupportedCombinationError.
func IsUnsupportedCombination(err error) bool {
	var combErr *UnsupportedCombinationError
	return stderrors.As(err, &combErr)
}

// AsUnsupportedCombination extracts the typed combination error, if any.
func AsUnsupportedCombination(err error) (*UnsupportedCombinationError, bool) {
	var combErr *UnsupportedCombinationError
	if stderrors.As(err, &combErr) {
		return combErr, true
	}
	return nil, false
}
