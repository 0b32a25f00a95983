package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown      ErrorCode = "UNKNOWN"
	ErrInternal     ErrorCode = "INTERNAL"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"

	// Run-level configuration errors
	ErrConfigLoad    ErrorCode = "CONFIG_LOAD"
	ErrConfigParse   ErrorCode = "CONFIG_PARSE"
	ErrSettings      ErrorCode = "SETTINGS"
	ErrMissingOutdir ErrorCode = "MISSING_OUTDIR"

	// Override errors
	ErrInvalidOverride  ErrorCode = "INVALID_OVERRIDE"
	ErrInvalidIndex     ErrorCode = "INVALID_INDEX"
	ErrIndexOutOfBounds ErrorCode = "INDEX_OUT_OF_BOUNDS"
	ErrOverridePath     ErrorCode = "OVERRIDE_PATH"

	// Template errors
	ErrTemplateResolve ErrorCode = "TEMPLATE_RESOLVE"
	ErrTemplateExecute ErrorCode = "TEMPLATE_EXECUTE"

	// FileSystem errors
	ErrFileNotFound ErrorCode = "FILE_NOT_FOUND"
	ErrFileWrite    ErrorCode = "FILE_WRITE"
	ErrDirCreate    ErrorCode = "DIR_CREATE"
)

// PagesmithError represents a structured error with code and details
type PagesmithError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *PagesmithError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *PagesmithError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *PagesmithError) Is(target error) bool {
	var targetErr *PagesmithError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new PagesmithError with the given code and message
func New(code ErrorCode, message string) *PagesmithError {
	return &PagesmithError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new PagesmithError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *PagesmithError {
	return &PagesmithError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a PagesmithError
func Wrap(err error, code ErrorCode, message string) *PagesmithError {
	if err == nil {
		return nil
	}
	return &PagesmithError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *PagesmithError {
	if err == nil {
		return nil
	}
	return &PagesmithError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *PagesmithError) WithDetail(key string, value interface{}) *PagesmithError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// WithDetails adds multiple details to the error
func (e *PagesmithError) WithDetails(details map[string]interface{}) *PagesmithError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var psErr *PagesmithError
	if errors.As(err, &psErr) {
		return psErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a PagesmithError
func GetErrorCode(err error) ErrorCode {
	var psErr *PagesmithError
	if errors.As(err, &psErr) {
		return psErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a PagesmithError
func GetErrorDetails(err error) map[string]interface{} {
	var psErr *PagesmithError
	if errors.As(err, &psErr) {
		return psErr.Details
	}
	return nil
}

// IsFatal reports whether an error aborts the whole run rather than a single page.
func IsFatal(err error) bool {
	switch GetErrorCode(err) {
	case ErrConfigLoad, ErrConfigParse, ErrSettings, ErrMissingOutdir,
		ErrInvalidOverride, ErrInvalidIndex, ErrIndexOutOfBounds, ErrOverridePath:
		return true
	}
	return false
}
