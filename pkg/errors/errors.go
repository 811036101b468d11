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

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigValid ErrorCode = "CONFIG_INVALID"

	// Fatal-to-run errors: these abort the current output directory
	ErrDefsOpen      ErrorCode = "DEFS_OPEN"
	ErrInventoryScan ErrorCode = "INVENTORY_SCAN"
	ErrLinkScan      ErrorCode = "LINK_SCAN"
	ErrSeedImages    ErrorCode = "SEED_IMAGES"
	ErrIndexWrite    ErrorCode = "INDEX_WRITE"

	// Per-record errors: the record (or one rule of it) is skipped
	ErrRecordFields ErrorCode = "RECORD_FIELDS"
	ErrRecordParse  ErrorCode = "RECORD_PARSE"
	ErrRuleExpand   ErrorCode = "RULE_EXPAND"

	// Per-target errors: the target is skipped
	ErrLinkCreate ErrorCode = "LINK_CREATE"
	ErrLinkRemove ErrorCode = "LINK_REMOVE"
)

// PiconError represents a structured error with code and details
type PiconError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *PiconError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *PiconError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *PiconError) Is(target error) bool {
	var targetErr *PiconError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new PiconError with the given code and message
func New(code ErrorCode, message string) *PiconError {
	return &PiconError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new PiconError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *PiconError {
	return &PiconError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a PiconError
func Wrap(err error, code ErrorCode, message string) *PiconError {
	if err == nil {
		return nil
	}
	return &PiconError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *PiconError {
	if err == nil {
		return nil
	}
	return &PiconError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *PiconError) WithDetail(key string, value interface{}) *PiconError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var piconErr *PiconError
	if errors.As(err, &piconErr) {
		return piconErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a PiconError
func GetErrorCode(err error) ErrorCode {
	var piconErr *PiconError
	if errors.As(err, &piconErr) {
		return piconErr.Code
	}
	return ErrUnknown
}
