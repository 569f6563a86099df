package errors

import (
	"encoding/json"
	"fmt"
)

// ErrorCode represents a specific error condition
type ErrorCode string

const (
	// Configuration errors
	ErrCodeConfigNotFound ErrorCode = "CONFIG_NOT_FOUND"
	ErrCodeConfigInvalid  ErrorCode = "CONFIG_INVALID"

	// Extension catalog errors
	ErrCodeManifestInvalid   ErrorCode = "MANIFEST_INVALID"
	ErrCodeExtensionNotFound ErrorCode = "EXTENSION_NOT_FOUND"

	// Persistence errors
	ErrCodeStoreRead   ErrorCode = "STORE_READ"
	ErrCodeStoreWrite  ErrorCode = "STORE_WRITE"
	ErrCodeStoreLocked ErrorCode = "STORE_LOCKED"

	// Extension protocol errors
	ErrCodeProtocolEncode  ErrorCode = "PROTOCOL_ENCODE"
	ErrCodeProtocolDecode  ErrorCode = "PROTOCOL_DECODE"
	ErrCodeExtensionFailed ErrorCode = "EXTENSION_FAILED"

	// Command execution errors
	ErrCodeCommandNotFound ErrorCode = "COMMAND_NOT_FOUND"

	// General errors
	ErrCodeInternal     ErrorCode = "INTERNAL_ERROR"
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
)

// LauncherError represents a structured error with context
type LauncherError struct {
	Code    ErrorCode              `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
	Cause   error                  `json:"-"`
}

// Error implements the error interface
func (e *LauncherError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *LauncherError) Unwrap() error {
	return e.Cause
}

// WithDetail adds a detail to the error
func (e *LauncherError) WithDetail(key string, value interface{}) *LauncherError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// ToJSON converts the error to JSON
func (e *LauncherError) ToJSON() string {
	data, _ := json.MarshalIndent(e, "", "  ")
	return string(data)
}

// New creates a new LauncherError
func New(code ErrorCode, message string) *LauncherError {
	return &LauncherError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an existing error with a LauncherError
func Wrap(err error, code ErrorCode, message string) *LauncherError {
	return &LauncherError{
		Code:    code,
		Message: message,
		Cause:   err,
	}
}

// Is checks if an error is a specific LauncherError code
func Is(err error, code ErrorCode) bool {
	if err == nil {
		return false
	}

	launcherErr, ok := err.(*LauncherError)
	if !ok {
		// Try to unwrap
		if unwrapper, ok := err.(interface{ Unwrap() error }); ok {
			return Is(unwrapper.Unwrap(), code)
		}
		return false
	}

	if launcherErr.Code == code {
		return true
	}
	return launcherErr.Cause != nil && Is(launcherErr.Cause, code)
}

// GetCode extracts the outermost error code from an error
func GetCode(err error) ErrorCode {
	if err == nil {
		return ""
	}

	launcherErr, ok := err.(*LauncherError)
	if !ok {
		// Try to unwrap
		if unwrapper, ok := err.(interface{ Unwrap() error }); ok {
			return GetCode(unwrapper.Unwrap())
		}
		return ""
	}

	return launcherErr.Code
}
