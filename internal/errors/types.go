package errors

import (
	"fmt"
)

// ErrorType is the failure category of an AppError.
type ErrorType int

const (
	ErrorTypeValidation ErrorType = iota
	ErrorTypeNotFound
	ErrorTypeIO
	ErrorTypeDecode
	ErrorTypeEncode
	ErrorTypeInvalidInput
	ErrorTypeTimeout
)

var errorTypeNames = map[ErrorType]string{
	ErrorTypeValidation:   "validation",
	ErrorTypeNotFound:     "not_found",
	ErrorTypeIO:           "io",
	ErrorTypeDecode:       "decode",
	ErrorTypeEncode:       "encode",
	ErrorTypeInvalidInput: "invalid_input",
	ErrorTypeTimeout:      "timeout",
}

func (et ErrorType) String() string {
	if name, ok := errorTypeNames[et]; ok {
		return name
	}
	return "unknown"
}

// IsStorage reports whether the category describes a failure to read or
// write the task file.
func (et ErrorType) IsStorage() bool {
	return et == ErrorTypeIO || et == ErrorTypeDecode || et == ErrorTypeEncode
}

// IsUserError reports whether the category is caused by what the user typed
// rather than by the environment.
func (et ErrorType) IsUserError() bool {
	return et == ErrorTypeValidation || et == ErrorTypeNotFound || et == ErrorTypeInvalidInput
}

// Sentinel values for errors.Is comparisons against a whole category.
var (
	ErrIO       = &AppError{Type: ErrorTypeIO, Code: "IO_ERROR"}
	ErrDecode   = &AppError{Type: ErrorTypeDecode, Code: "DECODE_ERROR"}
	ErrEncode   = &AppError{Type: ErrorTypeEncode, Code: "ENCODE_ERROR"}
	ErrNotFound = &AppError{Type: ErrorTypeNotFound, Code: "NOT_FOUND"}
)

// AppError is a categorized error. Context carries the values the message
// was built from (path, task_id, field) for logging.
type AppError struct {
	Type    ErrorType
	Message string
	Code    string
	Cause   error
	Context map[string]interface{}
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Is matches another AppError with the same type and code, so the sentinels
// match every error of their category.
func (e *AppError) Is(target error) bool {
	if appErr, ok := target.(*AppError); ok {
		return e.Type == appErr.Type && e.Code == appErr.Code
	}
	return false
}

func (e *AppError) IsType(errorType ErrorType) bool {
	return e.Type == errorType
}

// Path returns the file a storage error refers to, or "".
func (e *AppError) Path() string {
	if path, ok := e.GetContext("path"); ok {
		if s, ok := path.(string); ok {
			return s
		}
	}
	return ""
}

// WithContext records key=value on the error and returns it.
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

func (e *AppError) GetContext(key string) (interface{}, bool) {
	value, exists := e.Context[key]
	return value, exists
}
