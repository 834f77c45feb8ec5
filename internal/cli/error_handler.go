package cli

import (
	"context"
	stderrors "errors"
	"fmt"

	"todo-tracker/internal/errors"
	"todo-tracker/internal/logging"
	"todo-tracker/internal/validation"
)

// ErrorHandler provides centralized error handling for command handlers
type ErrorHandler struct{}

// NewErrorHandler creates a new error handler
func NewErrorHandler() *ErrorHandler {
	return &ErrorHandler{}
}

// Handle provides user-friendly error messages for validation and other errors
func (eh *ErrorHandler) Handle(operation string, err error) error {
	return fmt.Errorf("failed to %s: %s", operation, eh.Message(err))
}

// HandleSimple provides user-friendly error messages without operation context
func (eh *ErrorHandler) HandleSimple(err error) error {
	return stderrors.New(eh.Message(err))
}

// Message returns the text shown to the user for err.
func (eh *ErrorHandler) Message(err error) string {
	if errors.ShouldLogError(err) {
		logging.Debugf("%s error: %v\n", errors.GetErrorCode(err), err)
	}

	var validationErr *validation.ValidationError
	if stderrors.As(err, &validationErr) {
		return validationErr.GetUserFriendlyMessage()
	}
	if errors.IsAppError(err) {
		return errors.GetUserMessage(err)
	}
	if stderrors.Is(err, context.DeadlineExceeded) {
		return errors.GetUserMessage(errors.NewTimeoutError("task list operation", nil))
	}
	return err.Error()
}

// IsValidationError checks if an error is a validation error
func (eh *ErrorHandler) IsValidationError(err error) bool {
	if validation.IsValidationError(err) {
		return true
	}
	return errors.IsErrorType(err, errors.ErrorTypeValidation)
}

// IsNotFoundError checks if an error is a not found error
func (eh *ErrorHandler) IsNotFoundError(err error) bool {
	return errors.IsErrorType(err, errors.ErrorTypeNotFound)
}

// IsStorageError reports whether err came from reading or writing the task file.
func (eh *ErrorHandler) IsStorageError(err error) bool {
	appErr, ok := errors.AsAppError(err)
	return ok && appErr.Type.IsStorage()
}

// GetErrorCode returns the error code for structured errors
func (eh *ErrorHandler) GetErrorCode(err error) string {
	return errors.GetErrorCode(err)
}
