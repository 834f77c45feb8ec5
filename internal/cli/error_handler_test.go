package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"todo-tracker/internal/errors"
	"todo-tracker/internal/validation"
)

func TestErrorHandler_Handle(t *testing.T) {
	eh := NewErrorHandler()

	tests := []struct {
		name      string
		operation string
		err       error
		expected  string
	}{
		{
			name:      "validation error",
			operation: "add task",
			err:       errors.NewValidationError("invalid task description", nil),
			expected:  "failed to add task: invalid task description",
		},
		{
			name:      "not found error",
			operation: "complete task",
			err:       errors.NewTaskNotFoundError(7),
			expected:  "failed to complete task: task not found: 7",
		},
		{
			name:      "io error",
			operation: "load tasks",
			err:       errors.NewIOError("read", "/tmp/tasks.json", stderrors.New("denied")),
			expected:  "failed to load tasks: read failed for /tmp/tasks.json. Check that the file is accessible.",
		},
		{
			name:      "encode error",
			operation: "save tasks",
			err:       errors.NewEncodeError("/tmp/tasks.json", nil),
			expected:  "failed to save tasks: The task list could not be written. Please try again.",
		},
		{
			name:      "plain error",
			operation: "process",
			err:       stderrors.New("regular error"),
			expected:  "failed to process: regular error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.EqualError(t, eh.Handle(tt.operation, tt.err), tt.expected)
		})
	}
}

func TestErrorHandler_HandleSimple(t *testing.T) {
	eh := NewErrorHandler()
	assert.EqualError(t, eh.HandleSimple(errors.NewTaskNotFoundError(3)), "task not found: 3")
	assert.EqualError(t, eh.HandleSimple(stderrors.New("boom")), "boom")
}

func TestErrorHandler_Message(t *testing.T) {
	eh := NewErrorHandler()

	required := validation.NewValidationError()
	required.AddRequiredError("description")

	wrapped := errors.NewValidationError("invalid task description", required)

	assert.Equal(t, "description is required", eh.Message(required))
	assert.Equal(t, "description is required", eh.Message(wrapped), "field errors win over the wrapper")
	assert.Equal(t, "The operation timed out. Please try again.",
		eh.Message(fmt.Errorf("load: %w", context.DeadlineExceeded)))
}

func TestErrorHandler_Classification(t *testing.T) {
	eh := NewErrorHandler()

	fieldErr := validation.NewValidationError()
	fieldErr.AddRequiredError("task_id")

	assert.True(t, eh.IsValidationError(fieldErr))
	assert.True(t, eh.IsValidationError(errors.NewValidationError("bad", nil)))
	assert.False(t, eh.IsValidationError(stderrors.New("plain")))

	assert.True(t, eh.IsNotFoundError(errors.NewTaskNotFoundError(1)))
	assert.False(t, eh.IsNotFoundError(errors.NewDecodeError("x", nil)))

	assert.True(t, eh.IsStorageError(errors.NewIOError("write", "x", nil)))
	assert.True(t, eh.IsStorageError(errors.NewDecodeError("x", nil)))
	assert.True(t, eh.IsStorageError(errors.NewEncodeError("x", nil)))
	assert.False(t, eh.IsStorageError(errors.NewTaskNotFoundError(1)))

	assert.Equal(t, "NOT_FOUND", eh.GetErrorCode(errors.NewTaskNotFoundError(1)))
	assert.Equal(t, "UNKNOWN_ERROR", eh.GetErrorCode(stderrors.New("plain")))
}
