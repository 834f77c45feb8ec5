package validation

import (
	"strconv"

	"todo-tracker/internal/config"
)

// TaskValidator checks user input before it reaches the task list.
// The task list itself accepts anything, so every front end goes through here.
type TaskValidator struct {
	validator *Validator
}

// NewTaskValidator creates a new task validator
func NewTaskValidator() *TaskValidator {
	return &TaskValidator{
		validator: NewValidator(),
	}
}

// NewTaskValidatorWithConfig creates a task validator with configured limits
func NewTaskValidatorWithConfig(cfg *config.Config) *TaskValidator {
	return &TaskValidator{
		validator: NewValidatorWithConfig(cfg),
	}
}

// ValidateDescription checks a description for a new task.
// It returns the trimmed description on success.
func (tv *TaskValidator) ValidateDescription(description string) (string, error) {
	validationError := NewValidationError()

	trimmed := tv.validator.TrimAndValidateString(description)
	if !tv.validator.IsNonEmptyString(trimmed) {
		validationError.AddRequiredError("description")
		return "", validationError
	}

	if !tv.validator.IsValidDescriptionLength(trimmed) {
		validationError.AddInvalidLengthError("description", trimmed, tv.validator.DescriptionMaxLength())
	}
	if !tv.validator.IsPrintable(trimmed) {
		validationError.AddInvalidCharacterError("description", trimmed)
	}

	if validationError.HasErrors() {
		return "", validationError
	}
	return trimmed, nil
}

// ParseTaskID parses a task id typed by the user.
func (tv *TaskValidator) ParseTaskID(input string) (int, error) {
	validationError := NewValidationError()

	trimmed := tv.validator.TrimAndValidateString(input)
	if trimmed == "" {
		validationError.AddRequiredError("task_id")
		return 0, validationError
	}

	id, err := strconv.Atoi(trimmed)
	if err != nil {
		validationError.AddInvalidFormatError("task_id", trimmed, "a whole number")
		return 0, validationError
	}
	if !tv.validator.IsValidTaskID(id) {
		validationError.AddInvalidValueError("task_id", id, "must be a positive integer")
		return 0, validationError
	}
	return id, nil
}
