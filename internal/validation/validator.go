package validation

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"todo-tracker/internal/config"
)

const defaultDescriptionMaxLength = 500

// Validator provides common validation utilities
type Validator struct {
	config *config.Config
}

// NewValidator creates a validator using the built-in limits
func NewValidator() *Validator {
	return &Validator{}
}

// NewValidatorWithConfig creates a validator that reads its limits from cfg
func NewValidatorWithConfig(cfg *config.Config) *Validator {
	return &Validator{config: cfg}
}

// IsNonEmptyString checks if a string is not empty after trimming whitespace
func (v *Validator) IsNonEmptyString(s string) bool {
	return strings.TrimSpace(s) != ""
}

// IsValidDescriptionLength counts runes so that non-ASCII descriptions are not penalised
func (v *Validator) IsValidDescriptionLength(description string) bool {
	return utf8.RuneCountInString(description) <= v.DescriptionMaxLength()
}

// IsPrintable rejects control characters such as newlines and tabs, which
// would break the one-task-per-line rendering.
func (v *Validator) IsPrintable(s string) bool {
	for _, r := range s {
		if unicode.IsControl(r) || r == utf8.RuneError {
			return false
		}
	}
	return true
}

// IsValidTaskID checks if a task ID is valid (positive)
func (v *Validator) IsValidTaskID(id int) bool {
	return id > 0
}

// TrimAndValidateString trims whitespace and returns the cleaned string
func (v *Validator) TrimAndValidateString(s string) string {
	return strings.TrimSpace(s)
}

// DescriptionMaxLength returns the configured maximum description length or the default
func (v *Validator) DescriptionMaxLength() int {
	if v.config != nil && v.config.Validation.DescriptionMaxLength > 0 {
		return v.config.Validation.DescriptionMaxLength
	}
	return defaultDescriptionMaxLength
}
