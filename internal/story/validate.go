package story

import (
	"errors"
	"fmt"
	"strings"
)

// Validation error codes (E200-E299)
const (
	ErrCodeMissingTitle   = "E201" // trimmed title is empty
	ErrCodeDuplicateTitle = "E202" // another story already uses the title
	ErrCodeSchema         = "E203" // imported data violates the story schema
)

// ValidationError is a user-correctable input error. Workflows surface it
// as inline text; it never escapes past the workflow boundary as a failure
// of the system.
type ValidationError struct {
	Code    string `json:"code"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s: %s", e.Code, e.Field, e.Message)
}

// NewMissingTitleError reports an empty title.
func NewMissingTitleError() *ValidationError {
	return &ValidationError{
		Code:    ErrCodeMissingTitle,
		Field:   "title",
		Message: "missing title",
	}
}

// NewDuplicateTitleError reports a title already used by another story.
func NewDuplicateTitleError(title string) *ValidationError {
	return &ValidationError{
		Code:    ErrCodeDuplicateTitle,
		Field:   "title",
		Message: fmt.Sprintf("duplicate title: a story named %q already exists", title),
	}
}

// IsMissingTitle returns true if err is a missing title validation error.
// Uses errors.As to handle wrapped errors.
func IsMissingTitle(err error) bool {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Code == ErrCodeMissingTitle
	}
	return false
}

// IsDuplicateTitle returns true if err is a duplicate title validation error.
func IsDuplicateTitle(err error) bool {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Code == ErrCodeDuplicateTitle
	}
	return false
}

// IsValidationError returns true for any ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// ValidateTitle checks title against the existing stories. The comparison
// is an exact, case-sensitive match on the trimmed title. original names
// the story being edited, which may keep its own title; pass "" when
// creating.
func ValidateTitle(title string, stories []Story, original string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return NewMissingTitleError()
	}
	for _, s := range stories {
		if s.Title == title && s.Title != original {
			return NewDuplicateTitleError(title)
		}
	}
	return nil
}
