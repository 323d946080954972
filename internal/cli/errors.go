package cli

import (
	"errors"

	"github.com/roach88/storytime/internal/schema"
	"github.com/roach88/storytime/internal/story"
)

// Command error codes (E001-E099). Validation codes E2xx come from the
// story package.
const (
	ErrCodeGeneric     = "E001" // Generic/unknown error
	ErrCodeNotFound    = "E005" // Story or path not found
	ErrCodeWriteFailed = "E007" // File write error
	ErrCodeStore       = "E008" // Database read/write failed
	ErrCodeBadInput    = "E009" // Unreadable or malformed input file
)

// outputFailure reports err through the formatter and returns the exit
// error for it. Validation errors exit with ExitFailure under their own
// code; anything else is reported under code and exits with
// ExitCommandError.
func outputFailure(formatter *OutputFormatter, code, message string, err error) error {
	var violations schema.Violations
	if errors.As(err, &violations) {
		_ = formatter.Error(story.ErrCodeSchema, violations.Error(), violations)
		return WrapExitError(ExitFailure, message, err)
	}

	var ve *story.ValidationError
	if errors.As(err, &ve) {
		_ = formatter.Error(ve.Code, ve.Message, nil)
		return WrapExitError(ExitFailure, message, err)
	}

	_ = formatter.Error(code, err.Error(), nil)
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr
	}
	return WrapExitError(ExitCommandError, message, err)
}
