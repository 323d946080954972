package story

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateTitle(t *testing.T) {
	existing := []Story{New("Draft"), New("Notes")}

	tests := []struct {
		name     string
		title    string
		original string
		wantCode string
	}{
		{"unique", "Fresh", "", ""},
		{"empty", "", "", ErrCodeMissingTitle},
		{"whitespace only", "   ", "", ErrCodeMissingTitle},
		{"duplicate", "Draft", "", ErrCodeDuplicateTitle},
		{"duplicate after trim", "  Draft ", "", ErrCodeDuplicateTitle},
		{"case differs", "draft", "", ""},
		{"editing keeps own title", "Draft", "Draft", ""},
		{"editing into another title", "Notes", "Draft", ErrCodeDuplicateTitle},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTitle(tt.title, existing, tt.original)
			if tt.wantCode == "" {
				assert.NoError(t, err)
				return
			}
			var ve *ValidationError
			if assert.ErrorAs(t, err, &ve) {
				assert.Equal(t, tt.wantCode, ve.Code)
			}
		})
	}
}

func TestValidationErrorHelpers(t *testing.T) {
	wrapped := fmt.Errorf("save: %w", NewDuplicateTitleError("x"))

	assert.True(t, IsDuplicateTitle(wrapped))
	assert.False(t, IsMissingTitle(wrapped))
	assert.True(t, IsValidationError(wrapped))
	assert.True(t, IsMissingTitle(NewMissingTitleError()))
	assert.False(t, IsValidationError(fmt.Errorf("disk full")))
	assert.Contains(t, NewMissingTitleError().Error(), "missing title")
}
