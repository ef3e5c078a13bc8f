package app_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/KasumiMercury/primind-assignment-reminder/internal/app"
)

func TestNewValidationErrorSuccess(t *testing.T) {
	tests := []struct {
		name          string
		field         string
		message       string
		expectedError string
	}{
		{
			name:          "user_id validation error",
			field:         "user_id",
			message:       "invalid user ID: must be valid UUIDv7",
			expectedError: "validation error: user_id - invalid user ID: must be valid UUIDv7",
		},
		{
			name:          "offset validation error",
			field:         "offset",
			message:       "invalid schedule offset",
			expectedError: "validation error: offset - invalid schedule offset",
		},
		{
			name:          "reminder_at validation error",
			field:         "reminder_at",
			message:       "reminder time cannot be in the past",
			expectedError: "validation error: reminder_at - reminder time cannot be in the past",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := app.NewValidationError(tt.field, tt.message)

			assert.Equal(t, tt.field, err.Field)
			assert.Equal(t, tt.message, err.Message)
			assert.Equal(t, tt.expectedError, err.Error())
		})
	}
}

func TestIsValidationErrorSuccess(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{
			name:     "is ValidationError",
			err:      app.NewValidationError("field", "message"),
			expected: true,
		},
		{
			name:     "wrapped ValidationError",
			err:      fmt.Errorf("wrapped: %w", app.NewValidationError("field", "message")),
			expected: true,
		},
		{
			name:     "internal error",
			err:      fmt.Errorf("%w: %v", app.ErrInternalError, errors.New("db down")),
			expected: false,
		},
		{
			name:     "nil",
			err:      nil,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, app.IsValidationError(tt.err))
		})
	}
}

func TestSentinelErrorsAreDistinct(t *testing.T) {
	sentinels := []error{app.ErrValidation, app.ErrNotFound, app.ErrInternalError, app.ErrAlreadyExists, app.ErrForbidden}

	for i, a := range sentinels {
		for j, b := range sentinels {
			if i != j {
				assert.NotErrorIs(t, a, b)
			}
		}
	}
}
