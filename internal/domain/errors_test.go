package domain

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSentinelErrors_AreDistinct(t *testing.T) {
	sentinels := []error{
		ErrNotFound,
		ErrConflict,
		ErrValidation,
		ErrUnavailable,
	}

	for i, a := range sentinels {
		for j, b := range sentinels {
			if i != j {
				assert.NotErrorIs(t, a, b,
					"sentinels should be distinct: %v vs %v", a, b)
			}
		}
	}
}

func TestNotFoundError(t *testing.T) {
	tests := []struct {
		name        string
		entity      string
		id          string
		expectedMsg string
	}{
		{
			name:        "with entity and ID",
			entity:      "quote",
			id:          "123",
			expectedMsg: `quote with id "123" not found`,
		},
		{
			name:        "with entity only",
			entity:      "author",
			id:          "",
			expectedMsg: "author not found",
		},
		{
			name:        "empty entity with ID",
			entity:      "",
			id:          "abc",
			expectedMsg: ` with id "abc" not found`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewNotFoundError(tt.entity, tt.id)

			assert.Equal(t, tt.expectedMsg, err.Error())
			require.ErrorIs(t, err, ErrNotFound)

			var notFound *NotFoundError
			require.ErrorAs(t, err, &notFound)
			assert.Equal(t, tt.entity, notFound.Entity)
			assert.Equal(t, tt.id, notFound.ID)
		})
	}
}

func TestNotFoundError_Unwrap(t *testing.T) {
	err := NewNotFoundError("quote", "123")

	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, ErrNotFound, notFound.Unwrap())
}

func TestDuplicateError(t *testing.T) {
	tests := []struct {
		name        string
		entity      string
		value       string
		expectedMsg string
	}{
		{
			name:        "with value",
			entity:      "tag",
			value:       "wisdom",
			expectedMsg: `tag "wisdom" already exists`,
		},
		{
			name:        "without value",
			entity:      "quote",
			value:       "",
			expectedMsg: "quote already exists",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewDuplicateError(tt.entity, tt.value)

			assert.Equal(t, tt.expectedMsg, err.Error())
			require.ErrorIs(t, err, ErrConflict)

			var duplicate *DuplicateError
			require.ErrorAs(t, err, &duplicate)
			assert.Equal(t, tt.entity, duplicate.Entity)
			assert.Equal(t, tt.value, duplicate.Value)
		})
	}
}

func TestDuplicateError_Unwrap(t *testing.T) {
	err := NewDuplicateError("author", "Mark Twain")

	var duplicate *DuplicateError
	require.ErrorAs(t, err, &duplicate)
	assert.Equal(t, ErrConflict, duplicate.Unwrap())
}

func TestConflictError(t *testing.T) {
	err := NewConflictError("author", "author is still referenced by quotes")

	assert.Equal(t, "conflict on author: author is still referenced by quotes", err.Error())
	require.ErrorIs(t, err, ErrConflict)

	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "author", conflict.Entity)
	assert.Equal(t, "author is still referenced by quotes", conflict.Reason)
}

func TestConflictError_Unwrap(t *testing.T) {
	err := NewConflictError("author", "referenced")

	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, ErrConflict, conflict.Unwrap())
}

func TestValidationError(t *testing.T) {
	tests := []struct {
		name        string
		field       string
		message     string
		expectedMsg string
	}{
		{
			name:        "with field",
			field:       "email",
			message:     "invalid format",
			expectedMsg: "validation failed for email: invalid format",
		},
		{
			name:        "without field",
			field:       "",
			message:     "general validation error",
			expectedMsg: "validation failed: general validation error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewValidationError(tt.field, tt.message)

			assert.Equal(t, tt.expectedMsg, err.Error())
			require.ErrorIs(t, err, ErrValidation)

			var validation *ValidationError
			require.ErrorAs(t, err, &validation)
			assert.Equal(t, tt.field, validation.Field)
			assert.Equal(t, tt.message, validation.Message)
		})
	}
}

func TestValidationError_Unwrap(t *testing.T) {
	err := NewValidationError("field", "message")

	var validation *ValidationError
	require.ErrorAs(t, err, &validation)
	assert.Equal(t, ErrValidation, validation.Unwrap())
}

func TestValidationErrorWithValue(t *testing.T) {
	err := NewValidationErrorWithValue("name", "too short", "ab")

	var validation *ValidationError
	require.ErrorAs(t, err, &validation)
	assert.Equal(t, "ab", validation.Value)
}

func TestUnavailableError(t *testing.T) {
	tests := []struct {
		name        string
		service     string
		reason      string
		expectedMsg string
	}{
		{
			name:        "with reason",
			service:     "database",
			reason:      "connection timeout",
			expectedMsg: `service "database" unavailable: connection timeout`,
		},
		{
			name:        "without reason",
			service:     "cache",
			reason:      "",
			expectedMsg: `service "cache" unavailable`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewUnavailableError(tt.service, tt.reason)

			assert.Equal(t, tt.expectedMsg, err.Error())
			require.ErrorIs(t, err, ErrUnavailable)

			var unavailable *UnavailableError
			require.ErrorAs(t, err, &unavailable)
			assert.Equal(t, tt.service, unavailable.Service)
			assert.Equal(t, tt.reason, unavailable.Reason)
		})
	}
}

func TestUnavailableError_Unwrap(t *testing.T) {
	err := NewUnavailableError("db", "timeout")

	var unavailable *UnavailableError
	require.ErrorAs(t, err, &unavailable)
	assert.Equal(t, ErrUnavailable, unavailable.Unwrap())
}

func TestIsHelpers(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		isFunc   func(error) bool
		expected bool
	}{
		// NotFound
		{"IsNotFound with NotFoundError", NewNotFoundError("quote", "123"), IsNotFound, true},
		{"IsNotFound with sentinel", ErrNotFound, IsNotFound, true},
		{"IsNotFound with wrapped", fmt.Errorf("wrapped: %w", ErrNotFound), IsNotFound, true},
		{"IsNotFound with other error", ErrConflict, IsNotFound, false},
		{"IsNotFound with nil", nil, IsNotFound, false},

		// Conflict
		{"IsConflict with DuplicateError", NewDuplicateError("tag", "wisdom"), IsConflict, true},
		{"IsConflict with ConflictError", NewConflictError("author", "referenced"), IsConflict, true},
		{"IsConflict with sentinel", ErrConflict, IsConflict, true},
		{"IsConflict with wrapped", fmt.Errorf("wrapped: %w", ErrConflict), IsConflict, true},
		{"IsConflict with other error", ErrNotFound, IsConflict, false},
		{"IsConflict with nil", nil, IsConflict, false},

		// Validation
		{"IsValidation with ValidationError", NewValidationError("email", "invalid"), IsValidation, true},
		{"IsValidation with sentinel", ErrValidation, IsValidation, true},
		{"IsValidation with wrapped", fmt.Errorf("wrapped: %w", ErrValidation), IsValidation, true},
		{"IsValidation with other error", ErrNotFound, IsValidation, false},
		{"IsValidation with nil", nil, IsValidation, false},

		// Unavailable
		{"IsUnavailable with UnavailableError", NewUnavailableError("db", "timeout"), IsUnavailable, true},
		{"IsUnavailable with sentinel", ErrUnavailable, IsUnavailable, true},
		{"IsUnavailable with wrapped", fmt.Errorf("wrapped: %w", ErrUnavailable), IsUnavailable, true},
		{"IsUnavailable with other error", ErrNotFound, IsUnavailable, false},
		{"IsUnavailable with nil", nil, IsUnavailable, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.isFunc(tt.err))
		})
	}
}

func TestErrorWrappingChain(t *testing.T) {
	t.Run("deeply wrapped NotFoundError", func(t *testing.T) {
		original := NewNotFoundError("quote", "123")
		wrapped1 := fmt.Errorf("layer1: %w", original)
		wrapped2 := fmt.Errorf("layer2: %w", wrapped1)
		wrapped3 := fmt.Errorf("layer3: %w", wrapped2)

		assert.True(t, IsNotFound(wrapped3))

		var notFound *NotFoundError
		require.ErrorAs(t, wrapped3, &notFound)
		assert.Equal(t, "123", notFound.ID)
		assert.Equal(t, "quote", notFound.Entity)
	})

	t.Run("deeply wrapped DuplicateError", func(t *testing.T) {
		original := NewDuplicateError("category", "philosophy")
		wrapped := fmt.Errorf("outer: %w", fmt.Errorf("inner: %w", original))

		assert.True(t, IsConflict(wrapped))

		var duplicate *DuplicateError
		require.ErrorAs(t, wrapped, &duplicate)
		assert.Equal(t, "philosophy", duplicate.Value)
	})

	t.Run("deeply wrapped ValidationError", func(t *testing.T) {
		original := NewValidationError("email", "invalid")
		wrapped := fmt.Errorf("validation: %w", original)

		assert.True(t, IsValidation(wrapped))

		var validation *ValidationError
		require.ErrorAs(t, wrapped, &validation)
		assert.Equal(t, "email", validation.Field)
	})

	t.Run("deeply wrapped UnavailableError", func(t *testing.T) {
		original := NewUnavailableError("database", "connection refused")
		wrapped := fmt.Errorf("storage: %w", original)

		assert.True(t, IsUnavailable(wrapped))

		var unavailable *UnavailableError
		require.ErrorAs(t, wrapped, &unavailable)
		assert.Equal(t, "database", unavailable.Service)
	})
}
