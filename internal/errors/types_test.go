package errors

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSiteErrorFormatting(t *testing.T) {
	t.Run("code and message", func(t *testing.T) {
		err := NewValidationError(ErrCodeRequired, "all fields are required")
		assert.Equal(t, "[required] all fields are required", err.Error())
	})

	t.Run("component and cause", func(t *testing.T) {
		cause := errors.New("connection refused")
		err := NewNetworkError(ErrCodeSubmissionFailed, "submission failed", cause).
			WithComponent("contact")

		assert.Equal(t, "[submission_failed] component:contact submission failed: connection refused", err.Error())
		assert.Equal(t, cause, err.Unwrap())
		assert.ErrorIs(t, err, cause)
	})
}

func TestSiteErrorIs(t *testing.T) {
	err := fmt.Errorf("outer: %w", NewValidationError(ErrCodeInvalidEmail, "bad email"))

	assert.ErrorIs(t, err, NewValidationError(ErrCodeInvalidEmail, ""))
	assert.NotErrorIs(t, err, NewValidationError(ErrCodeRequired, ""))
	assert.NotErrorIs(t, err, NewNetworkError(ErrCodeInvalidEmail, "", nil))
}

func TestPredicates(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		recoverable bool
		validation  bool
		network     bool
		code        string
	}{
		{"validation", NewValidationError(ErrCodeRequired, "x"), true, true, false, ErrCodeRequired},
		{"network", NewNetworkError(ErrCodeSubmissionFailed, "x", nil), true, false, true, ErrCodeSubmissionFailed},
		{"storage", NewStorageError(ErrCodeStoreFailed, "x", nil), false, false, false, ErrCodeStoreFailed},
		{"config", NewConfigError(ErrCodeConfigInvalid, "x"), false, false, false, ErrCodeConfigInvalid},
		{"plain", errors.New("x"), false, false, false, ""},
		{"nil", nil, false, false, false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.recoverable, IsRecoverable(tt.err))
			assert.Equal(t, tt.validation, IsValidation(tt.err))
			assert.Equal(t, tt.network, IsNetwork(tt.err))
			assert.Equal(t, tt.code, CodeOf(tt.err))
		})
	}
}

func TestWrap(t *testing.T) {
	assert.Nil(t, Wrap(nil, ErrorTypeInternal, ErrCodeInternalError, "x"))

	plain := errors.New("disk full")
	wrapped := Wrap(plain, ErrorTypeStorage, ErrCodeStoreFailed, "save contact")
	require.NotNil(t, wrapped)
	assert.Equal(t, ErrorTypeStorage, wrapped.Type)
	assert.False(t, wrapped.Recoverable)
	assert.ErrorIs(t, wrapped, plain)

	inner := NewValidationError(ErrCodeRequired, "missing").WithContext("field", "name")
	outer := Wrap(inner, ErrorTypeNetwork, ErrCodeSubmissionFailed, "send")
	assert.Equal(t, "name", outer.Context["field"])
	assert.True(t, outer.Recoverable)
	assert.Equal(t, ErrCodeSubmissionFailed, CodeOf(outer))
}

type recordingLogger struct {
	warns  []string
	errors []string
}

func (r *recordingLogger) Error(_ context.Context, _ error, msg string, _ ...interface{}) {
	r.errors = append(r.errors, msg)
}

func (r *recordingLogger) Warn(_ context.Context, _ error, msg string, _ ...interface{}) {
	r.warns = append(r.warns, msg)
}

func TestErrorHandler(t *testing.T) {
	logger := &recordingLogger{}
	handler := NewErrorHandler(logger)
	ctx := context.Background()

	handler.Handle(ctx, nil)
	handler.Handle(ctx, NewValidationError(ErrCodeRequired, "x"))
	handler.Handle(ctx, NewStorageError(ErrCodeStoreFailed, "x", nil))
	handler.Handle(ctx, errors.New("boom"))

	assert.Len(t, logger.warns, 1)
	assert.Len(t, logger.errors, 2)
}
