// Package errors defines the structured error used across the site: a type,
// a stable code that is safe to show to clients, and an optional cause.
package errors

import (
	"context"
	"errors"
	"strings"
)

// ErrorType is the broad category of a failure.
type ErrorType string

const (
	ErrorTypeValidation ErrorType = "validation"
	ErrorTypeNetwork    ErrorType = "network"
	ErrorTypeStorage    ErrorType = "storage"
	ErrorTypeConfig     ErrorType = "config"
	ErrorTypeInternal   ErrorType = "internal"
)

// Codes. The lowercase ones are part of the contact API responses.
const (
	ErrCodeRequired         = "required"
	ErrCodeInvalidEmail     = "invalid-email"
	ErrCodeSubmissionFailed = "submission_failed"
	ErrCodeMalformedRequest = "ERR_MALFORMED_REQUEST"
	ErrCodeConfigInvalid    = "ERR_CONFIG_INVALID"
	ErrCodeStoreFailed      = "ERR_STORE_FAILED"
	ErrCodeUnknownBackend   = "ERR_UNKNOWN_BACKEND"
	ErrCodeInternalError    = "ERR_INTERNAL"
)

// recoverable types are the ones a visitor can fix by editing the form or
// trying again.
func recoverable(t ErrorType) bool {
	return t == ErrorTypeValidation || t == ErrorTypeNetwork
}

// SiteError is a structured error type with context.
type SiteError struct {
	Type        ErrorType
	Code        string
	Message     string
	Cause       error
	Context     map[string]interface{}
	Component   string
	Recoverable bool
}

func newError(t ErrorType, code, message string, cause error) *SiteError {
	return &SiteError{Type: t, Code: code, Message: message, Cause: cause, Recoverable: recoverable(t)}
}

// Error renders "[code] component:name message: cause", omitting empty parts.
func (e *SiteError) Error() string {
	var b strings.Builder
	if e.Code != "" {
		b.WriteString("[" + e.Code + "] ")
	}
	if e.Component != "" {
		b.WriteString("component:" + e.Component + " ")
	}
	b.WriteString(e.Message)
	if e.Cause != nil {
		b.WriteString(": " + e.Cause.Error())
	}
	return b.String()
}

func (e *SiteError) Unwrap() error {
	return e.Cause
}

// Is matches any SiteError with the same type and code.
func (e *SiteError) Is(target error) bool {
	t, ok := target.(*SiteError)
	return ok && e.Type == t.Type && e.Code == t.Code
}

// WithContext attaches a key-value pair and returns e.
func (e *SiteError) WithContext(key string, value interface{}) *SiteError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// WithComponent records where the error happened and returns e.
func (e *SiteError) WithComponent(component string) *SiteError {
	e.Component = component
	return e
}

func NewValidationError(code, message string) *SiteError {
	return newError(ErrorTypeValidation, code, message, nil)
}

// NewNetworkError reports a failed exchange with a remote endpoint. The
// visitor retries by submitting again; nothing is retried automatically.
func NewNetworkError(code, message string, cause error) *SiteError {
	return newError(ErrorTypeNetwork, code, message, cause)
}

func NewStorageError(code, message string, cause error) *SiteError {
	return newError(ErrorTypeStorage, code, message, cause)
}

func NewConfigError(code, message string) *SiteError {
	return newError(ErrorTypeConfig, code, message, nil)
}

func NewInternalError(code, message string, cause error) *SiteError {
	return newError(ErrorTypeInternal, code, message, cause)
}

// Wrap gives err a type, code and message. Context and component of a
// wrapped SiteError carry over. Wrap(nil, ...) is nil.
func Wrap(err error, errType ErrorType, code, message string) *SiteError {
	if err == nil {
		return nil
	}
	wrapped := newError(errType, code, message, err)
	if se := asSiteError(err); se != nil {
		wrapped.Context = se.Context
		wrapped.Component = se.Component
	}
	return wrapped
}

func asSiteError(err error) *SiteError {
	var se *SiteError
	if errors.As(err, &se) {
		return se
	}
	return nil
}

// IsRecoverable reports whether the outermost SiteError in err's chain is
// recoverable.
func IsRecoverable(err error) bool {
	se := asSiteError(err)
	return se != nil && se.Recoverable
}

func IsValidation(err error) bool {
	se := asSiteError(err)
	return se != nil && se.Type == ErrorTypeValidation
}

func IsNetwork(err error) bool {
	se := asSiteError(err)
	return se != nil && se.Type == ErrorTypeNetwork
}

// CodeOf returns the code of the outermost SiteError in err's chain, or "".
func CodeOf(err error) string {
	if se := asSiteError(err); se != nil {
		return se.Code
	}
	return ""
}

// Logger is the part of logging.Logger an ErrorHandler needs.
type Logger interface {
	Error(ctx context.Context, err error, msg string, fields ...interface{})
	Warn(ctx context.Context, err error, msg string, fields ...interface{})
}

// ErrorHandler logs errors at a level that matches their type: recoverable
// ones as warnings, everything else as errors.
type ErrorHandler struct {
	logger Logger
}

func NewErrorHandler(logger Logger) *ErrorHandler {
	return &ErrorHandler{logger: logger}
}

func (h *ErrorHandler) Handle(ctx context.Context, err error) {
	if err == nil || h.logger == nil {
		return
	}

	se := asSiteError(err)
	if se == nil {
		h.logger.Error(ctx, err, "Unhandled error occurred")
		return
	}

	fields := []interface{}{"type", se.Type, "code", se.Code}
	if se.Component != "" {
		fields = append(fields, "component", se.Component)
	}
	for k, v := range se.Context {
		fields = append(fields, k, v)
	}

	if se.Recoverable {
		h.logger.Warn(ctx, se, "Recoverable error occurred", fields...)
		return
	}
	h.logger.Error(ctx, se, "Error occurred", fields...)
}
