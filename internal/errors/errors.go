package errors

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"
)

// Kind classifies an error for handling and logging
type Kind string

const (
	KindInvalidParameter Kind = "invalid_parameter"
	KindInvalidInput     Kind = "invalid_input"
	KindNetwork          Kind = "network"
	KindTimeout          Kind = "timeout"
	KindInternal         Kind = "internal"
)

// AppError wraps an errbuilder error with the toolkit's error kind
type AppError struct {
	*errbuilder.ErrBuilder
	Kind      Kind      `json:"kind"`
	Timestamp time.Time `json:"timestamp"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	codeStr := "UNKNOWN_ERROR"
	switch e.Kind {
	case KindInvalidParameter:
		codeStr = "INVALID_PARAMETER"
	case KindInvalidInput:
		codeStr = "INVALID_INPUT"
	case KindNetwork:
		codeStr = "NETWORK_ERROR"
	case KindTimeout:
		codeStr = "TIMEOUT_ERROR"
	case KindInternal:
		codeStr = "INTERNAL_ERROR"
	}

	return fmt.Sprintf("[%s] %s", codeStr, e.ErrBuilder.Msg)
}

// Unwrap returns the underlying cause
func (e *AppError) Unwrap() error {
	return e.ErrBuilder.Unwrap()
}

// NewAppError creates an AppError from an errbuilder with a kind
func NewAppError(builder *errbuilder.ErrBuilder, kind Kind) *AppError {
	return &AppError{
		ErrBuilder: builder,
		Kind:       kind,
		Timestamp:  time.Now(),
	}
}

// NewInvalidParameter reports a non-positive or otherwise unusable
// hyperparameter (variance, precision, shape, rate) supplied by the caller.
func NewInvalidParameter(message string, details ...interface{}) *AppError {
	return newValidation(message, KindInvalidParameter, details...)
}

// NewInvalidInput reports an observation outside the model family's support,
// such as a negative count or a non-binary trial value.
func NewInvalidInput(message string, details ...interface{}) *AppError {
	return newValidation(message, KindInvalidInput, details...)
}

func newValidation(message string, kind Kind, details ...interface{}) *AppError {
	builder := errbuilder.New().
		WithCode(errbuilder.CodeInvalidArgument).
		WithMsg(message)

	if len(details) > 0 {
		errorMap := errbuilder.ErrorMap{}
		errorMap.Set("details", fmt.Errorf("%v", details[0]))
		builder = builder.WithDetails(errbuilder.NewErrDetails(errorMap))
	}

	return NewAppError(builder, kind)
}

// NewNetworkError creates a network error using errbuilder
func NewNetworkError(message string, cause error) *AppError {
	builder := errbuilder.New().
		WithCode(errbuilder.CodeUnavailable).
		WithMsg(message)

	if cause != nil {
		builder = builder.WithCause(cause)
	}

	return NewAppError(builder, KindNetwork)
}

// NewTimeoutError creates a timeout error using errbuilder
func NewTimeoutError(message string, cause error) *AppError {
	builder := errbuilder.New().
		WithCode(errbuilder.CodeDeadlineExceeded).
		WithMsg(message)

	if cause != nil {
		builder = builder.WithCause(cause)
	}

	return NewAppError(builder, KindTimeout)
}

// NewInternalError creates an internal error using errbuilder
func NewInternalError(message string, cause error) *AppError {
	errorMap := errbuilder.ErrorMap{}
	errorMap.Set("internal_details", errors.New(message))

	builder := errbuilder.New().
		WithCode(errbuilder.CodeInternal).
		WithMsg("Internal error").
		WithDetails(errbuilder.NewErrDetails(errorMap))

	if cause != nil {
		builder = builder.WithCause(cause)
	}

	return NewAppError(builder, KindInternal)
}

// IsKind reports whether err is an AppError of the given kind
func IsKind(err error, kind Kind) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind == kind
	}
	return false
}

// IsInvalidParameter reports whether err is a hyperparameter validation error
func IsInvalidParameter(err error) bool {
	return IsKind(err, KindInvalidParameter)
}

// IsInvalidInput reports whether err is a sample support validation error
func IsInvalidInput(err error) bool {
	return IsKind(err, KindInvalidInput)
}

// ToAppError converts any error to an AppError
func ToAppError(err error) *AppError {
	if err == nil {
		return nil
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	if ebErr, ok := err.(*errbuilder.ErrBuilder); ok {
		return NewAppError(ebErr, KindInternal)
	}

	errMsg := err.Error()

	if strings.Contains(errMsg, "connection refused") ||
		strings.Contains(errMsg, "no such host") ||
		strings.Contains(errMsg, "network is unreachable") {
		return NewNetworkError("Network connection failed", err)
	}

	if strings.Contains(errMsg, "timeout") ||
		strings.Contains(errMsg, "deadline exceeded") {
		return NewTimeoutError("Request timeout", err)
	}

	if errors.Is(err, context.Canceled) {
		return NewTimeoutError("Request cancelled", err)
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return NewTimeoutError("Request deadline exceeded", err)
	}

	return NewInternalError("An unexpected error occurred", err)
}

// LogError logs an error with appropriate level and context
func LogError(logger *slog.Logger, err *AppError, attrs ...any) {
	if logger == nil {
		logger = slog.Default()
	}

	logEntry := logger.With(append([]any{"error_kind", err.Kind}, attrs...)...)

	switch err.Kind {
	case KindInvalidParameter, KindInvalidInput:
		logEntry.Warn(err.ErrBuilder.Msg)
	case KindNetwork, KindTimeout:
		if cause := err.ErrBuilder.Unwrap(); cause != nil {
			logEntry.Info(err.ErrBuilder.Msg, "cause", cause)
		} else {
			logEntry.Info(err.ErrBuilder.Msg)
		}
	default:
		if cause := err.ErrBuilder.Unwrap(); cause != nil {
			logEntry.Error(err.ErrBuilder.Msg, "cause", cause)
		} else {
			logEntry.Error(err.ErrBuilder.Msg)
		}
	}
}

// IsRetryableError checks if an error should trigger a retry
func IsRetryableError(err error) bool {
	appErr := ToAppError(err)

	switch appErr.Kind {
	case KindNetwork, KindTimeout:
		return true
	default:
		return false
	}
}

// WrapError wraps an error with additional context
func WrapError(err error, message string, args ...interface{}) error {
	if err == nil {
		return nil
	}

	contextMsg := fmt.Sprintf(message, args...)
	return fmt.Errorf("%s: %w", contextMsg, err)
}

// SafeClose safely closes a resource and logs any errors
func SafeClose(closer interface{ Close() error }, resourceName string) {
	if closer == nil {
		return
	}

	if err := closer.Close(); err != nil {
		slog.Warn("Failed to close resource",
			"resource", resourceName,
			"error", err)
	}
}
