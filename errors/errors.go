package errors

import (
	stderrors "errors"
	"fmt"
)

// AppError is the unified error type.
type AppError struct {
	Code    ErrorCode      `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
	Cause   error          `json:"-"`
}

func (e *AppError) Error() string {
	msg := string(e.Code) + ": " + e.Message
	if e.Cause != nil {
		msg += fmt.Sprintf(" (cause: %v)", e.Cause)
	}
	return msg
}

// Unwrap exposes the cause to errors.Is and errors.As.
func (e *AppError) Unwrap() error { return e.Cause }

// WithCause sets the cause and returns the receiver.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithDetails merges details into the error and returns the receiver.
// Existing keys are overwritten.
func (e *AppError) WithDetails(details map[string]any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any, len(details))
	}
	for k, v := range details {
		e.WithDetail(k, v)
	}
	return e
}

// WithDetail sets one detail and returns the receiver.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any, 1)
	}
	e.Details[key] = value
	return e
}

// New creates an AppError with no details.
func New(code ErrorCode, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

// newf builds an AppError from a formatted message and alternating detail
// keys and values.
func newf(code ErrorCode, kvs []any, format string, args ...any) *AppError {
	e := New(code, fmt.Sprintf(format, args...))
	for i := 1; i < len(kvs); i += 2 {
		e.WithDetail(kvs[i-1].(string), kvs[i])
	}
	return e
}

// InvalidInput reports an object or argument that cannot be used. field is
// recorded in the details when set.
func InvalidInput(field, reason string) *AppError {
	var kvs []any
	if field != "" {
		kvs = []any{"field", field}
	}
	return newf(ErrCodeInvalidInput, kvs, "Invalid input: %s", reason)
}

// Validation reports failed configuration or argument validation.
func Validation(message string) *AppError {
	return New(ErrCodeInvalidInput, message)
}

// PipelineNotReady reports a pipeline operation invoked on an ungrouped collection.
func PipelineNotReady(operation string) *AppError {
	return newf(ErrCodePipelineNotReady, []any{"operation", operation},
		"A group by operation has to be applied before a pipeline can be executed.")
}

// InvalidIdentifier reports a target that resolves to no row or column.
func InvalidIdentifier(target any, axis string) *AppError {
	return newf(ErrCodeInvalidIdentifier, []any{"target", fmt.Sprint(target), "axis", axis},
		"%v is not a valid %s identifier.", target, axis)
}

// InvalidAxis reports an axis other than rows (0) or columns (1).
func InvalidAxis(axis any) *AppError {
	return newf(ErrCodeInvalidAxis, []any{"axis", fmt.Sprint(axis)},
		"The axis provided is not of [0 | index | 1 | columns] (got: %v).", axis)
}

// InvalidNamingMode reports an unsupported naming mode.
func InvalidNamingMode(mode string) *AppError {
	return newf(ErrCodeInvalidNamingMode, []any{"mode", mode},
		"The naming mode %q is not one of 'hierarchy' | 'join' | 'none'.", mode)
}

// IO reports a failed read or write.
func IO(operation string, cause error) *AppError {
	return newf(ErrCodeIO, []any{"operation", operation}, "Failed to %s.", operation).WithCause(cause)
}

// Internal reports an unexpected failure.
func Internal(cause error) *AppError {
	return New(ErrCodeInternal, "An unexpected error occurred.").WithCause(cause)
}

// IsAppError reports whether err is, or wraps, an AppError.
func IsAppError(err error) bool {
	_, ok := AsAppError(err)
	return ok
}

// AsAppError returns the first AppError in err's chain.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// HasCode reports whether err is, or wraps, an AppError with the given code.
func HasCode(err error, code ErrorCode) bool {
	appErr, ok := AsAppError(err)
	return ok && appErr.Code == code
}

// Wrap converts any error into an AppError. AppErrors pass through unchanged,
// nil stays nil, and anything else becomes an internal error.
func Wrap(err error) *AppError {
	if err == nil {
		return nil
	}
	if appErr, ok := AsAppError(err); ok {
		return appErr
	}
	return Internal(err)
}
