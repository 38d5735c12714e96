package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Input errors
const (
	// ErrCodeInvalidInput indicates the wrapped object or an argument is not usable.
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
	// ErrCodeInvalidIdentifier indicates a row/column reference that is neither a label nor a position.
	ErrCodeInvalidIdentifier ErrorCode = "INVALID_IDENTIFIER"
	// ErrCodeInvalidAxis indicates an unsupported axis specifier.
	ErrCodeInvalidAxis ErrorCode = "INVALID_AXIS"
	// ErrCodeInvalidNamingMode indicates a naming mode outside the supported set.
	ErrCodeInvalidNamingMode ErrorCode = "INVALID_NAMING_MODE"
)

// State errors
const (
	// ErrCodePipelineNotReady indicates a pipeline operation invoked before grouping.
	ErrCodePipelineNotReady ErrorCode = "PIPELINE_NOT_READY"
)

// Internal errors
const (
	// ErrCodeIO indicates a failure reading or writing a destination.
	ErrCodeIO ErrorCode = "IO_ERROR"
	// ErrCodeInternal indicates an unexpected failure.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

var callerCodes = map[ErrorCode]bool{
	ErrCodeInvalidInput:      true,
	ErrCodeInvalidIdentifier: true,
	ErrCodeInvalidAxis:       true,
	ErrCodeInvalidNamingMode: true,
	ErrCodePipelineNotReady:  true,
}

// IsCallerCode reports whether the code describes a mistake by the caller
// rather than a failure of the environment.
func IsCallerCode(code ErrorCode) bool {
	return callerCodes[code]
}
