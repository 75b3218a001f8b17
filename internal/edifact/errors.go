package edifact

import (
	"errors"
	"fmt"
	"strings"
)

// Machine-readable error codes surfaced to callers.
const (
	CodeSchema          = "SCHEMA_001"
	CodeMissingFields   = "VALID_001"
	CodeNoItems         = "VALID_002"
	CodeBadOrderDate    = "VALID_003"
	CodeBadDeliveryDate = "VALID_004"
	CodeBadNumeric      = "VALID_005"
	CodeBadParty        = "VALID_006"
	CodeLongProductCode = "VALID_007"
	CodeBadQualifier    = "VALID_008"
	CodeBadPrecision    = "VALID_009"
	CodeSegmentTooLong  = "SEGMENT_001"
	CodeMissingUNH      = "GEN_001"
	CodeWriteFailed     = "IO_001"
	CodeBadFilename     = "IO_002"
)

// GenerationError is the structured error for everything the engine can
// reject: a stable code, a human message and optional context details
// (offending index, field, limits).
type GenerationError struct {
	Code    string
	Message string
	Details map[string]any

	cause error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *GenerationError) Unwrap() error { return e.cause }

func newError(code, format string, args ...any) *GenerationError {
	return &GenerationError{Code: code, Message: fmt.Sprintf(format, args...)}
}

func (e *GenerationError) withDetail(key string, value any) *GenerationError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

func (e *GenerationError) withCause(err error) *GenerationError {
	e.cause = err
	return e
}

// IsValidation reports whether err is a caller-input fault (schema or
// field level), as opposed to a structural or IO failure. Message
// consumers use it to decide that a retry cannot succeed.
func IsValidation(err error) bool {
	var ge *GenerationError
	if !errors.As(err, &ge) {
		return false
	}
	return strings.HasPrefix(ge.Code, "VALID_") || strings.HasPrefix(ge.Code, "SCHEMA_")
}
