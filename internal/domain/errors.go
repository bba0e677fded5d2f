package domain

import (
	"encoding/json"
	"fmt"
)

// ErrorCode represents a specific type of error in the domain
type ErrorCode string

const (
	// Common errors
	ErrInternal     ErrorCode = "INTERNAL_ERROR"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"
	ErrNotFound     ErrorCode = "NOT_FOUND"
	ErrUnauthorized ErrorCode = "UNAUTHORIZED"
	ErrConflict     ErrorCode = "CONFLICT"

	// Validation errors
	ErrValidation    ErrorCode = "VALIDATION_ERROR"
	ErrMissingField  ErrorCode = "MISSING_FIELD"
	ErrInvalidFormat ErrorCode = "INVALID_FORMAT"
	ErrOutOfRange    ErrorCode = "OUT_OF_RANGE"

	// Engine specific errors
	ErrBadgeNotFound       ErrorCode = "BADGE_NOT_FOUND"
	ErrInvalidActivityType ErrorCode = "INVALID_ACTIVITY_TYPE"
	ErrRemoteEvaluator     ErrorCode = "REMOTE_EVALUATOR_ERROR"
	ErrEvaluationFailed    ErrorCode = "EVALUATION_FAILED"
)

// DomainError represents a domain-specific error
type DomainError struct {
	Code    ErrorCode              `json:"code"`
	Message string                 `json:"message"`
	Cause   error                  `json:"-"`
	Context map[string]interface{} `json:"-"`
}

func (e *DomainError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Cause
}

// MarshalJSON implements the json.Marshaler interface
func (e *DomainError) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}{
		Code:    string(e.Code),
		Message: e.Message,
	})
}

// NewError creates a new DomainError
func NewError(code ErrorCode, message string, cause error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// Helper functions for common errors
func NewNotFoundError(message string) *DomainError {
	return NewError(ErrNotFound, message, nil)
}

func NewInvalidInputError(message string) *DomainError {
	return NewError(ErrInvalidInput, message, nil)
}

func NewInternalError(message string, cause error) *DomainError {
	return NewError(ErrInternal, message, cause)
}

func NewUnauthorizedError(message string) *DomainError {
	return NewError(ErrUnauthorized, message, nil)
}

func NewValidationError(message string) *DomainError {
	return NewError(ErrValidation, message, nil)
}

func NewBadgeNotFoundError(badgeName string) *DomainError {
	return NewError(ErrBadgeNotFound, fmt.Sprintf("Badge not found: %s", badgeName), nil)
}

func NewInvalidActivityTypeError(activityType string) *DomainError {
	return NewError(ErrInvalidActivityType, fmt.Sprintf("Invalid activity type: %s", activityType), nil)
}

// NewRemoteEvaluatorError wraps a failure of the remote evaluation service.
// The evaluation orchestrator recovers from this error via the local fallback;
// it only surfaces to callers when the fallback itself fails.
func NewRemoteEvaluatorError(cause error) *DomainError {
	return NewError(ErrRemoteEvaluator, "Remote evaluator call failed", cause)
}

// NewEvaluationFailedError is terminal: both the remote evaluator and the
// local fallback path failed.
func NewEvaluationFailedError(cause error) *DomainError {
	return NewError(ErrEvaluationFailed, "Badge evaluation failed on both remote and local paths", cause)
}

// ValidationError represents a single field-level validation failure.
type ValidationError struct {
	Code    ErrorCode `json:"code"`
	Field   string    `json:"field"`
	Message string    `json:"message"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors aggregates all validation failures for a request.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "validation failed"
	}
	return fmt.Sprintf("validation failed: %s (and %d more)", e[0].Error(), len(e)-1)
}

func NewMissingFieldError(field string) ValidationError {
	return ValidationError{
		Code:    ErrMissingField,
		Field:   field,
		Message: fmt.Sprintf("%s is required", field),
	}
}

func NewInvalidFormatError(field, value string) ValidationError {
	return ValidationError{
		Code:    ErrInvalidFormat,
		Field:   field,
		Message: fmt.Sprintf("%s has invalid format: %s", field, value),
	}
}

func NewOutOfRangeError(field string, value, min, max int) ValidationError {
	return ValidationError{
		Code:    ErrOutOfRange,
		Field:   field,
		Message: fmt.Sprintf("%s value %d is out of range [%d, %d]", field, value, min, max),
	}
}
