package grocer

import (
	"errors"
	"fmt"
	"time"
)

// Error codes
const (
	ErrCodeValidation     = "VALIDATION_ERROR"
	ErrCodeNotFound       = "NOT_FOUND"
	ErrCodeConflict       = "CONFLICT"
	ErrCodeForbidden      = "FORBIDDEN"
	ErrCodeNotImplemented = "NOT_IMPLEMENTED"
	ErrCodeInternalError  = "INTERNAL_ERROR"
)

// ErrKeyNotFound is returned by key-value backends when a key is absent
var ErrKeyNotFound = errors.New("key not found")

// GrocerError represents a domain error with a machine-readable code
type GrocerError struct {
	Message   string                 `json:"message"`
	Code      string                 `json:"code"`
	Field     string                 `json:"field,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
	Details   map[string]interface{} `json:"details,omitempty"`
}

// Error implements the error interface
func (e *GrocerError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("[%s] %s (field: %s)", e.Code, e.Message, e.Field)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// NewError creates a new coded error
func NewError(code, message string) *GrocerError {
	return &GrocerError{
		Message:   message,
		Code:      code,
		Timestamp: time.Now(),
	}
}

// NewValidationError creates a validation error for a single input field
func NewValidationError(field, message string) *GrocerError {
	return &GrocerError{
		Message:   message,
		Code:      ErrCodeValidation,
		Field:     field,
		Timestamp: time.Now(),
	}
}

// NewNotFoundError creates a not found error for an entity
func NewNotFoundError(entity string, id int) *GrocerError {
	return NewError(ErrCodeNotFound, fmt.Sprintf("%s %d not found", entity, id)).
		WithDetails(map[string]interface{}{"entity": entity, "id": id})
}

// WithDetails adds details to the error
func (e *GrocerError) WithDetails(details map[string]interface{}) *GrocerError {
	e.Details = details
	return e
}

// ErrorCode extracts the code from err, INTERNAL_ERROR for uncoded errors and "" for nil
func ErrorCode(err error) string {
	if err == nil {
		return ""
	}
	var ge *GrocerError
	if errors.As(err, &ge) {
		return ge.Code
	}
	return ErrCodeInternalError
}

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return ErrorCode(err) == ErrCodeNotFound
}

// IsValidation checks if an error is a validation error
func IsValidation(err error) bool {
	return ErrorCode(err) == ErrCodeValidation
}

// IsNotImplemented checks if an error marks an unimplemented operation
func IsNotImplemented(err error) bool {
	return ErrorCode(err) == ErrCodeNotImplemented
}
