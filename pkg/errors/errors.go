package errors

import (
	"fmt"
)

// ErrorCategory represents the category of error for handling
type ErrorCategory string

const (
	CategoryConfiguration ErrorCategory = "configuration"
	CategoryCredentials   ErrorCategory = "credentials"
	CategoryNetworkError  ErrorCategory = "network_error"
)

// GatewayError represents an infrastructure failure while talking to a
// credential store or constructing a client. Operation outcomes are never
// expressed as GatewayError values; those travel as models.Result.
type GatewayError struct {
	Code     string
	Message  string
	Category ErrorCategory
	Cause    error
}

func (e *GatewayError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *GatewayError) Unwrap() error {
	return e.Cause
}

// NewGatewayError creates a new gateway infrastructure error
func NewGatewayError(code, message string, category ErrorCategory, cause error) *GatewayError {
	return &GatewayError{
		Code:     code,
		Message:  message,
		Category: category,
		Cause:    cause,
	}
}

// ValidationError represents input validation errors
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
}

// NewValidationError creates a new validation error
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}
