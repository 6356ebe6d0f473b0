package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorType represents different types of errors in the system
type ErrorType string

const (
	// ErrorTypeNotFound indicates a resource was not found
	ErrorTypeNotFound ErrorType = "NOT_FOUND"

	// ErrorTypeValidation indicates a validation error
	ErrorTypeValidation ErrorType = "VALIDATION"

	// ErrorTypeInternal indicates an internal server error
	ErrorTypeInternal ErrorType = "INTERNAL"

	// ErrorTypeProviderUnavailable indicates a text-generation call failed at the network or service level
	ErrorTypeProviderUnavailable ErrorType = "PROVIDER_UNAVAILABLE"

	// ErrorTypeProviderTimeout indicates a text-generation call ran out of time
	ErrorTypeProviderTimeout ErrorType = "PROVIDER_TIMEOUT"

	// ErrorTypeMalformedOutput indicates a provider answered with text that holds no usable JSON
	ErrorTypeMalformedOutput ErrorType = "MALFORMED_OUTPUT"

	// ErrorTypeUnresolvedTarget indicates a proposed navigation target has no catalog record
	ErrorTypeUnresolvedTarget ErrorType = "UNRESOLVED_TARGET"

	// ErrorTypeInvalidSnippet indicates an aspect snippet that is not part of the review text
	ErrorTypeInvalidSnippet ErrorType = "INVALID_SNIPPET"
)

// AppError represents an application error
type AppError struct {
	Type    ErrorType
	Message string
	Err     error
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap implements the unwrap interface
func (e *AppError) Unwrap() error {
	return e.Err
}

// IsType reports whether err carries an AppError of the given type anywhere in its chain
func IsType(err error, t ErrorType) bool {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Type == t
	}
	return false
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(message string) *AppError {
	return &AppError{
		Type:    ErrorTypeNotFound,
		Message: message,
	}
}

// NewValidationError creates a new validation error
func NewValidationError(message string) *AppError {
	return &AppError{
		Type:    ErrorTypeValidation,
		Message: message,
	}
}

// NewInternalError creates a new internal error
func NewInternalError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeInternal,
		Message: message,
		Err:     err,
	}
}

// NewProviderUnavailableError creates a provider failure error
func NewProviderUnavailableError(provider string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeProviderUnavailable,
		Message: fmt.Sprintf("provider %s unavailable", provider),
		Err:     err,
	}
}

// NewProviderTimeoutError creates a provider timeout error
func NewProviderTimeoutError(provider string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeProviderTimeout,
		Message: fmt.Sprintf("provider %s timed out", provider),
		Err:     err,
	}
}

// NewMalformedOutputError creates a malformed provider output error
func NewMalformedOutputError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeMalformedOutput,
		Message: message,
		Err:     err,
	}
}

// NewUnresolvedTargetError creates an unresolved navigation target error
func NewUnresolvedTargetError(kind, target string) *AppError {
	return &AppError{
		Type:    ErrorTypeUnresolvedTarget,
		Message: fmt.Sprintf("no %s matches %q", kind, target),
	}
}

// NewInvalidSnippetError creates an invalid aspect snippet error
func NewInvalidSnippetError(snippet string) *AppError {
	return &AppError{
		Type:    ErrorTypeInvalidSnippet,
		Message: fmt.Sprintf("snippet %q is not part of the review text", snippet),
	}
}
