// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package domain

import "errors"

// ErrorType represents the semantic category of an error
type ErrorType int

const (
	ErrorTypeValidation    ErrorType = iota // Unrecognized or malformed input (acknowledged, not rejected, for webhooks)
	ErrorTypeConfiguration                  // Missing or invalid secrets and settings
	ErrorTypeUpstream                       // Non-success status or unparseable body from the provider
	ErrorTypeDelivery                       // Email transport failures, isolated per recipient
	ErrorTypeInternal                       // Internal server errors (500 Internal Server Error)
)

// String returns the name used in logs for the error type.
func (t ErrorType) String() string {
	switch t {
	case ErrorTypeValidation:
		return "validation"
	case ErrorTypeConfiguration:
		return "configuration"
	case ErrorTypeUpstream:
		return "upstream"
	case ErrorTypeDelivery:
		return "delivery"
	default:
		return "internal"
	}
}

// DomainError represents an error with semantic type information
type DomainError struct {
	Type    ErrorType
	Message string
	Err     error // underlying error for wrapping
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// GetErrorType returns the semantic type of an error
func GetErrorType(err error) ErrorType {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Type
	}
	return ErrorTypeInternal // default fallback
}

// Error constructors for different types
func NewValidationError(message string, err ...error) *DomainError {
	return &DomainError{Type: ErrorTypeValidation, Message: message, Err: errors.Join(err...)}
}

func NewConfigurationError(message string, err ...error) *DomainError {
	return &DomainError{Type: ErrorTypeConfiguration, Message: message, Err: errors.Join(err...)}
}

func NewUpstreamError(message string, err ...error) *DomainError {
	return &DomainError{Type: ErrorTypeUpstream, Message: message, Err: errors.Join(err...)}
}

func NewDeliveryError(message string, err ...error) *DomainError {
	return &DomainError{Type: ErrorTypeDelivery, Message: message, Err: errors.Join(err...)}
}

func NewInternalError(message string, err ...error) *DomainError {
	return &DomainError{Type: ErrorTypeInternal, Message: message, Err: errors.Join(err...)}
}
