package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// RequestKind classifies why an outbound request failed.
type RequestKind string

const (
	// RequestKindNetwork means the request never produced a response.
	RequestKindNetwork RequestKind = "network"
	// RequestKindStatus means the upstream answered with a non-success status.
	RequestKindStatus RequestKind = "status"
	// RequestKindDecode means the response body was not a JSON array of records.
	RequestKindDecode RequestKind = "decode"
)

// RequestError represents a failed outbound read request
type RequestError struct {
	URL        string
	Kind       RequestKind
	StatusCode int // set only for RequestKindStatus
	Err        error
}

// NewNetworkError creates a request error for a transport failure
func NewNetworkError(url string, err error) *RequestError {
	return &RequestError{URL: url, Kind: RequestKindNetwork, Err: err}
}

// NewStatusError creates a request error for a non-success HTTP status
func NewStatusError(url string, statusCode int) *RequestError {
	return &RequestError{URL: url, Kind: RequestKindStatus, StatusCode: statusCode}
}

// NewDecodeError creates a request error for a malformed response body
func NewDecodeError(url string, err error) *RequestError {
	return &RequestError{URL: url, Kind: RequestKindDecode, Err: err}
}

// Error implements the error interface
func (e *RequestError) Error() string {
	switch {
	case e.Kind == RequestKindStatus:
		return fmt.Sprintf("request to %s failed: upstream returned status %d", e.URL, e.StatusCode)
	case e.Err != nil:
		return fmt.Sprintf("request to %s failed (%s): %v", e.URL, e.Kind, e.Err)
	default:
		return fmt.Sprintf("request to %s failed (%s)", e.URL, e.Kind)
	}
}

// Unwrap returns the wrapped error
func (e *RequestError) Unwrap() error {
	return e.Err
}

// HTTPStatus returns the HTTP status for this error
func (e *RequestError) HTTPStatus() int {
	return http.StatusBadGateway
}

// ValidationError represents a validation failure with field-level details
type ValidationError struct {
	Field   string
	Message string
}

// NewValidationError creates a new validation error
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed: %s - %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// HTTPStatus returns the HTTP status for this error
func (e *ValidationError) HTTPStatus() int {
	return http.StatusBadRequest
}

// InternalError represents an internal server error with context
type InternalError struct {
	Message string
	Err     error
}

// NewInternalError creates a new internal error
func NewInternalError(message string, err error) *InternalError {
	return &InternalError{
		Message: message,
		Err:     err,
	}
}

// Error implements the error interface
func (e *InternalError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error
func (e *InternalError) Unwrap() error {
	return e.Err
}

// HTTPStatus returns the HTTP status for this error
func (e *InternalError) HTTPStatus() int {
	return http.StatusInternalServerError
}

// HTTPStatuser is implemented by errors that map to an HTTP status
type HTTPStatuser interface {
	HTTPStatus() int
}

// StatusOf returns the HTTP status carried by err or any error it wraps.
// Errors without one map to 500.
func StatusOf(err error) int {
	var s HTTPStatuser
	if errors.As(err, &s) {
		return s.HTTPStatus()
	}
	return http.StatusInternalServerError
}

// IsRequestError reports whether err is or wraps a RequestError
func IsRequestError(err error) bool {
	var re *RequestError
	return errors.As(err, &re)
}
