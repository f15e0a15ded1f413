package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// ErrorCategory represents the category of an error
type ErrorCategory string

const (
	// CategoryTransport represents non-200 responses and network failures
	CategoryTransport ErrorCategory = "transport"
	// CategoryAPI represents a 200 response whose body carries an error code
	CategoryAPI ErrorCategory = "api"
	// CategoryInvalidData represents payloads that cannot be mapped
	CategoryInvalidData ErrorCategory = "invalid_data"
	// CategoryValidation represents rejected caller input
	CategoryValidation ErrorCategory = "validation"
)

// CategorizedError represents an error with category and HTTP status code
type CategorizedError struct {
	Category   ErrorCategory
	StatusCode int
	Code       string
	Message    string
	Details    map[string]interface{}
	Cause      error
}

// Error implements the error interface
func (e *CategorizedError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause
func (e *CategorizedError) Unwrap() error {
	return e.Cause
}

// Transport Errors

// NewTransportError creates an error for a non-200 HTTP status
func NewTransportError(statusCode int) *CategorizedError {
	return &CategorizedError{
		Category:   CategoryTransport,
		StatusCode: statusCode,
		Code:       "TRANSPORT_ERROR",
		Message:    fmt.Sprintf("unexpected status code %d", statusCode),
		Details: map[string]interface{}{
			"statusCode": statusCode,
		},
	}
}

// NewTransportFailure creates an error for a request that never produced a status
func NewTransportFailure(url string, cause error) *CategorizedError {
	return &CategorizedError{
		Category: CategoryTransport,
		Code:     "TRANSPORT_FAILURE",
		Message:  fmt.Sprintf("request to %s failed", url),
		Cause:    cause,
		Details: map[string]interface{}{
			"url": url,
		},
	}
}

// API Errors

// NewAPIError creates an error for an error code reported inside a 200 body
func NewAPIError(statusCode int, message string) *CategorizedError {
	return &CategorizedError{
		Category:   CategoryAPI,
		StatusCode: statusCode,
		Code:       "API_ERROR",
		Message:    message,
		Details: map[string]interface{}{
			"statusCode": statusCode,
		},
	}
}

// Data Errors

// NewInvalidDataError creates an error for a payload the mapper cannot use
func NewInvalidDataError(message string, cause error) *CategorizedError {
	return &CategorizedError{
		Category: CategoryInvalidData,
		Code:     "INVALID_DATA",
		Message:  message,
		Cause:    cause,
	}
}

// Validation Errors

// NewInvalidParameterError creates an invalid parameter error
func NewInvalidParameterError(param string, reason string) *CategorizedError {
	return &CategorizedError{
		Category:   CategoryValidation,
		StatusCode: http.StatusBadRequest,
		Code:       "INVALID_PARAMETER",
		Message:    fmt.Sprintf("invalid parameter '%s': %s", param, reason),
		Details: map[string]interface{}{
			"parameter": param,
			"reason":    reason,
		},
	}
}

// Categorize returns the categorized error in err's chain, or nil
func Categorize(err error) *CategorizedError {
	if err == nil {
		return nil
	}
	var catErr *CategorizedError
	if stderrors.As(err, &catErr) {
		return catErr
	}
	return nil
}

func hasCategory(err error, category ErrorCategory) bool {
	catErr := Categorize(err)
	return catErr != nil && catErr.Category == category
}

// IsTransportError reports whether err is a transport failure
func IsTransportError(err error) bool {
	return hasCategory(err, CategoryTransport)
}

// IsAPIError reports whether err is an API-level error
func IsAPIError(err error) bool {
	return hasCategory(err, CategoryAPI)
}

// IsInvalidDataError reports whether err is an unmappable payload
func IsInvalidDataError(err error) bool {
	return hasCategory(err, CategoryInvalidData)
}

// IsValidationError reports whether err is rejected caller input
func IsValidationError(err error) bool {
	return hasCategory(err, CategoryValidation)
}

// StatusCode returns the HTTP status attached to err, or 0
func StatusCode(err error) int {
	if catErr := Categorize(err); catErr != nil {
		return catErr.StatusCode
	}
	return 0
}

// IsRetryable determines if an error is retryable by a caller.
// The client itself never retries transport errors.
func IsRetryable(err error) bool {
	catErr := Categorize(err)
	if catErr == nil || catErr.Category != CategoryTransport {
		return false
	}
	switch {
	case catErr.StatusCode == 0:
		return true
	case catErr.StatusCode == http.StatusTooManyRequests:
		return true
	case catErr.StatusCode >= 500:
		return true
	default:
		return false
	}
}
