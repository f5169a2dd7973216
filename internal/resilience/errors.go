// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package resilience

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"syscall"
)

// ErrorType represents different types of errors for handling strategies
type ErrorType int

const (
	ErrorTypeUnknown            ErrorType = iota
	ErrorTypeTransient                    // Temporary network issues
	ErrorTypePermanent                    // Invalid credentials, permissions
	ErrorTypeTimeout                      // Request timeouts
	ErrorTypeRateLimit                    // HTTP 429
	ErrorTypeServiceUnavailable           // HTTP 5xx, open circuit
	ErrorTypeInvalidInput                 // HTTP 400, malformed responses
	ErrorTypeResourceNotFound             // HTTP 404
	ErrorTypeCanceled                     // Caller gave up
)

func (et ErrorType) String() string {
	switch et {
	case ErrorTypeUnknown:
		return "Unknown"
	case ErrorTypeTransient:
		return "Transient"
	case ErrorTypePermanent:
		return "Permanent"
	case ErrorTypeTimeout:
		return "Timeout"
	case ErrorTypeRateLimit:
		return "RateLimit"
	case ErrorTypeServiceUnavailable:
		return "ServiceUnavailable"
	case ErrorTypeInvalidInput:
		return "InvalidInput"
	case ErrorTypeResourceNotFound:
		return "ResourceNotFound"
	case ErrorTypeCanceled:
		return "Canceled"
	default:
		return fmt.Sprintf("ErrorType(%d)", int(et))
	}
}

// ClassifiedError wraps an error with type information
type ClassifiedError struct {
	Original  error
	Type      ErrorType
	Message   string
	Retryable bool
}

func (e *ClassifiedError) Error() string {
	switch {
	case e.Message != "":
		return e.Message
	case e.Original != nil:
		return e.Original.Error()
	default:
		return e.Type.String() + " error"
	}
}

func (e *ClassifiedError) Unwrap() error {
	return e.Original
}

// IsRetryable returns whether this error should be retried
func (e *ClassifiedError) IsRetryable() bool {
	return e.Retryable
}

// HTTPStatusError is returned by HTTP clients for non-2xx responses.
type HTTPStatusError struct {
	StatusCode int
	Body       string
}

func (e *HTTPStatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("unexpected HTTP status %d", e.StatusCode)
	}
	return fmt.Sprintf("unexpected HTTP status %d: %s", e.StatusCode, e.Body)
}

// ClassifyError categorizes an error for appropriate handling
func ClassifyError(err error) *ClassifiedError {
	if err == nil {
		return nil
	}

	var classified *ClassifiedError
	if errors.As(err, &classified) {
		return classified
	}

	if errors.Is(err, context.Canceled) {
		return &ClassifiedError{Original: err, Type: ErrorTypeCanceled, Message: fmt.Sprintf("Canceled: %v", err)}
	}

	var cbErr *CircuitBreakerError
	if errors.As(err, &cbErr) {
		return &ClassifiedError{Original: err, Type: ErrorTypeServiceUnavailable, Message: err.Error()}
	}

	var statusErr *HTTPStatusError
	if errors.As(err, &statusErr) {
		return ClassifyHTTPStatus(statusErr.StatusCode, err)
	}

	if isTimeoutError(err) {
		return &ClassifiedError{
			Original:  err,
			Type:      ErrorTypeTimeout,
			Message:   fmt.Sprintf("Timeout error: %v", err),
			Retryable: true,
		}
	}

	if isNetworkError(err) {
		return &ClassifiedError{
			Original:  err,
			Type:      ErrorTypeTransient,
			Message:   fmt.Sprintf("Network error: %v", err),
			Retryable: true,
		}
	}

	return &ClassifiedError{
		Original:  err,
		Type:      ErrorTypeUnknown,
		Message:   fmt.Sprintf("Unknown error: %v", err),
		Retryable: false,
	}
}

// ClassifyHTTPStatus maps an HTTP status code onto the error taxonomy.
// 408, 429 and 5xx are retryable, every other status is not.
func ClassifyHTTPStatus(code int, cause error) *ClassifiedError {
	if cause == nil {
		cause = &HTTPStatusError{StatusCode: code}
	}

	c := &ClassifiedError{Original: cause}
	switch {
	case code == http.StatusTooManyRequests:
		c.Type, c.Retryable = ErrorTypeRateLimit, true
		c.Message = fmt.Sprintf("Rate limit exceeded: %v", cause)
	case code == http.StatusRequestTimeout || code == http.StatusGatewayTimeout:
		c.Type, c.Retryable = ErrorTypeTimeout, true
		c.Message = fmt.Sprintf("Timeout error: %v", cause)
	case code >= 500:
		c.Type, c.Retryable = ErrorTypeServiceUnavailable, true
		c.Message = fmt.Sprintf("Service unavailable: %v", cause)
	case code == http.StatusUnauthorized || code == http.StatusForbidden:
		c.Type = ErrorTypePermanent
		c.Message = fmt.Sprintf("Authentication/authorization error: %v", cause)
	case code == http.StatusNotFound:
		c.Type = ErrorTypeResourceNotFound
		c.Message = fmt.Sprintf("Resource not found: %v", cause)
	case code >= 400:
		c.Type = ErrorTypeInvalidInput
		c.Message = fmt.Sprintf("Invalid input: %v", cause)
	default:
		c.Type = ErrorTypeUnknown
		c.Message = fmt.Sprintf("Unknown error: %v", cause)
	}
	return c
}

// isNetworkError checks if an error is network-related
func isNetworkError(err error) bool {
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return true
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}

	return errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, syscall.EHOSTUNREACH) ||
		errors.Is(err, syscall.ENETUNREACH)
}

// isTimeoutError checks if an error is timeout-related
func isTimeoutError(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "timeout") || strings.Contains(errStr, "deadline exceeded")
}

// NewTransientError creates a new transient error
func NewTransientError(message string, cause error) *ClassifiedError {
	return &ClassifiedError{
		Original:  cause,
		Type:      ErrorTypeTransient,
		Message:   message,
		Retryable: true,
	}
}

// NewPermanentError creates a new permanent error
func NewPermanentError(message string, cause error) *ClassifiedError {
	return &ClassifiedError{
		Original:  cause,
		Type:      ErrorTypePermanent,
		Message:   message,
		Retryable: false,
	}
}

// IsRetryable reports whether an error should be retried.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	return ClassifyError(err).IsRetryable()
}
