package service

import (
	"errors"
	"fmt"
	"time"
)

// Sentinel errors mapped to HTTP statuses at the handler boundary.
var (
	// ErrNotFound covers genuinely missing resources and cross-tenant
	// lookups alike, so a caller can't probe for existence.
	ErrNotFound = errors.New("resource not found")

	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("user with this email already exists")
)

// ValidationError is a malformed request or field-constraint violation (400).
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

func validationErr(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// RateLimitError tells the caller to back off (429).
type RateLimitError struct {
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	return "too many requests"
}

// RetryAfterSeconds is the value for the Retry-After header, rounded up.
func (e *RateLimitError) RetryAfterSeconds() int {
	secs := int((e.RetryAfter + time.Second - 1) / time.Second)
	if secs < 0 {
		secs = 0
	}
	return secs
}

// CapacityError is a plan or form limit being hit (403). Code lets clients
// show an upgrade prompt.
type CapacityError struct {
	Code    string
	Message string
}

func (e *CapacityError) Error() string {
	return e.Message
}

const CodeLimitReached = "LIMIT_REACHED"

func limitReached(message string) *CapacityError {
	return &CapacityError{Code: CodeLimitReached, Message: message}
}
