package util

import (
	"errors"
	"fmt"
	"net/http"
)

// DomainError standardizes application errors.
type DomainError struct {
	Code       string
	Message    string
	HTTPStatus int
	Details    map[string]any
	Err        error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError constructs a DomainError.
func NewDomainError(code, message string, status int, details map[string]any) *DomainError {
	return &DomainError{Code: code, Message: message, HTTPStatus: status, Details: details}
}

// NewAccessDenied signals the caller lacks an entitlement for the category.
func NewAccessDenied(message string) error {
	return NewDomainError("ACCESS_DENIED", message, http.StatusForbidden, nil)
}

// NewCooldownActive signals the caller must wait before claiming again.
func NewCooldownActive(remainingMillis int64) error {
	return NewDomainError("COOLDOWN_ACTIVE", "cooldown active",
		http.StatusTooManyRequests, map[string]any{"retry_after_ms": remainingMillis})
}

// NewOutOfStock signals the requested pool has no credentials left.
func NewOutOfStock(message string) error {
	return NewDomainError("OUT_OF_STOCK", message, http.StatusConflict, nil)
}

func NewValidationError(message string, details map[string]any) error {
	return NewDomainError("VALIDATION_FAILED", message, http.StatusBadRequest, details)
}

func NewUnauthorized(message string) error {
	return NewDomainError("UNAUTHORIZED", message, http.StatusUnauthorized, nil)
}

// NewForbidden signals a non-admin caller attempting an admin operation.
func NewForbidden(message string) error {
	return NewDomainError("FORBIDDEN", message, http.StatusForbidden, nil)
}

// NewStorageUnavailable wraps an underlying read/write failure. Not retried;
// surfaced at the request boundary.
func NewStorageUnavailable(err error) error {
	return &DomainError{
		Code:       "STORAGE_UNAVAILABLE",
		Message:    "storage unavailable",
		HTTPStatus: http.StatusServiceUnavailable,
		Err:        err,
	}
}

func NewInternalError(err error) error {
	return &DomainError{
		Code:       "INTERNAL_ERROR",
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// ToDomainError converts generic errors to DomainError.
func ToDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	return &DomainError{
		Code:       "INTERNAL_ERROR",
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// RemainingMillis extracts the retry hint from a cooldown error, zero when
// absent.
func RemainingMillis(err error) int64 {
	domainErr := ToDomainError(err)
	if domainErr == nil || domainErr.Details == nil {
		return 0
	}
	if ms, ok := domainErr.Details["retry_after_ms"].(int64); ok {
		return ms
	}
	return 0
}
