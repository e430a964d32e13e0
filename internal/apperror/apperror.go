// Package apperror defines the error kinds returned by the service layer.
// Handlers translate kinds to HTTP status codes; services never see HTTP.
package apperror

import (
	"errors"
	"fmt"
)

var (
	ErrBadRequest       = errors.New("bad request")
	ErrNotFound         = errors.New("not found")
	ErrInvalidOperation = errors.New("invalid operation")
	ErrConflict         = errors.New("conflict")
	ErrCreationFailed   = errors.New("creation failed")
	ErrStoreFailure     = errors.New("store failure")
	ErrUnauthorized     = errors.New("unauthorized")
	ErrRateLimited      = errors.New("rate limited")
)

var codes = map[error]string{
	ErrBadRequest:       "bad_request",
	ErrNotFound:         "not_found",
	ErrInvalidOperation: "invalid_operation",
	ErrConflict:         "conflict",
	ErrCreationFailed:   "creation_failed",
	ErrStoreFailure:     "store_failure",
	ErrUnauthorized:     "unauthorized",
	ErrRateLimited:      "rate_limited",
}

// AppError carries one of the sentinel kinds above, the message shown to the
// client and, optionally, the underlying cause.
type AppError struct {
	Kind    error
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap exposes both the kind and the cause to errors.Is / errors.As.
func (e *AppError) Unwrap() []error {
	if e.Err != nil {
		return []error{e.Kind, e.Err}
	}
	return []error{e.Kind}
}

// Code returns the machine-readable code for the error kind.
func (e *AppError) Code() string {
	if c, ok := codes[e.Kind]; ok {
		return c
	}
	return "internal_error"
}

func BadRequest(message string) *AppError {
	return &AppError{Kind: ErrBadRequest, Message: message}
}

func NotFound(message string) *AppError {
	return &AppError{Kind: ErrNotFound, Message: message}
}

func InvalidOperation(message string) *AppError {
	return &AppError{Kind: ErrInvalidOperation, Message: message}
}

func Conflict(message string) *AppError {
	return &AppError{Kind: ErrConflict, Message: message}
}

// CreationFailed wraps an identity provider failure. The provider's message is
// appended so the client sees why the account could not be created.
func CreationFailed(message string, err error) *AppError {
	return &AppError{Kind: ErrCreationFailed, Message: withCause(message, err), Err: err}
}

// StoreFailure wraps a document store failure the same way.
func StoreFailure(message string, err error) *AppError {
	return &AppError{Kind: ErrStoreFailure, Message: withCause(message, err), Err: err}
}

func Unauthorized(message string) *AppError {
	return &AppError{Kind: ErrUnauthorized, Message: message}
}

func RateLimited(message string) *AppError {
	return &AppError{Kind: ErrRateLimited, Message: message}
}

func withCause(message string, err error) string {
	if err == nil {
		return message
	}
	return message + ": " + err.Error()
}
