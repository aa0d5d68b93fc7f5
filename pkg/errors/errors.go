package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code
type ErrorCode int

// AppError represents an application error
type AppError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Err     error     `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Common error codes
const (
	ErrNotFound ErrorCode = iota + 1000
	ErrBadRequest
	ErrUnauthorized
	ErrForbidden
	ErrInternal
)

// Booking flow error codes
const (
	ErrValidation ErrorCode = iota + 2000
	ErrNetwork
	ErrRejected
	ErrDuplicate
	ErrStaleSlot
	ErrInvalidPayment
)

// Error constructors
func NewNotFound(resource string, err error) *AppError {
	return &AppError{
		Code:    ErrNotFound,
		Message: fmt.Sprintf("%s not found", resource),
		Err:     err,
	}
}

func NewBadRequest(message string, err error) *AppError {
	return &AppError{
		Code:    ErrBadRequest,
		Message: message,
		Err:     err,
	}
}

func NewInternal(err error) *AppError {
	return &AppError{
		Code:    ErrInternal,
		Message: "internal server error",
		Err:     err,
	}
}

func Unauthorized(err error) *AppError {
	return &AppError{
		Code:    ErrUnauthorized,
		Message: "unauthorized",
		Err:     err,
	}
}

func Forbidden(message string) *AppError {
	return &AppError{
		Code:    ErrForbidden,
		Message: message,
	}
}

// Validation reports a precondition failure caught before any network call.
func Validation(message string) *AppError {
	return &AppError{
		Code:    ErrValidation,
		Message: message,
	}
}

// Network reports a transport-level failure against the upstream backend.
// The idempotency record for the attempt must be retained so a retry
// reuses the same token.
func Network(err error) *AppError {
	return &AppError{
		Code:    ErrNetwork,
		Message: "upstream request failed",
		Err:     err,
	}
}

// Rejected reports a definitive non-2xx response with a message body.
func Rejected(message string, err error) *AppError {
	if message == "" {
		message = "request rejected by backend"
	}
	return &AppError{
		Code:    ErrRejected,
		Message: message,
		Err:     err,
	}
}

// Duplicate reports an idempotency replay signalled by the backend.
func Duplicate(message string) *AppError {
	return &AppError{
		Code:    ErrDuplicate,
		Message: message,
	}
}

// StaleSlot reports that slot capacity was exhausted between fetch and submit.
func StaleSlot(slotID int64) *AppError {
	return &AppError{
		Code:    ErrStaleSlot,
		Message: fmt.Sprintf("slot %d is no longer available", slotID),
	}
}

// InvalidPayment reports a malformed transaction-initiation payload.
func InvalidPayment(missing string) *AppError {
	return &AppError{
		Code:    ErrInvalidPayment,
		Message: fmt.Sprintf("invalid payment response from server: missing %s", missing),
	}
}

// CodeOf extracts the ErrorCode from err, or ErrInternal if err is not
// an AppError.
func CodeOf(err error) ErrorCode {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ErrInternal
}

// MessageOf extracts a user-facing message from err.
func MessageOf(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return "internal server error"
}
