package errors

import (
	"errors"
	"fmt"
)

// ErrorCode identifies a failure class across the service.
type ErrorCode string

const (
	ErrInvalidDateTime    ErrorCode = "INVALID_DATETIME"
	ErrInPast             ErrorCode = "IN_PAST"
	ErrHoliday            ErrorCode = "HOLIDAY"
	ErrWeekend            ErrorCode = "WEEKEND"
	ErrSlotTaken          ErrorCode = "SLOT_TAKEN"
	ErrNotFound           ErrorCode = "NOT_FOUND"
	ErrAlreadyExists      ErrorCode = "ALREADY_EXISTS"
	ErrPersistenceFailure ErrorCode = "PERSISTENCE_FAILURE"
	ErrUnauthorized       ErrorCode = "UNAUTHORIZED"
	ErrBadRequest         ErrorCode = "BAD_REQUEST"
	ErrInternal           ErrorCode = "INTERNAL"
)

// AppError is a recoverable application error. Scheduling and holiday
// failures are always returned as one of these, never raised as fatal.
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

func New(code ErrorCode, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

func Wrap(code ErrorCode, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

func NotFound(resource string) *AppError {
	return &AppError{Code: ErrNotFound, Message: fmt.Sprintf("%s not found", resource)}
}

func AlreadyExists(resource string) *AppError {
	return &AppError{Code: ErrAlreadyExists, Message: fmt.Sprintf("%s already exists", resource)}
}

func Persistence(err error) *AppError {
	return &AppError{Code: ErrPersistenceFailure, Message: "persistence call failed", Err: err}
}

func Unauthorized(message string) *AppError {
	return &AppError{Code: ErrUnauthorized, Message: message}
}

func Internal(err error) *AppError {
	return &AppError{Code: ErrInternal, Message: "internal server error", Err: err}
}

// CodeOf extracts the error code, ErrInternal when err is not an AppError.
func CodeOf(err error) ErrorCode {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae.Code
	}
	return ErrInternal
}

// Is reports whether err carries the given code.
func Is(err error, code ErrorCode) bool {
	return CodeOf(err) == code
}
