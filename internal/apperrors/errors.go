package apperrors

import (
	"errors"
	"fmt"
)

// Code tags an operational error with a stable, machine-readable kind.
// Callers branch on the code; the message carries the specifics needed to
// correct the input.
type Code string

const (
	CodeUnbalancedEntry     Code = "UNBALANCED_ENTRY"
	CodeZeroValueEntry      Code = "ZERO_VALUE_ENTRY"
	CodeInvalidAccount      Code = "INVALID_ACCOUNT"
	CodePeriodClosed        Code = "PERIOD_CLOSED"
	CodeAlreadyReversed     Code = "ALREADY_REVERSED"
	CodeNotPosted           Code = "NOT_POSTED"
	CodeInsufficientBalance Code = "INSUFFICIENT_BALANCE"
	CodeConfig              Code = "CONFIG_ERROR"
	CodeNotFound            Code = "NOT_FOUND"
	CodeDuplicate           Code = "DUPLICATE"
	CodeForbidden           Code = "FORBIDDEN"
	CodeValidation          Code = "VALIDATION_ERROR"
	CodeInternal            Code = "INTERNAL_ERROR"
)

// AppError is the error value returned by services and repositories for
// expected failure modes.
type AppError struct {
	Code    Code
	Message string
	Err     error // wrapped cause, may be nil
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is makes two AppErrors match when their codes match, so sentinel values
// below work with errors.Is regardless of message content.
func (e *AppError) Is(target error) bool {
	var t *AppError
	if !errors.As(target, &t) {
		return false
	}
	return e.Code == t.Code
}

// New creates an AppError with the given code and formatted message.
func New(code Code, format string, args ...any) *AppError {
	return &AppError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates an AppError wrapping an underlying cause.
func Wrap(code Code, err error, format string, args ...any) *AppError {
	return &AppError{Code: code, Message: fmt.Sprintf(format, args...), Err: err}
}

// CodeOf extracts the Code from err, or CodeInternal when err is not an
// AppError.
func CodeOf(err error) Code {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return CodeInternal
}

// Sentinel values for errors.Is matching by code.
var (
	ErrUnbalancedEntry     = &AppError{Code: CodeUnbalancedEntry, Message: "entry debits and credits do not balance"}
	ErrZeroValueEntry      = &AppError{Code: CodeZeroValueEntry, Message: "entry has zero value"}
	ErrInvalidAccount      = &AppError{Code: CodeInvalidAccount, Message: "account cannot be posted to"}
	ErrPeriodClosed        = &AppError{Code: CodePeriodClosed, Message: "financial period is closed"}
	ErrAlreadyReversed     = &AppError{Code: CodeAlreadyReversed, Message: "entry is already reversed"}
	ErrNotPosted           = &AppError{Code: CodeNotPosted, Message: "entry is not posted"}
	ErrInsufficientBalance = &AppError{Code: CodeInsufficientBalance, Message: "insufficient balance"}
	ErrConfig              = &AppError{Code: CodeConfig, Message: "configuration error"}
	ErrNotFound            = &AppError{Code: CodeNotFound, Message: "resource not found"}
	ErrDuplicate           = &AppError{Code: CodeDuplicate, Message: "resource already exists"}
	ErrForbidden           = &AppError{Code: CodeForbidden, Message: "operation not permitted"}
	ErrValidation          = &AppError{Code: CodeValidation, Message: "validation error"}
	ErrInternal            = &AppError{Code: CodeInternal, Message: "internal error"}
)
