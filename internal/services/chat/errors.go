// File: internal/services/chat/errors.go
package chat

import (
	"errors"
	"fmt"
)

// Code is the machine-readable error class reported to callers.
type Code string

const (
	CodeUnauthorized      Code = "UNAUTHORIZED"
	CodeForbidden         Code = "FORBIDDEN"
	CodeNotFound          Code = "NOT_FOUND"
	CodeValidation        Code = "VALIDATION_ERROR"
	CodeDependencyFailure Code = "DEPENDENCY_FAILURE"
)

type Error struct {
	Code      Code
	Operation string
	Message   string
	Cause     error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("chat %s error in %s: %s (caused by: %v)",
			e.Code, e.Operation, e.Message, e.Cause)
	}
	return fmt.Sprintf("chat %s error in %s: %s", e.Code, e.Operation, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches any *Error with the same code, so errors.Is(err, ErrForbidden) works.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

var (
	ErrUnauthorized      = &Error{Code: CodeUnauthorized, Message: "authentication required"}
	ErrForbidden         = &Error{Code: CodeForbidden, Message: "access denied"}
	ErrNotFound          = &Error{Code: CodeNotFound, Message: "not found"}
	ErrValidation        = &Error{Code: CodeValidation, Message: "invalid input"}
	ErrDependencyFailure = &Error{Code: CodeDependencyFailure, Message: "dependency failure"}
)

func NewUnauthorizedError(operation string) *Error {
	return &Error{Code: CodeUnauthorized, Operation: operation, Message: "authentication required"}
}

func NewForbiddenError(operation string) *Error {
	return &Error{Code: CodeForbidden, Operation: operation, Message: "you do not have access to this chat session"}
}

func NewNotFoundError(operation string) *Error {
	return &Error{Code: CodeNotFound, Operation: operation, Message: "chat session not found"}
}

func NewValidationError(operation, msg string) *Error {
	return &Error{Code: CodeValidation, Operation: operation, Message: msg}
}

func NewDependencyError(operation, msg string, cause error) *Error {
	return &Error{Code: CodeDependencyFailure, Operation: operation, Message: msg, Cause: cause}
}

// CodeOf reports the code carried by err, or DEPENDENCY_FAILURE for foreign errors.
func CodeOf(err error) Code {
	var chatErr *Error
	if errors.As(err, &chatErr) {
		return chatErr.Code
	}
	return CodeDependencyFailure
}
