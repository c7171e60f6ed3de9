/*
Package shared holds the error model and value objects used by every domain package.

Sentinel errors classify failures for errors.Is. DomainError wraps a sentinel with
context and a call stack captured at construction; the stack is only formatted when
a log line asks for it.
*/
package shared

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
)

var (
	ErrNotFound = errors.New("not found")

	// ErrConflict covers optimistic-lock failures and unique constraint violations.
	ErrConflict = errors.New("conflict")

	ErrInvalidInput = errors.New("invalid input")

	// ErrUnauthenticated means the caller has no valid identity.
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrForbidden means the identity is valid but lacks permission or ownership.
	ErrForbidden = errors.New("forbidden")

	// ErrInvalidState means the entity's lifecycle does not allow the operation.
	ErrInvalidState = errors.New("invalid state")
)

// DomainError carries business context and the stack of the point of failure.
type DomainError struct {
	Err     error
	Entity  string
	Message string
	Field   string

	stack []uintptr
}

func (e *DomainError) Error() string {
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

func (e *DomainError) Stack() []string {
	return FormatStack(e.stack)
}

// CaptureStack records the current call stack.
// skip is usually 3: runtime.Callers, CaptureStack, the constructor.
func CaptureStack(skip int) []uintptr {
	var pcs [32]uintptr
	n := runtime.Callers(skip, pcs[:])
	return pcs[:n]
}

// FormatStack renders at most ten non-runtime frames.
func FormatStack(stack []uintptr) []string {
	if len(stack) == 0 {
		return nil
	}

	frames := runtime.CallersFrames(stack)
	var result []string
	for {
		frame, more := frames.Next()
		if !strings.Contains(frame.File, "runtime/") {
			result = append(result, fmt.Sprintf("%s:%d %s", frame.File, frame.Line, frame.Function))
		}
		if !more || len(result) >= 10 {
			break
		}
	}
	return result
}

func newDomainError(sentinel error, entity, field, message string) error {
	return &DomainError{
		Err:     sentinel,
		Entity:  entity,
		Field:   field,
		Message: message,
		stack:   CaptureStack(4),
	}
}

func NewNotFoundError(entity string) error {
	return newDomainError(ErrNotFound, entity, "", entity+" not found")
}

func NewConflictError(entity, message string) error {
	return newDomainError(ErrConflict, entity, "", message)
}

func NewValidationError(entity, field, reason string) error {
	return newDomainError(ErrInvalidInput, entity, field, reason)
}

func NewForbiddenError(entity, reason string) error {
	return newDomainError(ErrForbidden, entity, "", reason)
}

func NewUnauthenticatedError(reason string) error {
	return newDomainError(ErrUnauthenticated, "session", "", reason)
}

func NewInvalidStateError(entity, reason string) error {
	return newDomainError(ErrInvalidState, entity, "", reason)
}

// Stacker is implemented by errors that carry their own stack.
type Stacker interface {
	Stack() []string
}

// NewError attaches entity context and a stack to a package-level sentinel.
func NewError(sentinel error, entity, message string) error {
	return newDomainError(sentinel, entity, "", message)
}
