package errors

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/Fubuki233/WebAppDev-Ca-sub001/domain/customer"
	"github.com/Fubuki233/WebAppDev-Ca-sub001/domain/employee"
	"github.com/Fubuki233/WebAppDev-Ca-sub001/domain/order"
	"github.com/Fubuki233/WebAppDev-Ca-sub001/domain/product"
	"github.com/Fubuki233/WebAppDev-Ca-sub001/domain/shared"
)

// ErrorCode is the machine-readable error code returned to clients.
type ErrorCode string

const (
	// Generic codes
	CodeInternal        ErrorCode = "INTERNAL_ERROR"
	CodeBadRequest      ErrorCode = "BAD_REQUEST"
	CodeUnauthenticated ErrorCode = "UNAUTHENTICATED"
	CodeForbidden       ErrorCode = "FORBIDDEN"
	CodeNotFound        ErrorCode = "NOT_FOUND"
	CodeConflict        ErrorCode = "CONFLICT"
	CodeTooManyRequest  ErrorCode = "TOO_MANY_REQUESTS"
	CodeValidation      ErrorCode = "VALIDATION_ERROR"
	CodeInvalidState    ErrorCode = "INVALID_STATE"

	// Business codes
	CodeInvalidCredentials     ErrorCode = "INVALID_CREDENTIALS"
	CodeEmailExists            ErrorCode = "EMAIL_EXISTS"
	CodeCustomerNotFound       ErrorCode = "CUSTOMER_NOT_FOUND"
	CodeEmployeeNotFound       ErrorCode = "EMPLOYEE_NOT_FOUND"
	CodeEmployeeInactive       ErrorCode = "EMPLOYEE_INACTIVE"
	CodeRoleNotFound           ErrorCode = "ROLE_NOT_FOUND"
	CodePermissionNotFound     ErrorCode = "PERMISSION_NOT_FOUND"
	CodeProductNotFound        ErrorCode = "PRODUCT_NOT_FOUND"
	CodeSKUExists              ErrorCode = "SKU_EXISTS"
	CodeInsufficientStock      ErrorCode = "INSUFFICIENT_STOCK"
	CodeOrderNotFound          ErrorCode = "ORDER_NOT_FOUND"
	CodeOrderAccessDenied      ErrorCode = "ORDER_ACCESS_DENIED"
	CodeInvalidOrderState      ErrorCode = "INVALID_ORDER_STATE"
	CodeConcurrentModification ErrorCode = "CONCURRENT_MODIFICATION"
)

// AppError is an error with a code the API layer can render.
type AppError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Err     error     `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// HTTPStatusCode returns the matching HTTP status.
func (e *AppError) HTTPStatusCode() int {
	switch e.Code {
	case CodeBadRequest, CodeValidation:
		return http.StatusBadRequest
	case CodeUnauthenticated, CodeInvalidCredentials:
		return http.StatusUnauthorized
	case CodeForbidden, CodeOrderAccessDenied, CodeEmployeeInactive:
		return http.StatusForbidden
	case CodeNotFound, CodeCustomerNotFound, CodeEmployeeNotFound, CodeRoleNotFound,
		CodePermissionNotFound, CodeProductNotFound, CodeOrderNotFound:
		return http.StatusNotFound
	case CodeConflict, CodeEmailExists, CodeSKUExists, CodeConcurrentModification:
		return http.StatusConflict
	case CodeTooManyRequest:
		return http.StatusTooManyRequests
	case CodeInvalidState, CodeInvalidOrderState, CodeInsufficientStock:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func New(code ErrorCode, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

func Wrap(err error, code ErrorCode, message string) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

func BadRequest(message string) *AppError {
	return New(CodeBadRequest, message)
}

func NotFound(message string) *AppError {
	return New(CodeNotFound, message)
}

func Internal(message string) *AppError {
	return New(CodeInternal, message)
}

func Unauthenticated(message string) *AppError {
	return New(CodeUnauthenticated, message)
}

func Forbidden(message string) *AppError {
	return New(CodeForbidden, message)
}

func Conflict(message string) *AppError {
	return New(CodeConflict, message)
}

func TooManyRequests(message string) *AppError {
	return New(CodeTooManyRequest, message)
}

func Validation(message string) *AppError {
	return New(CodeValidation, message)
}

// Is reports whether err carries the given code.
func Is(err error, code ErrorCode) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

// domainMapping is checked in order; specific sentinels precede the generic shared ones.
var domainMapping = []struct {
	target error
	code   ErrorCode
}{
	{order.ErrConcurrentModification, CodeConcurrentModification},
	{order.ErrOrderNotFound, CodeOrderNotFound},
	{order.ErrNotOwner, CodeOrderAccessDenied},
	{order.ErrCannotModify, CodeInvalidOrderState},
	{order.ErrInvalidTransition, CodeInvalidOrderState},
	{product.ErrProductNotFound, CodeProductNotFound},
	{product.ErrSKUExists, CodeSKUExists},
	{product.ErrInsufficientStock, CodeInsufficientStock},
	{product.ErrProductUnavailable, CodeInsufficientStock},
	{customer.ErrCustomerNotFound, CodeCustomerNotFound},
	{customer.ErrEmailAlreadyExists, CodeEmailExists},
	{customer.ErrInvalidCredentials, CodeInvalidCredentials},
	{employee.ErrEmployeeNotFound, CodeEmployeeNotFound},
	{employee.ErrRoleNotFound, CodeRoleNotFound},
	{employee.ErrPermissionNotFound, CodePermissionNotFound},
	{employee.ErrEmailAlreadyExists, CodeEmailExists},
	{employee.ErrInvalidCredentials, CodeInvalidCredentials},
	{employee.ErrEmployeeInactive, CodeEmployeeInactive},
	{shared.ErrInvalidInput, CodeValidation},
	{shared.ErrNotFound, CodeNotFound},
	{shared.ErrConflict, CodeConflict},
	{shared.ErrUnauthenticated, CodeUnauthenticated},
	{shared.ErrForbidden, CodeForbidden},
	{shared.ErrInvalidState, CodeInvalidState},
}

// FromDomainError maps a domain error onto an AppError. The domain message
// is kept for client-facing errors; unknown errors become INTERNAL_ERROR
// with a generic message so internals do not leak.
func FromDomainError(err error) *AppError {
	if err == nil {
		return nil
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	message := err.Error()
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) && domainErr.Message != "" {
		message = domainErr.Message
	}

	for _, m := range domainMapping {
		if errors.Is(err, m.target) {
			return Wrap(err, m.code, message)
		}
	}
	return Wrap(err, CodeInternal, "internal server error")
}
