package errors

import (
	"errors"
	"net/http"
	"testing"

	"github.com/Fubuki233/WebAppDev-Ca-sub001/domain/customer"
	"github.com/Fubuki233/WebAppDev-Ca-sub001/domain/order"
	"github.com/Fubuki233/WebAppDev-Ca-sub001/domain/product"
	"github.com/Fubuki233/WebAppDev-Ca-sub001/domain/shared"
)

func TestFromDomainError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantCode   ErrorCode
		wantStatus int
	}{
		{"order not found", order.NewOrderNotFoundError(3), CodeOrderNotFound, http.StatusNotFound},
		{"order conflict", order.NewConcurrentModificationError(3), CodeConcurrentModification, http.StatusConflict},
		{"cannot modify", order.NewCannotModifyError(3, order.StatusPaid), CodeInvalidOrderState, http.StatusUnprocessableEntity},
		{"not owner", order.NewNotOwnerError(3), CodeOrderAccessDenied, http.StatusForbidden},
		{"stock", shared.NewError(product.ErrInsufficientStock, "product", "no stock"), CodeInsufficientStock, http.StatusUnprocessableEntity},
		{"email exists", customer.NewEmailExistsError("a@b.co"), CodeEmailExists, http.StatusConflict},
		{"bad credentials", customer.ErrInvalidCredentials, CodeInvalidCredentials, http.StatusUnauthorized},
		{"validation", shared.NewValidationError("order", "items", "empty"), CodeValidation, http.StatusBadRequest},
		{"generic forbidden", shared.NewForbiddenError("thing", "no"), CodeForbidden, http.StatusForbidden},
		{"unknown", errors.New("socket closed"), CodeInternal, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			appErr := FromDomainError(tt.err)
			if appErr.Code != tt.wantCode {
				t.Errorf("code = %s, want %s", appErr.Code, tt.wantCode)
			}
			if appErr.HTTPStatusCode() != tt.wantStatus {
				t.Errorf("status = %d, want %d", appErr.HTTPStatusCode(), tt.wantStatus)
			}
			if !errors.Is(appErr, tt.err) {
				t.Error("AppError must wrap the original error")
			}
		})
	}
}

func TestFromDomainErrorKeepsMessage(t *testing.T) {
	appErr := FromDomainError(order.NewOrderNotFoundError(42))
	if appErr.Message != "order not found: 42" {
		t.Errorf("message = %q", appErr.Message)
	}
	if got := FromDomainError(errors.New("dsn user:pass@tcp")).Message; got != "internal server error" {
		t.Errorf("internal message leaked: %q", got)
	}
	if FromDomainError(nil) != nil {
		t.Error("nil error must map to nil")
	}
	orig := Conflict("taken")
	if FromDomainError(orig) != orig {
		t.Error("AppError must pass through unchanged")
	}
	if !Is(Wrap(orig, CodeConflict, "x"), CodeConflict) {
		t.Error("Is() failed on wrapped AppError")
	}
}
