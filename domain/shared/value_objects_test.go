package shared

import (
	"errors"
	"math"
	"testing"
)

func TestMoneyArithmetic(t *testing.T) {
	price := NewMoney(1250, "")
	if price.Currency() != DefaultCurrency {
		t.Fatalf("currency = %q, want %q", price.Currency(), DefaultCurrency)
	}

	subtotal, err := price.Multiply(3)
	if err != nil || subtotal.Amount() != 3750 {
		t.Fatalf("Multiply = %v, %v", subtotal, err)
	}

	total, err := Sum(subtotal, NewMoney(250, DefaultCurrency))
	if err != nil || total.Amount() != 4000 {
		t.Fatalf("Sum = %v, %v", total, err)
	}

	if _, err := price.Add(NewMoney(1, "USD")); !errors.Is(err, ErrCurrencyMismatch) {
		t.Errorf("Add across currencies: err = %v", err)
	}
	if _, err := NewMoney(math.MaxInt64, "SGD").Multiply(2); !errors.Is(err, ErrAmountOverflow) {
		t.Errorf("Multiply overflow: err = %v", err)
	}
}

func TestDomainErrorWrapsSentinel(t *testing.T) {
	err := NewInvalidStateError("order", "order cannot be modified")
	if !errors.Is(err, ErrInvalidState) {
		t.Fatal("expected ErrInvalidState in chain")
	}
	var stacker Stacker
	if !errors.As(err, &stacker) || len(stacker.Stack()) == 0 {
		t.Fatal("expected captured stack")
	}
}
