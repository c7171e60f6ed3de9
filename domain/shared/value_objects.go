package shared

import (
	"errors"
	"math"
)

// DefaultCurrency is used when a price is created without an explicit currency.
const DefaultCurrency = "SGD"

var (
	ErrCurrencyMismatch = errors.New("currency mismatch")
	ErrAmountOverflow   = errors.New("amount overflow")
)

// Money is an amount in minor units (cents) with an ISO currency code.
type Money struct {
	amount   int64
	currency string
}

func NewMoney(amount int64, currency string) Money {
	if currency == "" {
		currency = DefaultCurrency
	}
	return Money{amount: amount, currency: currency}
}

func (m Money) Amount() int64 {
	return m.amount
}

func (m Money) Currency() string {
	return m.currency
}

func (m Money) Add(other Money) (Money, error) {
	if m.currency != other.currency {
		return Money{}, ErrCurrencyMismatch
	}
	if (other.amount > 0 && m.amount > math.MaxInt64-other.amount) ||
		(other.amount < 0 && m.amount < math.MinInt64-other.amount) {
		return Money{}, ErrAmountOverflow
	}
	return Money{amount: m.amount + other.amount, currency: m.currency}, nil
}

// Multiply scales the amount by a non-negative quantity.
func (m Money) Multiply(quantity int) (Money, error) {
	if quantity < 0 {
		return Money{}, errors.New("quantity must not be negative")
	}
	if quantity != 0 && m.amount > math.MaxInt64/int64(quantity) {
		return Money{}, ErrAmountOverflow
	}
	return Money{amount: m.amount * int64(quantity), currency: m.currency}, nil
}

func (m Money) IsPositive() bool {
	return m.amount > 0
}

func (m Money) Equals(other Money) bool {
	return m.amount == other.amount && m.currency == other.currency
}

// Sum adds prices that must share a currency; an empty input yields zero in DefaultCurrency.
func Sum(values ...Money) (Money, error) {
	if len(values) == 0 {
		return NewMoney(0, DefaultCurrency), nil
	}
	total := NewMoney(0, values[0].currency)
	var err error
	for _, v := range values {
		if total, err = total.Add(v); err != nil {
			return Money{}, err
		}
	}
	return total, nil
}
