package order

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/Fubuki233/WebAppDev-Ca-sub001/domain/shared"
)

var (
	ErrOrderNotFound = fmt.Errorf("order %w", shared.ErrNotFound)

	// ErrConcurrentModification is returned when the stored version moved on; callers retry.
	ErrConcurrentModification = fmt.Errorf("order was modified by another transaction, please retry: %w", shared.ErrConflict)

	ErrCannotModify = fmt.Errorf("order cannot be modified: %w", shared.ErrInvalidState)

	ErrInvalidTransition = fmt.Errorf("invalid order state transition: %w", shared.ErrInvalidState)

	// ErrNotOwner means the order belongs to another customer.
	ErrNotOwner = fmt.Errorf("order belongs to another customer: %w", shared.ErrForbidden)

	ErrEmptyOrderItems       = errors.New("order must have at least one item")
	ErrInvalidQuantity       = errors.New("quantity must be positive")
	ErrOrderTotalNotPositive = errors.New("order total amount must be positive")
)

func NewOrderNotFoundError(id uint64) error {
	return shared.NewError(ErrOrderNotFound, "order", "order not found: "+strconv.FormatUint(id, 10))
}

func NewConcurrentModificationError(id uint64) error {
	return shared.NewError(ErrConcurrentModification, "order",
		"order "+strconv.FormatUint(id, 10)+" was modified by another transaction, please retry")
}

func NewCannotModifyError(id uint64, status Status) error {
	return shared.NewError(ErrCannotModify, "order",
		"order "+strconv.FormatUint(id, 10)+" is "+string(status)+" and cannot be modified")
}

func NewInvalidTransitionError(from, to Status) error {
	return shared.NewError(ErrInvalidTransition, "order", "cannot transition from "+string(from)+" to "+string(to))
}

func NewNotOwnerError(id uint64) error {
	return shared.NewError(ErrNotOwner, "order", "access denied to order "+strconv.FormatUint(id, 10))
}

func NewEmptyOrderItemsError() error {
	return shared.NewValidationError("order", "items", ErrEmptyOrderItems.Error())
}
