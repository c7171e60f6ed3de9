/*
Package order Order aggregate.

An order belongs to exactly one customer and moves through a small lifecycle:

	Pending -> Paid -> Shipped -> Delivered
	Pending -> Cancelled
	Paid    -> Cancelled (staff only)

Only Pending orders can have their items changed. The version field is the
optimistic lock checked by repositories on save.
*/
package order

import (
	"strings"
	"time"

	"github.com/Fubuki233/WebAppDev-Ca-sub001/domain/shared"
)

// Status Order lifecycle state
type Status string

const (
	StatusPending   Status = "Pending"
	StatusPaid      Status = "Paid"
	StatusShipped   Status = "Shipped"
	StatusDelivered Status = "Delivered"
	StatusCancelled Status = "Cancelled"
)

// ParseStatus accepts the canonical names case-insensitively.
func ParseStatus(s string) (Status, error) {
	for _, st := range []Status{StatusPending, StatusPaid, StatusShipped, StatusDelivered, StatusCancelled} {
		if strings.EqualFold(s, string(st)) {
			return st, nil
		}
	}
	return "", shared.NewValidationError("order", "status", "unknown order status: "+s)
}

// staffTransitions lists the moves an employee may make through UpdateStatus.
var staffTransitions = map[Status][]Status{
	StatusPending: {StatusCancelled},
	StatusPaid:    {StatusShipped, StatusCancelled},
	StatusShipped: {StatusDelivered},
}

// Order aggregate root
type Order struct {
	id         uint64
	customerID uint64
	items      []Item
	total      shared.Money
	status     Status
	version    int
	createdAt  time.Time
	updatedAt  time.Time
}

// Item is an order line; it is only reachable through its Order.
type Item struct {
	productID   uint64
	productName string
	sku         string
	quantity    int
	unitPrice   shared.Money
	subtotal    shared.Money
}

// ItemRequest describes a line to price into the order.
type ItemRequest struct {
	ProductID   uint64
	ProductName string
	SKU         string
	Quantity    int
	UnitPrice   shared.Money
}

// NewOrder creates a Pending order for customerID.
func NewOrder(customerID uint64, requests []ItemRequest) (*Order, error) {
	if customerID == 0 {
		return nil, shared.NewValidationError("order", "customer_id", "customer is required")
	}

	items, total, err := buildItems(requests)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	return &Order{
		customerID: customerID,
		items:      items,
		total:      total,
		status:     StatusPending,
		createdAt:  now,
		updatedAt:  now,
	}, nil
}

func buildItems(requests []ItemRequest) ([]Item, shared.Money, error) {
	if len(requests) == 0 {
		return nil, shared.Money{}, NewEmptyOrderItemsError()
	}

	items := make([]Item, 0, len(requests))
	subtotals := make([]shared.Money, 0, len(requests))
	seen := make(map[uint64]bool, len(requests))
	for _, req := range requests {
		if req.Quantity <= 0 {
			return nil, shared.Money{}, shared.NewValidationError("order", "quantity", ErrInvalidQuantity.Error())
		}
		if seen[req.ProductID] {
			return nil, shared.Money{}, shared.NewValidationError("order", "items", "duplicate product in order")
		}
		seen[req.ProductID] = true

		subtotal, err := req.UnitPrice.Multiply(req.Quantity)
		if err != nil {
			return nil, shared.Money{}, err
		}
		items = append(items, Item{
			productID:   req.ProductID,
			productName: req.ProductName,
			sku:         req.SKU,
			quantity:    req.Quantity,
			unitPrice:   req.UnitPrice,
			subtotal:    subtotal,
		})
		subtotals = append(subtotals, subtotal)
	}

	total, err := shared.Sum(subtotals...)
	if err != nil {
		return nil, shared.Money{}, err
	}
	if !total.IsPositive() {
		return nil, shared.Money{}, shared.NewValidationError("order", "total", ErrOrderTotalNotPositive.Error())
	}
	return items, total, nil
}

// ReconstructionDTO is for repository implementations only.
type ReconstructionDTO struct {
	ID         uint64
	CustomerID uint64
	Items      []ItemReconstructionDTO
	Total      shared.Money
	Status     Status
	Version    int
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

type ItemReconstructionDTO struct {
	ProductID   uint64
	ProductName string
	SKU         string
	Quantity    int
	UnitPrice   shared.Money
	Subtotal    shared.Money
}

func RebuildFromDTO(dto ReconstructionDTO) *Order {
	items := make([]Item, len(dto.Items))
	for i, it := range dto.Items {
		items[i] = Item{
			productID:   it.ProductID,
			productName: it.ProductName,
			sku:         it.SKU,
			quantity:    it.Quantity,
			unitPrice:   it.UnitPrice,
			subtotal:    it.Subtotal,
		}
	}
	return &Order{
		id:         dto.ID,
		customerID: dto.CustomerID,
		items:      items,
		total:      dto.Total,
		status:     dto.Status,
		version:    dto.Version,
		createdAt:  dto.CreatedAt,
		updatedAt:  dto.UpdatedAt,
	}
}

// IsMutable reports whether the order's items or state may still be changed by its owner.
func (o *Order) IsMutable() bool {
	return o.status == StatusPending
}

func (o *Order) IsOwnedBy(customerID uint64) bool {
	return customerID != 0 && o.customerID == customerID
}

// ReplaceItems swaps the order lines of a Pending order.
func (o *Order) ReplaceItems(requests []ItemRequest) error {
	if !o.IsMutable() {
		return NewCannotModifyError(o.id, o.status)
	}
	items, total, err := buildItems(requests)
	if err != nil {
		return err
	}
	o.items = items
	o.total = total
	o.updatedAt = time.Now()
	return nil
}

// Pay Pending -> Paid
func (o *Order) Pay() error {
	if o.status != StatusPending {
		return NewInvalidTransitionError(o.status, StatusPaid)
	}
	o.setStatus(StatusPaid)
	return nil
}

// Cancel is the customer-initiated cancellation; only Pending orders qualify.
func (o *Order) Cancel() error {
	if o.status != StatusPending {
		return NewInvalidTransitionError(o.status, StatusCancelled)
	}
	o.setStatus(StatusCancelled)
	return nil
}

// TransitionTo applies a staff status change.
func (o *Order) TransitionTo(target Status) error {
	for _, allowed := range staffTransitions[o.status] {
		if allowed == target {
			o.setStatus(target)
			return nil
		}
	}
	return NewInvalidTransitionError(o.status, target)
}

func (o *Order) setStatus(s Status) {
	o.status = s
	o.updatedAt = time.Now()
}

// AssignID is called by repositories once the row has been inserted.
func (o *Order) AssignID(id uint64) {
	if o.id == 0 {
		o.id = id
	}
}

// MarkSaved advances the optimistic lock version after a successful write.
func (o *Order) MarkSaved() {
	o.version++
}

func (o *Order) ID() uint64           { return o.id }
func (o *Order) CustomerID() uint64   { return o.customerID }
func (o *Order) Total() shared.Money  { return o.total }
func (o *Order) Status() Status       { return o.status }
func (o *Order) Version() int         { return o.version }
func (o *Order) CreatedAt() time.Time { return o.createdAt }
func (o *Order) UpdatedAt() time.Time { return o.updatedAt }

// Items returns a copy of the order lines.
func (o *Order) Items() []Item {
	out := make([]Item, len(o.items))
	copy(out, o.items)
	return out
}

func (i Item) ProductID() uint64       { return i.productID }
func (i Item) ProductName() string     { return i.productName }
func (i Item) SKU() string             { return i.sku }
func (i Item) Quantity() int           { return i.quantity }
func (i Item) UnitPrice() shared.Money { return i.unitPrice }
func (i Item) Subtotal() shared.Money  { return i.subtotal }
