/*
Package wishlist records products a customer wants to remember.
*/
package wishlist

import (
	"context"
	"time"
)

// Entry is one (customer, product) pair; the pair is unique.
type Entry struct {
	CustomerID uint64
	ProductID  uint64
	CreatedAt  time.Time
}

func NewEntry(customerID, productID uint64) Entry {
	return Entry{CustomerID: customerID, ProductID: productID, CreatedAt: time.Now()}
}

type Repository interface {
	// Add is idempotent: adding an existing pair keeps the original entry.
	Add(ctx context.Context, e Entry) error

	// Remove reports whether an entry was deleted.
	Remove(ctx context.Context, customerID, productID uint64) (bool, error)

	// ListByCustomer returns entries newest first.
	ListByCustomer(ctx context.Context, customerID uint64) ([]Entry, error)
}
