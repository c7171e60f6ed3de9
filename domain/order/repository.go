package order

import "context"

// Repository Order repository interface
type Repository interface {
	// Save inserts new orders and updates existing ones, failing with
	// ErrConcurrentModification when the stored version differs from Version().
	Save(ctx context.Context, o *Order) error

	FindByID(ctx context.Context, id uint64) (*Order, error)

	// FindByCustomerID returns the customer's orders, newest first.
	FindByCustomerID(ctx context.Context, customerID uint64) ([]*Order, error)

	// Search is the staff listing; an empty status matches all.
	Search(ctx context.Context, criteria SearchCriteria) ([]*Order, int64, error)
}

// SearchCriteria filters and pages the staff order listing.
type SearchCriteria struct {
	Status   Status
	Page     int
	PageSize int
}

// Normalize clamps paging to sane bounds.
func (c SearchCriteria) Normalize() SearchCriteria {
	if c.Page < 1 {
		c.Page = 1
	}
	if c.PageSize < 1 || c.PageSize > 100 {
		c.PageSize = 20
	}
	return c
}

func (c SearchCriteria) Offset() int {
	return (c.Page - 1) * c.PageSize
}
