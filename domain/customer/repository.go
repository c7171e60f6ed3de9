package customer

import "context"

// Repository persists Customer aggregates.
type Repository interface {
	// Save inserts when ID() is zero and updates otherwise.
	Save(ctx context.Context, c *Customer) error

	FindByID(ctx context.Context, id uint64) (*Customer, error)

	// FindByEmail matches the normalised address.
	FindByEmail(ctx context.Context, email string) (*Customer, error)
}
