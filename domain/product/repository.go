package product

import "context"

type Repository interface {
	Save(ctx context.Context, p *Product) error
	FindByID(ctx context.Context, id uint64) (*Product, error)
	FindBySKU(ctx context.Context, sku SKU) (*Product, error)

	// List returns products ordered by id; activeOnly hides deactivated entries.
	List(ctx context.Context, activeOnly bool) ([]*Product, error)
}
