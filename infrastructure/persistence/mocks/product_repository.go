package mocks

import (
	"context"
	"sort"
	"sync"

	"github.com/Fubuki233/WebAppDev-Ca-sub001/domain/product"
	"github.com/Fubuki233/WebAppDev-Ca-sub001/domain/shared"
)

// MockProductRepository keeps the catalogue in memory.
type MockProductRepository struct {
	mu       sync.RWMutex
	nextID   uint64
	products map[uint64]product.ReconstructionDTO
}

func NewMockProductRepository() *MockProductRepository {
	return &MockProductRepository{products: make(map[uint64]product.ReconstructionDTO)}
}

func (r *MockProductRepository) Save(ctx context.Context, p *product.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, existing := range r.products {
		if existing.SKU == string(p.SKU()) && id != p.ID() {
			return shared.NewError(product.ErrSKUExists, "product", "sku already exists: "+string(p.SKU()))
		}
	}
	if p.ID() == 0 {
		r.nextID++
		p.AssignID(r.nextID)
	}
	r.products[p.ID()] = product.ReconstructionDTO{
		ID:          p.ID(),
		SKU:         string(p.SKU()),
		Name:        p.Name(),
		Description: p.Description(),
		Price:       p.Price(),
		Stock:       p.Stock(),
		Active:      p.IsActive(),
		CreatedAt:   p.CreatedAt(),
		UpdatedAt:   p.UpdatedAt(),
	}
	return nil
}

func (r *MockProductRepository) FindByID(ctx context.Context, id uint64) (*product.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	dto, ok := r.products[id]
	if !ok {
		return nil, product.NewProductNotFoundError(id)
	}
	return product.Rebuild(dto), nil
}

func (r *MockProductRepository) FindBySKU(ctx context.Context, sku product.SKU) (*product.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, dto := range r.products {
		if dto.SKU == string(sku) {
			return product.Rebuild(dto), nil
		}
	}
	return nil, shared.NewError(product.ErrProductNotFound, "product", "product not found: "+string(sku))
}

func (r *MockProductRepository) List(ctx context.Context, activeOnly bool) ([]*product.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*product.Product, 0, len(r.products))
	for _, dto := range r.products {
		if activeOnly && !dto.Active {
			continue
		}
		out = append(out, product.Rebuild(dto))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out, nil
}

var _ product.Repository = (*MockProductRepository)(nil)
