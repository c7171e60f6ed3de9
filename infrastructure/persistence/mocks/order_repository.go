package mocks

import (
	"context"
	"sort"
	"sync"

	"github.com/Fubuki233/WebAppDev-Ca-sub001/domain/order"
)

// MockOrderRepository Mock implementation of order repository.
// Orders are stored as snapshots so the version check behaves like the MySQL one.
type MockOrderRepository struct {
	mu     sync.RWMutex
	nextID uint64
	orders map[uint64]order.ReconstructionDTO
}

func NewMockOrderRepository() *MockOrderRepository {
	return &MockOrderRepository{orders: make(map[uint64]order.ReconstructionDTO)}
}

func snapshot(o *order.Order) order.ReconstructionDTO {
	items := o.Items()
	dtoItems := make([]order.ItemReconstructionDTO, len(items))
	for i, it := range items {
		dtoItems[i] = order.ItemReconstructionDTO{
			ProductID:   it.ProductID(),
			ProductName: it.ProductName(),
			SKU:         it.SKU(),
			Quantity:    it.Quantity(),
			UnitPrice:   it.UnitPrice(),
			Subtotal:    it.Subtotal(),
		}
	}
	return order.ReconstructionDTO{
		ID:         o.ID(),
		CustomerID: o.CustomerID(),
		Items:      dtoItems,
		Total:      o.Total(),
		Status:     o.Status(),
		Version:    o.Version(),
		CreatedAt:  o.CreatedAt(),
		UpdatedAt:  o.UpdatedAt(),
	}
}

func (r *MockOrderRepository) Save(ctx context.Context, o *order.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if o.ID() == 0 {
		r.nextID++
		o.AssignID(r.nextID)
	} else {
		existing, exists := r.orders[o.ID()]
		if !exists {
			return order.NewOrderNotFoundError(o.ID())
		}
		// Check optimistic locking for existing orders
		if existing.Version != o.Version() {
			return order.NewConcurrentModificationError(o.ID())
		}
	}

	o.MarkSaved()
	r.orders[o.ID()] = snapshot(o)
	return nil
}

func (r *MockOrderRepository) FindByID(ctx context.Context, id uint64) (*order.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	dto, exists := r.orders[id]
	if !exists {
		return nil, order.NewOrderNotFoundError(id)
	}
	return order.RebuildFromDTO(dto), nil
}

func (r *MockOrderRepository) FindByCustomerID(ctx context.Context, customerID uint64) ([]*order.Order, error) {
	return r.filter(func(dto order.ReconstructionDTO) bool { return dto.CustomerID == customerID }), nil
}

func (r *MockOrderRepository) Search(ctx context.Context, criteria order.SearchCriteria) ([]*order.Order, int64, error) {
	criteria = criteria.Normalize()
	all := r.filter(func(dto order.ReconstructionDTO) bool {
		return criteria.Status == "" || dto.Status == criteria.Status
	})

	total := int64(len(all))
	start := criteria.Offset()
	if start > len(all) {
		start = len(all)
	}
	end := start + criteria.PageSize
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], total, nil
}

// filter returns matching orders newest first.
func (r *MockOrderRepository) filter(match func(order.ReconstructionDTO) bool) []*order.Order {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*order.Order, 0)
	for _, dto := range r.orders {
		if match(dto) {
			out = append(out, order.RebuildFromDTO(dto))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt().Equal(out[j].CreatedAt()) {
			return out[i].CreatedAt().After(out[j].CreatedAt())
		}
		return out[i].ID() > out[j].ID()
	})
	return out
}

var _ order.Repository = (*MockOrderRepository)(nil)
