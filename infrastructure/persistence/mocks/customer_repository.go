package mocks

import (
	"context"
	"sync"

	"github.com/Fubuki233/WebAppDev-Ca-sub001/domain/customer"
	"github.com/Fubuki233/WebAppDev-Ca-sub001/domain/shared"
)

// MockCustomerRepository keeps customers in memory.
type MockCustomerRepository struct {
	mu        sync.RWMutex
	nextID    uint64
	customers map[uint64]customer.ReconstructionDTO
}

func NewMockCustomerRepository() *MockCustomerRepository {
	return &MockCustomerRepository{customers: make(map[uint64]customer.ReconstructionDTO)}
}

func (r *MockCustomerRepository) Save(ctx context.Context, c *customer.Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, existing := range r.customers {
		if existing.Email == c.Email() && id != c.ID() {
			return customer.NewEmailExistsError(c.Email())
		}
	}
	if c.ID() == 0 {
		r.nextID++
		c.AssignID(r.nextID)
	} else if _, ok := r.customers[c.ID()]; !ok {
		return customer.NewCustomerNotFoundError(c.ID())
	}

	r.customers[c.ID()] = customer.ReconstructionDTO{
		ID:           c.ID(),
		Name:         c.Name(),
		Email:        c.Email(),
		PasswordHash: c.PasswordHash(),
		Address:      c.Address(),
		CreatedAt:    c.CreatedAt(),
		UpdatedAt:    c.UpdatedAt(),
	}
	return nil
}

func (r *MockCustomerRepository) FindByID(ctx context.Context, id uint64) (*customer.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	dto, ok := r.customers[id]
	if !ok {
		return nil, customer.NewCustomerNotFoundError(id)
	}
	return customer.Rebuild(dto), nil
}

func (r *MockCustomerRepository) FindByEmail(ctx context.Context, email string) (*customer.Customer, error) {
	normalized, err := shared.NewEmail(email)
	if err == nil {
		r.mu.RLock()
		defer r.mu.RUnlock()

		for _, dto := range r.customers {
			if dto.Email == normalized.Value() {
				return customer.Rebuild(dto), nil
			}
		}
	}
	return nil, shared.NewError(customer.ErrCustomerNotFound, "customer", "customer not found: "+email)
}

// Delete is a test helper that simulates an account removed behind a live session.
func (r *MockCustomerRepository) Delete(id uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.customers, id)
}

var _ customer.Repository = (*MockCustomerRepository)(nil)
