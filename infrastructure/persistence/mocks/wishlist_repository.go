package mocks

import (
	"context"
	"sort"
	"sync"

	"github.com/Fubuki233/WebAppDev-Ca-sub001/domain/wishlist"
)

type wishlistKey struct {
	customerID uint64
	productID  uint64
}

// MockWishlistRepository keeps wishlist entries in memory.
type MockWishlistRepository struct {
	mu      sync.RWMutex
	entries map[wishlistKey]wishlist.Entry
}

func NewMockWishlistRepository() *MockWishlistRepository {
	return &MockWishlistRepository{entries: make(map[wishlistKey]wishlist.Entry)}
}

func (r *MockWishlistRepository) Add(ctx context.Context, e wishlist.Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := wishlistKey{e.CustomerID, e.ProductID}
	if _, ok := r.entries[key]; !ok {
		r.entries[key] = e
	}
	return nil
}

func (r *MockWishlistRepository) Remove(ctx context.Context, customerID, productID uint64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := wishlistKey{customerID, productID}
	_, ok := r.entries[key]
	delete(r.entries, key)
	return ok, nil
}

func (r *MockWishlistRepository) ListByCustomer(ctx context.Context, customerID uint64) ([]wishlist.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]wishlist.Entry, 0)
	for k, e := range r.entries {
		if k.customerID == customerID {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ProductID > out[j].ProductID
	})
	return out, nil
}

var _ wishlist.Repository = (*MockWishlistRepository)(nil)
