package mocks

import (
	"context"
	"sync"

	"github.com/Fubuki233/WebAppDev-Ca-sub001/domain/shared"
	"github.com/Fubuki233/WebAppDev-Ca-sub001/infrastructure/persistence/retry"
)

// MockUnitOfWork is a mock implementation of UnitOfWork for testing.
// Units run one at a time and keep the retry behaviour, but there is no rollback:
// writes made before fn fails stay applied.
type MockUnitOfWork struct {
	mu          sync.Mutex
	retryConfig retry.Config
}

func NewMockUnitOfWork(retryConfig retry.Config) *MockUnitOfWork {
	return &MockUnitOfWork{retryConfig: retryConfig}
}

func (u *MockUnitOfWork) Execute(ctx context.Context, fn func(ctx context.Context) error) error {
	return retry.ExecuteWithRetry(ctx, u.retryConfig, func(ctx context.Context) error {
		u.mu.Lock()
		defer u.mu.Unlock()
		return fn(ctx)
	})
}

// Compile-time check that MockUnitOfWork implements shared.UnitOfWork
var _ shared.UnitOfWork = (*MockUnitOfWork)(nil)
