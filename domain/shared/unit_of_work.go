package shared

import "context"

// UnitOfWork runs fn inside one transaction; repositories pick the transaction up from ctx.
type UnitOfWork interface {
	Execute(ctx context.Context, fn func(ctx context.Context) error) error
}
