package ports

import (
	"context"
)

// UnitOfWorkFactory creates a fresh UnitOfWork per command so concurrent
// handlers never share a transaction.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is the transaction boundary over the order and cart
// repositories. Order creation writes the order, its lines, and the
// cart-line deletion as one unit; callers drive Begin/Commit/Rollback
// explicitly.
type UnitOfWork interface {
	Begin(ctx context.Context) error

	// Commit and Rollback error when no transaction is active.
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error

	// Repository accessors return instances bound to the active transaction.
	OrderRepository() OrderRepository
	CartRepository() CartRepository
}
