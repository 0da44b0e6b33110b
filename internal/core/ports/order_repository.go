package ports

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
//
// Status-changing writes go through UpdateTransition or AssignToCourier so the
// precondition (current status, unset courier) is re-verified atomically with
// the write by the storage engine; a read-then-write sequence is not offered
// for those paths.
type OrderRepository interface {
	// Add persists a new order aggregate with its lines.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists non-lifecycle changes to an existing order (rating,
	// refund bookkeeping). The write is guarded on the aggregate's status so
	// a stale read can never roll back a concurrently committed transition;
	// ConflictError means the stored status moved since the read.
	// Order lines are immutable and never updated.
	Update(ctx context.Context, aggregate *order.Order) error

	// UpdateCourierLocation overwrites only the courier position columns.
	// Last write wins for the position; every other column is untouched.
	// Orders in a terminal status reject further reports with ConflictError.
	UpdateCourierLocation(ctx context.Context, orderID kernel.UUID, location kernel.GeoPoint) error

	// UpdateTransition persists a lifecycle change only if the stored status
	// still equals expected. Returns InvalidTransitionError if another writer
	// moved the order first.
	UpdateTransition(ctx context.Context, aggregate *order.Order, expected order.Status) error

	// AssignToCourier exclusively binds a courier to an order via a single
	// conditional update: the courier is set and the status moved to Assigned
	// only if no courier is currently set and the status is Confirmed or
	// Ready. Exactly one of several concurrent callers succeeds; the others
	// receive ConflictError. Returns ObjectNotFoundError if the order does
	// not exist.
	AssignToCourier(ctx context.Context, orderID kernel.UUID, courierID kernel.UUID, at time.Time) error

	// Get retrieves an order aggregate with its lines by ID.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetStalePending retrieves orders still Pending whose order time is
	// before the cutoff. Used by the reconciliation job.
	GetStalePending(ctx context.Context, cutoff time.Time) ([]*order.Order, error)

	// GetRefundPending retrieves cancelled orders awaiting refund processing.
	GetRefundPending(ctx context.Context) ([]*order.Order, error)
}
