package ports

import (
	"context"
	"time"
)

// OrderChangedEvent describes a lifecycle change of an order for downstream
// consumers (notifications, analytics). Identifiers are wire strings; the
// courier is nil until assignment.
type OrderChangedEvent struct {
	OrderID      string    `json:"order_id"`
	CustomerID   string    `json:"customer_id"`
	RestaurantID string    `json:"restaurant_id"`
	CourierID    *string   `json:"courier_id,omitempty"`
	Status       string    `json:"status"`
	OccurredAt   time.Time `json:"occurred_at"`
}

// OrderEventPublisher publishes order lifecycle events after successful
// writes. Publishing is best-effort: handlers log failures but never fail the
// request over them.
type OrderEventPublisher interface {
	PublishOrderChanged(ctx context.Context, event OrderChangedEvent) error
}
