package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/courier"
	"fulfillment/internal/core/domain/model/kernel"
)

// CourierRegistry reads the courier roster maintained by an external
// collaborator. Dispatch only checks existence and online status before
// binding a courier to an order.
type CourierRegistry interface {
	// Get retrieves a courier by ID.
	// Returns ObjectNotFoundError if the courier does not exist.
	Get(ctx context.Context, id kernel.UUID) (courier.Courier, error)
}
