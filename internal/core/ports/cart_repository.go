package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/cart"
	"fulfillment/internal/core/domain/model/kernel"
)

// CartRepository defines the contract for reading and consuming cart lines.
// The cart itself belongs to an external collaborator; order creation reads
// the selected lines and deletes them within the creation transaction.
type CartRepository interface {
	// GetLines retrieves the given cart lines, all of which must belong to
	// the customer's cart. Returns ObjectNotFoundError if any ID does not
	// resolve to such a line.
	GetLines(ctx context.Context, customerID kernel.UUID, lineIDs []kernel.UUID) ([]cart.Line, error)

	// GetRestaurantLines retrieves all of the customer's cart lines for one
	// restaurant.
	GetRestaurantLines(ctx context.Context, customerID kernel.UUID, restaurantID kernel.UUID) ([]cart.Line, error)

	// DeleteLines removes the given cart lines. Called inside the order
	// creation transaction so the consumed lines disappear atomically with
	// the order insert.
	DeleteLines(ctx context.Context, lineIDs []kernel.UUID) error
}
