// Package cart holds the read model for customer cart lines consumed by order
// creation. The cart itself is owned by an external collaborator; this package
// only describes the shape the fulfillment core reads and deletes.
package cart

import (
	"fulfillment/internal/core/domain/model/kernel"
)

// Line is one row of a customer's cart: a menu item with a chosen option set
// and a quantity. Cart lines are unpriced; prices are resolved against the
// current catalog when an order is created.
//
// Duplicate rows with the same item and option set may exist; the resolver
// groups them before pricing.
type Line struct {
	ID           kernel.UUID
	CustomerID   kernel.UUID
	RestaurantID kernel.UUID
	MenuItemID   kernel.UUID
	OptionIDs    []kernel.UUID
	Quantity     int
}
