// Package catalog holds the read models for menu and restaurant data consumed
// by the fulfillment core. Menu and restaurant management is an external
// collaborator; the core only reads prices, availability, and open/closed
// state through these fully-resolved shapes.
package catalog

import (
	"fulfillment/internal/core/domain/model/kernel"
)

// MenuItem is the priced, availability-resolved view of a menu item.
// Available is false when the item, its parent menu, or its restaurant is
// soft-deleted or inactive; the repository resolves the whole chain.
type MenuItem struct {
	ID           kernel.UUID
	RestaurantID kernel.UUID
	Name         string
	BasePrice    kernel.Money
	Available    bool
}

// Option is a menu-item option with its price adjustment.
type Option struct {
	ID              kernel.UUID
	MenuItemID      kernel.UUID
	Name            string
	PriceAdjustment kernel.Money
	Available       bool
}

// Restaurant is the fulfillment-relevant view of a restaurant.
type Restaurant struct {
	ID       kernel.UUID
	Name     string
	Location kernel.GeoPoint
	IsOpen   bool
	Active   bool
}
