package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/catalog"
	"fulfillment/internal/core/domain/model/kernel"
)

// MenuCatalog reads priced, availability-resolved menu data.
// Implementations resolve the whole soft-delete chain (item, parent menu,
// restaurant) into the Available flag.
type MenuCatalog interface {
	// MenuItems retrieves the catalog view of the given menu items, keyed by
	// ID. IDs that do not exist are simply absent from the result.
	MenuItems(ctx context.Context, ids []kernel.UUID) (map[kernel.UUID]catalog.MenuItem, error)

	// Options retrieves the catalog view of the given options, keyed by ID.
	Options(ctx context.Context, ids []kernel.UUID) (map[kernel.UUID]catalog.Option, error)
}

// RestaurantCatalog reads the fulfillment-relevant view of restaurants.
type RestaurantCatalog interface {
	// Restaurant retrieves a restaurant by ID.
	// Returns ObjectNotFoundError if it does not exist or is inactive.
	Restaurant(ctx context.Context, id kernel.UUID) (catalog.Restaurant, error)
}
