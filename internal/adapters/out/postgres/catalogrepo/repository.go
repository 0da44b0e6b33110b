package catalogrepo

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/catalog"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormMenuCatalog implements MenuCatalog using GORM. Availability is resolved
// across the whole chain: an item is available only while the item itself, its
// parent menu, and its restaurant are all active.
type GormMenuCatalog struct {
	db *gorm.DB
}

// NewGormMenuCatalog creates a new GORM menu catalog.
func NewGormMenuCatalog(db *gorm.DB) *GormMenuCatalog {
	return &GormMenuCatalog{db: db}
}

type menuItemRow struct {
	ID           uuid.UUID
	RestaurantID uuid.UUID
	Name         string
	BasePrice    int64
	Available    bool
}

// MenuItems retrieves the catalog view of the given menu items, keyed by ID.
// IDs that do not exist are absent from the result.
func (c *GormMenuCatalog) MenuItems(
	ctx context.Context,
	ids []kernel.UUID,
) (map[kernel.UUID]catalog.MenuItem, error) {
	raw, err := rawIDs(ids)
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return map[kernel.UUID]catalog.MenuItem{}, nil
	}

	var rows []menuItemRow
	err = c.db.WithContext(ctx).
		Table("menu_items").
		Select(`menu_items.id,
			menu_items.restaurant_id,
			menu_items.name,
			menu_items.base_price,
			(menu_items.available AND menus.active AND restaurants.active) AS available`).
		Joins("JOIN menus ON menus.id = menu_items.menu_id").
		Joins("JOIN restaurants ON restaurants.id = menu_items.restaurant_id").
		Where("menu_items.id IN ?", raw).
		Scan(&rows).
		Error
	if err != nil {
		return nil, err
	}

	items := make(map[kernel.UUID]catalog.MenuItem, len(rows))
	for _, row := range rows {
		id, idErr := kernel.UUIDFromBytes(row.ID[:])
		if idErr != nil {
			return nil, idErr
		}
		restaurantID, idErr := kernel.UUIDFromBytes(row.RestaurantID[:])
		if idErr != nil {
			return nil, idErr
		}
		items[id] = catalog.MenuItem{
			ID:           id,
			RestaurantID: restaurantID,
			Name:         row.Name,
			BasePrice:    kernel.Money(row.BasePrice),
			Available:    row.Available,
		}
	}

	return items, nil
}

type optionRow struct {
	ID              uuid.UUID
	MenuItemID      uuid.UUID
	Name            string
	PriceAdjustment int64
	Available       bool
}

// Options retrieves the catalog view of the given options, keyed by ID.
func (c *GormMenuCatalog) Options(
	ctx context.Context,
	ids []kernel.UUID,
) (map[kernel.UUID]catalog.Option, error) {
	raw, err := rawIDs(ids)
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return map[kernel.UUID]catalog.Option{}, nil
	}

	var rows []optionRow
	err = c.db.WithContext(ctx).
		Table("menu_item_options").
		Select(`menu_item_options.id,
			menu_item_options.menu_item_id,
			menu_item_options.name,
			menu_item_options.price_adjustment,
			(menu_item_options.available AND menu_items.available AND menus.active AND restaurants.active) AS available`).
		Joins("JOIN menu_items ON menu_items.id = menu_item_options.menu_item_id").
		Joins("JOIN menus ON menus.id = menu_items.menu_id").
		Joins("JOIN restaurants ON restaurants.id = menu_items.restaurant_id").
		Where("menu_item_options.id IN ?", raw).
		Scan(&rows).
		Error
	if err != nil {
		return nil, err
	}

	options := make(map[kernel.UUID]catalog.Option, len(rows))
	for _, row := range rows {
		id, idErr := kernel.UUIDFromBytes(row.ID[:])
		if idErr != nil {
			return nil, idErr
		}
		menuItemID, idErr := kernel.UUIDFromBytes(row.MenuItemID[:])
		if idErr != nil {
			return nil, idErr
		}
		options[id] = catalog.Option{
			ID:              id,
			MenuItemID:      menuItemID,
			Name:            row.Name,
			PriceAdjustment: kernel.Money(row.PriceAdjustment),
			Available:       row.Available,
		}
	}

	return options, nil
}

// GormRestaurantCatalog implements RestaurantCatalog using GORM.
type GormRestaurantCatalog struct {
	db *gorm.DB
}

// NewGormRestaurantCatalog creates a new GORM restaurant catalog.
func NewGormRestaurantCatalog(db *gorm.DB) *GormRestaurantCatalog {
	return &GormRestaurantCatalog{db: db}
}

// Restaurant retrieves a restaurant by ID. A soft-deleted restaurant is
// indistinguishable from a missing one.
func (c *GormRestaurantCatalog) Restaurant(
	ctx context.Context,
	id kernel.UUID,
) (catalog.Restaurant, error) {
	if err := id.Validate(); err != nil {
		return catalog.Restaurant{}, err
	}

	var dto RestaurantDTO
	err := c.db.WithContext(ctx).First(&dto, "id = ? AND active", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return catalog.Restaurant{}, errs.NewObjectNotFoundError("restaurantID", id.String())
		}
		return catalog.Restaurant{}, err
	}

	restaurantID, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return catalog.Restaurant{}, err
	}

	location, err := kernel.NewGeoPoint(dto.Longitude, dto.Latitude)
	if err != nil {
		return catalog.Restaurant{}, err
	}

	return catalog.Restaurant{
		ID:       restaurantID,
		Name:     dto.Name,
		Location: location,
		IsOpen:   dto.IsOpen,
		Active:   dto.Active,
	}, nil
}

func rawIDs(ids []kernel.UUID) ([]uuid.UUID, error) {
	raw := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if err := id.Validate(); err != nil {
			return nil, err
		}
		raw = append(raw, id.Bytes())
	}
	return raw, nil
}
