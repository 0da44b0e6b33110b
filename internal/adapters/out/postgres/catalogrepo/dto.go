// Package catalogrepo reads the menu and restaurant catalog. The catalog is
// managed by an external collaborator; the fulfillment core reads prices,
// availability, and open/closed state through fully-resolved views.
package catalogrepo

import (
	"github.com/google/uuid"
)

// RestaurantDTO represents a restaurant row.
type RestaurantDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string
	Longitude float64
	Latitude  float64
	IsOpen    bool
	Active    bool
}

// TableName specifies the database table name for restaurants.
func (RestaurantDTO) TableName() string {
	return "restaurants"
}

// MenuDTO represents a menu row. A menu groups items and can be deactivated
// as a whole, hiding every item beneath it.
type MenuDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	RestaurantID uuid.UUID `gorm:"type:uuid;index"`
	Name         string
	Active       bool
}

// TableName specifies the database table name for menus.
func (MenuDTO) TableName() string {
	return "menus"
}

// MenuItemDTO represents a menu item row.
type MenuItemDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	MenuID       uuid.UUID `gorm:"type:uuid;index"`
	RestaurantID uuid.UUID `gorm:"type:uuid;index"`
	Name         string
	BasePrice    int64
	Available    bool
}

// TableName specifies the database table name for menu items.
func (MenuItemDTO) TableName() string {
	return "menu_items"
}

// OptionDTO represents a menu item option row.
type OptionDTO struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	MenuItemID      uuid.UUID `gorm:"type:uuid;index"`
	Name            string
	PriceAdjustment int64
	Available       bool
}

// TableName specifies the database table name for menu item options.
func (OptionDTO) TableName() string {
	return "menu_item_options"
}
