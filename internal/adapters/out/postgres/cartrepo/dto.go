// Package cartrepo reads and consumes customer cart lines. The cart is written
// by an external collaborator; order creation reads the selected lines and
// deletes them within the creation transaction.
package cartrepo

import (
	"fulfillment/internal/core/domain/model/cart"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// CartLineDTO represents one cart row in the database.
type CartLineDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	CustomerID   uuid.UUID `gorm:"type:uuid;index"`
	RestaurantID uuid.UUID `gorm:"type:uuid;index"`
	MenuItemID   uuid.UUID `gorm:"type:uuid"`
	OptionIDs    []string  `gorm:"serializer:json;type:jsonb"`
	Quantity     int
}

// TableName specifies the database table name for cart lines.
func (CartLineDTO) TableName() string {
	return "cart_lines"
}

// toDomain converts a cart row to its read model.
func toDomain(dto CartLineDTO) (cart.Line, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return cart.Line{}, err
	}

	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return cart.Line{}, err
	}

	restaurantID, err := kernel.UUIDFromBytes(dto.RestaurantID[:])
	if err != nil {
		return cart.Line{}, err
	}

	menuItemID, err := kernel.UUIDFromBytes(dto.MenuItemID[:])
	if err != nil {
		return cart.Line{}, err
	}

	optionIDs := make([]kernel.UUID, 0, len(dto.OptionIDs))
	for _, raw := range dto.OptionIDs {
		optionID, optErr := kernel.UUIDFromString(raw)
		if optErr != nil {
			return cart.Line{}, optErr
		}
		optionIDs = append(optionIDs, optionID)
	}

	return cart.Line{
		ID:           id,
		CustomerID:   customerID,
		RestaurantID: restaurantID,
		MenuItemID:   menuItemID,
		OptionIDs:    optionIDs,
		Quantity:     dto.Quantity,
	}, nil
}
