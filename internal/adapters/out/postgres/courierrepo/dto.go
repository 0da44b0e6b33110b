// Package courierrepo reads the courier roster maintained by an external
// collaborator. Dispatch only needs existence and online status.
package courierrepo

import (
	"fulfillment/internal/core/domain/model/courier"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// CourierDTO represents a courier roster row. Coordinates are nil until the
// courier reports a position.
type CourierDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string
	Online    bool
	Longitude *float64
	Latitude  *float64
}

// TableName specifies the database table name for couriers.
func (CourierDTO) TableName() string {
	return "couriers"
}

// toDomain converts a courier row to its registry read model.
func toDomain(dto CourierDTO) (courier.Courier, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return courier.Courier{}, err
	}

	result := courier.Courier{
		ID:     id,
		Name:   dto.Name,
		Online: dto.Online,
	}

	if dto.Longitude != nil && dto.Latitude != nil {
		location, locErr := kernel.NewGeoPoint(*dto.Longitude, *dto.Latitude)
		if locErr != nil {
			return courier.Courier{}, locErr
		}
		result.Location = &location
	}

	return result, nil
}
