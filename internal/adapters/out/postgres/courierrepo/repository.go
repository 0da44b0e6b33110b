package courierrepo

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/courier"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormCourierRegistry implements CourierRegistry using GORM.
type GormCourierRegistry struct {
	db *gorm.DB
}

// NewGormCourierRegistry creates a new GORM courier registry.
func NewGormCourierRegistry(db *gorm.DB) *GormCourierRegistry {
	return &GormCourierRegistry{db: db}
}

// Get retrieves a courier by ID.
func (r *GormCourierRegistry) Get(ctx context.Context, id kernel.UUID) (courier.Courier, error) {
	if err := id.Validate(); err != nil {
		return courier.Courier{}, err
	}

	var dto CourierDTO
	err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return courier.Courier{}, errs.NewObjectNotFoundError("courierID", id.String())
		}
		return courier.Courier{}, err
	}

	return toDomain(dto)
}
