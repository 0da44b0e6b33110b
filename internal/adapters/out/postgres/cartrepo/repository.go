package cartrepo

import (
	"context"

	"fulfillment/internal/core/domain/model/cart"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormCartRepository implements CartRepository using GORM.
type GormCartRepository struct {
	db *gorm.DB
}

// NewGormCartRepository creates a new GORM cart repository.
func NewGormCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

// GetLines retrieves the given cart lines, all of which must belong to the
// customer's cart. A missing or foreign line fails the whole read, so an
// order can never be built from a partially resolved selection.
func (r *GormCartRepository) GetLines(
	ctx context.Context,
	customerID kernel.UUID,
	lineIDs []kernel.UUID,
) ([]cart.Line, error) {
	if err := customerID.Validate(); err != nil {
		return nil, err
	}
	if len(lineIDs) == 0 {
		return nil, errs.NewValueIsRequiredError("cart line IDs")
	}

	ids := make([]uuid.UUID, 0, len(lineIDs))
	for _, id := range lineIDs {
		if err := id.Validate(); err != nil {
			return nil, err
		}
		ids = append(ids, id.Bytes())
	}

	var dtos []CartLineDTO
	err := r.db.WithContext(ctx).
		Find(&dtos, "id IN ? AND customer_id = ?", ids, customerID.Bytes()).
		Error
	if err != nil {
		return nil, err
	}

	if len(dtos) != len(lineIDs) {
		found := make(map[uuid.UUID]bool, len(dtos))
		for _, dto := range dtos {
			found[dto.ID] = true
		}
		for _, id := range lineIDs {
			if !found[id.Bytes()] {
				return nil, errs.NewObjectNotFoundError("cartLineID", id.String())
			}
		}
	}

	return r.toDomainAll(dtos)
}

// GetRestaurantLines retrieves all of the customer's cart lines for one restaurant.
func (r *GormCartRepository) GetRestaurantLines(
	ctx context.Context,
	customerID kernel.UUID,
	restaurantID kernel.UUID,
) ([]cart.Line, error) {
	if err := customerID.Validate(); err != nil {
		return nil, err
	}
	if err := restaurantID.Validate(); err != nil {
		return nil, err
	}

	var dtos []CartLineDTO
	err := r.db.WithContext(ctx).
		Find(&dtos, "customer_id = ? AND restaurant_id = ?", customerID.Bytes(), restaurantID.Bytes()).
		Error
	if err != nil {
		return nil, err
	}

	return r.toDomainAll(dtos)
}

// DeleteLines removes the given cart lines. Runs inside the order creation
// transaction so the consumed lines disappear atomically with the order insert.
func (r *GormCartRepository) DeleteLines(ctx context.Context, lineIDs []kernel.UUID) error {
	if len(lineIDs) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, 0, len(lineIDs))
	for _, id := range lineIDs {
		if err := id.Validate(); err != nil {
			return err
		}
		ids = append(ids, id.Bytes())
	}

	return r.db.WithContext(ctx).Delete(&CartLineDTO{}, "id IN ?", ids).Error
}

func (r *GormCartRepository) toDomainAll(dtos []CartLineDTO) ([]cart.Line, error) {
	lines := make([]cart.Line, 0, len(dtos))
	for _, dto := range dtos {
		line, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	return lines, nil
}
