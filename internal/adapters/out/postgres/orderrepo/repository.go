package orderrepo

import (
	"context"
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderRepository implements OrderRepository using GORM.
//
// Lifecycle writes are conditional updates: the WHERE clause re-verifies the
// precondition (current status, unset courier) so concurrent writers are
// serialized by the database rather than by optimistic reads.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order with its lines to the database.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves non-lifecycle changes to an existing order. Order lines are
// immutable and never written here. The status predicate keeps a stale
// aggregate from overwriting a transition another writer committed after our
// read; it never carries a status change itself, so the guard costs nothing
// on the happy path.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ? AND status = ?", dto.ID, aggregate.Status().String()).
		Omit(clause.Associations).
		Select("*").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		exists, err := r.exists(ctx, dto.ID)
		if err != nil {
			return err
		}
		if !exists {
			return errs.NewObjectNotFoundError("orderID", aggregate.ID().String())
		}
		return errs.NewConflictError("order status changed concurrently")
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// UpdateCourierLocation writes only the courier position columns, so a stale
// in-memory aggregate can never drag the status or milestone stamps along.
// Last write wins between concurrent reports. Orders already Delivered or
// Cancelled reject further reports.
func (r *GormOrderRepository) UpdateCourierLocation(
	ctx context.Context,
	orderID kernel.UUID,
	location kernel.GeoPoint,
) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	if err := location.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ? AND status NOT IN (?, ?)",
			orderID.Bytes(), order.StatusDelivered.String(), order.StatusCancelled.String()).
		Updates(map[string]any{
			"courier_longitude": location.Longitude(),
			"courier_latitude":  location.Latitude(),
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		exists, err := r.exists(ctx, orderID.Bytes())
		if err != nil {
			return err
		}
		if !exists {
			return errs.NewObjectNotFoundError("orderID", orderID.String())
		}
		return errs.NewConflictError("order is no longer in delivery")
	}

	return nil
}

// UpdateTransition persists a lifecycle change only if the stored status still
// equals expected. A zero row count means another writer moved the order
// between our read and this write.
func (r *GormOrderRepository) UpdateTransition(
	ctx context.Context,
	aggregate *order.Order,
	expected order.Status,
) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ? AND status = ?", dto.ID, expected.String()).
		Omit(clause.Associations).
		Select("*").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		exists, err := r.exists(ctx, dto.ID)
		if err != nil {
			return err
		}
		if !exists {
			return errs.NewObjectNotFoundError("orderID", aggregate.ID().String())
		}
		return errs.NewInvalidTransitionErrorWithCause(expected.String(), aggregate.Status().String(),
			errors.New("order status changed concurrently"))
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// AssignToCourier exclusively binds a courier to an order via one conditional
// UPDATE. The database evaluates the predicate and the write atomically, so
// exactly one of several concurrent callers sees a row affected.
func (r *GormOrderRepository) AssignToCourier(
	ctx context.Context,
	orderID kernel.UUID,
	courierID kernel.UUID,
	at time.Time,
) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	if err := courierID.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ? AND courier_id IS NULL AND status IN (?, ?)",
			orderID.Bytes(), order.StatusConfirmed.String(), order.StatusReady.String()).
		Updates(map[string]any{
			"courier_id":    courierID.Bytes(),
			"status":        order.StatusAssigned.String(),
			"assigned_time": at,
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		exists, err := r.exists(ctx, orderID.Bytes())
		if err != nil {
			return err
		}
		if !exists {
			return errs.NewObjectNotFoundError("orderID", orderID.String())
		}
		return errs.NewConflictError("order is not available for acceptance")
	}

	return nil
}

// Get retrieves an order with its lines by ID.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	err := r.db.WithContext(ctx).Preload("Lines").First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("orderID", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetStalePending retrieves orders still Pending placed before the cutoff.
func (r *GormOrderRepository) GetStalePending(ctx context.Context, cutoff time.Time) ([]*order.Order, error) {
	var dtos []OrderDTO
	err := r.db.WithContext(ctx).
		Preload("Lines").
		Find(&dtos, "status = ? AND order_time < ?", order.StatusPending.String(), cutoff).
		Error
	if err != nil {
		return nil, err
	}

	return r.toDomainAll(dtos)
}

// GetRefundPending retrieves cancelled orders awaiting refund processing.
func (r *GormOrderRepository) GetRefundPending(ctx context.Context) ([]*order.Order, error) {
	var dtos []OrderDTO
	err := r.db.WithContext(ctx).
		Preload("Lines").
		Find(&dtos, "payment_status = ?", order.PaymentStatusRefundPending.String()).
		Error
	if err != nil {
		return nil, err
	}

	return r.toDomainAll(dtos)
}

func (r *GormOrderRepository) toDomainAll(dtos []OrderDTO) ([]*order.Order, error) {
	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		aggregate, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, aggregate)
	}
	return orders, nil
}

func (r *GormOrderRepository) exists(ctx context.Context, id any) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&OrderDTO{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}
