package couponrepo

import (
	"context"
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormCouponEvaluator implements CouponEvaluator using GORM.
type GormCouponEvaluator struct {
	db  *gorm.DB
	now func() time.Time
}

// NewGormCouponEvaluator creates a new GORM coupon evaluator.
func NewGormCouponEvaluator(db *gorm.DB) *GormCouponEvaluator {
	return &GormCouponEvaluator{db: db, now: time.Now}
}

// Evaluate returns the discount the code yields for the restaurant and
// subtotal. The discount never exceeds the subtotal.
func (e *GormCouponEvaluator) Evaluate(
	ctx context.Context,
	code string,
	restaurantID kernel.UUID,
	subtotal kernel.Money,
) (kernel.Money, error) {
	if code == "" {
		return 0, errs.NewValueIsRequiredError("code")
	}
	if err := restaurantID.Validate(); err != nil {
		return 0, err
	}

	var dto CouponDTO
	err := e.db.WithContext(ctx).First(&dto, "code = ?", code).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, errs.NewObjectNotFoundError("couponCode", code)
		}
		return 0, err
	}

	if !dto.Active {
		return 0, errs.NewConflictError("coupon is not active")
	}
	if dto.ExpiresAt != nil && !dto.ExpiresAt.After(e.now()) {
		return 0, errs.NewConflictError("coupon has expired")
	}
	if dto.RestaurantID != nil && *dto.RestaurantID != restaurantID.Bytes() {
		return 0, errs.NewConflictError("coupon does not apply to this restaurant")
	}
	if int64(subtotal) < dto.MinSubtotal {
		return 0, errs.NewConflictError("order subtotal is below the coupon minimum")
	}

	var discount kernel.Money
	switch dto.Type {
	case CouponTypeFixed:
		discount = kernel.Money(dto.Value)
	case CouponTypePercent:
		discount = subtotal * kernel.Money(dto.Value) / 100
	default:
		return 0, errs.NewValueIsInvalidError("coupon type")
	}

	if discount > subtotal {
		discount = subtotal
	}
	if discount < 0 {
		discount = 0
	}

	return discount, nil
}
