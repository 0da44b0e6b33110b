// Package couponrepo evaluates coupon codes against the coupon definitions
// maintained by an external collaborator. Only the application of a code to a
// subtotal is consumed here; definition management is out of scope.
package couponrepo

import (
	"time"

	"github.com/google/uuid"
)

// Coupon discount kinds.
const (
	CouponTypeFixed   = "FIXED"
	CouponTypePercent = "PERCENT"
)

// CouponDTO represents a coupon definition row. RestaurantID is nil for
// platform-wide coupons.
type CouponDTO struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Code         string     `gorm:"uniqueIndex"`
	RestaurantID *uuid.UUID `gorm:"type:uuid;index"`
	Type         string
	Value        int64
	MinSubtotal  int64
	Active       bool
	ExpiresAt    *time.Time
}

// TableName specifies the database table name for coupons.
func (CouponDTO) TableName() string {
	return "coupons"
}
