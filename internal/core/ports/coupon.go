package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
)

// CouponEvaluator computes the discount a coupon code yields for a given
// restaurant and subtotal. Coupon definition management is an external
// collaborator; only the application of a code is consumed here.
type CouponEvaluator interface {
	// Evaluate returns the discount amount for the code.
	// Returns ObjectNotFoundError for unknown codes and ConflictError for
	// codes that are expired, inactive, out of scope for the restaurant, or
	// below their minimum subtotal.
	Evaluate(ctx context.Context, code string, restaurantID kernel.UUID, subtotal kernel.Money) (kernel.Money, error)
}
