package services

import (
	"fmt"
	"math"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
)

const (
	// BaseDeliveryFee is the flat delivery fee for distances up to FreeDistanceKm.
	BaseDeliveryFee kernel.Money = 15000

	// PerKmRate is charged per started kilometer beyond FreeDistanceKm.
	PerKmRate kernel.Money = 5000

	// FreeDistanceKm is the distance covered by the flat base fee.
	FreeDistanceKm = 3.0

	// MinutesPerKm converts courier travel distance into minutes.
	MinutesPerKm = 4.0

	// MinCourierMinutes is the floor of the courier leg of the delivery estimate.
	MinCourierMinutes = 10

	// DefaultPrepMinutes is assumed until the restaurant declares its own
	// preparation time at confirmation.
	DefaultPrepMinutes = 20

	// FeeTolerance is the maximum allowed discrepancy, in currency minor
	// units, between client-declared and server-computed monetary figures.
	FeeTolerance kernel.Money = 1000

	// TaxPercent is applied to the subtotal when the client declares no tax.
	TaxPercent = 5
)

// ClientFees is the fee breakdown declared by the client at order creation.
// It is cross-checked against server-derived figures and rejected on mismatch
// beyond FeeTolerance; Tax is optional and defaults server-side.
type ClientFees struct {
	Subtotal    kernel.Money
	DeliveryFee kernel.Money
	ServiceFee  kernel.Money
	Discount    kernel.Money
	Tax         *kernel.Money
}

// PricingEngine computes delivery fees, delivery-time estimates, and the
// authoritative fee breakdown. All methods are pure.
type PricingEngine struct{}

// NewPricingEngine creates a PricingEngine instance.
func NewPricingEngine() PricingEngine {
	return PricingEngine{}
}

// DeliveryFee computes the delivery fee for a distance: the flat base fee up
// to FreeDistanceKm, then PerKmRate per started kilometer beyond it.
func (p PricingEngine) DeliveryFee(distanceKm float64) kernel.Money {
	if distanceKm <= FreeDistanceKm {
		return BaseDeliveryFee
	}

	extraKm := math.Ceil(distanceKm - FreeDistanceKm)
	return BaseDeliveryFee + kernel.Money(extraKm)*PerKmRate
}

// CourierMinutes estimates the courier travel leg for a distance,
// floored at MinCourierMinutes.
func (p PricingEngine) CourierMinutes(distanceKm float64) int {
	minutes := int(math.Round(distanceKm * MinutesPerKm))
	if minutes < MinCourierMinutes {
		return MinCourierMinutes
	}
	return minutes
}

// EstimatedDeliveryMinutes estimates the total delivery duration:
// preparation plus the courier travel leg.
func (p PricingEngine) EstimatedDeliveryMinutes(distanceKm float64, prepMinutes int) int {
	return prepMinutes + p.CourierMinutes(distanceKm)
}

// EstimatedDeliveryTime returns the estimated delivery timestamp for an order
// placed at now.
func (p PricingEngine) EstimatedDeliveryTime(now time.Time, distanceKm float64, prepMinutes int) time.Time {
	return now.Add(time.Duration(p.EstimatedDeliveryMinutes(distanceKm, prepMinutes)) * time.Minute)
}

// Tax returns the default tax for a subtotal: TaxPercent of the subtotal,
// rounded to the nearest integer currency unit.
func (p PricingEngine) Tax(subtotal kernel.Money) kernel.Money {
	return (subtotal*TaxPercent + 50) / 100
}

// BuildFees derives the authoritative fee breakdown for an order.
//
// The server-computed subtotal and delivery fee are cross-checked against the
// client-declared figures; a discrepancy beyond FeeTolerance is rejected.
// The discount is the server-resolved amount (from the coupon evaluator, or
// the client's declared discount when no coupon is involved). Tax defaults to
// TaxPercent of the subtotal when the client declares none. The total is
// always derived, never taken from the client.
func (p PricingEngine) BuildFees(
	computedSubtotal kernel.Money,
	distanceKm float64,
	client ClientFees,
	discount kernel.Money,
) (order.Fees, error) {
	if diff := (computedSubtotal - client.Subtotal).Abs(); diff > FeeTolerance {
		return order.Fees{}, errs.NewValueIsInvalidErrorWithCause("subtotal",
			fmt.Errorf("declared subtotal %d differs from computed %d by more than %d",
				client.Subtotal, computedSubtotal, FeeTolerance))
	}

	deliveryFee := p.DeliveryFee(distanceKm)
	if diff := (deliveryFee - client.DeliveryFee).Abs(); diff > FeeTolerance {
		return order.Fees{}, errs.NewValueIsInvalidErrorWithCause("deliveryFee",
			fmt.Errorf("declared delivery fee %d differs from computed %d by more than %d",
				client.DeliveryFee, deliveryFee, FeeTolerance))
	}

	tax := p.Tax(computedSubtotal)
	if client.Tax != nil {
		tax = *client.Tax
	}

	return order.NewFees(computedSubtotal, deliveryFee, client.ServiceFee, discount, tax)
}
