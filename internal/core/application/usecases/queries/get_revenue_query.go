package queries

import (
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrGetRevenueQueryIsNotConstructed = errors.New(
	"GetRevenueQuery must be created via NewGetRevenueQuery constructor",
)

// RevenuePeriod is the aggregation bucket for revenue reporting.
type RevenuePeriod string

const (
	RevenuePeriodDay   RevenuePeriod = "day"
	RevenuePeriodWeek  RevenuePeriod = "week"
	RevenuePeriodMonth RevenuePeriod = "month"
)

// Validate checks that the period is one of the supported buckets.
func (p RevenuePeriod) Validate() error {
	switch p {
	case RevenuePeriodDay, RevenuePeriodWeek, RevenuePeriodMonth:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("period",
			fmt.Errorf("%q is not one of day, week, month", string(p)))
	}
}

// GetRevenueQuery aggregates revenue over delivered orders, bucketed by
// period, optionally scoped to one restaurant and a time window.
type GetRevenueQuery struct {
	period       RevenuePeriod
	restaurantID *kernel.UUID
	from         *time.Time
	to           *time.Time

	guard guard.ConstructorGuard
}

// NewGetRevenueQuery creates a revenue aggregation query.
func NewGetRevenueQuery(
	period RevenuePeriod,
	restaurantID *kernel.UUID,
	from *time.Time,
	to *time.Time,
) (GetRevenueQuery, error) {
	if err := period.Validate(); err != nil {
		return GetRevenueQuery{}, err
	}

	if restaurantID != nil {
		if err := restaurantID.Validate(); err != nil {
			return GetRevenueQuery{}, err
		}
	}

	if from != nil && to != nil && to.Before(*from) {
		return GetRevenueQuery{}, errs.NewValueIsInvalidErrorWithCause("to",
			fmt.Errorf("%s is before from %s", to, from))
	}

	return GetRevenueQuery{
		period:       period,
		restaurantID: restaurantID,
		from:         from,
		to:           to,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetRevenueQuery) Validate() error {
	return q.guard.Validate(ErrGetRevenueQueryIsNotConstructed)
}

// Period returns the aggregation bucket.
func (q GetRevenueQuery) Period() RevenuePeriod {
	return q.period
}

// RestaurantID returns the optional restaurant scope.
func (q GetRevenueQuery) RestaurantID() *kernel.UUID {
	return q.restaurantID
}

// From returns the optional window start (inclusive, on delivery time).
func (q GetRevenueQuery) From() *time.Time {
	return q.from
}

// To returns the optional window end (exclusive, on delivery time).
func (q GetRevenueQuery) To() *time.Time {
	return q.to
}

// GetRevenueQueryResponse is one revenue bucket over delivered orders.
type GetRevenueQueryResponse struct {
	Bucket       time.Time
	OrderCount   int
	GrossRevenue kernel.Money
	DeliveryFees kernel.Money
	Discounts    kernel.Money
}
