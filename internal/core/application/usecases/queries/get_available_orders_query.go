package queries

import (
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrGetAvailableOrdersQueryIsNotConstructed = errors.New(
	"GetAvailableOrdersQuery must be created via NewGetAvailableOrdersQuery constructor",
)

// GetAvailableOrdersQuery retrieves orders a courier can accept: confirmed or
// ready, with no courier bound yet. When the courier supplies their position,
// each row is annotated with the distance to the drop-off and rows beyond
// maxDistanceKm are filtered out. The feed is for couriers; admins and the
// system may read it too.
type GetAvailableOrdersQuery struct {
	actor           order.Actor
	courierLocation *kernel.GeoPoint
	maxDistanceKm   float64

	guard guard.ConstructorGuard
}

// NewGetAvailableOrdersQuery creates a query for acceptable orders.
// courierLocation is optional; maxDistanceKm 0 means no proximity filter and
// is only meaningful together with a location.
func NewGetAvailableOrdersQuery(
	actor order.Actor,
	courierLocation *kernel.GeoPoint,
	maxDistanceKm float64,
) (GetAvailableOrdersQuery, error) {
	if err := actor.Validate(); err != nil {
		return GetAvailableOrdersQuery{}, err
	}

	switch actor.Role() {
	case order.RoleCourier, order.RoleAdmin, order.RoleSystem:
	case order.RoleCustomer, order.RoleRestaurant, order.RoleUnknown:
		return GetAvailableOrdersQuery{}, errs.NewForbiddenError("only couriers may view the available-order feed")
	}

	if courierLocation != nil {
		if err := courierLocation.Validate(); err != nil {
			return GetAvailableOrdersQuery{}, err
		}
	}

	if maxDistanceKm < 0 {
		return GetAvailableOrdersQuery{}, errs.NewValueIsInvalidErrorWithCause("maxDistanceKm",
			fmt.Errorf("%f is negative", maxDistanceKm))
	}

	if maxDistanceKm > 0 && courierLocation == nil {
		return GetAvailableOrdersQuery{}, errs.NewValueIsInvalidErrorWithCause("maxDistanceKm",
			fmt.Errorf("a proximity filter requires the courier location"))
	}

	return GetAvailableOrdersQuery{
		actor:           actor,
		courierLocation: courierLocation,
		maxDistanceKm:   maxDistanceKm,
		guard:           guard.NewConstructorGuard(),
	}, nil
}

// Actor returns the party requesting the feed.
func (q GetAvailableOrdersQuery) Actor() order.Actor {
	return q.actor
}

// Validate ensures the query was created through the constructor.
func (q GetAvailableOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetAvailableOrdersQueryIsNotConstructed)
}

// CourierLocation returns the courier's position, nil when not supplied.
func (q GetAvailableOrdersQuery) CourierLocation() *kernel.GeoPoint {
	return q.courierLocation
}

// MaxDistanceKm returns the proximity cutoff, 0 when unfiltered.
func (q GetAvailableOrdersQuery) MaxDistanceKm() float64 {
	return q.maxDistanceKm
}

// GetAvailableOrdersQueryResponse is one acceptable order from a courier's
// point of view. DistanceKm is the courier-to-drop-off distance, nil when the
// courier supplied no position.
type GetAvailableOrdersQueryResponse struct {
	ID           kernel.UUID
	RestaurantID kernel.UUID
	Status       order.Status
	FullAddress  string
	Location     kernel.GeoPoint
	DeliveryFee  kernel.Money
	ReadyTime    *time.Time
	DistanceKm   *float64
}
