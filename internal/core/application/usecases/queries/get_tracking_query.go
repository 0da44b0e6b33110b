package queries

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/guard"
)

var ErrGetTrackingQueryIsNotConstructed = errors.New(
	"GetTrackingQuery must be created via NewGetTrackingQuery constructor",
)

// GetTrackingQuery retrieves the live tracking view of one order: its status,
// the courier's last reported position, and the remaining distance. Only
// participants of the order and privileged roles may track it.
type GetTrackingQuery struct {
	orderID kernel.UUID
	actor   order.Actor

	guard guard.ConstructorGuard
}

// NewGetTrackingQuery creates a tracking query for an order on behalf of an actor.
func NewGetTrackingQuery(orderID kernel.UUID, actor order.Actor) (GetTrackingQuery, error) {
	if err := errors.Join(orderID.Validate(), actor.Validate()); err != nil {
		return GetTrackingQuery{}, err
	}

	return GetTrackingQuery{
		orderID: orderID,
		actor:   actor,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetTrackingQuery) Validate() error {
	return q.guard.Validate(ErrGetTrackingQueryIsNotConstructed)
}

// OrderID returns the tracked order.
func (q GetTrackingQuery) OrderID() kernel.UUID {
	return q.orderID
}

// Actor returns the party requesting the tracking view.
func (q GetTrackingQuery) Actor() order.Actor {
	return q.actor
}

// GetTrackingQueryResponse is the live tracking view of one order.
// CourierLocation and DistanceToDestinationKm stay nil until the assigned
// courier reports a position for the first time.
type GetTrackingQueryResponse struct {
	OrderID                 kernel.UUID
	Status                  order.Status
	CourierID               *kernel.UUID
	CourierLocation         *kernel.GeoPoint
	DistanceToDestinationKm *float64
	EstimatedDeliveryTime   *time.Time
}
