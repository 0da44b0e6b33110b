package queries

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

// GetOrderQueryHandler loads one order aggregate with its lines. Unlike the
// list queries, the detail view needs the full reconstructed aggregate, so it
// goes through the repository instead of a raw projection.
type GetOrderQueryHandler struct {
	orderRepo ports.OrderRepository
}

// NewGetOrderQueryHandler creates a handler for order detail reads.
func NewGetOrderQueryHandler(orderRepo ports.OrderRepository) GetOrderQueryHandler {
	return GetOrderQueryHandler{orderRepo: orderRepo}
}

// Handle loads the order and checks that the actor participates in it.
// Returns ObjectNotFoundError when it does not exist and ForbiddenError when
// the actor is neither a participant nor privileged.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (*order.Order, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	aggregate, err := h.orderRepo.Get(ctx, query.OrderID())
	if err != nil {
		return nil, err
	}

	if err = authorizeParticipant(query.Actor(), aggregate); err != nil {
		return nil, err
	}

	return aggregate, nil
}

// authorizeParticipant permits the order's customer, restaurant, and assigned
// courier plus the privileged roles.
func authorizeParticipant(actor order.Actor, aggregate *order.Order) error {
	if participantAllowed(actor, aggregate.CustomerID(), aggregate.RestaurantID(), aggregate.Courier()) {
		return nil
	}
	return errs.NewForbiddenError("only participants of the order may view it")
}

// participantAllowed is the shared authorization predicate for order read
// views, usable from projections that carry raw identifiers instead of the
// full aggregate.
func participantAllowed(
	actor order.Actor,
	customerID kernel.UUID,
	restaurantID kernel.UUID,
	courierID *kernel.UUID,
) bool {
	switch actor.Role() {
	case order.RoleAdmin, order.RoleSystem:
		return true
	case order.RoleCustomer:
		return actor.ID().IsEqual(customerID)
	case order.RoleRestaurant:
		return actor.ID().IsEqual(restaurantID)
	case order.RoleCourier:
		return courierID != nil && actor.ID().IsEqual(*courierID)
	case order.RoleUnknown:
	}
	return false
}
