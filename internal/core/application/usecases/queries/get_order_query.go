package queries

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/guard"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery retrieves the full detail of one order on behalf of an actor.
// Only participants of the order (and privileged roles) may read it.
type GetOrderQuery struct {
	orderID kernel.UUID
	actor   order.Actor

	guard guard.ConstructorGuard
}

// NewGetOrderQuery creates a query for one order's detail.
func NewGetOrderQuery(orderID kernel.UUID, actor order.Actor) (GetOrderQuery, error) {
	if err := errors.Join(orderID.Validate(), actor.Validate()); err != nil {
		return GetOrderQuery{}, err
	}

	return GetOrderQuery{
		orderID: orderID,
		actor:   actor,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

// OrderID returns the requested order.
func (q GetOrderQuery) OrderID() kernel.UUID {
	return q.orderID
}

// Actor returns the party requesting the detail.
func (q GetOrderQuery) Actor() order.Actor {
	return q.actor
}
