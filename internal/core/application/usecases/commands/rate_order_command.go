package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrRateOrderCommandIsNotConstructed = errors.New(
	"RateOrderCommand must be created via NewRateOrderCommand constructor",
)

// RateOrderCommand represents the customer rating a delivered order.
type RateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	actor   order.Actor
	rating  int

	guard guard.ConstructorGuard
}

// NewRateOrderCommand creates a command to rate a delivered order.
func NewRateOrderCommand(orderID kernel.UUID, actor order.Actor, rating int) (RateOrderCommand, error) {
	command := RateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setOrderID(orderID),
		command.setActor(actor),
		command.setRating(rating),
	); err != nil {
		return RateOrderCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c RateOrderCommand) Validate() error {
	return c.guard.Validate(ErrRateOrderCommandIsNotConstructed)
}

// OrderID returns the order to rate.
func (c RateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Actor returns the rating customer.
func (c RateOrderCommand) Actor() order.Actor {
	return c.actor
}

// Rating returns the rating value.
func (c RateOrderCommand) Rating() int {
	return c.rating
}

func (c *RateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *RateOrderCommand) setActor(actor order.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}

	c.actor = actor
	return nil
}

func (c *RateOrderCommand) setRating(rating int) error {
	if rating < order.MinRating || rating > order.MaxRating {
		return errs.NewValueIsOutOfRangeError("rating", rating, order.MinRating, order.MaxRating)
	}

	c.rating = rating
	return nil
}
