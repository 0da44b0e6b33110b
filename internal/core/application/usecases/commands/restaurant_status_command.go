package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrRestaurantStatusCommandIsNotConstructed = errors.New(
	"RestaurantStatusCommand must be created via NewRestaurantStatusCommand constructor",
)

// RestaurantStatusCommand represents a restaurant advancing its order through
// the kitchen stages: Preparing and Ready.
type RestaurantStatusCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	actor   order.Actor
	target  order.Status

	guard guard.ConstructorGuard
}

// NewRestaurantStatusCommand creates a command to move an order to a
// kitchen stage. Only Preparing and Ready are accepted as targets.
func NewRestaurantStatusCommand(
	orderID kernel.UUID,
	actor order.Actor,
	target order.Status,
) (RestaurantStatusCommand, error) {
	command := RestaurantStatusCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setOrderID(orderID),
		command.setActor(actor),
		command.setTarget(target),
	); err != nil {
		return RestaurantStatusCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c RestaurantStatusCommand) Validate() error {
	return c.guard.Validate(ErrRestaurantStatusCommandIsNotConstructed)
}

// OrderID returns the order to advance.
func (c RestaurantStatusCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Actor returns the party advancing the order.
func (c RestaurantStatusCommand) Actor() order.Actor {
	return c.actor
}

// Target returns the kitchen stage to move to.
func (c RestaurantStatusCommand) Target() order.Status {
	return c.target
}

func (c *RestaurantStatusCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *RestaurantStatusCommand) setActor(actor order.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}

	c.actor = actor
	return nil
}

func (c *RestaurantStatusCommand) setTarget(target order.Status) error {
	if target != order.StatusPreparing && target != order.StatusReady {
		return errs.NewInvalidTransitionError("restaurant update", target.String())
	}

	c.target = target
	return nil
}
