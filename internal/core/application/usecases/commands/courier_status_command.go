package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrCourierStatusCommandIsNotConstructed = errors.New(
	"CourierStatusCommand must be created via NewCourierStatusCommand constructor",
)

// CourierStatusCommand represents the assigned courier advancing an order
// through the delivery stages: PickingUp, Delivering, and Delivered.
type CourierStatusCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	actor   order.Actor
	target  order.Status

	guard guard.ConstructorGuard
}

// NewCourierStatusCommand creates a command to move an order to a delivery
// stage. Only PickingUp, Delivering, and Delivered are accepted as targets.
func NewCourierStatusCommand(
	orderID kernel.UUID,
	actor order.Actor,
	target order.Status,
) (CourierStatusCommand, error) {
	command := CourierStatusCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setOrderID(orderID),
		command.setActor(actor),
		command.setTarget(target),
	); err != nil {
		return CourierStatusCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c CourierStatusCommand) Validate() error {
	return c.guard.Validate(ErrCourierStatusCommandIsNotConstructed)
}

// OrderID returns the order to advance.
func (c CourierStatusCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Actor returns the courier advancing the order.
func (c CourierStatusCommand) Actor() order.Actor {
	return c.actor
}

// Target returns the delivery stage to move to.
func (c CourierStatusCommand) Target() order.Status {
	return c.target
}

func (c *CourierStatusCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CourierStatusCommand) setActor(actor order.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}

	c.actor = actor
	return nil
}

func (c *CourierStatusCommand) setTarget(target order.Status) error {
	if target != order.StatusPickingUp && target != order.StatusDelivering && target != order.StatusDelivered {
		return errs.NewInvalidTransitionError("courier update", target.String())
	}

	c.target = target
	return nil
}
