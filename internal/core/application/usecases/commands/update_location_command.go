package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/guard"
)

var ErrUpdateLocationCommandIsNotConstructed = errors.New(
	"UpdateLocationCommand must be created via NewUpdateLocationCommand constructor",
)

// UpdateLocationCommand represents the assigned courier reporting their
// current position for live tracking.
type UpdateLocationCommand struct { //nolint:recvcheck //using for validation
	orderID  kernel.UUID
	actor    order.Actor
	location kernel.GeoPoint

	guard guard.ConstructorGuard
}

// NewUpdateLocationCommand creates a command to record a courier position.
func NewUpdateLocationCommand(
	orderID kernel.UUID,
	actor order.Actor,
	location kernel.GeoPoint,
) (UpdateLocationCommand, error) {
	command := UpdateLocationCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setOrderID(orderID),
		command.setActor(actor),
		command.setLocation(location),
	); err != nil {
		return UpdateLocationCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateLocationCommand) Validate() error {
	return c.guard.Validate(ErrUpdateLocationCommandIsNotConstructed)
}

// OrderID returns the order being tracked.
func (c UpdateLocationCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Actor returns the reporting courier.
func (c UpdateLocationCommand) Actor() order.Actor {
	return c.actor
}

// Location returns the reported position.
func (c UpdateLocationCommand) Location() kernel.GeoPoint {
	return c.location
}

func (c *UpdateLocationCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *UpdateLocationCommand) setActor(actor order.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}

	c.actor = actor
	return nil
}

func (c *UpdateLocationCommand) setLocation(location kernel.GeoPoint) error {
	if err := location.Validate(); err != nil {
		return err
	}

	c.location = location
	return nil
}
