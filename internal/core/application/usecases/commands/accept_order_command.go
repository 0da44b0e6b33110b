package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrAcceptOrderCommandIsNotConstructed = errors.New(
	"AcceptOrderCommand must be created via NewAcceptOrderCommand or NewAssignOrderCommand constructors",
)

// AcceptOrderCommand represents binding a courier to an order: either a
// courier accepting it for themselves, or an admin assigning a specific
// courier. At most one courier ever wins an order; concurrent acceptance is
// resolved by a conditional update in the storage layer.
type AcceptOrderCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	actor     order.Actor
	courierID kernel.UUID

	guard guard.ConstructorGuard
}

// NewAcceptOrderCommand creates a command for a courier accepting an order.
// The courier binds themselves; the actor must carry the courier role.
func NewAcceptOrderCommand(orderID kernel.UUID, actor order.Actor) (AcceptOrderCommand, error) {
	command := AcceptOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setOrderID(orderID),
		command.setActor(actor),
	); err != nil {
		return AcceptOrderCommand{}, err
	}

	if actor.Role() != order.RoleCourier {
		return AcceptOrderCommand{}, errs.NewForbiddenError("only couriers may accept orders")
	}

	command.courierID = actor.ID()
	return command, nil
}

// NewAssignOrderCommand creates a command for an admin assigning a specific
// courier to an order.
func NewAssignOrderCommand(
	orderID kernel.UUID,
	actor order.Actor,
	courierID kernel.UUID,
) (AcceptOrderCommand, error) {
	command := AcceptOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setOrderID(orderID),
		command.setActor(actor),
		command.setCourierID(courierID),
	); err != nil {
		return AcceptOrderCommand{}, err
	}

	if actor.Role() != order.RoleAdmin && actor.Role() != order.RoleSystem {
		return AcceptOrderCommand{}, errs.NewForbiddenError("only admins may assign couriers")
	}

	return command, nil
}

// Validate ensures the command was created through a constructor.
func (c AcceptOrderCommand) Validate() error {
	return c.guard.Validate(ErrAcceptOrderCommandIsNotConstructed)
}

// OrderID returns the order to bind.
func (c AcceptOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Actor returns the party performing the binding.
func (c AcceptOrderCommand) Actor() order.Actor {
	return c.actor
}

// CourierID returns the courier to bind.
func (c AcceptOrderCommand) CourierID() kernel.UUID {
	return c.courierID
}

func (c *AcceptOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *AcceptOrderCommand) setActor(actor order.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}

	c.actor = actor
	return nil
}

func (c *AcceptOrderCommand) setCourierID(courierID kernel.UUID) error {
	if err := courierID.Validate(); err != nil {
		return err
	}

	c.courierID = courierID
	return nil
}
