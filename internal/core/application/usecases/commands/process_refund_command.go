package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrProcessRefundCommandIsNotConstructed = errors.New(
	"ProcessRefundCommand must be created via NewProcessRefundCommand constructor",
)

// ProcessRefundCommand represents an admin settling the pending refund of a
// cancelled paid order.
type ProcessRefundCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	actor   order.Actor

	guard guard.ConstructorGuard
}

// NewProcessRefundCommand creates a command to settle a pending refund.
func NewProcessRefundCommand(orderID kernel.UUID, actor order.Actor) (ProcessRefundCommand, error) {
	command := ProcessRefundCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setOrderID(orderID),
		command.setActor(actor),
	); err != nil {
		return ProcessRefundCommand{}, err
	}

	if actor.Role() != order.RoleAdmin && actor.Role() != order.RoleSystem {
		return ProcessRefundCommand{}, errs.NewForbiddenError("only admins may process refunds")
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c ProcessRefundCommand) Validate() error {
	return c.guard.Validate(ErrProcessRefundCommandIsNotConstructed)
}

// OrderID returns the order whose refund is settled.
func (c ProcessRefundCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Actor returns the party settling the refund.
func (c ProcessRefundCommand) Actor() order.Actor {
	return c.actor
}

func (c *ProcessRefundCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *ProcessRefundCommand) setActor(actor order.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}

	c.actor = actor
	return nil
}
