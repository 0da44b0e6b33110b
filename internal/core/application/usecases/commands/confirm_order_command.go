package commands

import (
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrConfirmOrderCommandIsNotConstructed = errors.New(
	"ConfirmOrderCommand must be created via NewConfirmOrderCommand constructor",
)

// ConfirmOrderCommand represents a restaurant accepting a pending order,
// optionally declaring its preparation time and a note for the customer.
type ConfirmOrderCommand struct { //nolint:recvcheck //using for validation
	orderID     kernel.UUID
	actor       order.Actor
	prepMinutes int
	note        string

	guard guard.ConstructorGuard
}

// NewConfirmOrderCommand creates a command to confirm a pending order.
// prepMinutes of 0 means the restaurant declared no preparation time and the
// default applies; negative values are rejected.
func NewConfirmOrderCommand(
	orderID kernel.UUID,
	actor order.Actor,
	prepMinutes int,
	note string,
) (ConfirmOrderCommand, error) {
	command := ConfirmOrderCommand{
		note:  note,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setOrderID(orderID),
		command.setActor(actor),
		command.setPrepMinutes(prepMinutes),
	); err != nil {
		return ConfirmOrderCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c ConfirmOrderCommand) Validate() error {
	return c.guard.Validate(ErrConfirmOrderCommandIsNotConstructed)
}

// OrderID returns the order to confirm.
func (c ConfirmOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Actor returns the party confirming the order.
func (c ConfirmOrderCommand) Actor() order.Actor {
	return c.actor
}

// PrepMinutes returns the declared preparation time, 0 when undeclared.
func (c ConfirmOrderCommand) PrepMinutes() int {
	return c.prepMinutes
}

// Note returns the restaurant's note to the customer.
func (c ConfirmOrderCommand) Note() string {
	return c.note
}

func (c *ConfirmOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *ConfirmOrderCommand) setActor(actor order.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}

	c.actor = actor
	return nil
}

func (c *ConfirmOrderCommand) setPrepMinutes(prepMinutes int) error {
	if prepMinutes < 0 {
		return errs.NewValueIsInvalidErrorWithCause("prepMinutes",
			fmt.Errorf("%d is negative", prepMinutes))
	}

	c.prepMinutes = prepMinutes
	return nil
}
