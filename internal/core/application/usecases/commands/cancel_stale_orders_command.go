package commands

import (
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrCancelStaleOrdersCommandIsNotConstructed = errors.New(
	"CancelStaleOrdersCommand must be created via NewCancelStaleOrdersCommand constructor",
)

// CancelStaleOrdersCommand represents the periodic sweep that cancels orders
// left in Pending because no restaurant confirmed them in time.
type CancelStaleOrdersCommand struct { //nolint:recvcheck //using for validation
	maxPendingAge time.Duration

	guard guard.ConstructorGuard
}

// NewCancelStaleOrdersCommand creates a command to cancel pending orders
// older than maxPendingAge.
func NewCancelStaleOrdersCommand(maxPendingAge time.Duration) (CancelStaleOrdersCommand, error) {
	if maxPendingAge <= 0 {
		return CancelStaleOrdersCommand{}, errs.NewValueIsInvalidErrorWithCause("maxPendingAge",
			fmt.Errorf("%s is not greater than 0", maxPendingAge))
	}

	return CancelStaleOrdersCommand{
		maxPendingAge: maxPendingAge,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c CancelStaleOrdersCommand) Validate() error {
	return c.guard.Validate(ErrCancelStaleOrdersCommandIsNotConstructed)
}

// MaxPendingAge returns how long an order may stay Pending before the sweep
// cancels it.
func (c CancelStaleOrdersCommand) MaxPendingAge() time.Duration {
	return c.maxPendingAge
}
