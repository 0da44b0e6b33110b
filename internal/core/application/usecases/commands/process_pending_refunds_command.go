package commands

import (
	"errors"

	"fulfillment/internal/pkg/guard"
)

var ErrProcessPendingRefundsCommandIsNotConstructed = errors.New(
	"ProcessPendingRefundsCommand must be created via NewProcessPendingRefundsCommand constructor",
)

// ProcessPendingRefundsCommand represents the periodic sweep that settles all
// refunds enqueued by cancellations of paid orders.
type ProcessPendingRefundsCommand struct { //nolint:recvcheck //using for validation
	guard guard.ConstructorGuard
}

// NewProcessPendingRefundsCommand creates a command to settle all pending refunds.
func NewProcessPendingRefundsCommand() ProcessPendingRefundsCommand {
	return ProcessPendingRefundsCommand{
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
func (c ProcessPendingRefundsCommand) Validate() error {
	return c.guard.Validate(ErrProcessPendingRefundsCommandIsNotConstructed)
}
