package commands

import (
	"context"
	"time"
)

// ProcessRefundCommandHandler settles the pending refund of one cancelled
// paid order.
type ProcessRefundCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewProcessRefundCommandHandler creates a handler for single refund settlement.
func NewProcessRefundCommandHandler(uowFactory OrderUoWFactory) ProcessRefundCommandHandler {
	return ProcessRefundCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the refund settlement command.
func (h *ProcessRefundCommandHandler) Handle(ctx context.Context, cmd ProcessRefundCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = aggregate.MarkRefunded(cmd.Actor(), time.Now().UTC()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
