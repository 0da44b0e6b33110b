package commands

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/order"
)

// ProcessPendingRefundsCommandHandler settles every refund enqueued by
// cancellations of paid orders. Runs as a system actor from the refund job.
type ProcessPendingRefundsCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewProcessPendingRefundsCommandHandler creates a handler for the refund sweep.
func NewProcessPendingRefundsCommandHandler(uowFactory OrderUoWFactory) ProcessPendingRefundsCommandHandler {
	return ProcessPendingRefundsCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle settles all pending refunds in one transaction and returns how many
// were processed.
func (h *ProcessPendingRefundsCommandHandler) Handle(
	ctx context.Context,
	cmd ProcessPendingRefundsCommand,
) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	pending, err := orderRepo.GetRefundPending(ctx)
	if err != nil {
		return 0, err
	}

	now := time.Now().UTC()
	actor := order.NewSystemActor()

	for _, aggregate := range pending {
		if err = aggregate.MarkRefunded(actor, now); err != nil {
			return 0, err
		}

		if err = orderRepo.Update(ctx, aggregate); err != nil {
			return 0, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return len(pending), nil
}
