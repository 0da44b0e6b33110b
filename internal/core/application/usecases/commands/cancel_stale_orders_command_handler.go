package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

// staleCancellationReason is recorded on every order the sweep cancels.
const staleCancellationReason = "order was not confirmed in time"

// CancelStaleOrdersCommandHandler cancels pending orders that no restaurant
// confirmed within the allowed window. Runs as a system actor from the
// reconciliation job.
type CancelStaleOrdersCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.OrderEventPublisher
	logger     *slog.Logger
}

// NewCancelStaleOrdersCommandHandler creates a handler for the stale-order sweep.
func NewCancelStaleOrdersCommandHandler(
	uowFactory OrderUoWFactory,
	publisher ports.OrderEventPublisher,
	logger *slog.Logger,
) CancelStaleOrdersCommandHandler {
	return CancelStaleOrdersCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     logger,
	}
}

// Handle cancels every pending order older than the command's age limit.
// Each cancellation goes through a status-conditional update, so an order
// confirmed between the read and the write is left alone rather than clobbered.
// Returns the number of orders cancelled.
func (h *CancelStaleOrdersCommandHandler) Handle(ctx context.Context, cmd CancelStaleOrdersCommand) (int, error) {
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

	now := time.Now().UTC()
	orderRepo := uow.OrderRepository()

	stale, err := orderRepo.GetStalePending(ctx, now.Add(-cmd.MaxPendingAge()))
	if err != nil {
		return 0, err
	}

	actor := order.NewSystemActor()
	cancelled := make([]*order.Order, 0, len(stale))

	for _, aggregate := range stale {
		expected := aggregate.Status()
		if err = aggregate.Cancel(actor, staleCancellationReason, now); err != nil {
			return 0, err
		}

		if err = orderRepo.UpdateTransition(ctx, aggregate, expected); err != nil {
			// confirmed between our read and this write; skip it and keep sweeping
			if errors.Is(err, errs.ErrInvalidTransition) {
				h.logger.InfoContext(ctx, "Skipping stale order confirmed during sweep",
					"order_id", aggregate.ID().String())
				continue
			}
			return 0, err
		}

		cancelled = append(cancelled, aggregate)
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	for _, aggregate := range cancelled {
		publishOrderChanged(ctx, h.publisher, h.logger, aggregate)
	}

	return len(cancelled), nil
}
