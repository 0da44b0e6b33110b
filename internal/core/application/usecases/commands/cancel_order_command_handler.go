package commands

import (
	"context"
	"log/slog"
	"time"

	"fulfillment/internal/core/ports"
)

// CancelOrderCommandHandler cancels an order before pickup. Cancelling a paid
// order also enqueues a refund, which the refund worker later settles.
type CancelOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.OrderEventPublisher
	logger     *slog.Logger
}

// NewCancelOrderCommandHandler creates a handler for order cancellation.
func NewCancelOrderCommandHandler(
	uowFactory OrderUoWFactory,
	publisher ports.OrderEventPublisher,
	logger *slog.Logger,
) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     logger,
	}
}

// Handle processes the cancellation command via a status-conditional update,
// so a cancellation racing a courier acceptance cannot strand an assigned order.
func (h *CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) error {
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

	expected := aggregate.Status()
	if err = aggregate.Cancel(cmd.Actor(), cmd.Reason(), time.Now().UTC()); err != nil {
		return err
	}

	if err = orderRepo.UpdateTransition(ctx, aggregate, expected); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	publishOrderChanged(ctx, h.publisher, h.logger, aggregate)
	return nil
}
