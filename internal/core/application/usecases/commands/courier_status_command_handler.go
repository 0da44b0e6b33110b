package commands

import (
	"context"
	"log/slog"
	"time"

	"fulfillment/internal/core/ports"
)

// CourierStatusCommandHandler moves an order through the delivery stages on
// behalf of the assigned courier.
type CourierStatusCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.OrderEventPublisher
	logger     *slog.Logger
}

// NewCourierStatusCommandHandler creates a handler for delivery stage updates.
func NewCourierStatusCommandHandler(
	uowFactory OrderUoWFactory,
	publisher ports.OrderEventPublisher,
	logger *slog.Logger,
) CourierStatusCommandHandler {
	return CourierStatusCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     logger,
	}
}

// Handle processes the delivery stage command via a status-conditional update.
func (h *CourierStatusCommandHandler) Handle(ctx context.Context, cmd CourierStatusCommand) error {
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
	if err = aggregate.AdvanceByCourier(cmd.Actor(), cmd.Target(), time.Now().UTC()); err != nil {
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
