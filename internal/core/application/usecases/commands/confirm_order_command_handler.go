package commands

import (
	"context"
	"log/slog"
	"time"

	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
)

// ConfirmOrderCommandHandler moves a pending order to Confirmed on behalf of
// the owning restaurant and re-derives the delivery estimate from the declared
// preparation time.
type ConfirmOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.OrderEventPublisher
	logger     *slog.Logger
	pricing    services.PricingEngine
}

// NewConfirmOrderCommandHandler creates a handler for order confirmation.
func NewConfirmOrderCommandHandler(
	uowFactory OrderUoWFactory,
	publisher ports.OrderEventPublisher,
	logger *slog.Logger,
) ConfirmOrderCommandHandler {
	return ConfirmOrderCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     logger,
		pricing:    services.NewPricingEngine(),
	}
}

// Handle processes the confirmation command. The write goes through a
// status-conditional update so a concurrent cancellation wins over a late
// confirmation rather than being silently overwritten.
func (h *ConfirmOrderCommandHandler) Handle(ctx context.Context, cmd ConfirmOrderCommand) error {
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

	prepMinutes := cmd.PrepMinutes()
	if prepMinutes == 0 {
		prepMinutes = services.DefaultPrepMinutes
	}

	now := time.Now().UTC()
	eta := h.pricing.EstimatedDeliveryTime(now, aggregate.DistanceKm(), prepMinutes)

	expected := aggregate.Status()
	if err = aggregate.Confirm(cmd.Actor(), prepMinutes, cmd.Note(), eta, now); err != nil {
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
