package commands

import (
	"context"
	"log/slog"
	"time"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
)

// RestaurantStatusCommandHandler moves an order through the kitchen stages
// (Preparing, Ready) on behalf of the owning restaurant.
type RestaurantStatusCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.OrderEventPublisher
	logger     *slog.Logger
}

// NewRestaurantStatusCommandHandler creates a handler for kitchen stage updates.
func NewRestaurantStatusCommandHandler(
	uowFactory OrderUoWFactory,
	publisher ports.OrderEventPublisher,
	logger *slog.Logger,
) RestaurantStatusCommandHandler {
	return RestaurantStatusCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     logger,
	}
}

// Handle processes the kitchen stage command via a status-conditional update.
func (h *RestaurantStatusCommandHandler) Handle(ctx context.Context, cmd RestaurantStatusCommand) error {
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

	now := time.Now().UTC()
	expected := aggregate.Status()

	switch cmd.Target() { //nolint:exhaustive // the command constructor admits only these targets
	case order.StatusPreparing:
		err = aggregate.MarkPreparing(cmd.Actor(), now)
	case order.StatusReady:
		err = aggregate.MarkReady(cmd.Actor(), now)
	}
	if err != nil {
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
