package commands

import (
	"context"
	"log/slog"
	"time"

	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

// AcceptOrderCommandHandler exclusively binds a courier to an order.
//
// Exclusivity is not decided by this handler: the repository performs a single
// conditional update that sets the courier only if none is set and the status
// still allows assignment. Under concurrent acceptance exactly one caller
// succeeds and the rest receive ConflictError.
type AcceptOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	couriers   ports.CourierRegistry
	publisher  ports.OrderEventPublisher
	logger     *slog.Logger
}

// NewAcceptOrderCommandHandler creates a handler for courier acceptance and
// admin assignment.
func NewAcceptOrderCommandHandler(
	uowFactory OrderUoWFactory,
	couriers ports.CourierRegistry,
	publisher ports.OrderEventPublisher,
	logger *slog.Logger,
) AcceptOrderCommandHandler {
	return AcceptOrderCommandHandler{
		uowFactory: uowFactory,
		couriers:   couriers,
		publisher:  publisher,
		logger:     logger,
	}
}

// Handle processes the acceptance command. The courier must exist in the
// roster and be online; the binding itself is one conditional update.
func (h *AcceptOrderCommandHandler) Handle(ctx context.Context, cmd AcceptOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	courier, err := h.couriers.Get(ctx, cmd.CourierID())
	if err != nil {
		return err
	}
	if !courier.Online {
		return errs.NewConflictError("courier is not online")
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	if err = orderRepo.AssignToCourier(ctx, cmd.OrderID(), cmd.CourierID(), time.Now().UTC()); err != nil {
		return err
	}

	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	publishOrderChanged(ctx, h.publisher, h.logger, aggregate)
	return nil
}
