package commands

import (
	"context"
)

// RateOrderCommandHandler records the customer's rating on a delivered order.
type RateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewRateOrderCommandHandler creates a handler for order rating.
func NewRateOrderCommandHandler(uowFactory OrderUoWFactory) RateOrderCommandHandler {
	return RateOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the rating command. The aggregate enforces that only the
// ordering customer may rate, only after delivery, and only once.
func (h *RateOrderCommandHandler) Handle(ctx context.Context, cmd RateOrderCommand) error {
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

	if err = aggregate.Rate(cmd.Actor(), cmd.Rating()); err != nil {
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
