package commands

import (
	"context"
)

// UpdateLocationCommandHandler records the assigned courier's position on the
// order. The aggregate validates the reporter and the lifecycle stage; the
// write itself touches only the position columns, last write wins, so a
// position report can never overwrite a status transition committed between
// our read and our write.
type UpdateLocationCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewUpdateLocationCommandHandler creates a handler for courier location updates.
func NewUpdateLocationCommandHandler(uowFactory OrderUoWFactory) UpdateLocationCommandHandler {
	return UpdateLocationCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the location update command.
func (h *UpdateLocationCommandHandler) Handle(ctx context.Context, cmd UpdateLocationCommand) error {
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

	if err = aggregate.UpdateCourierLocation(cmd.Actor(), cmd.Location()); err != nil {
		return err
	}

	if err = orderRepo.UpdateCourierLocation(ctx, cmd.OrderID(), cmd.Location()); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
