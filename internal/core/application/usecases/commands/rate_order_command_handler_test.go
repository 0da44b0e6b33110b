package commands_test

import (
	"testing"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestRateOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	customerID := kernel.NewUUID()
	courierID := kernel.NewUUID()
	delivered := restoreTestOrder(t, customerID, kernel.NewUUID(), order.StatusDelivered, &courierID)

	actor, err := order.NewActor(order.RoleCustomer, customerID)
	require.NoError(t, err)

	cmd, err := commands.NewRateOrderCommand(delivered.ID(), actor, 5)
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", ctx, delivered.ID()).Return(delivered, nil).Once(),
		repo.On("Update", ctx, delivered).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewRateOrderCommandHandler(factory)
	require.NoError(t, h.Handle(ctx, cmd))

	require.NotNil(t, delivered.Rating())
	require.Equal(t, 5, *delivered.Rating())
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestRateOrderCommandHandler_Handle_SecondRatingConflicts(t *testing.T) {
	ctx := t.Context()
	customerID := kernel.NewUUID()
	courierID := kernel.NewUUID()
	delivered := restoreTestOrder(t, customerID, kernel.NewUUID(), order.StatusDelivered, &courierID)

	actor, err := order.NewActor(order.RoleCustomer, customerID)
	require.NoError(t, err)
	require.NoError(t, delivered.Rate(actor, 4))

	cmd, err := commands.NewRateOrderCommand(delivered.ID(), actor, 5)
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	uow.On("Begin", ctx).Return(nil)
	uow.On("OrderRepository").Return(repo)
	uow.On("Rollback", ctx).Return(nil)
	repo.On("Get", ctx, delivered.ID()).Return(delivered, nil)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow)

	h := commands.NewRateOrderCommandHandler(factory)
	err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrConflict)
	require.Equal(t, 4, *delivered.Rating())
}

func TestNewRateOrderCommand_RejectsOutOfRangeRating(t *testing.T) {
	actor, err := order.NewActor(order.RoleCustomer, kernel.NewUUID())
	require.NoError(t, err)

	_, err = commands.NewRateOrderCommand(kernel.NewUUID(), actor, 0)
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)

	_, err = commands.NewRateOrderCommand(kernel.NewUUID(), actor, 6)
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
}
