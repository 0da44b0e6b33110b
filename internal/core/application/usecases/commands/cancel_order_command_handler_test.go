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

func TestCancelOrderCommandHandler_Handle_CustomerCancelsPaidOrder(t *testing.T) {
	ctx := t.Context()
	customerID := kernel.NewUUID()
	pending := restoreTestOrder(t, customerID, kernel.NewUUID(), order.StatusPending, nil)

	actor, err := order.NewActor(order.RoleCustomer, customerID)
	require.NoError(t, err)

	cmd, err := commands.NewCancelOrderCommand(pending.ID(), actor, "changed my mind")
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", ctx, pending.ID()).Return(pending, nil).Once(),
		repo.On("UpdateTransition", ctx, pending, order.StatusPending).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	publisher := new(MockEventPublisher)
	publisher.On("PublishOrderChanged", mock.Anything, mock.Anything).Return(nil).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCancelOrderCommandHandler(factory, publisher, discardLogger())
	require.NoError(t, h.Handle(ctx, cmd))

	require.Equal(t, order.StatusCancelled, pending.Status())
	require.Equal(t, order.PaymentStatusRefundPending, pending.PaymentStatus())
	require.NotNil(t, pending.Refund())
	require.Equal(t, pending.Fees().Total(), pending.Refund().Amount)
	require.NotNil(t, pending.Cancellation())
	require.Equal(t, "changed my mind", pending.Cancellation().Reason)

	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestCancelOrderCommandHandler_Handle_CourierMayNotCancel(t *testing.T) {
	ctx := t.Context()
	courierID := kernel.NewUUID()
	pending := restoreTestOrder(t, kernel.NewUUID(), kernel.NewUUID(), order.StatusPending, nil)

	actor, err := order.NewActor(order.RoleCourier, courierID)
	require.NoError(t, err)

	cmd, err := commands.NewCancelOrderCommand(pending.ID(), actor, "cannot reach address")
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	uow.On("Begin", ctx).Return(nil)
	uow.On("OrderRepository").Return(repo)
	uow.On("Rollback", ctx).Return(nil)
	repo.On("Get", ctx, pending.ID()).Return(pending, nil)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow)

	h := commands.NewCancelOrderCommandHandler(factory, new(MockEventPublisher), discardLogger())
	err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrForbidden)
}

func TestCancelOrderCommandHandler_Handle_TooLateToCancel(t *testing.T) {
	ctx := t.Context()
	customerID := kernel.NewUUID()
	courierID := kernel.NewUUID()
	delivering := restoreTestOrder(t, customerID, kernel.NewUUID(), order.StatusDelivering, &courierID)

	actor, err := order.NewActor(order.RoleCustomer, customerID)
	require.NoError(t, err)

	cmd, err := commands.NewCancelOrderCommand(delivering.ID(), actor, "too slow")
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	uow.On("Begin", ctx).Return(nil)
	uow.On("OrderRepository").Return(repo)
	uow.On("Rollback", ctx).Return(nil)
	repo.On("Get", ctx, delivering.ID()).Return(delivering, nil)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow)

	h := commands.NewCancelOrderCommandHandler(factory, new(MockEventPublisher), discardLogger())
	err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrInvalidTransition)
	require.Equal(t, order.StatusDelivering, delivering.Status())
}

func TestNewCancelOrderCommand_RequiresReason(t *testing.T) {
	actor, err := order.NewActor(order.RoleCustomer, kernel.NewUUID())
	require.NoError(t, err)

	_, err = commands.NewCancelOrderCommand(kernel.NewUUID(), actor, "")
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}
