package commands_test

import (
	"testing"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestConfirmOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	customerID := kernel.NewUUID()
	restaurantID := kernel.NewUUID()
	pending := restoreTestOrder(t, customerID, restaurantID, order.StatusPending, nil)

	actor, err := order.NewActor(order.RoleRestaurant, restaurantID)
	require.NoError(t, err)

	cmd, err := commands.NewConfirmOrderCommand(pending.ID(), actor, 25, "extra sauce packed")
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
	publisher.On("PublishOrderChanged", mock.Anything, mock.AnythingOfType("ports.OrderChangedEvent")).
		Return(nil).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewConfirmOrderCommandHandler(factory, publisher, discardLogger())
	require.NoError(t, h.Handle(ctx, cmd))

	require.Equal(t, order.StatusConfirmed, pending.Status())
	require.Equal(t, 25, pending.PrepMinutes())
	require.Equal(t, "extra sauce packed", pending.RestaurantNote())
	require.NotNil(t, pending.Timing().ConfirmedTime)

	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestConfirmOrderCommandHandler_Handle_DefaultsPrepMinutes(t *testing.T) {
	ctx := t.Context()
	restaurantID := kernel.NewUUID()
	pending := restoreTestOrder(t, kernel.NewUUID(), restaurantID, order.StatusPending, nil)

	actor, err := order.NewActor(order.RoleRestaurant, restaurantID)
	require.NoError(t, err)

	cmd, err := commands.NewConfirmOrderCommand(pending.ID(), actor, 0, "")
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	uow.On("Begin", ctx).Return(nil)
	uow.On("OrderRepository").Return(repo)
	uow.On("Commit", ctx).Return(nil)
	uow.On("Rollback", ctx).Return(nil)
	repo.On("Get", ctx, pending.ID()).Return(pending, nil)
	repo.On("UpdateTransition", ctx, pending, order.StatusPending).Return(nil)

	publisher := new(MockEventPublisher)
	publisher.On("PublishOrderChanged", mock.Anything, mock.Anything).Return(nil)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow)

	h := commands.NewConfirmOrderCommandHandler(factory, publisher, discardLogger())
	require.NoError(t, h.Handle(ctx, cmd))
	require.Equal(t, services.DefaultPrepMinutes, pending.PrepMinutes())
}

func TestConfirmOrderCommandHandler_Handle_WrongRestaurant(t *testing.T) {
	ctx := t.Context()
	pending := restoreTestOrder(t, kernel.NewUUID(), kernel.NewUUID(), order.StatusPending, nil)

	actor, err := order.NewActor(order.RoleRestaurant, kernel.NewUUID())
	require.NoError(t, err)

	cmd, err := commands.NewConfirmOrderCommand(pending.ID(), actor, 15, "")
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	uow.On("Begin", ctx).Return(nil)
	uow.On("OrderRepository").Return(repo)
	uow.On("Rollback", ctx).Return(nil)
	repo.On("Get", ctx, pending.ID()).Return(pending, nil)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow)

	h := commands.NewConfirmOrderCommandHandler(factory, new(MockEventPublisher), discardLogger())
	err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrForbidden)
	require.Equal(t, order.StatusPending, pending.Status())
	repo.AssertNotCalled(t, "UpdateTransition", mock.Anything, mock.Anything, mock.Anything)
}

func TestConfirmOrderCommandHandler_Handle_AlreadyConfirmed(t *testing.T) {
	ctx := t.Context()
	restaurantID := kernel.NewUUID()
	confirmed := restoreTestOrder(t, kernel.NewUUID(), restaurantID, order.StatusConfirmed, nil)

	actor, err := order.NewActor(order.RoleRestaurant, restaurantID)
	require.NoError(t, err)

	cmd, err := commands.NewConfirmOrderCommand(confirmed.ID(), actor, 15, "")
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	uow.On("Begin", ctx).Return(nil)
	uow.On("OrderRepository").Return(repo)
	uow.On("Rollback", ctx).Return(nil)
	repo.On("Get", ctx, confirmed.ID()).Return(confirmed, nil)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow)

	h := commands.NewConfirmOrderCommandHandler(factory, new(MockEventPublisher), discardLogger())
	err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrInvalidTransition)
}
