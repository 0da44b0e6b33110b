package commands_test

import (
	"context"
	"testing"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/cart"
	"fulfillment/internal/core/domain/model/catalog"
	"fulfillment/internal/core/domain/model/courier"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) UpdateCourierLocation(
	ctx context.Context,
	orderID kernel.UUID,
	location kernel.GeoPoint,
) error {
	args := m.Called(ctx, orderID, location)
	return args.Error(0)
}

func (m *MockOrderRepository) UpdateTransition(ctx context.Context, o *order.Order, expected order.Status) error {
	args := m.Called(ctx, o, expected)
	return args.Error(0)
}

func (m *MockOrderRepository) AssignToCourier(
	ctx context.Context,
	orderID kernel.UUID,
	courierID kernel.UUID,
	at time.Time,
) error {
	args := m.Called(ctx, orderID, courierID, at)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetStalePending(ctx context.Context, cutoff time.Time) ([]*order.Order, error) {
	args := m.Called(ctx, cutoff)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetRefundPending(ctx context.Context) ([]*order.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

type MockCartRepository struct{ mock.Mock }

func (m *MockCartRepository) GetLines(
	ctx context.Context,
	customerID kernel.UUID,
	lineIDs []kernel.UUID,
) ([]cart.Line, error) {
	args := m.Called(ctx, customerID, lineIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]cart.Line), args.Error(1)
}

func (m *MockCartRepository) GetRestaurantLines(
	ctx context.Context,
	customerID kernel.UUID,
	restaurantID kernel.UUID,
) ([]cart.Line, error) {
	args := m.Called(ctx, customerID, restaurantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]cart.Line), args.Error(1)
}

func (m *MockCartRepository) DeleteLines(ctx context.Context, lineIDs []kernel.UUID) error {
	args := m.Called(ctx, lineIDs)
	return args.Error(0)
}

type MockOrderUoW struct{ mock.Mock }

func (m *MockOrderUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockUoW struct{ MockOrderUoW }

func (m *MockUoW) CartRepository() ports.CartRepository {
	args := m.Called()
	return args.Get(0).(ports.CartRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockMenuCatalog struct{ mock.Mock }

func (m *MockMenuCatalog) MenuItems(
	ctx context.Context,
	ids []kernel.UUID,
) (map[kernel.UUID]catalog.MenuItem, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[kernel.UUID]catalog.MenuItem), args.Error(1)
}

func (m *MockMenuCatalog) Options(
	ctx context.Context,
	ids []kernel.UUID,
) (map[kernel.UUID]catalog.Option, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[kernel.UUID]catalog.Option), args.Error(1)
}

type MockRestaurantCatalog struct{ mock.Mock }

func (m *MockRestaurantCatalog) Restaurant(ctx context.Context, id kernel.UUID) (catalog.Restaurant, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(catalog.Restaurant), args.Error(1)
}

type MockCouponEvaluator struct{ mock.Mock }

func (m *MockCouponEvaluator) Evaluate(
	ctx context.Context,
	code string,
	restaurantID kernel.UUID,
	subtotal kernel.Money,
) (kernel.Money, error) {
	args := m.Called(ctx, code, restaurantID, subtotal)
	return args.Get(0).(kernel.Money), args.Error(1)
}

type MockCourierRegistry struct{ mock.Mock }

func (m *MockCourierRegistry) Get(ctx context.Context, id kernel.UUID) (courier.Courier, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(courier.Courier), args.Error(1)
}

type MockEventPublisher struct{ mock.Mock }

func (m *MockEventPublisher) PublishOrderChanged(ctx context.Context, event ports.OrderChangedEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

// testAddress builds a valid delivery address near the test restaurant.
func testAddress(t *testing.T) order.DeliveryAddress {
	t.Helper()

	location, err := kernel.NewGeoPoint(30.5234, 50.4501)
	require.NoError(t, err)

	address, err := order.NewDeliveryAddress(
		"Main St", "Kyiv", "12 Main St, Kyiv", "Pat Doe", "+380501234567", location, "")
	require.NoError(t, err)

	return address
}

// testFees builds the fee breakdown matching a 20000 subtotal within the base
// delivery distance.
func testFees(t *testing.T) order.Fees {
	t.Helper()

	fees, err := order.NewFees(20000, 15000, 2000, 0, 1000)
	require.NoError(t, err)
	return fees
}

// restoreTestOrder builds an order in the given status via a snapshot,
// optionally with an assigned courier.
func restoreTestOrder(
	t *testing.T,
	customerID kernel.UUID,
	restaurantID kernel.UUID,
	status order.Status,
	courierID *kernel.UUID,
) *order.Order {
	t.Helper()

	line, err := order.NewLine(kernel.NewUUID(), kernel.NewUUID(), nil, 2, 10000)
	require.NoError(t, err)

	now := time.Now().UTC()
	aggregate, err := order.RestoreOrder(order.Snapshot{
		ID:               kernel.NewUUID(),
		CustomerID:       customerID,
		RestaurantID:     restaurantID,
		CourierID:        courierID,
		Address:          testAddress(t),
		DistanceKm:       2.0,
		EstimatedMinutes: 30,
		PaymentMethod:    order.PaymentMethodCard,
		PaymentStatus:    order.PaymentStatusPaid,
		Fees:             testFees(t),
		Status:           status,
		Timing:           order.Timing{OrderTime: now},
		Lines:            []*order.Line{line},
	})
	require.NoError(t, err)

	return aggregate
}
