package queries_test

import (
	"context"
	"testing"
	"time"

	"fulfillment/internal/adapters/out/postgres/orderrepo"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type noopAggregateTracker struct{}

func (noopAggregateTracker) TrackAggregate(_ kernel.UUID, _ any) {}

// startOrdersDatabase boots a PostgreSQL container with the orders schema.
func startOrdersDatabase(t *testing.T) (*postgres.PostgresContainer, *gorm.DB) {
	t.Helper()
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&orderrepo.OrderDTO{}, &orderrepo.LineDTO{}))
	return container, db
}

// orderSeed describes one order row for a projection test. Zero-value fields
// fall back to sensible defaults in seedOrder.
type orderSeed struct {
	customerID   kernel.UUID
	restaurantID kernel.UUID
	courierID    *kernel.UUID
	status       order.Status

	addressLocation *kernel.GeoPoint
	courierLocation *kernel.GeoPoint

	orderTime     time.Time
	readyTime     *time.Time
	deliveredTime *time.Time

	fees *order.Fees
}

func seedGeoPoint(t *testing.T, longitude, latitude float64) kernel.GeoPoint {
	t.Helper()
	location, err := kernel.NewGeoPoint(longitude, latitude)
	require.NoError(t, err)
	return location
}

// seedOrder restores an order from the seed and persists it.
func seedOrder(t *testing.T, db *gorm.DB, seed orderSeed) *order.Order {
	t.Helper()

	if seed.customerID.Validate() != nil {
		seed.customerID = kernel.NewUUID()
	}
	if seed.restaurantID.Validate() != nil {
		seed.restaurantID = kernel.NewUUID()
	}
	if seed.orderTime.IsZero() {
		seed.orderTime = time.Now().UTC()
	}

	addressLocation := seedGeoPoint(t, 30.5234, 50.4501)
	if seed.addressLocation != nil {
		addressLocation = *seed.addressLocation
	}

	address, err := order.NewDeliveryAddress(
		"Main St", "Kyiv", "12 Main St, Kyiv", "Pat Doe", "+380501234567", addressLocation, "")
	require.NoError(t, err)

	fees := seed.fees
	if fees == nil {
		defaults, feesErr := order.NewFees(20000, 15000, 2000, 0, 1000)
		require.NoError(t, feesErr)
		fees = &defaults
	}

	line, err := order.NewLine(kernel.NewUUID(), kernel.NewUUID(), nil, 2, 10000)
	require.NoError(t, err)

	eta := seed.orderTime.Add(30 * time.Minute)
	aggregate, err := order.RestoreOrder(order.Snapshot{
		ID:           kernel.NewUUID(),
		CustomerID:   seed.customerID,
		RestaurantID: seed.restaurantID,
		CourierID:    seed.courierID,

		Address:          address,
		DistanceKm:       2.0,
		EstimatedMinutes: 30,

		PaymentMethod: order.PaymentMethodCard,
		PaymentStatus: order.PaymentStatusPaid,
		Fees:          *fees,
		Status:        seed.status,
		Timing: order.Timing{
			OrderTime:             seed.orderTime,
			EstimatedDeliveryTime: &eta,
			ReadyTime:             seed.readyTime,
			DeliveredTime:         seed.deliveredTime,
		},

		CourierLocation: seed.courierLocation,

		Lines: []*order.Line{line},
	})
	require.NoError(t, err)

	repo := orderrepo.NewGormOrderRepository(db, noopAggregateTracker{})
	require.NoError(t, repo.Add(context.Background(), aggregate))
	return aggregate
}

func mustActorFor(t *testing.T, role order.Role, id kernel.UUID) order.Actor {
	t.Helper()
	actor, err := order.NewActor(role, id)
	require.NoError(t, err)
	return actor
}
