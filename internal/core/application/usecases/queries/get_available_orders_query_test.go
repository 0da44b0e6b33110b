package queries_test

import (
	"testing"

	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetAvailableOrdersQuery(t *testing.T) {
	courier, err := order.NewActor(order.RoleCourier, kernel.NewUUID())
	require.NoError(t, err)

	t.Run("should accept a courier without a position", func(t *testing.T) {
		query, err := queries.NewGetAvailableOrdersQuery(courier, nil, 0)

		require.NoError(t, err)
		require.NoError(t, query.Validate())
		assert.Nil(t, query.CourierLocation())
		assert.Zero(t, query.MaxDistanceKm())
	})

	t.Run("should accept a courier with a proximity filter", func(t *testing.T) {
		location, err := kernel.NewGeoPoint(30.52, 50.45)
		require.NoError(t, err)

		query, err := queries.NewGetAvailableOrdersQuery(courier, &location, 5.0)

		require.NoError(t, err)
		assert.Equal(t, 5.0, query.MaxDistanceKm())
	})

	t.Run("should allow admins to read the feed", func(t *testing.T) {
		admin, err := order.NewActor(order.RoleAdmin, kernel.NewUUID())
		require.NoError(t, err)

		_, err = queries.NewGetAvailableOrdersQuery(admin, nil, 0)

		require.NoError(t, err)
	})

	t.Run("should forbid customers", func(t *testing.T) {
		customer, err := order.NewActor(order.RoleCustomer, kernel.NewUUID())
		require.NoError(t, err)

		_, err = queries.NewGetAvailableOrdersQuery(customer, nil, 0)

		require.ErrorIs(t, err, errs.ErrForbidden)
	})

	t.Run("should forbid restaurants", func(t *testing.T) {
		restaurant, err := order.NewActor(order.RoleRestaurant, kernel.NewUUID())
		require.NoError(t, err)

		_, err = queries.NewGetAvailableOrdersQuery(restaurant, nil, 0)

		require.ErrorIs(t, err, errs.ErrForbidden)
	})

	t.Run("should reject a negative proximity cutoff", func(t *testing.T) {
		location, err := kernel.NewGeoPoint(30.52, 50.45)
		require.NoError(t, err)

		_, err = queries.NewGetAvailableOrdersQuery(courier, &location, -1)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "maxDistanceKm")
	})

	t.Run("should reject a proximity cutoff without a position", func(t *testing.T) {
		_, err := queries.NewGetAvailableOrdersQuery(courier, nil, 5.0)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "requires the courier location")
	})
}
