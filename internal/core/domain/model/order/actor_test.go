package order_test

import (
	"testing"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoleFromString(t *testing.T) {
	t.Run("should parse every role", func(t *testing.T) {
		cases := map[string]order.Role{
			"customer":   order.RoleCustomer,
			"restaurant": order.RoleRestaurant,
			"courier":    order.RoleCourier,
			"admin":      order.RoleAdmin,
			"system":     order.RoleSystem,
		}

		for wire, want := range cases {
			got, err := order.RoleFromString(wire)
			require.NoError(t, err, wire)
			assert.Equal(t, want, got, wire)
		}
	})

	t.Run("should reject unrecognized values", func(t *testing.T) {
		for _, wire := range []string{"", "unknown", "CUSTOMER", "manager"} {
			got, err := order.RoleFromString(wire)
			require.Error(t, err, wire)
			assert.Equal(t, order.RoleUnknown, got, wire)
		}
	})
}

func TestNewActor(t *testing.T) {
	t.Run("should create an actor with role and identity", func(t *testing.T) {
		id := kernel.NewUUID()

		actor, err := order.NewActor(order.RoleCustomer, id)

		require.NoError(t, err)
		require.NoError(t, actor.Validate())
		assert.Equal(t, order.RoleCustomer, actor.Role())
		assert.True(t, actor.ID().IsEqual(id))
	})

	t.Run("should fail with an unknown role", func(t *testing.T) {
		_, err := order.NewActor(order.RoleUnknown, kernel.NewUUID())

		require.Error(t, err)
		assert.Contains(t, err.Error(), "role")
	})

	t.Run("should fail with an invalid identity", func(t *testing.T) {
		var invalidID kernel.UUID

		_, err := order.NewActor(order.RoleCustomer, invalidID)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "UUID must be created")
	})
}

func TestNewSystemActor(t *testing.T) {
	actor := order.NewSystemActor()

	require.NoError(t, actor.Validate())
	assert.Equal(t, order.RoleSystem, actor.Role())
	require.NoError(t, actor.ID().Validate())
}

func TestActor_Validate(t *testing.T) {
	t.Run("should fail for the zero value", func(t *testing.T) {
		var actor order.Actor

		err := actor.Validate()

		require.Error(t, err)
		assert.Equal(t, order.ErrActorIsNotConstructed, err)
	})
}
