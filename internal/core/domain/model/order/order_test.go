package order_test

import (
	"testing"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testParties struct {
	customerID   kernel.UUID
	restaurantID kernel.UUID
	courierID    kernel.UUID
}

func newTestParties() testParties {
	return testParties{
		customerID:   kernel.NewUUID(),
		restaurantID: kernel.NewUUID(),
		courierID:    kernel.NewUUID(),
	}
}

func newTestAddress(t *testing.T) order.DeliveryAddress {
	t.Helper()

	location, err := kernel.NewGeoPoint(30.5234, 50.4501)
	require.NoError(t, err)

	address, err := order.NewDeliveryAddress(
		"Main St", "Kyiv", "12 Main St, Kyiv", "Pat Doe", "+380501234567",
		location, "leave at the door")
	require.NoError(t, err)

	return address
}

func newTestLines(t *testing.T) []*order.Line {
	t.Helper()

	line, err := order.NewLine(kernel.NewUUID(), kernel.NewUUID(), nil, 2, 10000)
	require.NoError(t, err)

	return []*order.Line{line}
}

// newTestFees matches the subtotal of newTestLines (2 * 10000).
func newTestFees(t *testing.T) order.Fees {
	t.Helper()

	fees, err := order.NewFees(20000, 15000, 2000, 0, 1000)
	require.NoError(t, err)

	return fees
}

func newPendingOrder(t *testing.T, p testParties, paymentStatus order.PaymentStatus) *order.Order {
	t.Helper()

	o, err := order.NewOrder(
		kernel.NewUUID(), p.customerID, p.restaurantID,
		newTestAddress(t), 2.5, 30,
		order.PaymentMethodCard, paymentStatus,
		newTestFees(t), newTestLines(t), time.Now().UTC())
	require.NoError(t, err)

	return o
}

// orderInStatus restores an order directly into the given lifecycle status.
// The courier is bound exactly when the status requires one.
func orderInStatus(t *testing.T, p testParties, status order.Status, paymentStatus order.PaymentStatus) *order.Order {
	t.Helper()

	now := time.Now().UTC()
	eta := now.Add(30 * time.Minute)

	snapshot := order.Snapshot{
		ID:               kernel.NewUUID(),
		CustomerID:       p.customerID,
		RestaurantID:     p.restaurantID,
		Address:          newTestAddress(t),
		DistanceKm:       2.5,
		EstimatedMinutes: 30,
		PaymentMethod:    order.PaymentMethodCard,
		PaymentStatus:    paymentStatus,
		Fees:             newTestFees(t),
		Status:           status,
		Timing:           order.Timing{OrderTime: now, EstimatedDeliveryTime: &eta},
		Lines:            newTestLines(t),
	}

	switch status {
	case order.StatusAssigned, order.StatusPickingUp, order.StatusDelivering, order.StatusDelivered:
		courierID := p.courierID
		snapshot.CourierID = &courierID
	}

	o, err := order.RestoreOrder(snapshot)
	require.NoError(t, err)

	return o
}

func mustActor(t *testing.T, role order.Role, id kernel.UUID) order.Actor {
	t.Helper()

	actor, err := order.NewActor(role, id)
	require.NoError(t, err)

	return actor
}

func TestNewOrder(t *testing.T) {
	p := newTestParties()
	now := time.Now().UTC()

	t.Run("should create valid order with all valid parameters", func(t *testing.T) {
		o, err := order.NewOrder(
			kernel.NewUUID(), p.customerID, p.restaurantID,
			newTestAddress(t), 2.5, 30,
			order.PaymentMethodCard, order.PaymentStatusPaid,
			newTestFees(t), newTestLines(t), now)

		require.NoError(t, err)
		require.NoError(t, o.Validate())
		assert.Equal(t, order.StatusPending, o.Status())
		assert.True(t, o.CustomerID().IsEqual(p.customerID))
		assert.True(t, o.RestaurantID().IsEqual(p.restaurantID))
		assert.Nil(t, o.Courier())
		assert.Nil(t, o.Rating())
		assert.Nil(t, o.Cancellation())
		assert.Nil(t, o.Refund())
		assert.Equal(t, now, o.Timing().OrderTime)
		require.NotNil(t, o.Timing().EstimatedDeliveryTime)
		assert.Equal(t, now.Add(30*time.Minute), *o.Timing().EstimatedDeliveryTime)
	})

	t.Run("should fail with invalid customer ID", func(t *testing.T) {
		var invalidID kernel.UUID

		o, err := order.NewOrder(
			kernel.NewUUID(), invalidID, p.restaurantID,
			newTestAddress(t), 2.5, 30,
			order.PaymentMethodCard, order.PaymentStatusPaid,
			newTestFees(t), newTestLines(t), now)

		require.Error(t, err)
		assert.Nil(t, o)
		assert.Contains(t, err.Error(), "UUID must be created")
	})

	t.Run("should fail with unconstructed address", func(t *testing.T) {
		var invalidAddress order.DeliveryAddress

		o, err := order.NewOrder(
			kernel.NewUUID(), p.customerID, p.restaurantID,
			invalidAddress, 2.5, 30,
			order.PaymentMethodCard, order.PaymentStatusPaid,
			newTestFees(t), newTestLines(t), now)

		require.Error(t, err)
		assert.Nil(t, o)
		assert.Contains(t, err.Error(), "delivery address must be created")
	})

	t.Run("should fail with zero distance", func(t *testing.T) {
		o, err := order.NewOrder(
			kernel.NewUUID(), p.customerID, p.restaurantID,
			newTestAddress(t), 0, 30,
			order.PaymentMethodCard, order.PaymentStatusPaid,
			newTestFees(t), newTestLines(t), now)

		require.Error(t, err)
		assert.Nil(t, o)
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
		assert.Contains(t, err.Error(), "distanceKm")
	})

	t.Run("should fail with distance above the maximum", func(t *testing.T) {
		o, err := order.NewOrder(
			kernel.NewUUID(), p.customerID, p.restaurantID,
			newTestAddress(t), 50.1, 30,
			order.PaymentMethodCard, order.PaymentStatusPaid,
			newTestFees(t), newTestLines(t), now)

		require.Error(t, err)
		assert.Nil(t, o)
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("should accept the maximum distance", func(t *testing.T) {
		o, err := order.NewOrder(
			kernel.NewUUID(), p.customerID, p.restaurantID,
			newTestAddress(t), order.MaxDeliveryDistanceKm, 30,
			order.PaymentMethodCard, order.PaymentStatusPaid,
			newTestFees(t), newTestLines(t), now)

		require.NoError(t, err)
		assert.Equal(t, order.MaxDeliveryDistanceKm, o.DistanceKm())
	})

	t.Run("should fail with non-positive estimated minutes", func(t *testing.T) {
		o, err := order.NewOrder(
			kernel.NewUUID(), p.customerID, p.restaurantID,
			newTestAddress(t), 2.5, 0,
			order.PaymentMethodCard, order.PaymentStatusPaid,
			newTestFees(t), newTestLines(t), now)

		require.Error(t, err)
		assert.Nil(t, o)
		assert.Contains(t, err.Error(), "estimatedDeliveryMinutes")
		assert.Contains(t, err.Error(), "0 is not greater than 0")
	})

	t.Run("should fail with unknown payment method", func(t *testing.T) {
		o, err := order.NewOrder(
			kernel.NewUUID(), p.customerID, p.restaurantID,
			newTestAddress(t), 2.5, 30,
			order.PaymentMethodUnknown, order.PaymentStatusPaid,
			newTestFees(t), newTestLines(t), now)

		require.Error(t, err)
		assert.Nil(t, o)
		assert.Contains(t, err.Error(), "paymentMethod")
	})

	t.Run("should fail with empty line set", func(t *testing.T) {
		o, err := order.NewOrder(
			kernel.NewUUID(), p.customerID, p.restaurantID,
			newTestAddress(t), 2.5, 30,
			order.PaymentMethodCard, order.PaymentStatusPaid,
			newTestFees(t), nil, now)

		require.Error(t, err)
		assert.Nil(t, o)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Contains(t, err.Error(), "order lines")
	})

	t.Run("should fail when line totals do not match the fee subtotal", func(t *testing.T) {
		line, err := order.NewLine(kernel.NewUUID(), kernel.NewUUID(), nil, 3, 10000)
		require.NoError(t, err)

		o, err := order.NewOrder(
			kernel.NewUUID(), p.customerID, p.restaurantID,
			newTestAddress(t), 2.5, 30,
			order.PaymentMethodCard, order.PaymentStatusPaid,
			newTestFees(t), []*order.Line{line}, now)

		require.Error(t, err)
		assert.Nil(t, o)
		assert.Contains(t, err.Error(), "line totals sum to 30000 but fees declare 20000")
	})

	t.Run("should handle multiple validation errors", func(t *testing.T) {
		var invalidID kernel.UUID
		var invalidAddress order.DeliveryAddress

		o, err := order.NewOrder(
			kernel.NewUUID(), invalidID, p.restaurantID,
			invalidAddress, -1, 0,
			order.PaymentMethodCard, order.PaymentStatusPaid,
			newTestFees(t), newTestLines(t), now)

		require.Error(t, err)
		assert.Nil(t, o)
		assert.Contains(t, err.Error(), "UUID must be created")
		assert.Contains(t, err.Error(), "delivery address must be created")
		assert.Contains(t, err.Error(), "distanceKm")
		assert.Contains(t, err.Error(), "estimatedDeliveryMinutes")
	})
}

func TestRestoreOrder(t *testing.T) {
	p := newTestParties()

	t.Run("should restore a full snapshot", func(t *testing.T) {
		now := time.Now().UTC()
		confirmed := now.Add(time.Minute)
		eta := now.Add(45 * time.Minute)
		rating := 5
		courierID := p.courierID
		location, err := kernel.NewGeoPoint(30.52, 50.45)
		require.NoError(t, err)

		o, err := order.RestoreOrder(order.Snapshot{
			ID:               kernel.NewUUID(),
			CustomerID:       p.customerID,
			RestaurantID:     p.restaurantID,
			CourierID:        &courierID,
			Address:          newTestAddress(t),
			DistanceKm:       2.5,
			EstimatedMinutes: 30,
			PrepMinutes:      20,
			PaymentMethod:    order.PaymentMethodCard,
			PaymentStatus:    order.PaymentStatusPaid,
			Fees:             newTestFees(t),
			Status:           order.StatusDelivered,
			Timing: order.Timing{
				OrderTime:             now,
				ConfirmedTime:         &confirmed,
				EstimatedDeliveryTime: &eta,
			},
			CourierLocation: &location,
			Rating:          &rating,
			RestaurantNote:  "extra sauce included",
			Lines:           newTestLines(t),
		})

		require.NoError(t, err)
		require.NoError(t, o.Validate())
		assert.Equal(t, order.StatusDelivered, o.Status())
		require.NotNil(t, o.Courier())
		assert.True(t, o.Courier().IsEqual(p.courierID))
		assert.Equal(t, 20, o.PrepMinutes())
		assert.Equal(t, "extra sauce included", o.RestaurantNote())
		require.NotNil(t, o.Rating())
		assert.Equal(t, 5, *o.Rating())
		require.NotNil(t, o.CourierLocation())
	})

	t.Run("should fail when a pending order carries a courier", func(t *testing.T) {
		courierID := p.courierID

		o, err := order.RestoreOrder(order.Snapshot{
			ID:               kernel.NewUUID(),
			CustomerID:       p.customerID,
			RestaurantID:     p.restaurantID,
			CourierID:        &courierID,
			Address:          newTestAddress(t),
			DistanceKm:       2.5,
			EstimatedMinutes: 30,
			PaymentMethod:    order.PaymentMethodCard,
			PaymentStatus:    order.PaymentStatusPaid,
			Fees:             newTestFees(t),
			Status:           order.StatusPending,
			Timing:           order.Timing{OrderTime: time.Now().UTC()},
			Lines:            newTestLines(t),
		})

		require.Error(t, err)
		assert.Nil(t, o)
		assert.Contains(t, err.Error(), "not a valid status to have a courier")
	})

	t.Run("should fail when an assigned order has no courier", func(t *testing.T) {
		o, err := order.RestoreOrder(order.Snapshot{
			ID:               kernel.NewUUID(),
			CustomerID:       p.customerID,
			RestaurantID:     p.restaurantID,
			Address:          newTestAddress(t),
			DistanceKm:       2.5,
			EstimatedMinutes: 30,
			PaymentMethod:    order.PaymentMethodCard,
			PaymentStatus:    order.PaymentStatusPaid,
			Fees:             newTestFees(t),
			Status:           order.StatusAssigned,
			Timing:           order.Timing{OrderTime: time.Now().UTC()},
			Lines:            newTestLines(t),
		})

		require.Error(t, err)
		assert.Nil(t, o)
		assert.Contains(t, err.Error(), "not a valid status to have no courier")
	})

	t.Run("should fail with unknown status", func(t *testing.T) {
		o, err := order.RestoreOrder(order.Snapshot{
			ID:               kernel.NewUUID(),
			CustomerID:       p.customerID,
			RestaurantID:     p.restaurantID,
			Address:          newTestAddress(t),
			DistanceKm:       2.5,
			EstimatedMinutes: 30,
			PaymentMethod:    order.PaymentMethodCard,
			PaymentStatus:    order.PaymentStatusPaid,
			Fees:             newTestFees(t),
			Status:           order.StatusUnknown,
			Timing:           order.Timing{OrderTime: time.Now().UTC()},
			Lines:            newTestLines(t),
		})

		require.Error(t, err)
		assert.Nil(t, o)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestOrder_Validate(t *testing.T) {
	t.Run("should pass validation for properly constructed order", func(t *testing.T) {
		p := newTestParties()
		o := newPendingOrder(t, p, order.PaymentStatusPaid)

		require.NoError(t, o.Validate())
	})

	t.Run("should fail validation for nil order", func(t *testing.T) {
		var o *order.Order

		err := o.Validate()

		require.Error(t, err)
		assert.Equal(t, order.ErrOrderIsNotConstructed, err)
	})

	t.Run("should fail validation for zero value order", func(t *testing.T) {
		o := &order.Order{}

		err := o.Validate()

		require.Error(t, err)
		assert.Equal(t, order.ErrOrderIsNotConstructed, err)
	})
}

func TestOrder_Confirm(t *testing.T) {
	now := time.Now().UTC()
	eta := now.Add(50 * time.Minute)

	t.Run("should confirm a pending order on behalf of the owning restaurant", func(t *testing.T) {
		p := newTestParties()
		o := newPendingOrder(t, p, order.PaymentStatusPaid)
		restaurant := mustActor(t, order.RoleRestaurant, p.restaurantID)

		err := o.Confirm(restaurant, 25, "running low on basil", eta, now)

		require.NoError(t, err)
		assert.Equal(t, order.StatusConfirmed, o.Status())
		assert.Equal(t, 25, o.PrepMinutes())
		assert.Equal(t, "running low on basil", o.RestaurantNote())
		require.NotNil(t, o.Timing().ConfirmedTime)
		assert.Equal(t, now, *o.Timing().ConfirmedTime)
		require.NotNil(t, o.Timing().EstimatedDeliveryTime)
		assert.Equal(t, eta, *o.Timing().EstimatedDeliveryTime)
	})

	t.Run("should allow an admin to confirm", func(t *testing.T) {
		p := newTestParties()
		o := newPendingOrder(t, p, order.PaymentStatusPaid)
		admin := mustActor(t, order.RoleAdmin, kernel.NewUUID())

		err := o.Confirm(admin, 20, "", eta, now)

		require.NoError(t, err)
		assert.Equal(t, order.StatusConfirmed, o.Status())
	})

	t.Run("should forbid a different restaurant", func(t *testing.T) {
		p := newTestParties()
		o := newPendingOrder(t, p, order.PaymentStatusPaid)
		other := mustActor(t, order.RoleRestaurant, kernel.NewUUID())

		err := o.Confirm(other, 20, "", eta, now)

		require.ErrorIs(t, err, errs.ErrForbidden)
		assert.Equal(t, order.StatusPending, o.Status())
	})

	t.Run("should forbid the customer", func(t *testing.T) {
		p := newTestParties()
		o := newPendingOrder(t, p, order.PaymentStatusPaid)
		customer := mustActor(t, order.RoleCustomer, p.customerID)

		err := o.Confirm(customer, 20, "", eta, now)

		require.ErrorIs(t, err, errs.ErrForbidden)
	})

	t.Run("should reject non-positive preparation minutes", func(t *testing.T) {
		p := newTestParties()
		o := newPendingOrder(t, p, order.PaymentStatusPaid)
		restaurant := mustActor(t, order.RoleRestaurant, p.restaurantID)

		err := o.Confirm(restaurant, 0, "", eta, now)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "prepMinutes")
		assert.Equal(t, order.StatusPending, o.Status())
	})

	t.Run("should reject confirming twice", func(t *testing.T) {
		p := newTestParties()
		o := newPendingOrder(t, p, order.PaymentStatusPaid)
		restaurant := mustActor(t, order.RoleRestaurant, p.restaurantID)
		require.NoError(t, o.Confirm(restaurant, 20, "", eta, now))

		err := o.Confirm(restaurant, 20, "", eta, now)

		require.ErrorIs(t, err, errs.ErrInvalidTransition)
	})

	t.Run("should reject an unconstructed actor", func(t *testing.T) {
		p := newTestParties()
		o := newPendingOrder(t, p, order.PaymentStatusPaid)

		err := o.Confirm(order.Actor{}, 20, "", eta, now)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "actor must be created")
	})
}

func TestOrder_MarkPreparingAndReady(t *testing.T) {
	now := time.Now().UTC()

	t.Run("should move confirmed order through preparing to ready", func(t *testing.T) {
		p := newTestParties()
		o := orderInStatus(t, p, order.StatusConfirmed, order.PaymentStatusPaid)
		restaurant := mustActor(t, order.RoleRestaurant, p.restaurantID)

		require.NoError(t, o.MarkPreparing(restaurant, now))
		assert.Equal(t, order.StatusPreparing, o.Status())
		require.NotNil(t, o.Timing().PreparingTime)

		require.NoError(t, o.MarkReady(restaurant, now))
		assert.Equal(t, order.StatusReady, o.Status())
		require.NotNil(t, o.Timing().ReadyTime)
	})

	t.Run("should allow ready directly from confirmed", func(t *testing.T) {
		p := newTestParties()
		o := orderInStatus(t, p, order.StatusConfirmed, order.PaymentStatusPaid)
		restaurant := mustActor(t, order.RoleRestaurant, p.restaurantID)

		require.NoError(t, o.MarkReady(restaurant, now))
		assert.Equal(t, order.StatusReady, o.Status())
	})

	t.Run("should reject preparing from pending", func(t *testing.T) {
		p := newTestParties()
		o := newPendingOrder(t, p, order.PaymentStatusPaid)
		restaurant := mustActor(t, order.RoleRestaurant, p.restaurantID)

		err := o.MarkPreparing(restaurant, now)

		require.ErrorIs(t, err, errs.ErrInvalidTransition)
	})

	t.Run("should forbid a courier from kitchen stages", func(t *testing.T) {
		p := newTestParties()
		o := orderInStatus(t, p, order.StatusConfirmed, order.PaymentStatusPaid)
		courier := mustActor(t, order.RoleCourier, p.courierID)

		err := o.MarkPreparing(courier, now)

		require.ErrorIs(t, err, errs.ErrForbidden)
	})
}

func TestOrder_Assign(t *testing.T) {
	now := time.Now().UTC()

	t.Run("should assign a courier to a confirmed order", func(t *testing.T) {
		p := newTestParties()
		o := orderInStatus(t, p, order.StatusConfirmed, order.PaymentStatusPaid)

		err := o.Assign(p.courierID, now)

		require.NoError(t, err)
		assert.Equal(t, order.StatusAssigned, o.Status())
		require.NotNil(t, o.Courier())
		assert.True(t, o.Courier().IsEqual(p.courierID))
		require.NotNil(t, o.Timing().AssignedTime)
	})

	t.Run("should assign a courier to a ready order", func(t *testing.T) {
		p := newTestParties()
		o := orderInStatus(t, p, order.StatusReady, order.PaymentStatusPaid)

		err := o.Assign(p.courierID, now)

		require.NoError(t, err)
		assert.Equal(t, order.StatusAssigned, o.Status())
	})

	t.Run("should reject assigning a pending order", func(t *testing.T) {
		p := newTestParties()
		o := newPendingOrder(t, p, order.PaymentStatusPaid)

		err := o.Assign(p.courierID, now)

		require.ErrorIs(t, err, errs.ErrInvalidTransition)
		assert.Nil(t, o.Courier())
	})

	t.Run("should reject a second courier", func(t *testing.T) {
		p := newTestParties()
		o := orderInStatus(t, p, order.StatusAssigned, order.PaymentStatusPaid)

		err := o.Assign(kernel.NewUUID(), now)

		require.ErrorIs(t, err, errs.ErrConflict)
		assert.True(t, o.Courier().IsEqual(p.courierID))
	})

	t.Run("should reject an invalid courier ID", func(t *testing.T) {
		p := newTestParties()
		o := orderInStatus(t, p, order.StatusReady, order.PaymentStatusPaid)
		var invalidID kernel.UUID

		err := o.Assign(invalidID, now)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "UUID must be created")
	})
}

func TestOrder_AdvanceByCourier(t *testing.T) {
	now := time.Now().UTC()

	t.Run("should walk the delivery stages stamping milestones", func(t *testing.T) {
		p := newTestParties()
		o := orderInStatus(t, p, order.StatusAssigned, order.PaymentStatusPaid)
		courier := mustActor(t, order.RoleCourier, p.courierID)

		require.NoError(t, o.AdvanceByCourier(courier, order.StatusPickingUp, now))
		assert.Equal(t, order.StatusPickingUp, o.Status())

		require.NoError(t, o.AdvanceByCourier(courier, order.StatusDelivering, now))
		assert.Equal(t, order.StatusDelivering, o.Status())
		require.NotNil(t, o.Timing().PickedUpTime)

		require.NoError(t, o.AdvanceByCourier(courier, order.StatusDelivered, now))
		assert.Equal(t, order.StatusDelivered, o.Status())
		require.NotNil(t, o.Timing().DeliveredTime)
	})

	t.Run("should reject skipping a stage", func(t *testing.T) {
		p := newTestParties()
		o := orderInStatus(t, p, order.StatusAssigned, order.PaymentStatusPaid)
		courier := mustActor(t, order.RoleCourier, p.courierID)

		err := o.AdvanceByCourier(courier, order.StatusDelivered, now)

		require.ErrorIs(t, err, errs.ErrInvalidTransition)
		assert.Equal(t, order.StatusAssigned, o.Status())
	})

	t.Run("should reject non-delivery targets", func(t *testing.T) {
		p := newTestParties()
		o := orderInStatus(t, p, order.StatusAssigned, order.PaymentStatusPaid)
		courier := mustActor(t, order.RoleCourier, p.courierID)

		err := o.AdvanceByCourier(courier, order.StatusCancelled, now)

		require.ErrorIs(t, err, errs.ErrInvalidTransition)
	})

	t.Run("should forbid a different courier", func(t *testing.T) {
		p := newTestParties()
		o := orderInStatus(t, p, order.StatusAssigned, order.PaymentStatusPaid)
		other := mustActor(t, order.RoleCourier, kernel.NewUUID())

		err := o.AdvanceByCourier(other, order.StatusPickingUp, now)

		require.ErrorIs(t, err, errs.ErrForbidden)
	})

	t.Run("should conflict when no courier is assigned", func(t *testing.T) {
		p := newTestParties()
		o := orderInStatus(t, p, order.StatusConfirmed, order.PaymentStatusPaid)
		courier := mustActor(t, order.RoleCourier, p.courierID)

		err := o.AdvanceByCourier(courier, order.StatusPickingUp, now)

		require.ErrorIs(t, err, errs.ErrConflict)
		assert.Contains(t, err.Error(), "no assigned courier")
	})
}

func TestOrder_Cancel(t *testing.T) {
	now := time.Now().UTC()

	t.Run("should cancel a paid pending order and enqueue a refund", func(t *testing.T) {
		p := newTestParties()
		o := newPendingOrder(t, p, order.PaymentStatusPaid)
		customer := mustActor(t, order.RoleCustomer, p.customerID)

		err := o.Cancel(customer, "changed my mind", now)

		require.NoError(t, err)
		assert.Equal(t, order.StatusCancelled, o.Status())
		require.NotNil(t, o.Cancellation())
		assert.Equal(t, "changed my mind", o.Cancellation().Reason)
		assert.Equal(t, order.RoleCustomer, o.Cancellation().CancelledBy)
		require.NotNil(t, o.Timing().CancelledTime)
		assert.Equal(t, order.PaymentStatusRefundPending, o.PaymentStatus())
		require.NotNil(t, o.Refund())
		assert.Equal(t, o.Fees().Total(), o.Refund().Amount)
		assert.Equal(t, now, o.Refund().RequestedTime)
		assert.Nil(t, o.Refund().ProcessedTime)
	})

	t.Run("should cancel an unpaid order without a refund", func(t *testing.T) {
		p := newTestParties()
		o := newPendingOrder(t, p, order.PaymentStatusUnpaid)
		customer := mustActor(t, order.RoleCustomer, p.customerID)

		err := o.Cancel(customer, "duplicate order", now)

		require.NoError(t, err)
		assert.Equal(t, order.PaymentStatusUnpaid, o.PaymentStatus())
		assert.Nil(t, o.Refund())
	})

	t.Run("should allow the owning restaurant to cancel while preparing", func(t *testing.T) {
		p := newTestParties()
		o := orderInStatus(t, p, order.StatusPreparing, order.PaymentStatusPaid)
		restaurant := mustActor(t, order.RoleRestaurant, p.restaurantID)

		err := o.Cancel(restaurant, "out of stock", now)

		require.NoError(t, err)
		assert.Equal(t, order.RoleRestaurant, o.Cancellation().CancelledBy)
	})

	t.Run("should allow the system to cancel", func(t *testing.T) {
		p := newTestParties()
		o := newPendingOrder(t, p, order.PaymentStatusUnpaid)

		err := o.Cancel(order.NewSystemActor(), "not confirmed in time", now)

		require.NoError(t, err)
		assert.Equal(t, order.RoleSystem, o.Cancellation().CancelledBy)
	})

	t.Run("should forbid a different customer", func(t *testing.T) {
		p := newTestParties()
		o := newPendingOrder(t, p, order.PaymentStatusPaid)
		other := mustActor(t, order.RoleCustomer, kernel.NewUUID())

		err := o.Cancel(other, "", now)

		require.ErrorIs(t, err, errs.ErrForbidden)
		assert.Equal(t, order.StatusPending, o.Status())
	})

	t.Run("should forbid a different restaurant", func(t *testing.T) {
		p := newTestParties()
		o := newPendingOrder(t, p, order.PaymentStatusPaid)
		other := mustActor(t, order.RoleRestaurant, kernel.NewUUID())

		err := o.Cancel(other, "", now)

		require.ErrorIs(t, err, errs.ErrForbidden)
	})

	t.Run("should forbid couriers", func(t *testing.T) {
		p := newTestParties()
		o := orderInStatus(t, p, order.StatusConfirmed, order.PaymentStatusPaid)
		courier := mustActor(t, order.RoleCourier, p.courierID)

		err := o.Cancel(courier, "", now)

		require.ErrorIs(t, err, errs.ErrForbidden)
		assert.Contains(t, err.Error(), "couriers may not cancel")
	})

	t.Run("should reject cancelling a ready order", func(t *testing.T) {
		p := newTestParties()
		o := orderInStatus(t, p, order.StatusReady, order.PaymentStatusPaid)
		admin := mustActor(t, order.RoleAdmin, kernel.NewUUID())

		err := o.Cancel(admin, "", now)

		require.ErrorIs(t, err, errs.ErrInvalidTransition)
		assert.Equal(t, order.StatusReady, o.Status())
	})

	t.Run("should reject cancelling a delivered order", func(t *testing.T) {
		p := newTestParties()
		o := orderInStatus(t, p, order.StatusDelivered, order.PaymentStatusPaid)
		admin := mustActor(t, order.RoleAdmin, kernel.NewUUID())

		err := o.Cancel(admin, "", now)

		require.ErrorIs(t, err, errs.ErrInvalidTransition)
	})
}

func TestOrder_Rate(t *testing.T) {
	t.Run("should record the customer rating after delivery", func(t *testing.T) {
		p := newTestParties()
		o := orderInStatus(t, p, order.StatusDelivered, order.PaymentStatusPaid)
		customer := mustActor(t, order.RoleCustomer, p.customerID)

		err := o.Rate(customer, 4)

		require.NoError(t, err)
		require.NotNil(t, o.Rating())
		assert.Equal(t, 4, *o.Rating())
	})

	t.Run("should reject rating before delivery", func(t *testing.T) {
		p := newTestParties()
		o := orderInStatus(t, p, order.StatusDelivering, order.PaymentStatusPaid)
		customer := mustActor(t, order.RoleCustomer, p.customerID)

		err := o.Rate(customer, 4)

		require.ErrorIs(t, err, errs.ErrInvalidTransition)
		assert.Nil(t, o.Rating())
	})

	t.Run("should reject rating twice", func(t *testing.T) {
		p := newTestParties()
		o := orderInStatus(t, p, order.StatusDelivered, order.PaymentStatusPaid)
		customer := mustActor(t, order.RoleCustomer, p.customerID)
		require.NoError(t, o.Rate(customer, 5))

		err := o.Rate(customer, 1)

		require.ErrorIs(t, err, errs.ErrConflict)
		assert.Equal(t, 5, *o.Rating())
	})

	t.Run("should reject ratings outside the bounds", func(t *testing.T) {
		p := newTestParties()
		o := orderInStatus(t, p, order.StatusDelivered, order.PaymentStatusPaid)
		customer := mustActor(t, order.RoleCustomer, p.customerID)

		require.ErrorIs(t, o.Rate(customer, 0), errs.ErrValueIsOutOfRange)
		require.ErrorIs(t, o.Rate(customer, 6), errs.ErrValueIsOutOfRange)
		assert.Nil(t, o.Rating())
	})

	t.Run("should forbid anyone but the ordering customer", func(t *testing.T) {
		p := newTestParties()
		o := orderInStatus(t, p, order.StatusDelivered, order.PaymentStatusPaid)
		admin := mustActor(t, order.RoleAdmin, kernel.NewUUID())

		err := o.Rate(admin, 5)

		require.ErrorIs(t, err, errs.ErrForbidden)
	})
}

func TestOrder_UpdateCourierLocation(t *testing.T) {
	t.Run("should store the reported position while delivering", func(t *testing.T) {
		p := newTestParties()
		o := orderInStatus(t, p, order.StatusDelivering, order.PaymentStatusPaid)
		courier := mustActor(t, order.RoleCourier, p.courierID)
		location, err := kernel.NewGeoPoint(30.50, 50.44)
		require.NoError(t, err)

		err = o.UpdateCourierLocation(courier, location)

		require.NoError(t, err)
		require.NotNil(t, o.CourierLocation())
		assert.Equal(t, order.StatusDelivering, o.Status())

		remaining, err := o.DistanceToDestinationKm()
		require.NoError(t, err)
		require.NotNil(t, remaining)
		assert.Greater(t, *remaining, 0.0)
	})

	t.Run("should overwrite the previous position", func(t *testing.T) {
		p := newTestParties()
		o := orderInStatus(t, p, order.StatusDelivering, order.PaymentStatusPaid)
		courier := mustActor(t, order.RoleCourier, p.courierID)

		first, _ := kernel.NewGeoPoint(30.50, 50.44)
		second, _ := kernel.NewGeoPoint(30.51, 50.45)
		require.NoError(t, o.UpdateCourierLocation(courier, first))
		require.NoError(t, o.UpdateCourierLocation(courier, second))

		assert.Equal(t, second.Longitude(), o.CourierLocation().Longitude())
		assert.Equal(t, second.Latitude(), o.CourierLocation().Latitude())
	})

	t.Run("should reject updates after delivery", func(t *testing.T) {
		p := newTestParties()
		o := orderInStatus(t, p, order.StatusDelivered, order.PaymentStatusPaid)
		courier := mustActor(t, order.RoleCourier, p.courierID)
		location, _ := kernel.NewGeoPoint(30.50, 50.44)

		err := o.UpdateCourierLocation(courier, location)

		require.ErrorIs(t, err, errs.ErrInvalidTransition)
	})

	t.Run("should forbid a different courier", func(t *testing.T) {
		p := newTestParties()
		o := orderInStatus(t, p, order.StatusDelivering, order.PaymentStatusPaid)
		other := mustActor(t, order.RoleCourier, kernel.NewUUID())
		location, _ := kernel.NewGeoPoint(30.50, 50.44)

		err := o.UpdateCourierLocation(other, location)

		require.ErrorIs(t, err, errs.ErrForbidden)
		assert.Nil(t, o.CourierLocation())
	})

	t.Run("should reject an unconstructed location", func(t *testing.T) {
		p := newTestParties()
		o := orderInStatus(t, p, order.StatusDelivering, order.PaymentStatusPaid)
		courier := mustActor(t, order.RoleCourier, p.courierID)

		err := o.UpdateCourierLocation(courier, kernel.GeoPoint{})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "geo point must be created")
	})

	t.Run("should return nil distance before the first update", func(t *testing.T) {
		p := newTestParties()
		o := orderInStatus(t, p, order.StatusDelivering, order.PaymentStatusPaid)

		remaining, err := o.DistanceToDestinationKm()

		require.NoError(t, err)
		assert.Nil(t, remaining)
	})
}

func TestOrder_MarkRefunded(t *testing.T) {
	now := time.Now().UTC()

	cancelledWithPendingRefund := func(t *testing.T, p testParties) *order.Order {
		t.Helper()
		o := newPendingOrder(t, p, order.PaymentStatusPaid)
		customer := mustActor(t, order.RoleCustomer, p.customerID)
		require.NoError(t, o.Cancel(customer, "changed my mind", now))
		return o
	}

	t.Run("should complete the refund on behalf of an admin", func(t *testing.T) {
		p := newTestParties()
		o := cancelledWithPendingRefund(t, p)
		admin := mustActor(t, order.RoleAdmin, kernel.NewUUID())

		err := o.MarkRefunded(admin, now)

		require.NoError(t, err)
		assert.Equal(t, order.PaymentStatusRefunded, o.PaymentStatus())
		require.NotNil(t, o.Refund())
		require.NotNil(t, o.Refund().ProcessedTime)
		assert.Equal(t, now, *o.Refund().ProcessedTime)
	})

	t.Run("should allow the system to process refunds", func(t *testing.T) {
		p := newTestParties()
		o := cancelledWithPendingRefund(t, p)

		err := o.MarkRefunded(order.NewSystemActor(), now)

		require.NoError(t, err)
		assert.Equal(t, order.PaymentStatusRefunded, o.PaymentStatus())
	})

	t.Run("should forbid non-privileged actors", func(t *testing.T) {
		p := newTestParties()
		o := cancelledWithPendingRefund(t, p)
		customer := mustActor(t, order.RoleCustomer, p.customerID)

		err := o.MarkRefunded(customer, now)

		require.ErrorIs(t, err, errs.ErrForbidden)
		assert.Equal(t, order.PaymentStatusRefundPending, o.PaymentStatus())
	})

	t.Run("should conflict when no refund is pending", func(t *testing.T) {
		p := newTestParties()
		o := newPendingOrder(t, p, order.PaymentStatusPaid)
		admin := mustActor(t, order.RoleAdmin, kernel.NewUUID())

		err := o.MarkRefunded(admin, now)

		require.ErrorIs(t, err, errs.ErrConflict)
		assert.Contains(t, err.Error(), "no pending refund")
	})
}

func TestOrder_Lines(t *testing.T) {
	t.Run("should return a copy of the line set", func(t *testing.T) {
		p := newTestParties()
		o := newPendingOrder(t, p, order.PaymentStatusPaid)

		lines := o.Lines()
		require.Len(t, lines, 1)

		lines[0] = nil
		assert.NotNil(t, o.Lines()[0])
	})
}
