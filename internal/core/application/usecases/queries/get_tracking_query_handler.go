package queries

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetTrackingQueryHandler reads the tracking view of one order from the
// database, computing the remaining distance from the courier's last reported
// position to the drop-off.
type GetTrackingQueryHandler struct {
	db *gorm.DB
}

// NewGetTrackingQueryHandler creates a handler for order tracking.
func NewGetTrackingQueryHandler(db *gorm.DB) GetTrackingQueryHandler {
	return GetTrackingQueryHandler{db: db}
}

// Handle executes the tracking query.
// Returns ObjectNotFoundError when the order does not exist.
func (h GetTrackingQueryHandler) Handle(
	ctx context.Context,
	query GetTrackingQuery,
) (GetTrackingQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetTrackingQueryResponse{}, err
	}

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			status,
			customer_id,
			restaurant_id,
			courier_id,
			courier_longitude,
			courier_latitude,
			address_longitude,
			address_latitude,
			estimated_delivery_time
		FROM orders
		WHERE id = ?
	`, query.OrderID().String()).Row()

	var (
		status           string
		customerID       uuid.UUID
		restaurantID     uuid.UUID
		courierID        *uuid.UUID
		courierLongitude *float64
		courierLatitude  *float64
		addressLongitude float64
		addressLatitude  float64
		eta              *time.Time
	)

	err := row.Scan(&status, &customerID, &restaurantID, &courierID,
		&courierLongitude, &courierLatitude,
		&addressLongitude, &addressLatitude, &eta)
	if errors.Is(err, sql.ErrNoRows) {
		return GetTrackingQueryResponse{}, errs.NewObjectNotFoundError("orderID", query.OrderID().String())
	}
	if err != nil {
		return GetTrackingQueryResponse{}, err
	}

	if err = authorizeTrackingView(query.Actor(), customerID, restaurantID, courierID); err != nil {
		return GetTrackingQueryResponse{}, err
	}

	orderStatus, err := order.StatusFromString(status)
	if err != nil {
		return GetTrackingQueryResponse{}, err
	}

	response := GetTrackingQueryResponse{
		OrderID:               query.OrderID(),
		Status:                orderStatus,
		EstimatedDeliveryTime: eta,
	}

	if courierID != nil {
		id, idErr := kernel.UUIDFromBytes(courierID[:])
		if idErr != nil {
			return GetTrackingQueryResponse{}, idErr
		}
		response.CourierID = &id
	}

	return h.annotateCourierPosition(response, courierLongitude, courierLatitude,
		addressLongitude, addressLatitude)
}

// authorizeTrackingView maps the raw row identifiers into the shared
// participant check.
func authorizeTrackingView(
	actor order.Actor,
	rawCustomerID uuid.UUID,
	rawRestaurantID uuid.UUID,
	rawCourierID *uuid.UUID,
) error {
	customerID, err := kernel.UUIDFromBytes(rawCustomerID[:])
	if err != nil {
		return err
	}
	restaurantID, err := kernel.UUIDFromBytes(rawRestaurantID[:])
	if err != nil {
		return err
	}

	var courierID *kernel.UUID
	if rawCourierID != nil {
		id, idErr := kernel.UUIDFromBytes(rawCourierID[:])
		if idErr != nil {
			return idErr
		}
		courierID = &id
	}

	if !participantAllowed(actor, customerID, restaurantID, courierID) {
		return errs.NewForbiddenError("only participants of the order may track it")
	}
	return nil
}

func (h GetTrackingQueryHandler) annotateCourierPosition(
	response GetTrackingQueryResponse,
	courierLongitude *float64,
	courierLatitude *float64,
	addressLongitude float64,
	addressLatitude float64,
) (GetTrackingQueryResponse, error) {

	if courierLongitude != nil && courierLatitude != nil {
		courierLocation, locErr := kernel.NewGeoPoint(*courierLongitude, *courierLatitude)
		if locErr != nil {
			return GetTrackingQueryResponse{}, locErr
		}

		destination, locErr := kernel.NewGeoPoint(addressLongitude, addressLatitude)
		if locErr != nil {
			return GetTrackingQueryResponse{}, locErr
		}

		distance, distErr := courierLocation.DistanceKm(destination)
		if distErr != nil {
			return GetTrackingQueryResponse{}, distErr
		}

		response.CourierLocation = &courierLocation
		response.DistanceToDestinationKm = &distance
	}

	return response, nil
}
