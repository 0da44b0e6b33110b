package queries

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetAvailableOrdersQueryHandler lists orders open for courier acceptance.
// The status and courier predicates run in SQL; the proximity annotation and
// filter run in Go because the distance is a great-circle computation.
type GetAvailableOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetAvailableOrdersQueryHandler creates a handler for the courier order feed.
func NewGetAvailableOrdersQueryHandler(db *gorm.DB) GetAvailableOrdersQueryHandler {
	return GetAvailableOrdersQueryHandler{db: db}
}

// Handle executes the feed query. Oldest ready orders come first so long
// waiting orders get picked up sooner.
func (h GetAvailableOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetAvailableOrdersQuery,
) ([]GetAvailableOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			restaurant_id,
			status,
			address_full_address,
			address_longitude,
			address_latitude,
			delivery_fee,
			ready_time
		FROM orders
		WHERE status IN (?, ?)
		  AND courier_id IS NULL
		ORDER BY order_time
	`, order.StatusConfirmed.String(), order.StatusReady.String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	responses := make([]GetAvailableOrdersQueryResponse, 0)

	for rows.Next() {
		var (
			id           uuid.UUID
			restaurantID uuid.UUID
			status       string
			fullAddress  string
			longitude    float64
			latitude     float64
			deliveryFee  int64
			readyTime    *time.Time
		)

		if err = rows.Scan(&id, &restaurantID, &status, &fullAddress,
			&longitude, &latitude, &deliveryFee, &readyTime); err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}

		restID, idErr := kernel.UUIDFromBytes(restaurantID[:])
		if idErr != nil {
			return nil, idErr
		}

		orderStatus, statusErr := order.StatusFromString(status)
		if statusErr != nil {
			return nil, statusErr
		}

		location, locErr := kernel.NewGeoPoint(longitude, latitude)
		if locErr != nil {
			return nil, locErr
		}

		response := GetAvailableOrdersQueryResponse{
			ID:           orderID,
			RestaurantID: restID,
			Status:       orderStatus,
			FullAddress:  fullAddress,
			Location:     location,
			DeliveryFee:  kernel.Money(deliveryFee),
			ReadyTime:    readyTime,
		}

		if courierLocation := query.CourierLocation(); courierLocation != nil {
			distance, distErr := courierLocation.DistanceKm(location)
			if distErr != nil {
				return nil, distErr
			}

			if query.MaxDistanceKm() > 0 && distance > query.MaxDistanceKm() {
				continue
			}
			response.DistanceKm = &distance
		}

		responses = append(responses, response)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return responses, nil
}
