package queries

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetMyOrdersQueryHandler lists a customer's orders from the database,
// newest first.
type GetMyOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetMyOrdersQueryHandler creates a handler for customer order history.
func NewGetMyOrdersQueryHandler(db *gorm.DB) GetMyOrdersQueryHandler {
	return GetMyOrdersQueryHandler{db: db}
}

// Handle executes the history query with the optional status filter applied
// in SQL, so pagination stays correct.
func (h GetMyOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetMyOrdersQuery,
) ([]GetMyOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	sql := `
		SELECT
			id,
			restaurant_id,
			status,
			total,
			order_time,
			estimated_delivery_time
		FROM orders
		WHERE customer_id = ?
	`
	args := []any{query.CustomerID().String()}

	if status := query.Status(); status != nil {
		sql += " AND status = ?"
		args = append(args, status.String())
	}

	sql += " ORDER BY order_time DESC LIMIT ? OFFSET ?"
	args = append(args, query.Limit(), query.Offset())

	rows, err := h.db.WithContext(ctx).Raw(sql, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	responses := make([]GetMyOrdersQueryResponse, 0)

	for rows.Next() {
		var (
			id           uuid.UUID
			restaurantID uuid.UUID
			status       string
			total        int64
			orderTime    time.Time
			eta          *time.Time
		)

		if err = rows.Scan(&id, &restaurantID, &status, &total, &orderTime, &eta); err != nil {
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

		responses = append(responses, GetMyOrdersQueryResponse{
			ID:                    orderID,
			RestaurantID:          restID,
			Status:                orderStatus,
			Total:                 kernel.Money(total),
			OrderTime:             orderTime,
			EstimatedDeliveryTime: eta,
		})
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return responses, nil
}
