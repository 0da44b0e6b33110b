package queries

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"gorm.io/gorm"
)

// GetRevenueQueryHandler aggregates revenue over delivered orders in SQL,
// bucketed with date_trunc on the delivery timestamp.
type GetRevenueQueryHandler struct {
	db *gorm.DB
}

// NewGetRevenueQueryHandler creates a handler for revenue reporting.
func NewGetRevenueQueryHandler(db *gorm.DB) GetRevenueQueryHandler {
	return GetRevenueQueryHandler{db: db}
}

// Handle executes the aggregation. Only delivered orders count; cancelled and
// in-flight orders never appear in revenue. The period is interpolated from a
// validated enum, never from raw caller input.
func (h GetRevenueQueryHandler) Handle(
	ctx context.Context,
	query GetRevenueQuery,
) ([]GetRevenueQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	sql := `
		SELECT
			date_trunc('` + string(query.Period()) + `', delivered_time) AS bucket,
			COUNT(*) AS order_count,
			COALESCE(SUM(total), 0) AS gross_revenue,
			COALESCE(SUM(delivery_fee), 0) AS delivery_fees,
			COALESCE(SUM(discount), 0) AS discounts
		FROM orders
		WHERE status = ?
	`
	args := []any{order.StatusDelivered.String()}

	if restaurantID := query.RestaurantID(); restaurantID != nil {
		sql += " AND restaurant_id = ?"
		args = append(args, restaurantID.String())
	}
	if from := query.From(); from != nil {
		sql += " AND delivered_time >= ?"
		args = append(args, *from)
	}
	if to := query.To(); to != nil {
		sql += " AND delivered_time < ?"
		args = append(args, *to)
	}

	sql += " GROUP BY bucket ORDER BY bucket"

	rows, err := h.db.WithContext(ctx).Raw(sql, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	responses := make([]GetRevenueQueryResponse, 0)

	for rows.Next() {
		var (
			bucket       time.Time
			orderCount   int
			grossRevenue int64
			deliveryFees int64
			discounts    int64
		)

		if err = rows.Scan(&bucket, &orderCount, &grossRevenue, &deliveryFees, &discounts); err != nil {
			return nil, err
		}

		responses = append(responses, GetRevenueQueryResponse{
			Bucket:       bucket,
			OrderCount:   orderCount,
			GrossRevenue: kernel.Money(grossRevenue),
			DeliveryFees: kernel.Money(deliveryFees),
			Discounts:    kernel.Money(discounts),
		})
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return responses, nil
}
