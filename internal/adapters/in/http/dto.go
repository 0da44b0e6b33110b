package http

import (
	"time"

	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"
)

// Coordinates are wire-encoded as [longitude, latitude] pairs.

// AddressRequest carries the delivery destination of a new order.
type AddressRequest struct {
	Street         string     `json:"street"`
	City           string     `json:"city"`
	FullAddress    string     `json:"full_address"`
	RecipientName  string     `json:"recipient_name"`
	RecipientPhone string     `json:"recipient_phone"`
	Location       [2]float64 `json:"location"`
	Note           string     `json:"note"`
}

// FeesRequest is the client-declared fee breakdown, cross-checked server-side.
type FeesRequest struct {
	Subtotal    int64  `json:"subtotal"`
	DeliveryFee int64  `json:"delivery_fee"`
	ServiceFee  int64  `json:"service_fee"`
	Discount    int64  `json:"discount"`
	Tax         *int64 `json:"tax,omitempty"`
}

// CreateOrderRequest converts cart lines into an order. The line set is
// selected either explicitly via cart_line_ids or implicitly via
// restaurant_id (all of the customer's lines for that restaurant).
type CreateOrderRequest struct {
	CartLineIDs   []string       `json:"cart_line_ids,omitempty"`
	RestaurantID  *string        `json:"restaurant_id,omitempty"`
	Address       AddressRequest `json:"address"`
	DistanceKm    float64        `json:"distance"`
	PaymentMethod string         `json:"payment_method"`
	CouponCode    string         `json:"coupon_code,omitempty"`
	Fees          FeesRequest    `json:"fees"`
}

// ConfirmOrderRequest carries the restaurant's confirmation details.
// prep_minutes 0 means undeclared and the default applies.
type ConfirmOrderRequest struct {
	PrepMinutes int    `json:"prep_minutes"`
	Note        string `json:"note,omitempty"`
}

// StatusRequest names the lifecycle stage to move the order to.
type StatusRequest struct {
	Status string `json:"status"`
}

// AssignOrderRequest binds a specific courier on behalf of an admin.
type AssignOrderRequest struct {
	CourierID string `json:"courier_id"`
}

// CancelOrderRequest carries the mandatory cancellation reason.
type CancelOrderRequest struct {
	Reason string `json:"reason"`
}

// LocationRequest carries a courier position report.
type LocationRequest struct {
	Location [2]float64 `json:"location"`
}

// RateOrderRequest carries the customer's rating.
type RateOrderRequest struct {
	Rating int `json:"rating"`
}

// LineResponse is one frozen order line.
type LineResponse struct {
	ID         string   `json:"id"`
	MenuItemID string   `json:"menu_item_id"`
	OptionIDs  []string `json:"option_ids,omitempty"`
	Quantity   int      `json:"quantity"`
	UnitPrice  int64    `json:"unit_price"`
	LineTotal  int64    `json:"line_total"`
}

// FeesResponse is the authoritative fee breakdown of an order.
type FeesResponse struct {
	Subtotal    int64 `json:"subtotal"`
	DeliveryFee int64 `json:"delivery_fee"`
	ServiceFee  int64 `json:"service_fee"`
	Discount    int64 `json:"discount"`
	Tax         int64 `json:"tax"`
	Total       int64 `json:"total"`
}

// RefundResponse is the refund bookkeeping of a cancelled paid order.
type RefundResponse struct {
	Amount        int64      `json:"amount"`
	RequestedTime time.Time  `json:"requested_time"`
	ProcessedTime *time.Time `json:"processed_time,omitempty"`
}

// OrderResponse is the full detail view of one order.
type OrderResponse struct {
	ID           string  `json:"id"`
	CustomerID   string  `json:"customer_id"`
	RestaurantID string  `json:"restaurant_id"`
	CourierID    *string `json:"courier_id,omitempty"`

	Status        string `json:"status"`
	PaymentMethod string `json:"payment_method"`
	PaymentStatus string `json:"payment_status"`

	FullAddress string     `json:"full_address"`
	Location    [2]float64 `json:"location"`
	DistanceKm  float64    `json:"distance_km"`

	Fees  FeesResponse   `json:"fees"`
	Lines []LineResponse `json:"lines"`

	OrderTime             time.Time  `json:"order_time"`
	EstimatedDeliveryTime *time.Time `json:"estimated_delivery_time,omitempty"`
	DeliveredTime         *time.Time `json:"delivered_time,omitempty"`

	Rating             *int    `json:"rating,omitempty"`
	RestaurantNote     string  `json:"restaurant_note,omitempty"`
	CancellationReason *string `json:"cancellation_reason,omitempty"`

	Refund *RefundResponse `json:"refund,omitempty"`
}

// OrderSummaryResponse is one row of a customer's order history.
type OrderSummaryResponse struct {
	ID                    string     `json:"id"`
	RestaurantID          string     `json:"restaurant_id"`
	Status                string     `json:"status"`
	Total                 int64      `json:"total"`
	OrderTime             time.Time  `json:"order_time"`
	EstimatedDeliveryTime *time.Time `json:"estimated_delivery_time,omitempty"`
}

// AvailableOrderResponse is one acceptable order from a courier's point of view.
type AvailableOrderResponse struct {
	ID           string     `json:"id"`
	RestaurantID string     `json:"restaurant_id"`
	Status       string     `json:"status"`
	FullAddress  string     `json:"full_address"`
	Location     [2]float64 `json:"location"`
	DeliveryFee  int64      `json:"delivery_fee"`
	ReadyTime    *time.Time `json:"ready_time,omitempty"`
	DistanceKm   *float64   `json:"distance_km,omitempty"`
}

// TrackingResponse is the live tracking view of one order.
type TrackingResponse struct {
	OrderID                 string      `json:"order_id"`
	Status                  string      `json:"status"`
	CourierID               *string     `json:"courier_id,omitempty"`
	CourierLocation         *[2]float64 `json:"courier_location,omitempty"`
	DistanceToDestinationKm *float64    `json:"distance_to_destination_km,omitempty"`
	EstimatedDeliveryTime   *time.Time  `json:"estimated_delivery_time,omitempty"`
}

// RevenueBucketResponse is one revenue aggregation bucket.
type RevenueBucketResponse struct {
	Bucket       time.Time `json:"bucket"`
	OrderCount   int       `json:"order_count"`
	GrossRevenue int64     `json:"gross_revenue"`
	DeliveryFees int64     `json:"delivery_fees"`
	Discounts    int64     `json:"discounts"`
}

// CountResponse reports how many items an operation affected.
type CountResponse struct {
	Count int `json:"count"`
}

func (r AddressRequest) toDomain() (order.DeliveryAddress, error) {
	location, err := kernel.NewGeoPoint(r.Location[0], r.Location[1])
	if err != nil {
		return order.DeliveryAddress{}, err
	}

	return order.NewDeliveryAddress(
		r.Street, r.City, r.FullAddress, r.RecipientName, r.RecipientPhone, location, r.Note)
}

func (r FeesRequest) toDomain() services.ClientFees {
	fees := services.ClientFees{
		Subtotal:    kernel.Money(r.Subtotal),
		DeliveryFee: kernel.Money(r.DeliveryFee),
		ServiceFee:  kernel.Money(r.ServiceFee),
		Discount:    kernel.Money(r.Discount),
	}
	if r.Tax != nil {
		tax := kernel.Money(*r.Tax)
		fees.Tax = &tax
	}
	return fees
}

func orderToResponse(aggregate *order.Order) OrderResponse {
	fees := aggregate.Fees()
	timing := aggregate.Timing()
	address := aggregate.Address()

	response := OrderResponse{
		ID:           aggregate.ID().String(),
		CustomerID:   aggregate.CustomerID().String(),
		RestaurantID: aggregate.RestaurantID().String(),

		Status:        aggregate.Status().String(),
		PaymentMethod: aggregate.PaymentMethod().String(),
		PaymentStatus: aggregate.PaymentStatus().String(),

		FullAddress: address.FullAddress(),
		Location:    [2]float64{address.Location().Longitude(), address.Location().Latitude()},
		DistanceKm:  aggregate.DistanceKm(),

		Fees: FeesResponse{
			Subtotal:    int64(fees.Subtotal()),
			DeliveryFee: int64(fees.DeliveryFee()),
			ServiceFee:  int64(fees.ServiceFee()),
			Discount:    int64(fees.Discount()),
			Tax:         int64(fees.Tax()),
			Total:       int64(fees.Total()),
		},
		Lines: linesToResponse(aggregate.Lines()),

		OrderTime:             timing.OrderTime,
		EstimatedDeliveryTime: timing.EstimatedDeliveryTime,
		DeliveredTime:         timing.DeliveredTime,

		Rating:         aggregate.Rating(),
		RestaurantNote: aggregate.RestaurantNote(),
	}

	if courierID := aggregate.Courier(); courierID != nil {
		id := courierID.String()
		response.CourierID = &id
	}

	if cancellation := aggregate.Cancellation(); cancellation != nil {
		reason := cancellation.Reason
		response.CancellationReason = &reason
	}

	if refund := aggregate.Refund(); refund != nil {
		response.Refund = &RefundResponse{
			Amount:        int64(refund.Amount),
			RequestedTime: refund.RequestedTime,
			ProcessedTime: refund.ProcessedTime,
		}
	}

	return response
}

func linesToResponse(lines []*order.Line) []LineResponse {
	responses := make([]LineResponse, 0, len(lines))
	for _, line := range lines {
		optionIDs := line.OptionIDs()
		rawIDs := make([]string, 0, len(optionIDs))
		for _, id := range optionIDs {
			rawIDs = append(rawIDs, id.String())
		}

		responses = append(responses, LineResponse{
			ID:         line.ID().String(),
			MenuItemID: line.MenuItemID().String(),
			OptionIDs:  rawIDs,
			Quantity:   line.Quantity(),
			UnitPrice:  int64(line.UnitPrice()),
			LineTotal:  int64(line.LineTotal()),
		})
	}
	return responses
}

func summariesToResponse(rows []queries.GetMyOrdersQueryResponse) []OrderSummaryResponse {
	responses := make([]OrderSummaryResponse, 0, len(rows))
	for _, row := range rows {
		responses = append(responses, OrderSummaryResponse{
			ID:                    row.ID.String(),
			RestaurantID:          row.RestaurantID.String(),
			Status:                row.Status.String(),
			Total:                 int64(row.Total),
			OrderTime:             row.OrderTime,
			EstimatedDeliveryTime: row.EstimatedDeliveryTime,
		})
	}
	return responses
}

func availableToResponse(rows []queries.GetAvailableOrdersQueryResponse) []AvailableOrderResponse {
	responses := make([]AvailableOrderResponse, 0, len(rows))
	for _, row := range rows {
		responses = append(responses, AvailableOrderResponse{
			ID:           row.ID.String(),
			RestaurantID: row.RestaurantID.String(),
			Status:       row.Status.String(),
			FullAddress:  row.FullAddress,
			Location:     [2]float64{row.Location.Longitude(), row.Location.Latitude()},
			DeliveryFee:  int64(row.DeliveryFee),
			ReadyTime:    row.ReadyTime,
			DistanceKm:   row.DistanceKm,
		})
	}
	return responses
}

func trackingToResponse(row queries.GetTrackingQueryResponse) TrackingResponse {
	response := TrackingResponse{
		OrderID:                 row.OrderID.String(),
		Status:                  row.Status.String(),
		DistanceToDestinationKm: row.DistanceToDestinationKm,
		EstimatedDeliveryTime:   row.EstimatedDeliveryTime,
	}

	if row.CourierID != nil {
		id := row.CourierID.String()
		response.CourierID = &id
	}

	if row.CourierLocation != nil {
		location := [2]float64{row.CourierLocation.Longitude(), row.CourierLocation.Latitude()}
		response.CourierLocation = &location
	}

	return response
}

func revenueToResponse(rows []queries.GetRevenueQueryResponse) []RevenueBucketResponse {
	responses := make([]RevenueBucketResponse, 0, len(rows))
	for _, row := range rows {
		responses = append(responses, RevenueBucketResponse{
			Bucket:       row.Bucket,
			OrderCount:   row.OrderCount,
			GrossRevenue: int64(row.GrossRevenue),
			DeliveryFees: int64(row.DeliveryFees),
			Discounts:    int64(row.Discounts),
		})
	}
	return responses
}
