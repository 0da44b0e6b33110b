// Package http exposes the fulfillment API over REST. Handlers translate
// requests into commands and queries; the caller's identity arrives in the
// X-Actor-Id and X-Actor-Role headers, set by the gateway after authentication.
package http

import (
	"net/http"
	"strconv"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	createOrderHandler      commands.CreateOrderCommandHandler
	confirmOrderHandler     commands.ConfirmOrderCommandHandler
	restaurantStatusHandler commands.RestaurantStatusCommandHandler
	acceptOrderHandler      commands.AcceptOrderCommandHandler
	courierStatusHandler    commands.CourierStatusCommandHandler
	cancelOrderHandler      commands.CancelOrderCommandHandler
	updateLocationHandler   commands.UpdateLocationCommandHandler
	rateOrderHandler        commands.RateOrderCommandHandler
	processRefundHandler    commands.ProcessRefundCommandHandler

	getOrderHandler           queries.GetOrderQueryHandler
	getMyOrdersHandler        queries.GetMyOrdersQueryHandler
	getAvailableOrdersHandler queries.GetAvailableOrdersQueryHandler
	getTrackingHandler        queries.GetTrackingQueryHandler
	getRevenueHandler         queries.GetRevenueQueryHandler
}

// NewServer creates an HTTP server with the required command and query handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	confirmOrderHandler commands.ConfirmOrderCommandHandler,
	restaurantStatusHandler commands.RestaurantStatusCommandHandler,
	acceptOrderHandler commands.AcceptOrderCommandHandler,
	courierStatusHandler commands.CourierStatusCommandHandler,
	cancelOrderHandler commands.CancelOrderCommandHandler,
	updateLocationHandler commands.UpdateLocationCommandHandler,
	rateOrderHandler commands.RateOrderCommandHandler,
	processRefundHandler commands.ProcessRefundCommandHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	getMyOrdersHandler queries.GetMyOrdersQueryHandler,
	getAvailableOrdersHandler queries.GetAvailableOrdersQueryHandler,
	getTrackingHandler queries.GetTrackingQueryHandler,
	getRevenueHandler queries.GetRevenueQueryHandler,
) *Server {
	return &Server{
		createOrderHandler:      createOrderHandler,
		confirmOrderHandler:     confirmOrderHandler,
		restaurantStatusHandler: restaurantStatusHandler,
		acceptOrderHandler:      acceptOrderHandler,
		courierStatusHandler:    courierStatusHandler,
		cancelOrderHandler:      cancelOrderHandler,
		updateLocationHandler:   updateLocationHandler,
		rateOrderHandler:        rateOrderHandler,
		processRefundHandler:    processRefundHandler,

		getOrderHandler:           getOrderHandler,
		getMyOrdersHandler:        getMyOrdersHandler,
		getAvailableOrdersHandler: getAvailableOrdersHandler,
		getTrackingHandler:        getTrackingHandler,
		getRevenueHandler:         getRevenueHandler,
	}
}

// RegisterRoutes mounts the API under /api/v1.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/orders", s.CreateOrder)
	api.GET("/orders", s.GetMyOrders)
	api.GET("/orders/available", s.GetAvailableOrders)
	api.GET("/orders/:orderID", s.GetOrder)
	api.GET("/orders/:orderID/tracking", s.GetTracking)

	api.POST("/orders/:orderID/confirm", s.ConfirmOrder)
	api.POST("/orders/:orderID/status", s.UpdateStatus)
	api.POST("/orders/:orderID/accept", s.AcceptOrder)
	api.POST("/orders/:orderID/assign", s.AssignOrder)
	api.POST("/orders/:orderID/cancel", s.CancelOrder)
	api.POST("/orders/:orderID/location", s.UpdateLocation)
	api.POST("/orders/:orderID/rate", s.RateOrder)
	api.POST("/orders/:orderID/refund", s.ProcessRefund)

	api.GET("/reports/revenue", s.GetRevenue)
}

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(ctx echo.Context) error {
	actor, err := actorFromRequest(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	var request CreateOrderRequest
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	address, err := request.Address.toDomain()
	if err != nil {
		return respondError(ctx, err)
	}

	paymentMethod, err := order.PaymentMethodFromString(request.PaymentMethod)
	if err != nil {
		return respondError(ctx, err)
	}

	orderID := kernel.NewUUID()
	var cmd commands.CreateOrderCommand

	if request.RestaurantID != nil {
		restaurantID, idErr := kernel.UUIDFromString(*request.RestaurantID)
		if idErr != nil {
			return respondError(ctx, idErr)
		}
		cmd, err = commands.NewCreateOrderFromRestaurantCommand(
			orderID, actor.ID(), restaurantID, address, request.DistanceKm,
			paymentMethod, request.CouponCode, request.Fees.toDomain())
	} else {
		cartLineIDs := make([]kernel.UUID, 0, len(request.CartLineIDs))
		for _, raw := range request.CartLineIDs {
			lineID, idErr := kernel.UUIDFromString(raw)
			if idErr != nil {
				return respondError(ctx, idErr)
			}
			cartLineIDs = append(cartLineIDs, lineID)
		}
		cmd, err = commands.NewCreateOrderCommand(
			orderID, actor.ID(), cartLineIDs, address, request.DistanceKm,
			paymentMethod, request.CouponCode, request.Fees.toDomain())
	}
	if err != nil {
		return respondError(ctx, err)
	}

	created, err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, orderToResponse(created))
}

// GetOrder handles GET /api/v1/orders/:orderID. Only participants of the
// order and privileged roles may read it.
func (s *Server) GetOrder(ctx echo.Context) error {
	actor, err := actorFromRequest(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	orderID, err := orderIDFromPath(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	query, err := queries.NewGetOrderQuery(orderID, actor)
	if err != nil {
		return respondError(ctx, err)
	}

	aggregate, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderToResponse(aggregate))
}

// GetMyOrders handles GET /api/v1/orders - the caller's order history.
// Admins may pass customer_id to list another customer's orders.
func (s *Server) GetMyOrders(ctx echo.Context) error {
	actor, err := actorFromRequest(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	customerID := actor.ID()
	if raw := ctx.QueryParam("customer_id"); raw != "" {
		if actor.Role() != order.RoleAdmin && actor.Role() != order.RoleSystem {
			return respondError(ctx, errs.NewForbiddenError("only admins may list another customer's orders"))
		}
		customerID, err = kernel.UUIDFromString(raw)
		if err != nil {
			return respondError(ctx, err)
		}
	}

	var status *order.Status
	if raw := ctx.QueryParam("status"); raw != "" {
		parsed, parseErr := order.StatusFromString(raw)
		if parseErr != nil {
			return respondError(ctx, parseErr)
		}
		status = &parsed
	}

	page, err := intQueryParam(ctx, "page")
	if err != nil {
		return badRequest(ctx, "page must be an integer")
	}
	limit, err := intQueryParam(ctx, "limit")
	if err != nil {
		return badRequest(ctx, "limit must be an integer")
	}

	query, err := queries.NewGetMyOrdersQuery(customerID, status, page, limit)
	if err != nil {
		return respondError(ctx, err)
	}

	rows, err := s.getMyOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, summariesToResponse(rows))
}

// GetAvailableOrders handles GET /api/v1/orders/available - unassigned
// confirmed or ready orders a courier may accept.
func (s *Server) GetAvailableOrders(ctx echo.Context) error {
	actor, err := actorFromRequest(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	var courierLocation *kernel.GeoPoint
	if ctx.QueryParam("longitude") != "" || ctx.QueryParam("latitude") != "" {
		longitude, err := strconv.ParseFloat(ctx.QueryParam("longitude"), 64)
		if err != nil {
			return badRequest(ctx, "longitude must be a number")
		}
		latitude, err := strconv.ParseFloat(ctx.QueryParam("latitude"), 64)
		if err != nil {
			return badRequest(ctx, "latitude must be a number")
		}
		location, err := kernel.NewGeoPoint(longitude, latitude)
		if err != nil {
			return respondError(ctx, err)
		}
		courierLocation = &location
	}

	var maxDistanceKm float64
	if raw := ctx.QueryParam("max_distance_km"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return badRequest(ctx, "max_distance_km must be a number")
		}
		maxDistanceKm = parsed
	}

	query, err := queries.NewGetAvailableOrdersQuery(actor, courierLocation, maxDistanceKm)
	if err != nil {
		return respondError(ctx, err)
	}

	rows, err := s.getAvailableOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, availableToResponse(rows))
}

// GetTracking handles GET /api/v1/orders/:orderID/tracking. Only participants
// of the order and privileged roles may track it.
func (s *Server) GetTracking(ctx echo.Context) error {
	actor, err := actorFromRequest(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	orderID, err := orderIDFromPath(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	query, err := queries.NewGetTrackingQuery(orderID, actor)
	if err != nil {
		return respondError(ctx, err)
	}

	row, err := s.getTrackingHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, trackingToResponse(row))
}

// ConfirmOrder handles POST /api/v1/orders/:orderID/confirm.
func (s *Server) ConfirmOrder(ctx echo.Context) error {
	actor, err := actorFromRequest(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	orderID, err := orderIDFromPath(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	var request ConfirmOrderRequest
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	cmd, err := commands.NewConfirmOrderCommand(orderID, actor, request.PrepMinutes, request.Note)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.confirmOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// UpdateStatus handles POST /api/v1/orders/:orderID/status. Kitchen stages
// (PREPARING, READY) go through the restaurant path, delivery stages
// (PICKING_UP, DELIVERING, DELIVERED) through the courier path.
func (s *Server) UpdateStatus(ctx echo.Context) error {
	actor, err := actorFromRequest(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	orderID, err := orderIDFromPath(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	var request StatusRequest
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	target, err := order.StatusFromString(request.Status)
	if err != nil {
		return respondError(ctx, err)
	}

	switch target {
	case order.StatusPreparing, order.StatusReady:
		cmd, cmdErr := commands.NewRestaurantStatusCommand(orderID, actor, target)
		if cmdErr != nil {
			return respondError(ctx, cmdErr)
		}
		err = s.restaurantStatusHandler.Handle(ctx.Request().Context(), cmd)
	default:
		cmd, cmdErr := commands.NewCourierStatusCommand(orderID, actor, target)
		if cmdErr != nil {
			return respondError(ctx, cmdErr)
		}
		err = s.courierStatusHandler.Handle(ctx.Request().Context(), cmd)
	}
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// AcceptOrder handles POST /api/v1/orders/:orderID/accept - a courier claims
// the order for themselves.
func (s *Server) AcceptOrder(ctx echo.Context) error {
	actor, err := actorFromRequest(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	orderID, err := orderIDFromPath(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewAcceptOrderCommand(orderID, actor)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.acceptOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// AssignOrder handles POST /api/v1/orders/:orderID/assign - an admin binds a
// specific courier.
func (s *Server) AssignOrder(ctx echo.Context) error {
	actor, err := actorFromRequest(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	orderID, err := orderIDFromPath(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	var request AssignOrderRequest
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	courierID, err := kernel.UUIDFromString(request.CourierID)
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewAssignOrderCommand(orderID, actor, courierID)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.acceptOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CancelOrder handles POST /api/v1/orders/:orderID/cancel.
func (s *Server) CancelOrder(ctx echo.Context) error {
	actor, err := actorFromRequest(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	orderID, err := orderIDFromPath(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	var request CancelOrderRequest
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	cmd, err := commands.NewCancelOrderCommand(orderID, actor, request.Reason)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.cancelOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// UpdateLocation handles POST /api/v1/orders/:orderID/location - the assigned
// courier reports a position.
func (s *Server) UpdateLocation(ctx echo.Context) error {
	actor, err := actorFromRequest(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	orderID, err := orderIDFromPath(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	var request LocationRequest
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	location, err := kernel.NewGeoPoint(request.Location[0], request.Location[1])
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewUpdateLocationCommand(orderID, actor, location)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.updateLocationHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// RateOrder handles POST /api/v1/orders/:orderID/rate.
func (s *Server) RateOrder(ctx echo.Context) error {
	actor, err := actorFromRequest(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	orderID, err := orderIDFromPath(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	var request RateOrderRequest
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	cmd, err := commands.NewRateOrderCommand(orderID, actor, request.Rating)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.rateOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ProcessRefund handles POST /api/v1/orders/:orderID/refund - an admin marks
// the pending refund as processed.
func (s *Server) ProcessRefund(ctx echo.Context) error {
	actor, err := actorFromRequest(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	orderID, err := orderIDFromPath(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewProcessRefundCommand(orderID, actor)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.processRefundHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetRevenue handles GET /api/v1/reports/revenue.
func (s *Server) GetRevenue(ctx echo.Context) error {
	period := queries.RevenuePeriod(ctx.QueryParam("period"))

	var restaurantID *kernel.UUID
	if raw := ctx.QueryParam("restaurant_id"); raw != "" {
		id, err := kernel.UUIDFromString(raw)
		if err != nil {
			return respondError(ctx, err)
		}
		restaurantID = &id
	}

	from, err := timeQueryParam(ctx, "from")
	if err != nil {
		return badRequest(ctx, "from must be an RFC 3339 timestamp")
	}
	to, err := timeQueryParam(ctx, "to")
	if err != nil {
		return badRequest(ctx, "to must be an RFC 3339 timestamp")
	}

	query, err := queries.NewGetRevenueQuery(period, restaurantID, from, to)
	if err != nil {
		return respondError(ctx, err)
	}

	rows, err := s.getRevenueHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, revenueToResponse(rows))
}

// actorFromRequest builds the acting party from the identity headers.
func actorFromRequest(ctx echo.Context) (order.Actor, error) {
	role, err := order.RoleFromString(ctx.Request().Header.Get("X-Actor-Role"))
	if err != nil {
		return order.Actor{}, err
	}

	id, err := kernel.UUIDFromString(ctx.Request().Header.Get("X-Actor-Id"))
	if err != nil {
		return order.Actor{}, err
	}

	return order.NewActor(role, id)
}

func orderIDFromPath(ctx echo.Context) (kernel.UUID, error) {
	return kernel.UUIDFromString(ctx.Param("orderID"))
}

func intQueryParam(ctx echo.Context, name string) (int, error) {
	raw := ctx.QueryParam(name)
	if raw == "" {
		return 0, nil
	}
	return strconv.Atoi(raw)
}

func timeQueryParam(ctx echo.Context, name string) (*time.Time, error) {
	raw := ctx.QueryParam(name)
	if raw == "" {
		return nil, nil
	}

	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}
