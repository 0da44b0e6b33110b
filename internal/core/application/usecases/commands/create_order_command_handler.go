package commands

import (
	"context"
	"log/slog"
	"time"

	"fulfillment/internal/core/domain/model/cart"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

// CreateOrderCommandHandler converts a customer's cart lines into an order.
//
// The handler resolves and prices the selected lines against the current
// catalog, checks that the restaurant is open, cross-checks the client-declared
// fees, and persists the order together with the cart-line deletion in one
// transaction: the consumed lines disappear exactly when the order appears.
type CreateOrderCommandHandler struct {
	uowFactory    UoWFactory
	menuCatalog   ports.MenuCatalog
	restaurantCat ports.RestaurantCatalog
	coupons       ports.CouponEvaluator
	publisher     ports.OrderEventPublisher
	logger        *slog.Logger
	resolver      services.CartLineResolver
	pricing       services.PricingEngine
}

// NewCreateOrderCommandHandler creates a handler for order creation.
func NewCreateOrderCommandHandler(
	uowFactory UoWFactory,
	menuCatalog ports.MenuCatalog,
	restaurantCat ports.RestaurantCatalog,
	coupons ports.CouponEvaluator,
	publisher ports.OrderEventPublisher,
	logger *slog.Logger,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory:    uowFactory,
		menuCatalog:   menuCatalog,
		restaurantCat: restaurantCat,
		coupons:       coupons,
		publisher:     publisher,
		logger:        logger,
		resolver:      services.NewCartLineResolver(),
		pricing:       services.NewPricingEngine(),
	}
}

// Handle processes the order creation command.
//
// The order is created in Pending status. Payment status is Unpaid for cash
// on delivery and Paid for card and wallet, which are charged upstream.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	cartLines, err := h.getCartLines(ctx, uow.CartRepository(), cmd)
	if err != nil {
		return nil, err
	}

	resolved, restaurantID, err := h.resolveLines(ctx, cartLines)
	if err != nil {
		return nil, err
	}

	restaurant, err := h.restaurantCat.Restaurant(ctx, restaurantID)
	if err != nil {
		return nil, err
	}
	if !restaurant.IsOpen || !restaurant.Active {
		return nil, errs.NewConflictError("restaurant is not accepting orders")
	}

	// fee cross-check and ETA run against the distance the client priced
	distanceKm := cmd.DistanceKm()

	subtotal := h.resolver.Subtotal(resolved)
	discount, err := h.resolveDiscount(ctx, cmd, restaurantID, subtotal)
	if err != nil {
		return nil, err
	}

	fees, err := h.pricing.BuildFees(subtotal, distanceKm, cmd.ClientFees(), discount)
	if err != nil {
		return nil, err
	}

	lines := make([]*order.Line, 0, len(resolved))
	for _, r := range resolved {
		line, lineErr := order.NewLine(kernel.NewUUID(), r.MenuItemID, r.OptionIDs, r.Quantity, r.UnitPrice)
		if lineErr != nil {
			return nil, lineErr
		}
		lines = append(lines, line)
	}

	now := time.Now().UTC()
	aggregate, err := order.NewOrder(
		cmd.OrderID(),
		cmd.CustomerID(),
		restaurantID,
		cmd.Address(),
		distanceKm,
		h.pricing.EstimatedDeliveryMinutes(distanceKm, services.DefaultPrepMinutes),
		cmd.PaymentMethod(),
		initialPaymentStatus(cmd.PaymentMethod()),
		fees,
		lines,
		now,
	)
	if err != nil {
		return nil, err
	}

	if err = uow.OrderRepository().Add(ctx, aggregate); err != nil {
		return nil, err
	}

	consumedIDs := make([]kernel.UUID, len(cartLines))
	for i, line := range cartLines {
		consumedIDs[i] = line.ID
	}
	if err = uow.CartRepository().DeleteLines(ctx, consumedIDs); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	publishOrderChanged(ctx, h.publisher, h.logger, aggregate)
	return aggregate, nil
}

// getCartLines loads the cart lines the command selects, by explicit IDs or
// by restaurant.
func (h *CreateOrderCommandHandler) getCartLines(
	ctx context.Context,
	cartRepo ports.CartRepository,
	cmd CreateOrderCommand,
) ([]cart.Line, error) {
	if restaurantID := cmd.RestaurantID(); restaurantID != nil {
		return cartRepo.GetRestaurantLines(ctx, cmd.CustomerID(), *restaurantID)
	}
	return cartRepo.GetLines(ctx, cmd.CustomerID(), cmd.CartLineIDs())
}

// resolveLines fetches the catalog views for the cart lines and resolves them
// into a priced, single-restaurant line set.
func (h *CreateOrderCommandHandler) resolveLines(
	ctx context.Context,
	cartLines []cart.Line,
) ([]services.ResolvedLine, kernel.UUID, error) {
	itemIDs := make([]kernel.UUID, 0, len(cartLines))
	optionIDs := make([]kernel.UUID, 0)
	for _, line := range cartLines {
		itemIDs = append(itemIDs, line.MenuItemID)
		optionIDs = append(optionIDs, line.OptionIDs...)
	}

	items, err := h.menuCatalog.MenuItems(ctx, itemIDs)
	if err != nil {
		return nil, kernel.UUID{}, err
	}

	options, err := h.menuCatalog.Options(ctx, optionIDs)
	if err != nil {
		return nil, kernel.UUID{}, err
	}

	return h.resolver.Resolve(cartLines, items, options)
}

// resolveDiscount computes the discount to apply: the coupon evaluator's
// verdict when a code is present, otherwise the client-declared discount
// capped at the subtotal.
func (h *CreateOrderCommandHandler) resolveDiscount(
	ctx context.Context,
	cmd CreateOrderCommand,
	restaurantID kernel.UUID,
	subtotal kernel.Money,
) (kernel.Money, error) {
	if cmd.CouponCode() != "" {
		return h.coupons.Evaluate(ctx, cmd.CouponCode(), restaurantID, subtotal)
	}

	discount := cmd.ClientFees().Discount
	if discount > subtotal {
		discount = subtotal
	}
	return discount, nil
}

// initialPaymentStatus maps the payment method to the payment status a fresh
// order starts in. Cash is collected at the door; card and wallet are charged
// before the order reaches fulfillment.
func initialPaymentStatus(method order.PaymentMethod) order.PaymentStatus {
	if method == order.PaymentMethodCash {
		return order.PaymentStatusUnpaid
	}
	return order.PaymentStatusPaid
}
