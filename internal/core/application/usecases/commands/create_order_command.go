package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand or NewCreateOrderFromRestaurantCommand constructors",
	)
	ErrCartSelectionIsRequired = errors.New("either cart line IDs or a restaurant ID is required")
)

// CreateOrderCommand represents a request to convert cart lines into an order.
// The line set is selected either explicitly (by cart line IDs) or implicitly
// (all of the customer's cart lines for one restaurant). The client-declared
// fee breakdown is carried along for server-side cross-checking.
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID      kernel.UUID
	customerID   kernel.UUID
	cartLineIDs  []kernel.UUID
	restaurantID *kernel.UUID

	address       order.DeliveryAddress
	distanceKm    float64
	paymentMethod order.PaymentMethod
	couponCode    string
	clientFees    services.ClientFees

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command that converts the explicitly
// selected cart lines into an order.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	customerID kernel.UUID,
	cartLineIDs []kernel.UUID,
	address order.DeliveryAddress,
	distanceKm float64,
	paymentMethod order.PaymentMethod,
	couponCode string,
	clientFees services.ClientFees,
) (CreateOrderCommand, error) {
	command := CreateOrderCommand{
		couponCode: couponCode,
		clientFees: clientFees,
		guard:      guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setOrderID(orderID),
		command.setCustomerID(customerID),
		command.setCartLineIDs(cartLineIDs),
		command.setAddress(address),
		command.setDistanceKm(distanceKm),
		command.setPaymentMethod(paymentMethod),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return command, nil
}

// NewCreateOrderFromRestaurantCommand creates a command that converts all of
// the customer's cart lines for the given restaurant into an order.
func NewCreateOrderFromRestaurantCommand(
	orderID kernel.UUID,
	customerID kernel.UUID,
	restaurantID kernel.UUID,
	address order.DeliveryAddress,
	distanceKm float64,
	paymentMethod order.PaymentMethod,
	couponCode string,
	clientFees services.ClientFees,
) (CreateOrderCommand, error) {
	command := CreateOrderCommand{
		couponCode: couponCode,
		clientFees: clientFees,
		guard:      guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setOrderID(orderID),
		command.setCustomerID(customerID),
		command.setRestaurantID(restaurantID),
		command.setAddress(address),
		command.setDistanceKm(distanceKm),
		command.setPaymentMethod(paymentMethod),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through a constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the pre-generated identifier for the new order.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// CustomerID returns the ordering customer.
func (c CreateOrderCommand) CustomerID() kernel.UUID {
	return c.customerID
}

// CartLineIDs returns the explicitly selected cart lines, empty for the
// whole-restaurant variant.
func (c CreateOrderCommand) CartLineIDs() []kernel.UUID {
	return c.cartLineIDs
}

// RestaurantID returns the restaurant whose cart lines are consumed,
// nil for the explicit-selection variant.
func (c CreateOrderCommand) RestaurantID() *kernel.UUID {
	return c.restaurantID
}

// Address returns the delivery destination.
func (c CreateOrderCommand) Address() order.DeliveryAddress {
	return c.address
}

// DistanceKm returns the client-declared route distance. Fees and the ETA are
// computed from it, so the declared delivery fee is checked against the same
// distance the client priced.
func (c CreateOrderCommand) DistanceKm() float64 {
	return c.distanceKm
}

// PaymentMethod returns the chosen payment method.
func (c CreateOrderCommand) PaymentMethod() order.PaymentMethod {
	return c.paymentMethod
}

// CouponCode returns the coupon code, empty if none was applied.
func (c CreateOrderCommand) CouponCode() string {
	return c.couponCode
}

// ClientFees returns the client-declared fee breakdown.
func (c CreateOrderCommand) ClientFees() services.ClientFees {
	return c.clientFees
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}

	c.customerID = customerID
	return nil
}

func (c *CreateOrderCommand) setCartLineIDs(cartLineIDs []kernel.UUID) error {
	if len(cartLineIDs) == 0 {
		return ErrCartSelectionIsRequired
	}

	ids := make([]kernel.UUID, len(cartLineIDs))
	for i, id := range cartLineIDs {
		if err := id.Validate(); err != nil {
			return err
		}
		ids[i] = id
	}

	c.cartLineIDs = ids
	return nil
}

func (c *CreateOrderCommand) setRestaurantID(restaurantID kernel.UUID) error {
	if err := restaurantID.Validate(); err != nil {
		return err
	}

	c.restaurantID = &restaurantID
	return nil
}

func (c *CreateOrderCommand) setAddress(address order.DeliveryAddress) error {
	if err := address.Validate(); err != nil {
		return err
	}

	c.address = address
	return nil
}

func (c *CreateOrderCommand) setDistanceKm(distanceKm float64) error {
	if distanceKm <= order.MinDeliveryDistanceKm || distanceKm > order.MaxDeliveryDistanceKm {
		return errs.NewValueIsOutOfRangeError("distanceKm", distanceKm,
			order.MinDeliveryDistanceKm, order.MaxDeliveryDistanceKm)
	}

	c.distanceKm = distanceKm
	return nil
}

func (c *CreateOrderCommand) setPaymentMethod(paymentMethod order.PaymentMethod) error {
	if err := paymentMethod.Validate(); err != nil {
		return err
	}

	c.paymentMethod = paymentMethod
	return nil
}
