package order

import (
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

const (
	// MinDeliveryDistanceKm is the exclusive lower bound for the delivery distance.
	MinDeliveryDistanceKm = 0.0
	// MaxDeliveryDistanceKm is the inclusive upper bound for the delivery distance.
	MaxDeliveryDistanceKm = 50.0

	// MinRating and MaxRating bound the customer rating.
	MinRating = 1
	MaxRating = 5
)

// ErrOrderIsNotConstructed is returned when an Order instance was not created
// through the NewOrder or RestoreOrder factory methods.
var ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder constructors")

// Order is the aggregate root of the fulfillment domain. It is created
// immutable from a priced cart (the lines and fees are frozen) and then driven
// through the status lifecycle by its actors: the restaurant confirms and
// prepares, a courier accepts and delivers, the customer may cancel early and
// rate after delivery, admin and system handle refunds and reconciliation.
//
// Invariants:
//   - Exactly one restaurant per order; lines are frozen at creation.
//   - fees.Total() == subtotal + deliveryFee + serviceFee + tax - discount.
//   - A courier is set if and only if the status is Assigned or later.
//   - Status only moves forward through the transition table or jumps to
//     Cancelled from a pre-Ready state.
//   - Every mutating method checks the actor's role and identity and leaves
//     the order untouched on failure.
type Order struct {
	id           kernel.UUID
	customerID   kernel.UUID
	restaurantID kernel.UUID
	courierID    *kernel.UUID

	address          DeliveryAddress
	distanceKm       float64
	estimatedMinutes int
	prepMinutes      int

	paymentMethod PaymentMethod
	paymentStatus PaymentStatus
	fees          Fees
	status        Status
	timing        Timing

	courierLocation *kernel.GeoPoint
	rating          *int
	restaurantNote  string
	cancellation    *Cancellation
	refund          *Refund

	lines []*Line

	isConstructed bool
}

// NewOrder creates a new order in Pending status from an already priced and
// validated line set. The order time is stamped with now and the estimated
// delivery time is derived from estimatedMinutes.
//
// The caller (the order factory) is responsible for having resolved the lines
// from the cart and validated the fee breakdown; this constructor enforces the
// structural invariants: valid identities, a constructed address, a distance
// within (0, 50], validated fees, and a non-empty line set whose totals sum to
// the fee subtotal.
func NewOrder(
	id kernel.UUID,
	customerID kernel.UUID,
	restaurantID kernel.UUID,
	address DeliveryAddress,
	distanceKm float64,
	estimatedMinutes int,
	paymentMethod PaymentMethod,
	paymentStatus PaymentStatus,
	fees Fees,
	lines []*Line,
	now time.Time,
) (*Order, error) {
	o := &Order{
		status:        StatusPending,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomerID(customerID),
		o.setRestaurantID(restaurantID),
		o.setAddress(address),
		o.setDistanceKm(distanceKm),
		o.setEstimatedMinutes(estimatedMinutes),
		o.setPaymentMethod(paymentMethod),
		o.setPaymentStatus(paymentStatus),
		o.setFees(fees),
		o.setLines(lines),
	); err != nil {
		return nil, err
	}

	eta := now.Add(time.Duration(estimatedMinutes) * time.Minute)
	o.timing = Timing{
		OrderTime:             now,
		EstimatedDeliveryTime: &eta,
	}

	return o, nil
}

// Snapshot carries the full persisted state of an order for reconstruction.
type Snapshot struct {
	ID           kernel.UUID
	CustomerID   kernel.UUID
	RestaurantID kernel.UUID
	CourierID    *kernel.UUID

	Address          DeliveryAddress
	DistanceKm       float64
	EstimatedMinutes int
	PrepMinutes      int

	PaymentMethod PaymentMethod
	PaymentStatus PaymentStatus
	Fees          Fees
	Status        Status
	Timing        Timing

	CourierLocation *kernel.GeoPoint
	Rating          *int
	RestaurantNote  string
	Cancellation    *Cancellation
	Refund          *Refund

	Lines []*Line
}

// RestoreOrder reconstructs an order from persistence. It re-validates the
// structural invariants, including the status/courier consistency rule, so a
// corrupted row cannot produce a valid aggregate.
func RestoreOrder(snapshot Snapshot) (*Order, error) {
	o := &Order{
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(snapshot.ID),
		o.setCustomerID(snapshot.CustomerID),
		o.setRestaurantID(snapshot.RestaurantID),
		o.setAddress(snapshot.Address),
		o.setDistanceKm(snapshot.DistanceKm),
		o.setEstimatedMinutes(snapshot.EstimatedMinutes),
		o.setPaymentMethod(snapshot.PaymentMethod),
		o.setPaymentStatus(snapshot.PaymentStatus),
		o.setFees(snapshot.Fees),
		o.setLines(snapshot.Lines),
		snapshot.Status.Validate(),
		snapshot.Status.ValidateCanHaveCourier(snapshot.CourierID != nil),
	); err != nil {
		return nil, err
	}

	if snapshot.CourierID != nil {
		if err := snapshot.CourierID.Validate(); err != nil {
			return nil, err
		}
		courierID := *snapshot.CourierID
		o.courierID = &courierID
	}

	o.status = snapshot.Status
	o.timing = snapshot.Timing
	o.prepMinutes = snapshot.PrepMinutes
	o.courierLocation = snapshot.CourierLocation
	o.rating = snapshot.Rating
	o.restaurantNote = snapshot.RestaurantNote
	o.cancellation = snapshot.Cancellation
	o.refund = snapshot.Refund

	return o, nil
}

// Validate ensures the Order instance was properly constructed through a factory method.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// CustomerID returns the customer who placed the order.
func (o *Order) CustomerID() kernel.UUID {
	return o.customerID
}

// RestaurantID returns the restaurant fulfilling the order.
func (o *Order) RestaurantID() kernel.UUID {
	return o.restaurantID
}

// Courier returns the assigned courier's ID, nil if unassigned.
func (o *Order) Courier() *kernel.UUID {
	return o.courierID
}

// Address returns the delivery address.
func (o *Order) Address() DeliveryAddress {
	return o.address
}

// DistanceKm returns the restaurant-to-destination distance in kilometers.
func (o *Order) DistanceKm() float64 {
	return o.distanceKm
}

// EstimatedMinutes returns the estimated delivery duration in minutes.
func (o *Order) EstimatedMinutes() int {
	return o.estimatedMinutes
}

// PrepMinutes returns the preparation minutes declared by the restaurant at
// confirmation, 0 before confirmation.
func (o *Order) PrepMinutes() int {
	return o.prepMinutes
}

// PaymentMethod returns the chosen payment method.
func (o *Order) PaymentMethod() PaymentMethod {
	return o.paymentMethod
}

// PaymentStatus returns the current payment status.
func (o *Order) PaymentStatus() PaymentStatus {
	return o.paymentStatus
}

// Fees returns the frozen fee breakdown.
func (o *Order) Fees() Fees {
	return o.fees
}

// Status returns the current lifecycle status.
func (o *Order) Status() Status {
	return o.status
}

// Timing returns the stamped lifecycle milestones.
func (o *Order) Timing() Timing {
	return o.timing
}

// CourierLocation returns the most recently reported courier position,
// nil before the first location update.
func (o *Order) CourierLocation() *kernel.GeoPoint {
	return o.courierLocation
}

// Rating returns the customer rating, nil if not yet rated.
func (o *Order) Rating() *int {
	return o.rating
}

// RestaurantNote returns the note left by the restaurant at confirmation.
func (o *Order) RestaurantNote() string {
	return o.restaurantNote
}

// Cancellation returns the cancellation record, nil unless cancelled.
func (o *Order) Cancellation() *Cancellation {
	return o.cancellation
}

// Refund returns the refund record, nil unless a refund was enqueued.
func (o *Order) Refund() *Refund {
	return o.refund
}

// Lines returns the frozen order lines.
func (o *Order) Lines() []*Line {
	lines := make([]*Line, len(o.lines))
	copy(lines, o.lines)
	return lines
}

// DistanceToDestinationKm returns the great-circle distance from the courier's
// last reported position to the delivery address, nil before any location update.
func (o *Order) DistanceToDestinationKm() (*float64, error) {
	if o.courierLocation == nil {
		return nil, nil
	}

	km, err := o.courierLocation.DistanceKm(o.address.Location())
	if err != nil {
		return nil, err
	}

	return &km, nil
}

// Confirm moves the order from Pending to Confirmed on behalf of the owning
// restaurant, stamping the confirmation time and recording the declared
// preparation minutes. The estimated delivery time is replaced by eta, which
// the caller derives from the declared preparation time.
func (o *Order) Confirm(actor Actor, prepMinutes int, note string, eta time.Time, now time.Time) error {
	if err := o.authorizeRestaurant(actor); err != nil {
		return err
	}

	if prepMinutes <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("prepMinutes",
			fmt.Errorf("%d is not greater than 0", prepMinutes))
	}

	newStatus, err := o.status.Transition(StatusConfirmed)
	if err != nil {
		return err
	}

	o.status = newStatus
	o.prepMinutes = prepMinutes
	o.restaurantNote = note
	o.timing.ConfirmedTime = &now
	o.timing.EstimatedDeliveryTime = &eta
	return nil
}

// MarkPreparing moves a confirmed order to Preparing on behalf of the owning
// restaurant, stamping the preparation time.
func (o *Order) MarkPreparing(actor Actor, now time.Time) error {
	if err := o.authorizeRestaurant(actor); err != nil {
		return err
	}

	newStatus, err := o.status.Transition(StatusPreparing)
	if err != nil {
		return err
	}

	o.status = newStatus
	o.timing.PreparingTime = &now
	return nil
}

// MarkReady moves a confirmed or preparing order to Ready on behalf of the
// owning restaurant, stamping the ready time.
func (o *Order) MarkReady(actor Actor, now time.Time) error {
	if err := o.authorizeRestaurant(actor); err != nil {
		return err
	}

	newStatus, err := o.status.Transition(StatusReady)
	if err != nil {
		return err
	}

	o.status = newStatus
	o.timing.ReadyTime = &now
	return nil
}

// Assign exclusively binds a courier to the order and moves it to Assigned,
// stamping the assignment time. The order must not already have a courier and
// must be in Confirmed or Ready status.
//
// Exclusivity under concurrent acceptance is enforced at the storage layer via
// a conditional update; this method expresses the same rule for the aggregate.
func (o *Order) Assign(courierID kernel.UUID, now time.Time) error {
	if err := courierID.Validate(); err != nil {
		return err
	}

	if o.courierID != nil {
		return errs.NewConflictError("order is already assigned to a courier")
	}

	if err := o.status.ValidateAssignable(); err != nil {
		return err
	}

	o.status = StatusAssigned
	o.courierID = &courierID
	o.timing.AssignedTime = &now
	return nil
}

// AdvanceByCourier moves the order through the courier-owned stages
// Assigned -> PickingUp -> Delivering -> Delivered on behalf of the assigned
// courier, stamping the pickup time on entering Delivering and the delivered
// time on entering Delivered.
func (o *Order) AdvanceByCourier(actor Actor, target Status, now time.Time) error {
	if err := o.authorizeCourier(actor); err != nil {
		return err
	}

	if target != StatusPickingUp && target != StatusDelivering && target != StatusDelivered {
		return errs.NewInvalidTransitionError(o.status.String(), target.String())
	}

	newStatus, err := o.status.Transition(target)
	if err != nil {
		return err
	}

	o.status = newStatus
	switch newStatus { //nolint:exhaustive // only delivery stages stamp milestones
	case StatusDelivering:
		o.timing.PickedUpTime = &now
	case StatusDelivered:
		o.timing.DeliveredTime = &now
	}
	return nil
}

// Cancel cancels the order on behalf of the customer, the owning restaurant,
// an admin, or the system. Cancellation is only allowed from Pending,
// Confirmed, or Preparing; later stages fail with InvalidTransitionError.
// If the order was already paid, a refund is enqueued by moving the payment
// status to RefundPending.
func (o *Order) Cancel(actor Actor, reason string, now time.Time) error {
	if err := actor.Validate(); err != nil {
		return err
	}

	switch actor.Role() {
	case RoleCustomer:
		if !actor.is(RoleCustomer, o.customerID) {
			return errs.NewForbiddenError("only the ordering customer may cancel this order")
		}
	case RoleRestaurant:
		if !actor.is(RoleRestaurant, o.restaurantID) {
			return errs.NewForbiddenError("only the fulfilling restaurant may cancel this order")
		}
	case RoleAdmin, RoleSystem:
	case RoleCourier, RoleUnknown:
		return errs.NewForbiddenError("couriers may not cancel orders")
	}

	if err := o.status.ValidateCancellable(); err != nil {
		return err
	}

	o.status = StatusCancelled
	o.cancellation = &Cancellation{
		Reason:      reason,
		CancelledBy: actor.Role(),
	}
	o.timing.CancelledTime = &now

	if o.paymentStatus == PaymentStatusPaid {
		o.paymentStatus = PaymentStatusRefundPending
		o.refund = &Refund{
			Amount:        o.fees.Total(),
			RequestedTime: now,
		}
	}

	return nil
}

// Rate records the customer's rating. Rating is only allowed once, only by
// the ordering customer, and only after delivery.
func (o *Order) Rate(actor Actor, rating int) error {
	if err := actor.Validate(); err != nil {
		return err
	}

	if !actor.is(RoleCustomer, o.customerID) {
		return errs.NewForbiddenError("only the ordering customer may rate this order")
	}

	if o.status != StatusDelivered {
		return errs.NewInvalidTransitionError(o.status.String(), "rated")
	}

	if o.rating != nil {
		return errs.NewConflictError("order has already been rated")
	}

	if rating < MinRating || rating > MaxRating {
		return errs.NewValueIsOutOfRangeError("rating", rating, MinRating, MaxRating)
	}

	o.rating = &rating
	return nil
}

// UpdateCourierLocation stores the courier's reported position for tracking.
// Only the assigned courier may report, and only while the delivery is in
// progress. Location updates are last-write-wins and never alter the status.
func (o *Order) UpdateCourierLocation(actor Actor, location kernel.GeoPoint) error {
	if err := o.authorizeCourier(actor); err != nil {
		return err
	}

	if err := location.Validate(); err != nil {
		return err
	}

	if o.status.IsTerminal() {
		return errs.NewInvalidTransitionError(o.status.String(), "location update")
	}

	o.courierLocation = &location
	return nil
}

// MarkRefunded completes the refund bookkeeping for a cancelled paid order on
// behalf of an admin or the system.
func (o *Order) MarkRefunded(actor Actor, now time.Time) error {
	if err := actor.Validate(); err != nil {
		return err
	}

	if !actor.isPrivileged() {
		return errs.NewForbiddenError("only admins may process refunds")
	}

	if o.paymentStatus != PaymentStatusRefundPending {
		return errs.NewConflictError("order has no pending refund")
	}

	o.paymentStatus = PaymentStatusRefunded
	if o.refund != nil {
		o.refund.ProcessedTime = &now
	}
	return nil
}

// authorizeRestaurant checks that the actor is the owning restaurant or privileged.
func (o *Order) authorizeRestaurant(actor Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}

	if actor.isPrivileged() || actor.is(RoleRestaurant, o.restaurantID) {
		return nil
	}

	return errs.NewForbiddenError("only the fulfilling restaurant may update this order")
}

// authorizeCourier checks that the actor is the assigned courier.
func (o *Order) authorizeCourier(actor Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}

	if o.courierID == nil {
		return errs.NewConflictError("order has no assigned courier")
	}

	if !actor.is(RoleCourier, *o.courierID) {
		return errs.NewForbiddenError("only the assigned courier may update this order")
	}

	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}
	o.customerID = customerID
	return nil
}

func (o *Order) setRestaurantID(restaurantID kernel.UUID) error {
	if err := restaurantID.Validate(); err != nil {
		return err
	}
	o.restaurantID = restaurantID
	return nil
}

func (o *Order) setAddress(address DeliveryAddress) error {
	if err := address.Validate(); err != nil {
		return err
	}
	o.address = address
	return nil
}

func (o *Order) setDistanceKm(distanceKm float64) error {
	if distanceKm <= MinDeliveryDistanceKm || distanceKm > MaxDeliveryDistanceKm {
		return errs.NewValueIsOutOfRangeError("distanceKm", distanceKm,
			MinDeliveryDistanceKm, MaxDeliveryDistanceKm)
	}
	o.distanceKm = distanceKm
	return nil
}

func (o *Order) setEstimatedMinutes(estimatedMinutes int) error {
	if estimatedMinutes <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("estimatedDeliveryMinutes",
			fmt.Errorf("%d is not greater than 0", estimatedMinutes))
	}
	o.estimatedMinutes = estimatedMinutes
	return nil
}

func (o *Order) setPaymentMethod(paymentMethod PaymentMethod) error {
	if err := paymentMethod.Validate(); err != nil {
		return err
	}
	o.paymentMethod = paymentMethod
	return nil
}

func (o *Order) setPaymentStatus(paymentStatus PaymentStatus) error {
	if err := paymentStatus.Validate(); err != nil {
		return err
	}
	o.paymentStatus = paymentStatus
	return nil
}

func (o *Order) setFees(fees Fees) error {
	if err := fees.Validate(); err != nil {
		return err
	}
	o.fees = fees
	return nil
}

func (o *Order) setLines(lines []*Line) error {
	if len(lines) == 0 {
		return errs.NewValueIsRequiredError("order lines")
	}

	var subtotal kernel.Money
	for _, line := range lines {
		if err := line.Validate(); err != nil {
			return err
		}
		subtotal += line.LineTotal()
	}

	if o.fees.Validate() == nil && subtotal != o.fees.Subtotal() {
		return errs.NewValueIsInvalidErrorWithCause("subtotal",
			fmt.Errorf("line totals sum to %d but fees declare %d", subtotal, o.fees.Subtotal()))
	}

	o.lines = make([]*Line, len(lines))
	copy(o.lines, lines)
	return nil
}
