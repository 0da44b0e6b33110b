package order

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
// It implements a state machine with a fixed transition table; orders only
// move forward through the graph or jump to Cancelled from an early state.
//
// State transitions:
//
//	Pending -> Confirmed -> Preparing -> Ready -> Assigned -> PickingUp -> Delivering -> Delivered
//
// with Confirmed also able to move directly to Ready or Assigned, and
// Cancelled reachable from Pending, Confirmed, and Preparing only; once the
// food is ready or a courier is engaged, the separate refund path applies.
// Delivered and Cancelled are terminal.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	StatusUnknown Status = iota

	// StatusPending is the initial status of a freshly created order,
	// waiting for the restaurant to confirm.
	StatusPending

	// StatusConfirmed indicates the restaurant accepted the order.
	StatusConfirmed

	// StatusPreparing indicates the restaurant is preparing the food.
	StatusPreparing

	// StatusReady indicates the food is ready for pickup.
	StatusReady

	// StatusAssigned indicates a courier has been exclusively bound to the order.
	StatusAssigned

	// StatusPickingUp indicates the assigned courier is heading to the restaurant.
	StatusPickingUp

	// StatusDelivering indicates the courier has the food and is en route.
	StatusDelivering

	// StatusDelivered indicates successful delivery. Terminal.
	StatusDelivered

	// StatusCancelled indicates the order was cancelled before readiness. Terminal.
	StatusCancelled
)

// getStatusStrings returns the wire representation for every status.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:    "UNKNOWN",
		StatusPending:    "PENDING",
		StatusConfirmed:  "CONFIRMED",
		StatusPreparing:  "PREPARING",
		StatusReady:      "READY",
		StatusAssigned:   "ASSIGNED",
		StatusPickingUp:  "PICKING_UP",
		StatusDelivering: "DELIVERING",
		StatusDelivered:  "DELIVERED",
		StatusCancelled:  "CANCELLED",
	}
}

// getTransitions returns the closed transition table of the order lifecycle.
// A status maps to the set of statuses it may move to; moves absent from the
// table are invalid.
func getTransitions() map[Status][]Status {
	return map[Status][]Status{
		StatusPending:    {StatusConfirmed, StatusCancelled},
		StatusConfirmed:  {StatusPreparing, StatusReady, StatusAssigned, StatusCancelled},
		StatusPreparing:  {StatusReady, StatusCancelled},
		StatusReady:      {StatusAssigned},
		StatusAssigned:   {StatusPickingUp},
		StatusPickingUp:  {StatusDelivering},
		StatusDelivering: {StatusDelivered},
		StatusDelivered:  {},
		StatusCancelled:  {},
	}
}

// StatusFromString parses a status from its wire representation.
// Returns an error for unrecognized values or "UNKNOWN".
func StatusFromString(s string) (Status, error) {
	for status, str := range getStatusStrings() {
		if status != StatusUnknown && str == s {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause("status",
		fmt.Errorf("%q is not a valid status", s))
}

// String returns the wire representation of the status, "UNKNOWN" for invalid
// values. Implements fmt.Stringer.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// Validate checks that the status is one of the defined lifecycle values.
func (s Status) Validate() error {
	if _, ok := getStatusStrings()[s]; !ok || s == StatusUnknown {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// IsTerminal reports whether no further lifecycle transition is permitted.
func (s Status) IsTerminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// CanTransitionTo reports whether the transition table permits moving from the
// current status to target.
func (s Status) CanTransitionTo(target Status) bool {
	for _, allowed := range getTransitions()[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// Transition validates the move to target against the transition table and
// returns the new status. Returns InvalidTransitionError if the move is not
// in the table.
func (s Status) Transition(target Status) (Status, error) {
	if err := target.Validate(); err != nil {
		return StatusUnknown, err
	}

	if !s.CanTransitionTo(target) {
		return StatusUnknown, errs.NewInvalidTransitionError(s.String(), target.String())
	}

	return target, nil
}

// ValidateAssignable checks that a courier may still be bound to an order in
// this status. Assignment is only possible from Confirmed or Ready.
func (s Status) ValidateAssignable() error {
	if s != StatusConfirmed && s != StatusReady {
		return errs.NewInvalidTransitionError(s.String(), StatusAssigned.String())
	}
	return nil
}

// ValidateCancellable checks that an order in this status may still be
// cancelled. Cancellation is clamped to pre-Ready states; later stages go
// through the refund path instead.
func (s Status) ValidateCancellable() error {
	if s != StatusPending && s != StatusConfirmed && s != StatusPreparing {
		return errs.NewInvalidTransitionError(s.String(), StatusCancelled.String())
	}
	return nil
}

// ValidateCanHaveCourier validates consistency between status and courier
// assignment: a courier is set if and only if the order reached Assigned or a
// later delivery stage.
func (s Status) ValidateCanHaveCourier(hasCourier bool) error {
	assignedOrLater := s == StatusAssigned || s == StatusPickingUp ||
		s == StatusDelivering || s == StatusDelivered

	if hasCourier && !assignedOrLater && s != StatusCancelled {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%s is not a valid status to have a courier", s.String()))
	}

	if !hasCourier && assignedOrLater {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%s is not a valid status to have no courier", s.String()))
	}

	return nil
}
