package order

import (
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

// Role identifies the kind of party acting on an order.
// Every mutating operation on the Order aggregate is gated by the actor's role
// and, for customer/restaurant/courier roles, by the actor's identity matching
// the corresponding party stored on the order.
type Role int

const (
	// RoleUnknown represents an invalid or undefined role.
	RoleUnknown Role = iota

	// RoleCustomer is the customer who placed the order.
	RoleCustomer

	// RoleRestaurant is the restaurant preparing the order.
	RoleRestaurant

	// RoleCourier is the courier delivering the order.
	RoleCourier

	// RoleAdmin is a platform administrator.
	RoleAdmin

	// RoleSystem is the system itself, acting from background jobs.
	RoleSystem
)

// getRoleStrings returns the string representation for every role.
func getRoleStrings() map[Role]string {
	return map[Role]string{
		RoleUnknown:    "unknown",
		RoleCustomer:   "customer",
		RoleRestaurant: "restaurant",
		RoleCourier:    "courier",
		RoleAdmin:      "admin",
		RoleSystem:     "system",
	}
}

// RoleFromString parses a role from its wire representation.
// Returns an error for unrecognized values.
func RoleFromString(s string) (Role, error) {
	for role, str := range getRoleStrings() {
		if role != RoleUnknown && str == s {
			return role, nil
		}
	}
	return RoleUnknown, errs.NewValueIsInvalidErrorWithCause("role",
		fmt.Errorf("%q is not a valid role", s))
}

// String returns the role's wire representation. Implements fmt.Stringer.
func (r Role) String() string {
	if str, ok := getRoleStrings()[r]; ok {
		return str
	}
	return "unknown"
}

// Validate checks that the role is one of the defined values.
func (r Role) Validate() error {
	if _, ok := getRoleStrings()[r]; !ok || r == RoleUnknown {
		return errs.NewValueIsInvalidErrorWithCause("role",
			fmt.Errorf("%d is not a valid role", r))
	}
	return nil
}

// ErrActorIsNotConstructed is returned when an Actor was not created via
// NewActor or NewSystemActor.
var ErrActorIsNotConstructed = errs.NewValueIsRequiredError(
	"actor must be created via NewActor or NewSystemActor constructors")

// Actor is the authenticated party performing an operation, threaded through
// every orchestrator call. Authorization against the order's stored
// customer/restaurant/courier identity happens inside the aggregate, not only
// at the transport boundary.
type Actor struct {
	role Role
	id   kernel.UUID

	guard guard.ConstructorGuard
}

// NewActor creates an actor with the given role and identity.
// The identity must be a valid UUID; use NewSystemActor for system actions.
func NewActor(role Role, id kernel.UUID) (Actor, error) {
	if err := role.Validate(); err != nil {
		return Actor{}, err
	}
	if err := id.Validate(); err != nil {
		return Actor{}, err
	}

	return Actor{
		role:  role,
		id:    id,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// NewSystemActor creates the actor used by background jobs and internal flows.
func NewSystemActor() Actor {
	return Actor{
		role:  RoleSystem,
		id:    kernel.NewUUID(),
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the actor was created through a constructor.
func (a Actor) Validate() error {
	return a.guard.Validate(ErrActorIsNotConstructed)
}

// Role returns the actor's role.
func (a Actor) Role() Role {
	return a.role
}

// ID returns the actor's identity.
func (a Actor) ID() kernel.UUID {
	return a.id
}

// is reports whether the actor has the given role and identity.
func (a Actor) is(role Role, id kernel.UUID) bool {
	return a.role == role && a.id.IsEqual(id)
}

// isPrivileged reports whether the actor may bypass party-identity checks.
func (a Actor) isPrivileged() bool {
	return a.role == RoleAdmin || a.role == RoleSystem
}
