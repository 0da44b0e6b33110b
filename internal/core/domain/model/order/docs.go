// Package order implements the Order aggregate root of the fulfillment domain.
//
// An order is created immutable from a priced cart: its lines, fee breakdown,
// delivery address, and distance are frozen at creation time. Afterwards only
// lifecycle state mutates: the status, the time-stamped milestones, the
// courier assignment and reported position, the customer rating, and the
// cancellation/refund bookkeeping.
//
// The package enforces the role-gated state machine: every mutating method
// takes an Actor and verifies both the current status (against a closed
// transition table) and the actor's identity against the order's stored
// customer, restaurant, or courier. A failed check leaves the order untouched.
package order
