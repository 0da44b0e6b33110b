// Package services contains stateless domain services of the fulfillment core.
//
// PricingEngine derives delivery fees, delivery-time estimates, and the
// authoritative fee breakdown from pure inputs; client-declared figures are
// cross-checked against it, never trusted. CartLineResolver turns raw cart
// lines into a grouped, priced line set bound to a single restaurant.
//
// Both services are pure: they operate on in-memory domain values fetched by
// the application layer and perform no I/O themselves.
package services
