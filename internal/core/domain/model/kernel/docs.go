// Package kernel holds the primitive value objects shared by every aggregate:
// UUID identifiers, GeoPoint coordinates with great-circle distance, and Money
// as an int64 amount in minor currency units. All three are immutable, reject
// their zero values through Validate, and are safe for concurrent use.
package kernel
