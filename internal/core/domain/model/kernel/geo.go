package kernel

import (
	"errors"
	"fmt"
	"math"

	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

const (
	// LongitudeMin is the minimum valid longitude in degrees.
	LongitudeMin = -180.0
	// LongitudeMax is the maximum valid longitude in degrees.
	LongitudeMax = 180.0
	// LatitudeMin is the minimum valid latitude in degrees.
	LatitudeMin = -90.0
	// LatitudeMax is the maximum valid latitude in degrees.
	LatitudeMax = 90.0

	// earthRadiusKm is the mean Earth radius used by the haversine formula.
	earthRadiusKm = 6371.0
)

// ErrGeoPointIsNotConstructed is returned when attempting to use an improperly
// initialized GeoPoint. GeoPoints must be created via NewGeoPoint or
// GeoPointFromPair to guarantee valid coordinates.
var ErrGeoPointIsNotConstructed = errs.NewValueIsRequiredError(
	"geo point must be created via NewGeoPoint or GeoPointFromPair constructors")

// ErrCoordinatePairIsInvalid is returned when a coordinate pair does not hold
// exactly two elements.
var ErrCoordinatePairIsInvalid = errs.NewValueIsInvalidError(
	"coordinates must be a [longitude, latitude] pair")

// GeoPoint represents a geographic position as a [longitude, latitude] pair
// in decimal degrees. GeoPoint is an immutable value object; the zero value is
// invalid and fails validation, so instances must come from a constructor.
//
// The coordinate order follows the GeoJSON convention used on the wire:
// longitude first, latitude second.
//
// Example:
//
//	point, err := kernel.NewGeoPoint(106.70, 10.77)
//	if err != nil {
//	    // Handle validation error
//	}
//	fmt.Println(point) // GeoPoint(106.700000,10.770000)
type GeoPoint struct { //nolint:recvcheck //using for validation
	longitude float64
	latitude  float64
	guard     guard.ConstructorGuard
}

// NewGeoPoint creates a GeoPoint with the given longitude and latitude.
// Longitude must be within [-180, 180] and latitude within [-90, 90];
// an out-of-range coordinate yields a validation error.
func NewGeoPoint(longitude float64, latitude float64) (GeoPoint, error) {
	point := GeoPoint{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(point.setLongitude(longitude), point.setLatitude(latitude)); err != nil {
		return GeoPoint{}, err
	}

	return point, nil
}

// GeoPointFromPair creates a GeoPoint from a [longitude, latitude] slice,
// the shape coordinates arrive in from transport payloads.
// Returns an error if the slice does not hold exactly two elements or a
// coordinate is out of range.
func GeoPointFromPair(pair []float64) (GeoPoint, error) {
	if len(pair) != 2 {
		return GeoPoint{}, ErrCoordinatePairIsInvalid
	}

	return NewGeoPoint(pair[0], pair[1])
}

// Validate checks if the GeoPoint was properly constructed via a constructor.
// The zero value fails this validation.
func (p GeoPoint) Validate() error {
	return p.guard.Validate(ErrGeoPointIsNotConstructed)
}

// Longitude returns the longitude in decimal degrees.
func (p GeoPoint) Longitude() float64 {
	return p.longitude
}

// Latitude returns the latitude in decimal degrees.
func (p GeoPoint) Latitude() float64 {
	return p.latitude
}

// Pair returns the coordinates as a [longitude, latitude] slice for transport payloads.
func (p GeoPoint) Pair() []float64 {
	return []float64{p.longitude, p.latitude}
}

// String returns a human-readable representation in the form
// "GeoPoint(longitude,latitude)". Implements fmt.Stringer.
func (p GeoPoint) String() string {
	return fmt.Sprintf("GeoPoint(%f,%f)", p.longitude, p.latitude)
}

// IsEqual compares two geo points for coordinate equality.
// Both points must be properly constructed for the comparison to succeed.
func (p GeoPoint) IsEqual(other GeoPoint) (bool, error) {
	if err := errors.Join(p.Validate(), other.Validate()); err != nil {
		return false, err
	}

	return p == other, nil
}

// DistanceKm calculates the great-circle distance to another point in
// kilometers using the haversine formula with a mean Earth radius of 6371 km.
// Both points must be properly constructed for the calculation to succeed.
//
// Example:
//
//	restaurant, _ := kernel.NewGeoPoint(106.70, 10.77)
//	customer, _ := kernel.NewGeoPoint(106.66, 10.76)
//	km, _ := restaurant.DistanceKm(customer)
func (p GeoPoint) DistanceKm(other GeoPoint) (float64, error) {
	if err := errors.Join(p.Validate(), other.Validate()); err != nil {
		return 0, err
	}

	lat1 := p.latitude * math.Pi / 180
	lat2 := other.latitude * math.Pi / 180
	dLat := (other.latitude - p.latitude) * math.Pi / 180
	dLon := (other.longitude - p.longitude) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c, nil
}

// setLongitude sets the longitude with range validation.
// Pointer receiver enables self-encapsulated validation during construction.
func (p *GeoPoint) setLongitude(longitude float64) error {
	if longitude < LongitudeMin || longitude > LongitudeMax {
		return errs.NewValueIsOutOfRangeError("longitude", longitude, LongitudeMin, LongitudeMax)
	}

	p.longitude = longitude
	return nil
}

// setLatitude sets the latitude with range validation.
// Pointer receiver enables self-encapsulated validation during construction.
func (p *GeoPoint) setLatitude(latitude float64) error {
	if latitude < LatitudeMin || latitude > LatitudeMax {
		return errs.NewValueIsOutOfRangeError("latitude", latitude, LatitudeMin, LatitudeMax)
	}

	p.latitude = latitude
	return nil
}
