package order

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

// ErrDeliveryAddressIsNotConstructed is returned when a DeliveryAddress was
// not created via NewDeliveryAddress.
var ErrDeliveryAddressIsNotConstructed = errs.NewValueIsRequiredError(
	"delivery address must be created via NewDeliveryAddress constructor")

// DeliveryAddress is the immutable destination of an order: the textual
// address, the recipient's contact details, and the geographic coordinates
// used for distance and ETA calculations.
type DeliveryAddress struct { //nolint:recvcheck //using for validation
	street         string
	city           string
	fullAddress    string
	recipientName  string
	recipientPhone string
	location       kernel.GeoPoint
	note           string

	guard guard.ConstructorGuard
}

// NewDeliveryAddress creates a validated delivery address.
// Full address text, recipient name, recipient phone, and a valid coordinate
// pair are required; street, city, and note are optional detail.
func NewDeliveryAddress(
	street, city, fullAddress, recipientName, recipientPhone string,
	location kernel.GeoPoint,
	note string,
) (DeliveryAddress, error) {
	address := DeliveryAddress{
		street: street,
		city:   city,
		note:   note,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		address.setRequired("fullAddress", &address.fullAddress, fullAddress),
		address.setRequired("recipientName", &address.recipientName, recipientName),
		address.setRequired("recipientPhone", &address.recipientPhone, recipientPhone),
		address.setLocation(location),
	); err != nil {
		return DeliveryAddress{}, err
	}

	return address, nil
}

// Validate ensures the address was created through the constructor.
func (a DeliveryAddress) Validate() error {
	return a.guard.Validate(ErrDeliveryAddressIsNotConstructed)
}

// Street returns the street component of the address.
func (a DeliveryAddress) Street() string {
	return a.street
}

// City returns the city component of the address.
func (a DeliveryAddress) City() string {
	return a.city
}

// FullAddress returns the full textual address.
func (a DeliveryAddress) FullAddress() string {
	return a.fullAddress
}

// RecipientName returns the recipient's name.
func (a DeliveryAddress) RecipientName() string {
	return a.recipientName
}

// RecipientPhone returns the recipient's phone number.
func (a DeliveryAddress) RecipientPhone() string {
	return a.recipientPhone
}

// Location returns the destination coordinates.
func (a DeliveryAddress) Location() kernel.GeoPoint {
	return a.location
}

// Note returns the optional delivery note.
func (a DeliveryAddress) Note() string {
	return a.note
}

// setRequired validates a non-empty string field and assigns it.
// Pointer receiver enables self-encapsulated validation during construction.
func (a *DeliveryAddress) setRequired(name string, field *string, value string) error {
	if value == "" {
		return errs.NewValueIsRequiredError(name)
	}

	*field = value
	return nil
}

// setLocation validates and sets the destination coordinates.
func (a *DeliveryAddress) setLocation(location kernel.GeoPoint) error {
	if err := location.Validate(); err != nil {
		return err
	}

	a.location = location
	return nil
}
