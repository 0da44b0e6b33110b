package order

import (
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

// ErrFeesAreNotConstructed is returned when a Fees instance was not created
// via NewFees or RestoreFees.
var ErrFeesAreNotConstructed = errs.NewValueIsRequiredError(
	"fees must be created via NewFees or RestoreFees constructors")

// Fees is the immutable monetary breakdown of an order. The total is always
// derived server-side as subtotal + deliveryFee + serviceFee + tax - discount;
// client-declared figures are only cross-checked, never trusted.
type Fees struct { //nolint:recvcheck //using for validation
	subtotal    kernel.Money
	deliveryFee kernel.Money
	serviceFee  kernel.Money
	discount    kernel.Money
	tax         kernel.Money
	total       kernel.Money

	guard guard.ConstructorGuard
}

// NewFees creates the fee breakdown for a new order and derives the total.
// All components must be non-negative and the discount may not exceed the sum
// of the other components.
func NewFees(subtotal, deliveryFee, serviceFee, discount, tax kernel.Money) (Fees, error) {
	fees := Fees{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		fees.setComponent("subtotal", &fees.subtotal, subtotal),
		fees.setComponent("deliveryFee", &fees.deliveryFee, deliveryFee),
		fees.setComponent("serviceFee", &fees.serviceFee, serviceFee),
		fees.setComponent("discount", &fees.discount, discount),
		fees.setComponent("tax", &fees.tax, tax),
	); err != nil {
		return Fees{}, err
	}

	total := subtotal + deliveryFee + serviceFee + tax - discount
	if total < 0 {
		return Fees{}, errs.NewValueIsInvalidErrorWithCause("discount",
			fmt.Errorf("discount %d exceeds the charged amount", discount))
	}
	fees.total = total

	return fees, nil
}

// RestoreFees reconstructs a fee breakdown from persistence, including the
// stored total. The total invariant is re-verified so a corrupted row cannot
// produce a valid aggregate.
func RestoreFees(subtotal, deliveryFee, serviceFee, discount, tax, total kernel.Money) (Fees, error) {
	fees, err := NewFees(subtotal, deliveryFee, serviceFee, discount, tax)
	if err != nil {
		return Fees{}, err
	}

	if fees.total != total {
		return Fees{}, errs.NewValueIsInvalidErrorWithCause("totalAmount",
			fmt.Errorf("stored total %d does not match derived total %d", total, fees.total))
	}

	return fees, nil
}

// Validate ensures the fees were created through a constructor.
func (f Fees) Validate() error {
	return f.guard.Validate(ErrFeesAreNotConstructed)
}

// Subtotal returns the sum of all line totals.
func (f Fees) Subtotal() kernel.Money {
	return f.subtotal
}

// DeliveryFee returns the distance-based delivery fee.
func (f Fees) DeliveryFee() kernel.Money {
	return f.deliveryFee
}

// ServiceFee returns the platform service fee.
func (f Fees) ServiceFee() kernel.Money {
	return f.serviceFee
}

// Discount returns the applied discount amount.
func (f Fees) Discount() kernel.Money {
	return f.discount
}

// Tax returns the tax amount.
func (f Fees) Tax() kernel.Money {
	return f.tax
}

// Total returns the derived total amount charged.
func (f Fees) Total() kernel.Money {
	return f.total
}

// setComponent validates a non-negative fee component and assigns it.
// Pointer receiver enables self-encapsulated validation during construction.
func (f *Fees) setComponent(name string, field *kernel.Money, value kernel.Money) error {
	if value < 0 {
		return errs.NewValueIsInvalidErrorWithCause(name,
			fmt.Errorf("%d is negative", value))
	}

	*field = value
	return nil
}
