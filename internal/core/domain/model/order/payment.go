package order

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// PaymentMethod is the payment instrument chosen at order creation.
type PaymentMethod int

const (
	// PaymentMethodUnknown represents an invalid or undefined payment method.
	PaymentMethodUnknown PaymentMethod = iota

	// PaymentMethodCash is cash on delivery.
	PaymentMethodCash

	// PaymentMethodCard is an online card payment.
	PaymentMethodCard

	// PaymentMethodWallet is an in-app wallet payment.
	PaymentMethodWallet
)

func getPaymentMethodStrings() map[PaymentMethod]string {
	return map[PaymentMethod]string{
		PaymentMethodUnknown: "UNKNOWN",
		PaymentMethodCash:    "CASH",
		PaymentMethodCard:    "CARD",
		PaymentMethodWallet:  "WALLET",
	}
}

// PaymentMethodFromString parses a payment method from its wire representation.
func PaymentMethodFromString(s string) (PaymentMethod, error) {
	for method, str := range getPaymentMethodStrings() {
		if method != PaymentMethodUnknown && str == s {
			return method, nil
		}
	}
	return PaymentMethodUnknown, errs.NewValueIsInvalidErrorWithCause("paymentMethod",
		fmt.Errorf("%q is not a valid payment method", s))
}

// String returns the wire representation of the payment method.
func (m PaymentMethod) String() string {
	if str, ok := getPaymentMethodStrings()[m]; ok {
		return str
	}
	return "UNKNOWN"
}

// Validate checks that the payment method is one of the defined values.
func (m PaymentMethod) Validate() error {
	if _, ok := getPaymentMethodStrings()[m]; !ok || m == PaymentMethodUnknown {
		return errs.NewValueIsInvalidErrorWithCause("paymentMethod",
			fmt.Errorf("%d is not a valid payment method", m))
	}
	return nil
}

// PaymentStatus tracks the money side of the order independently from the
// delivery lifecycle. Cancelling a paid order moves it to RefundPending;
// refund bookkeeping is an asynchronous follow-up that later marks it Refunded.
type PaymentStatus int

const (
	// PaymentStatusUnknown represents an invalid or undefined payment status.
	PaymentStatusUnknown PaymentStatus = iota

	// PaymentStatusUnpaid means no payment has been captured yet.
	PaymentStatusUnpaid

	// PaymentStatusPaid means the payment was captured.
	PaymentStatusPaid

	// PaymentStatusRefundPending means a refund has been enqueued after cancellation.
	PaymentStatusRefundPending

	// PaymentStatusRefunded means the refund has been processed.
	PaymentStatusRefunded
)

func getPaymentStatusStrings() map[PaymentStatus]string {
	return map[PaymentStatus]string{
		PaymentStatusUnknown:       "UNKNOWN",
		PaymentStatusUnpaid:        "UNPAID",
		PaymentStatusPaid:          "PAID",
		PaymentStatusRefundPending: "REFUND_PENDING",
		PaymentStatusRefunded:      "REFUNDED",
	}
}

// PaymentStatusFromString parses a payment status from its wire representation.
func PaymentStatusFromString(s string) (PaymentStatus, error) {
	for status, str := range getPaymentStatusStrings() {
		if status != PaymentStatusUnknown && str == s {
			return status, nil
		}
	}
	return PaymentStatusUnknown, errs.NewValueIsInvalidErrorWithCause("paymentStatus",
		fmt.Errorf("%q is not a valid payment status", s))
}

// String returns the wire representation of the payment status.
func (s PaymentStatus) String() string {
	if str, ok := getPaymentStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// Validate checks that the payment status is one of the defined values.
func (s PaymentStatus) Validate() error {
	if _, ok := getPaymentStatusStrings()[s]; !ok || s == PaymentStatusUnknown {
		return errs.NewValueIsInvalidErrorWithCause("paymentStatus",
			fmt.Errorf("%d is not a valid payment status", s))
	}
	return nil
}
