package order

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
)

// Timing holds the time-stamped milestones of the order lifecycle.
// OrderTime is always set; every other milestone is nil until the
// corresponding transition stamps it.
type Timing struct {
	OrderTime             time.Time
	ConfirmedTime         *time.Time
	PreparingTime         *time.Time
	ReadyTime             *time.Time
	AssignedTime          *time.Time
	PickedUpTime          *time.Time
	DeliveredTime         *time.Time
	CancelledTime         *time.Time
	EstimatedDeliveryTime *time.Time
}

// Cancellation records who cancelled the order and why.
// The cancellation time lives in Timing.CancelledTime.
type Cancellation struct {
	Reason      string
	CancelledBy Role
}

// Refund records refund bookkeeping for a cancelled paid order.
// The refund is enqueued at cancellation and processed asynchronously.
type Refund struct {
	Amount        kernel.Money
	RequestedTime time.Time
	ProcessedTime *time.Time
}
