// Package courier holds the courier registry read model. Courier onboarding
// and session management are external collaborators; the fulfillment core only
// checks existence and online status before binding a courier to an order.
package courier

import (
	"fulfillment/internal/core/domain/model/kernel"
)

// Courier is the registry view of a delivery courier.
// Location is the courier's last known position, if any; per-order tracking
// positions live on the order aggregate itself.
type Courier struct {
	ID       kernel.UUID
	Name     string
	Online   bool
	Location *kernel.GeoPoint
}
