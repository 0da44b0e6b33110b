package commands

import (
	"context"
	"log/slog"
	"time"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
)

// publishOrderChanged emits a lifecycle event for downstream consumers after a
// successful write. Publication is best-effort: a nil publisher is a no-op and
// failures are logged, never surfaced to the caller.
func publishOrderChanged(
	ctx context.Context,
	publisher ports.OrderEventPublisher,
	logger *slog.Logger,
	aggregate *order.Order,
) {
	if publisher == nil {
		return
	}

	event := ports.OrderChangedEvent{
		OrderID:      aggregate.ID().String(),
		CustomerID:   aggregate.CustomerID().String(),
		RestaurantID: aggregate.RestaurantID().String(),
		Status:       aggregate.Status().String(),
		OccurredAt:   time.Now().UTC(),
	}
	if courierID := aggregate.Courier(); courierID != nil {
		id := courierID.String()
		event.CourierID = &id
	}

	if err := publisher.PublishOrderChanged(ctx, event); err != nil && logger != nil {
		logger.WarnContext(ctx, "Failed to publish order change",
			"order_id", event.OrderID, "status", event.Status, "error", err)
	}
}
