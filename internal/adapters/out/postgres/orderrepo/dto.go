// Package orderrepo provides data transfer objects and mapping functions for
// order persistence. It implements the repository pattern for the order
// aggregate, handling the conversion between domain entities and database rows.
package orderrepo

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// The fee breakdown and lifecycle milestones are flattened into columns so the
// reporting queries can aggregate them without touching the domain layer.
type OrderDTO struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey"`
	CustomerID   uuid.UUID  `gorm:"type:uuid;index"`
	RestaurantID uuid.UUID  `gorm:"type:uuid;index"`
	CourierID    *uuid.UUID `gorm:"type:uuid;index"`

	Address AddressDTO `gorm:"embedded;embeddedPrefix:address_"`

	DistanceKm       float64
	EstimatedMinutes int
	PrepMinutes      int

	PaymentMethod string
	PaymentStatus string `gorm:"index"`
	Status        string `gorm:"index"`

	Subtotal    int64
	DeliveryFee int64
	ServiceFee  int64
	Discount    int64
	Tax         int64
	Total       int64

	OrderTime             time.Time `gorm:"index"`
	ConfirmedTime         *time.Time
	PreparingTime         *time.Time
	ReadyTime             *time.Time
	AssignedTime          *time.Time
	PickedUpTime          *time.Time
	DeliveredTime         *time.Time
	CancelledTime         *time.Time
	EstimatedDeliveryTime *time.Time

	CourierLongitude *float64
	CourierLatitude  *float64

	Rating             *int
	RestaurantNote     string
	CancellationReason *string
	CancelledBy        *string

	RefundAmount        *int64
	RefundRequestedTime *time.Time
	RefundProcessedTime *time.Time

	Lines []LineDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// AddressDTO represents the embedded delivery destination within the order table.
type AddressDTO struct {
	Street         string
	City           string
	FullAddress    string
	RecipientName  string
	RecipientPhone string
	Longitude      float64
	Latitude       float64
	Note           string
}

// LineDTO represents one frozen order line. Option IDs are stored as a JSON
// array since they are only ever read back as a whole set.
type LineDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID    uuid.UUID `gorm:"type:uuid;index"`
	MenuItemID uuid.UUID `gorm:"type:uuid"`
	OptionIDs  []string  `gorm:"serializer:json;type:jsonb"`
	Quantity   int
	UnitPrice  int64
	LineTotal  int64
}

// TableName specifies the database table name for order lines.
func (LineDTO) TableName() string {
	return "order_lines"
}

// fromDomain converts an order aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	var courierID *uuid.UUID
	if id := aggregate.Courier(); id != nil {
		raw := id.Bytes()
		courierID = &raw
	}

	timing := aggregate.Timing()
	fees := aggregate.Fees()
	address := aggregate.Address()

	dto := OrderDTO{
		ID:           aggregate.ID().Bytes(),
		CustomerID:   aggregate.CustomerID().Bytes(),
		RestaurantID: aggregate.RestaurantID().Bytes(),
		CourierID:    courierID,

		Address: AddressDTO{
			Street:         address.Street(),
			City:           address.City(),
			FullAddress:    address.FullAddress(),
			RecipientName:  address.RecipientName(),
			RecipientPhone: address.RecipientPhone(),
			Longitude:      address.Location().Longitude(),
			Latitude:       address.Location().Latitude(),
			Note:           address.Note(),
		},

		DistanceKm:       aggregate.DistanceKm(),
		EstimatedMinutes: aggregate.EstimatedMinutes(),
		PrepMinutes:      aggregate.PrepMinutes(),

		PaymentMethod: aggregate.PaymentMethod().String(),
		PaymentStatus: aggregate.PaymentStatus().String(),
		Status:        aggregate.Status().String(),

		Subtotal:    int64(fees.Subtotal()),
		DeliveryFee: int64(fees.DeliveryFee()),
		ServiceFee:  int64(fees.ServiceFee()),
		Discount:    int64(fees.Discount()),
		Tax:         int64(fees.Tax()),
		Total:       int64(fees.Total()),

		OrderTime:             timing.OrderTime,
		ConfirmedTime:         timing.ConfirmedTime,
		PreparingTime:         timing.PreparingTime,
		ReadyTime:             timing.ReadyTime,
		AssignedTime:          timing.AssignedTime,
		PickedUpTime:          timing.PickedUpTime,
		DeliveredTime:         timing.DeliveredTime,
		CancelledTime:         timing.CancelledTime,
		EstimatedDeliveryTime: timing.EstimatedDeliveryTime,

		Rating:         aggregate.Rating(),
		RestaurantNote: aggregate.RestaurantNote(),

		Lines: linesFromDomain(aggregate),
	}

	if location := aggregate.CourierLocation(); location != nil {
		longitude := location.Longitude()
		latitude := location.Latitude()
		dto.CourierLongitude = &longitude
		dto.CourierLatitude = &latitude
	}

	if cancellation := aggregate.Cancellation(); cancellation != nil {
		reason := cancellation.Reason
		cancelledBy := cancellation.CancelledBy.String()
		dto.CancellationReason = &reason
		dto.CancelledBy = &cancelledBy
	}

	if refund := aggregate.Refund(); refund != nil {
		amount := int64(refund.Amount)
		requested := refund.RequestedTime
		dto.RefundAmount = &amount
		dto.RefundRequestedTime = &requested
		dto.RefundProcessedTime = refund.ProcessedTime
	}

	return dto
}

// linesFromDomain converts the aggregate's lines to their row representation.
func linesFromDomain(aggregate *order.Order) []LineDTO {
	lines := aggregate.Lines()
	dtos := make([]LineDTO, 0, len(lines))

	for _, line := range lines {
		optionIDs := line.OptionIDs()
		rawIDs := make([]string, 0, len(optionIDs))
		for _, id := range optionIDs {
			rawIDs = append(rawIDs, id.String())
		}

		dtos = append(dtos, LineDTO{
			ID:         line.ID().Bytes(),
			OrderID:    aggregate.ID().Bytes(),
			MenuItemID: line.MenuItemID().Bytes(),
			OptionIDs:  rawIDs,
			Quantity:   line.Quantity(),
			UnitPrice:  int64(line.UnitPrice()),
			LineTotal:  int64(line.LineTotal()),
		})
	}

	return dtos
}

// toDomain converts a database row to an order aggregate via RestoreOrder,
// which re-validates the structural invariants.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}

	restaurantID, err := kernel.UUIDFromBytes(dto.RestaurantID[:])
	if err != nil {
		return nil, err
	}

	var courierID *kernel.UUID
	if dto.CourierID != nil {
		cID, courierErr := kernel.UUIDFromBytes((*dto.CourierID)[:])
		if courierErr != nil {
			return nil, courierErr
		}
		courierID = &cID
	}

	location, err := kernel.NewGeoPoint(dto.Address.Longitude, dto.Address.Latitude)
	if err != nil {
		return nil, err
	}

	address, err := order.NewDeliveryAddress(
		dto.Address.Street,
		dto.Address.City,
		dto.Address.FullAddress,
		dto.Address.RecipientName,
		dto.Address.RecipientPhone,
		location,
		dto.Address.Note,
	)
	if err != nil {
		return nil, err
	}

	paymentMethod, err := order.PaymentMethodFromString(dto.PaymentMethod)
	if err != nil {
		return nil, err
	}

	paymentStatus, err := order.PaymentStatusFromString(dto.PaymentStatus)
	if err != nil {
		return nil, err
	}

	status, err := order.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	fees, err := order.RestoreFees(
		kernel.Money(dto.Subtotal),
		kernel.Money(dto.DeliveryFee),
		kernel.Money(dto.ServiceFee),
		kernel.Money(dto.Discount),
		kernel.Money(dto.Tax),
		kernel.Money(dto.Total),
	)
	if err != nil {
		return nil, err
	}

	lines, err := linesToDomain(dto.Lines)
	if err != nil {
		return nil, err
	}

	snapshot := order.Snapshot{
		ID:           id,
		CustomerID:   customerID,
		RestaurantID: restaurantID,
		CourierID:    courierID,

		Address:          address,
		DistanceKm:       dto.DistanceKm,
		EstimatedMinutes: dto.EstimatedMinutes,
		PrepMinutes:      dto.PrepMinutes,

		PaymentMethod: paymentMethod,
		PaymentStatus: paymentStatus,
		Fees:          fees,
		Status:        status,
		Timing: order.Timing{
			OrderTime:             dto.OrderTime,
			ConfirmedTime:         dto.ConfirmedTime,
			PreparingTime:         dto.PreparingTime,
			ReadyTime:             dto.ReadyTime,
			AssignedTime:          dto.AssignedTime,
			PickedUpTime:          dto.PickedUpTime,
			DeliveredTime:         dto.DeliveredTime,
			CancelledTime:         dto.CancelledTime,
			EstimatedDeliveryTime: dto.EstimatedDeliveryTime,
		},

		Rating:         dto.Rating,
		RestaurantNote: dto.RestaurantNote,

		Lines: lines,
	}

	if dto.CourierLongitude != nil && dto.CourierLatitude != nil {
		courierLocation, locErr := kernel.NewGeoPoint(*dto.CourierLongitude, *dto.CourierLatitude)
		if locErr != nil {
			return nil, locErr
		}
		snapshot.CourierLocation = &courierLocation
	}

	if dto.CancellationReason != nil && dto.CancelledBy != nil {
		cancelledBy, roleErr := order.RoleFromString(*dto.CancelledBy)
		if roleErr != nil {
			return nil, roleErr
		}
		snapshot.Cancellation = &order.Cancellation{
			Reason:      *dto.CancellationReason,
			CancelledBy: cancelledBy,
		}
	}

	if dto.RefundAmount != nil && dto.RefundRequestedTime != nil {
		snapshot.Refund = &order.Refund{
			Amount:        kernel.Money(*dto.RefundAmount),
			RequestedTime: *dto.RefundRequestedTime,
			ProcessedTime: dto.RefundProcessedTime,
		}
	}

	return order.RestoreOrder(snapshot)
}

// linesToDomain converts line rows back to domain lines with their frozen totals.
func linesToDomain(dtos []LineDTO) ([]*order.Line, error) {
	lines := make([]*order.Line, 0, len(dtos))

	for _, dto := range dtos {
		id, err := kernel.UUIDFromBytes(dto.ID[:])
		if err != nil {
			return nil, err
		}

		menuItemID, err := kernel.UUIDFromBytes(dto.MenuItemID[:])
		if err != nil {
			return nil, err
		}

		optionIDs := make([]kernel.UUID, 0, len(dto.OptionIDs))
		for _, raw := range dto.OptionIDs {
			optionID, optErr := kernel.UUIDFromString(raw)
			if optErr != nil {
				return nil, optErr
			}
			optionIDs = append(optionIDs, optionID)
		}

		line, err := order.RestoreLine(id, menuItemID, optionIDs, dto.Quantity,
			kernel.Money(dto.UnitPrice), kernel.Money(dto.LineTotal))
		if err != nil {
			return nil, err
		}

		lines = append(lines, line)
	}

	return lines, nil
}
