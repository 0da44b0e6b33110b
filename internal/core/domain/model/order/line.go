package order

import (
	"errors"
	"fmt"
	"sort"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// ErrLineIsNotConstructed is returned when a Line instance was not created
// via NewLine or RestoreLine.
var ErrLineIsNotConstructed = errors.New("Line must be created via NewLine or RestoreLine constructors")

// Line is one priced, quantity-bearing item within an order. The unit price
// and line total are frozen at order creation time and are never recomputed
// from live menu prices afterwards.
type Line struct {
	id         kernel.UUID
	menuItemID kernel.UUID
	optionIDs  []kernel.UUID
	quantity   int
	unitPrice  kernel.Money
	lineTotal  kernel.Money

	isConstructed bool
}

// NewLine creates an order line and freezes its total as unitPrice * quantity.
// Option IDs are stored sorted so identical option sets compare equal
// regardless of input order.
func NewLine(
	id kernel.UUID,
	menuItemID kernel.UUID,
	optionIDs []kernel.UUID,
	quantity int,
	unitPrice kernel.Money,
) (*Line, error) {
	line := &Line{
		isConstructed: true,
	}

	if err := errors.Join(
		line.setID(id),
		line.setMenuItemID(menuItemID),
		line.setOptionIDs(optionIDs),
		line.setQuantity(quantity),
		line.setUnitPrice(unitPrice),
	); err != nil {
		return nil, err
	}

	line.lineTotal = unitPrice * kernel.Money(quantity)
	return line, nil
}

// RestoreLine reconstructs an order line from persistence with its frozen total.
func RestoreLine(
	id kernel.UUID,
	menuItemID kernel.UUID,
	optionIDs []kernel.UUID,
	quantity int,
	unitPrice kernel.Money,
	lineTotal kernel.Money,
) (*Line, error) {
	line, err := NewLine(id, menuItemID, optionIDs, quantity, unitPrice)
	if err != nil {
		return nil, err
	}

	if line.lineTotal != lineTotal {
		return nil, errs.NewValueIsInvalidErrorWithCause("lineTotal",
			fmt.Errorf("stored total %d does not match %d * %d", lineTotal, unitPrice, quantity))
	}

	return line, nil
}

// Validate ensures the line was created through a constructor.
func (l *Line) Validate() error {
	if l == nil || !l.isConstructed {
		return ErrLineIsNotConstructed
	}
	return nil
}

// ID returns the line's unique identifier.
func (l *Line) ID() kernel.UUID {
	return l.id
}

// MenuItemID returns the referenced menu item.
func (l *Line) MenuItemID() kernel.UUID {
	return l.menuItemID
}

// OptionIDs returns the chosen option set, sorted by UUID string.
func (l *Line) OptionIDs() []kernel.UUID {
	ids := make([]kernel.UUID, len(l.optionIDs))
	copy(ids, l.optionIDs)
	return ids
}

// Quantity returns the ordered quantity.
func (l *Line) Quantity() int {
	return l.quantity
}

// UnitPrice returns the frozen per-unit price at order time.
func (l *Line) UnitPrice() kernel.Money {
	return l.unitPrice
}

// LineTotal returns the frozen line total at order time.
func (l *Line) LineTotal() kernel.Money {
	return l.lineTotal
}

func (l *Line) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	l.id = id
	return nil
}

func (l *Line) setMenuItemID(menuItemID kernel.UUID) error {
	if err := menuItemID.Validate(); err != nil {
		return err
	}
	l.menuItemID = menuItemID
	return nil
}

func (l *Line) setOptionIDs(optionIDs []kernel.UUID) error {
	ids := make([]kernel.UUID, len(optionIDs))
	for i, id := range optionIDs {
		if err := id.Validate(); err != nil {
			return err
		}
		ids[i] = id
	}

	sort.Slice(ids, func(i, j int) bool {
		return ids[i].String() < ids[j].String()
	})

	l.optionIDs = ids
	return nil
}

func (l *Line) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is not greater than 0", quantity))
	}
	l.quantity = quantity
	return nil
}

func (l *Line) setUnitPrice(unitPrice kernel.Money) error {
	if unitPrice < 0 {
		return errs.NewValueIsInvalidErrorWithCause("unitPrice",
			fmt.Errorf("%d is negative", unitPrice))
	}
	l.unitPrice = unitPrice
	return nil
}
