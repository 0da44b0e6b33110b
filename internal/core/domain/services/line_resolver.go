package services

import (
	"fmt"
	"sort"
	"strings"

	"fulfillment/internal/core/domain/model/cart"
	"fulfillment/internal/core/domain/model/catalog"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// ResolvedLine is a grouped, priced cart line ready to become an order line.
// OptionIDs are sorted, Quantity is the sum over duplicate cart rows, and
// UnitPrice is the current catalog price (base price plus option adjustments)
// frozen into the order at creation.
type ResolvedLine struct {
	MenuItemID kernel.UUID
	OptionIDs  []kernel.UUID
	Quantity   int
	UnitPrice  kernel.Money
	LineTotal  kernel.Money
}

// CartLineResolver turns raw cart lines into a priced line set bound to a
// single restaurant. It defends against duplicate cart rows by grouping lines
// with an identical item and option set, and rejects carts that span more
// than one restaurant or reference unavailable catalog entries.
type CartLineResolver struct{}

// NewCartLineResolver creates a CartLineResolver instance.
func NewCartLineResolver() CartLineResolver {
	return CartLineResolver{}
}

// Resolve groups and prices the given cart lines against the supplied catalog
// views and returns the resolved lines plus the single restaurant they belong to.
//
// Failure modes:
//   - empty line set: ValueIsRequiredError
//   - menu item or option missing from the catalog views: ObjectNotFoundError
//   - item or option unavailable (soft-deleted item, menu, or restaurant):
//     ConflictError
//   - lines spanning more than one restaurant, or an option belonging to a
//     different item: ValueIsInvalidError
func (r CartLineResolver) Resolve(
	lines []cart.Line,
	items map[kernel.UUID]catalog.MenuItem,
	options map[kernel.UUID]catalog.Option,
) ([]ResolvedLine, kernel.UUID, error) {
	if len(lines) == 0 {
		return nil, kernel.UUID{}, errs.NewValueIsRequiredError("cart lines")
	}

	var restaurantID kernel.UUID
	groups := make(map[string]*ResolvedLine)
	groupOrder := make([]string, 0, len(lines))

	for _, line := range lines {
		item, ok := items[line.MenuItemID]
		if !ok {
			return nil, kernel.UUID{}, errs.NewObjectNotFoundError("menuItem", line.MenuItemID.String())
		}
		if !item.Available {
			return nil, kernel.UUID{}, errs.NewConflictError(
				fmt.Sprintf("menu item %s is not available", line.MenuItemID))
		}

		if restaurantID.Validate() != nil {
			restaurantID = item.RestaurantID
		} else if !restaurantID.IsEqual(item.RestaurantID) {
			return nil, kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause("cart lines",
				fmt.Errorf("lines span more than one restaurant"))
		}

		if line.Quantity <= 0 {
			return nil, kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause("quantity",
				fmt.Errorf("%d is not greater than 0", line.Quantity))
		}

		unitPrice := item.BasePrice
		optionIDs := make([]kernel.UUID, len(line.OptionIDs))
		copy(optionIDs, line.OptionIDs)
		sort.Slice(optionIDs, func(i, j int) bool {
			return optionIDs[i].String() < optionIDs[j].String()
		})

		for _, optionID := range optionIDs {
			option, optOK := options[optionID]
			if !optOK {
				return nil, kernel.UUID{}, errs.NewObjectNotFoundError("option", optionID.String())
			}
			if !option.Available {
				return nil, kernel.UUID{}, errs.NewConflictError(
					fmt.Sprintf("option %s is not available", optionID))
			}
			if !option.MenuItemID.IsEqual(item.ID) {
				return nil, kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause("options",
					fmt.Errorf("option %s does not belong to menu item %s", optionID, item.ID))
			}
			unitPrice += option.PriceAdjustment
		}

		key := groupKey(line.MenuItemID, optionIDs)
		if group, exists := groups[key]; exists {
			group.Quantity += line.Quantity
			group.LineTotal = group.UnitPrice * kernel.Money(group.Quantity)
			continue
		}

		groups[key] = &ResolvedLine{
			MenuItemID: line.MenuItemID,
			OptionIDs:  optionIDs,
			Quantity:   line.Quantity,
			UnitPrice:  unitPrice,
			LineTotal:  unitPrice * kernel.Money(line.Quantity),
		}
		groupOrder = append(groupOrder, key)
	}

	resolved := make([]ResolvedLine, 0, len(groups))
	for _, key := range groupOrder {
		resolved = append(resolved, *groups[key])
	}

	return resolved, restaurantID, nil
}

// Subtotal sums the line totals of a resolved line set.
func (r CartLineResolver) Subtotal(lines []ResolvedLine) kernel.Money {
	var subtotal kernel.Money
	for _, line := range lines {
		subtotal += line.LineTotal
	}
	return subtotal
}

// groupKey builds the identity of a (menu item, option set) combination.
// Option IDs must already be sorted.
func groupKey(menuItemID kernel.UUID, sortedOptionIDs []kernel.UUID) string {
	parts := make([]string, 0, len(sortedOptionIDs)+1)
	parts = append(parts, menuItemID.String())
	for _, id := range sortedOptionIDs {
		parts = append(parts, id.String())
	}
	return strings.Join(parts, "|")
}
