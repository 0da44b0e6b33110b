// Package queries contains read-only operations in the CQRS architecture.
// Query handlers bypass the domain aggregates and read the storage directly
// into response shapes tailored to each caller.
package queries

import (
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

const (
	// DefaultPageLimit is used when the caller does not specify a page size.
	DefaultPageLimit = 20

	// MaxPageLimit caps the page size a caller may request.
	MaxPageLimit = 100
)

var ErrGetMyOrdersQueryIsNotConstructed = errors.New(
	"GetMyOrdersQuery must be created via NewGetMyOrdersQuery constructor",
)

// GetMyOrdersQuery retrieves a customer's order history, newest first,
// optionally filtered by status.
type GetMyOrdersQuery struct {
	customerID kernel.UUID
	status     *order.Status
	page       int
	limit      int

	guard guard.ConstructorGuard
}

// NewGetMyOrdersQuery creates a query for a customer's orders.
// page is 1-based; page 0 means the first page. limit 0 means DefaultPageLimit.
func NewGetMyOrdersQuery(
	customerID kernel.UUID,
	status *order.Status,
	page int,
	limit int,
) (GetMyOrdersQuery, error) {
	if err := customerID.Validate(); err != nil {
		return GetMyOrdersQuery{}, err
	}

	if status != nil {
		if err := status.Validate(); err != nil {
			return GetMyOrdersQuery{}, err
		}
	}

	if page < 0 {
		return GetMyOrdersQuery{}, errs.NewValueIsInvalidErrorWithCause("page",
			fmt.Errorf("%d is negative", page))
	}
	if page == 0 {
		page = 1
	}

	if limit < 0 || limit > MaxPageLimit {
		return GetMyOrdersQuery{}, errs.NewValueIsOutOfRangeError("limit", limit, 0, MaxPageLimit)
	}
	if limit == 0 {
		limit = DefaultPageLimit
	}

	return GetMyOrdersQuery{
		customerID: customerID,
		status:     status,
		page:       page,
		limit:      limit,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetMyOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetMyOrdersQueryIsNotConstructed)
}

// CustomerID returns the customer whose orders are listed.
func (q GetMyOrdersQuery) CustomerID() kernel.UUID {
	return q.customerID
}

// Status returns the optional status filter.
func (q GetMyOrdersQuery) Status() *order.Status {
	return q.status
}

// Page returns the 1-based page number.
func (q GetMyOrdersQuery) Page() int {
	return q.page
}

// Limit returns the page size.
func (q GetMyOrdersQuery) Limit() int {
	return q.limit
}

// Offset returns the row offset for the page.
func (q GetMyOrdersQuery) Offset() int {
	return (q.page - 1) * q.limit
}

// GetMyOrdersQueryResponse is one row of a customer's order history.
type GetMyOrdersQueryResponse struct {
	ID                    kernel.UUID
	RestaurantID          kernel.UUID
	Status                order.Status
	Total                 kernel.Money
	OrderTime             time.Time
	EstimatedDeliveryTime *time.Time
}
