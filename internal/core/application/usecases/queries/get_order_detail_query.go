// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries read straight from the database into read models and never
// rehydrate aggregates.
package queries

import (
	"errors"
	"fmt"
	"time"

	"takeout/internal/core/domain/model/order"
	"takeout/internal/pkg/errs"
	"takeout/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	ErrGetOrderDetailQueryIsNotConstructed = errors.New(
		"GetOrderDetailQuery must be created via NewGetOrderDetailQuery or NewGetCustomerOrderDetailQuery constructor",
	)
)

// GetOrderDetailQuery reads one order with its line items.
// Staff queries see every order; customer queries only see the customer's own.
//
// Example:
//
//	query, err := NewGetCustomerOrderDetailQuery(customerID, orderID)
//	if err != nil {
//	    return err
//	}
//
//	detail, err := handler.Handle(ctx, query)
//	if errors.Is(err, errs.ErrObjectNotFound) {
//	    // missing, or placed by someone else
//	}
type GetOrderDetailQuery struct {
	orderID    int64
	customerID *int64

	guard guard.ConstructorGuard
}

// NewGetOrderDetailQuery creates an unscoped query for staff.
func NewGetOrderDetailQuery(orderID int64) (GetOrderDetailQuery, error) {
	if orderID <= 0 {
		return GetOrderDetailQuery{}, errs.NewValueIsInvalidErrorWithCause("orderId", fmt.Errorf("%d is not positive", orderID))
	}

	return GetOrderDetailQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// NewGetCustomerOrderDetailQuery creates a query limited to customerID's orders.
func NewGetCustomerOrderDetailQuery(customerID, orderID int64) (GetOrderDetailQuery, error) {
	if customerID <= 0 {
		return GetOrderDetailQuery{}, errs.NewValueIsRequiredError("customerId")
	}

	q, err := NewGetOrderDetailQuery(orderID)
	if err != nil {
		return GetOrderDetailQuery{}, err
	}
	q.customerID = &customerID
	return q, nil
}

func (q GetOrderDetailQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderDetailQueryIsNotConstructed)
}

func (q GetOrderDetailQuery) OrderID() int64 {
	return q.orderID
}

// CustomerID is nil for staff queries.
func (q GetOrderDetailQuery) CustomerID() *int64 {
	return q.customerID
}

// OrderDetailResponse is the read model of one order.
type OrderDetailResponse struct {
	ID              int64
	Number          string
	CustomerID      int64
	Status          order.Status
	PayStatus       order.PayStatus
	Amount          decimal.Decimal
	Remark          string
	Consignee       string
	Phone           string
	Address         string
	OrderTime       time.Time
	CheckoutTime    *time.Time
	CancelTime      *time.Time
	CancelReason    string
	RejectionReason string
	DeliveryTime    *time.Time
	// Summary lists the items as "name*qty;name*qty;".
	Summary string
	Items   []OrderDetailItem
}

// OrderDetailItem is one line item of OrderDetailResponse.
type OrderDetailItem struct {
	ID        int64
	Name      string
	Image     string
	DishID    *int64
	SetmealID *int64
	Flavor    string
	Quantity  int
	UnitPrice decimal.Decimal
}
