package commands

import (
	"errors"

	"takeout/internal/pkg/errs"
	"takeout/internal/pkg/guard"
)

var ErrCancelOrderByCustomerCommandIsNotConstructed = errors.New(
	"CancelOrderByCustomerCommand must be created via NewCancelOrderByCustomerCommand constructor",
)

// CancelOrderByCustomerCommand is the customer's self-service cancel.
type CancelOrderByCustomerCommand struct { //nolint:recvcheck //using for validation
	customerID int64
	orderID    int64

	guard guard.ConstructorGuard
}

func NewCancelOrderByCustomerCommand(customerID, orderID int64) (CancelOrderByCustomerCommand, error) {
	var errCustomer, errOrder error
	if customerID <= 0 {
		errCustomer = errs.NewValueIsRequiredError("customerId")
	}
	if orderID <= 0 {
		errOrder = errs.NewValueIsRequiredError("orderId")
	}
	if err := errors.Join(errCustomer, errOrder); err != nil {
		return CancelOrderByCustomerCommand{}, err
	}

	return CancelOrderByCustomerCommand{
		customerID: customerID,
		orderID:    orderID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c CancelOrderByCustomerCommand) Validate() error {
	return c.guard.Validate(ErrCancelOrderByCustomerCommandIsNotConstructed)
}

func (c CancelOrderByCustomerCommand) CustomerID() int64 {
	return c.customerID
}

func (c CancelOrderByCustomerCommand) OrderID() int64 {
	return c.orderID
}
