package commands

import (
	"errors"

	"takeout/internal/pkg/errs"
	"takeout/internal/pkg/guard"
)

var ErrReorderCommandIsNotConstructed = errors.New(
	"ReorderCommand must be created via NewReorderCommand constructor",
)

// ReorderCommand copies the items of a past order into the customer's cart.
type ReorderCommand struct { //nolint:recvcheck //using for validation
	customerID int64
	orderID    int64

	guard guard.ConstructorGuard
}

func NewReorderCommand(customerID, orderID int64) (ReorderCommand, error) {
	var errCustomer, errOrder error
	if customerID <= 0 {
		errCustomer = errs.NewValueIsRequiredError("customerId")
	}
	if orderID <= 0 {
		errOrder = errs.NewValueIsRequiredError("orderId")
	}
	if err := errors.Join(errCustomer, errOrder); err != nil {
		return ReorderCommand{}, err
	}

	return ReorderCommand{
		customerID: customerID,
		orderID:    orderID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c ReorderCommand) Validate() error {
	return c.guard.Validate(ErrReorderCommandIsNotConstructed)
}

func (c ReorderCommand) CustomerID() int64 {
	return c.customerID
}

func (c ReorderCommand) OrderID() int64 {
	return c.orderID
}
