package commands

import (
	"errors"

	"takeout/internal/core/domain/model/kernel"
	"takeout/internal/pkg/errs"
	"takeout/internal/pkg/guard"
)

var ErrConfirmPaymentCommandIsNotConstructed = errors.New(
	"ConfirmPaymentCommand must be created via NewConfirmPaymentCommand constructor",
)

// ConfirmPaymentCommand charges the customer for an order identified by its number.
type ConfirmPaymentCommand struct { //nolint:recvcheck //using for validation
	customerID  int64
	orderNumber kernel.OrderNumber

	guard guard.ConstructorGuard
}

func NewConfirmPaymentCommand(customerID int64, orderNumber kernel.OrderNumber) (ConfirmPaymentCommand, error) {
	var errCustomer error
	if customerID <= 0 {
		errCustomer = errs.NewValueIsRequiredError("customerId")
	}
	if err := errors.Join(errCustomer, orderNumber.Validate()); err != nil {
		return ConfirmPaymentCommand{}, err
	}

	return ConfirmPaymentCommand{
		customerID:  customerID,
		orderNumber: orderNumber,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c ConfirmPaymentCommand) Validate() error {
	return c.guard.Validate(ErrConfirmPaymentCommandIsNotConstructed)
}

func (c ConfirmPaymentCommand) CustomerID() int64 {
	return c.customerID
}

func (c ConfirmPaymentCommand) OrderNumber() kernel.OrderNumber {
	return c.orderNumber
}
