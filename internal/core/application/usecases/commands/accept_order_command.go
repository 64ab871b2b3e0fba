package commands

import (
	"errors"

	"takeout/internal/pkg/errs"
	"takeout/internal/pkg/guard"
)

var ErrAcceptOrderCommandIsNotConstructed = errors.New(
	"AcceptOrderCommand must be created via NewAcceptOrderCommand constructor",
)

// AcceptOrderCommand is the merchant taking a paid order.
type AcceptOrderCommand struct { //nolint:recvcheck //using for validation
	orderID int64

	guard guard.ConstructorGuard
}

func NewAcceptOrderCommand(orderID int64) (AcceptOrderCommand, error) {
	if orderID <= 0 {
		return AcceptOrderCommand{}, errs.NewValueIsRequiredError("orderId")
	}

	return AcceptOrderCommand{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c AcceptOrderCommand) Validate() error {
	return c.guard.Validate(ErrAcceptOrderCommandIsNotConstructed)
}

func (c AcceptOrderCommand) OrderID() int64 {
	return c.orderID
}
