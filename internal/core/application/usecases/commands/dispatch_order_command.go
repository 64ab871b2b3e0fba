package commands

import (
	"errors"

	"takeout/internal/pkg/errs"
	"takeout/internal/pkg/guard"
)

var ErrDispatchOrderCommandIsNotConstructed = errors.New(
	"DispatchOrderCommand must be created via NewDispatchOrderCommand constructor",
)

// DispatchOrderCommand hands an accepted order to delivery.
type DispatchOrderCommand struct { //nolint:recvcheck //using for validation
	orderID int64

	guard guard.ConstructorGuard
}

func NewDispatchOrderCommand(orderID int64) (DispatchOrderCommand, error) {
	if orderID <= 0 {
		return DispatchOrderCommand{}, errs.NewValueIsRequiredError("orderId")
	}

	return DispatchOrderCommand{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c DispatchOrderCommand) Validate() error {
	return c.guard.Validate(ErrDispatchOrderCommandIsNotConstructed)
}

func (c DispatchOrderCommand) OrderID() int64 {
	return c.orderID
}
