package commands

import (
	"errors"
	"strings"

	"takeout/internal/pkg/errs"
	"takeout/internal/pkg/guard"
)

var ErrCancelOrderByStaffCommandIsNotConstructed = errors.New(
	"CancelOrderByStaffCommand must be created via NewCancelOrderByStaffCommand constructor",
)

// CancelOrderByStaffCommand cancels an order on the merchant's side from any non-terminal status.
type CancelOrderByStaffCommand struct { //nolint:recvcheck //using for validation
	orderID int64
	reason  string

	guard guard.ConstructorGuard
}

func NewCancelOrderByStaffCommand(orderID int64, reason string) (CancelOrderByStaffCommand, error) {
	var errID, errReason error
	if orderID <= 0 {
		errID = errs.NewValueIsRequiredError("orderId")
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		errReason = errs.NewValueIsRequiredError("cancel reason")
	}
	if err := errors.Join(errID, errReason); err != nil {
		return CancelOrderByStaffCommand{}, err
	}

	return CancelOrderByStaffCommand{
		orderID: orderID,
		reason:  reason,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c CancelOrderByStaffCommand) Validate() error {
	return c.guard.Validate(ErrCancelOrderByStaffCommandIsNotConstructed)
}

func (c CancelOrderByStaffCommand) OrderID() int64 {
	return c.orderID
}

func (c CancelOrderByStaffCommand) Reason() string {
	return c.reason
}
