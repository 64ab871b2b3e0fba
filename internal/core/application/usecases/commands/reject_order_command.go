package commands

import (
	"errors"
	"strings"

	"takeout/internal/pkg/errs"
	"takeout/internal/pkg/guard"
)

var ErrRejectOrderCommandIsNotConstructed = errors.New(
	"RejectOrderCommand must be created via NewRejectOrderCommand constructor",
)

// RejectOrderCommand declines a paid order that is waiting for the merchant.
type RejectOrderCommand struct { //nolint:recvcheck //using for validation
	orderID int64
	reason  string

	guard guard.ConstructorGuard
}

func NewRejectOrderCommand(orderID int64, reason string) (RejectOrderCommand, error) {
	var errID, errReason error
	if orderID <= 0 {
		errID = errs.NewValueIsRequiredError("orderId")
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		errReason = errs.NewValueIsRequiredError("rejection reason")
	}
	if err := errors.Join(errID, errReason); err != nil {
		return RejectOrderCommand{}, err
	}

	return RejectOrderCommand{
		orderID: orderID,
		reason:  reason,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c RejectOrderCommand) Validate() error {
	return c.guard.Validate(ErrRejectOrderCommandIsNotConstructed)
}

func (c RejectOrderCommand) OrderID() int64 {
	return c.orderID
}

func (c RejectOrderCommand) Reason() string {
	return c.reason
}
