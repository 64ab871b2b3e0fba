package order

import (
	"errors"
	"fmt"

	"takeout/internal/pkg/errs"
)

// ErrAlreadyPaid is returned when payment is confirmed for an order that is already paid.
var ErrAlreadyPaid = errors.New("order is already paid")

// PayStatus tracks money movement independently of Status. A cancelled order
// keeps the pay status that says whether the customer is owed money.
//
//	Unpaid ──> Paid ──(cancel)──> RefundPending ──(gateway refund)──> Refund
//
// RefundPending is the hand-off point for refunds the gateway did not settle.
//
// The numeric values are persisted and must not be renumbered.
type PayStatus int

const (
	// UnknownPayStatus (0) catches uninitialized values.
	UnknownPayStatus PayStatus = iota

	// Unpaid is the pay status of every submitted order.
	Unpaid

	// Paid means the gateway captured the order amount.
	Paid

	// Refund means the captured amount was returned to the customer.
	Refund

	// RefundPending means a paid order was cancelled and its refund is not settled yet.
	RefundPending
)

func getPayStatusStrings() map[PayStatus]string {
	return map[PayStatus]string{
		UnknownPayStatus: "Unknown",
		Unpaid:           "Unpaid",
		Paid:             "Paid",
		Refund:           "Refund",
		RefundPending:    "RefundPending",
	}
}

// Validate checks that p is one of the four pay states.
// Used on values read from the store before they reach the aggregate.
func (p PayStatus) Validate() error {
	if _, ok := getPayStatusStrings()[p]; !ok || p == UnknownPayStatus {
		return errs.NewValueIsInvalidErrorWithCause("pay status is invalid", fmt.Errorf("%d is not a valid pay status", p))
	}
	return nil
}

// String returns the human-readable name of the pay status.
// It is safe to call on any value, including invalid ones.
func (p PayStatus) String() string {
	if str, ok := getPayStatusStrings()[p]; ok {
		return str
	}
	return "Unknown"
}

// afterCancellation is the pay status a cancelled order moves to.
func (p PayStatus) afterCancellation() PayStatus {
	if p == Paid {
		return RefundPending
	}
	return p
}

func (p PayStatus) settleRefund() (PayStatus, error) {
	if p != RefundPending {
		return UnknownPayStatus, errs.NewPreconditionFailedErrorWithCause(
			"pay status is invalid",
			fmt.Errorf("%w: %s has no refund to settle", ErrInvalidStatus, p),
		)
	}
	return Refund, nil
}
