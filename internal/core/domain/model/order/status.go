package order

import (
	"errors"
	"fmt"

	"takeout/internal/pkg/errs"
)

var (
	// ErrInvalidStatus is the cause of every PreconditionFailedError raised
	// when a transition is attempted from a status that does not allow it.
	ErrInvalidStatus = errors.New("order status does not allow this operation")

	// ErrContactMerchant is returned when a customer tries to cancel an order
	// the merchant has already accepted. The customer has to call the store
	// instead, so callers surface it separately from ErrInvalidStatus.
	ErrContactMerchant = errors.New("order already accepted, contact the merchant to cancel")
)

// Status represents the lifecycle state of an order.
//
// State transitions:
//
//	PendingPayment ──> ToBeConfirmed ──> Confirmed ──> DeliveryInProgress ──> Completed
//	      │                  │               │                 │
//	      └──────────────────┴───────────────┴─────────────────┴──────────> Cancelled
//
// Which exits into Cancelled are open, and to whom, is decided by the
// capability table in getStatusCapabilities, never by comparing ordinals.
// Completed and Cancelled are terminal.
//
// The numeric values are persisted and must not be renumbered.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// PendingPayment is the initial status of a submitted order.
	PendingPayment

	// ToBeConfirmed means the order is paid and waits for the merchant.
	ToBeConfirmed

	// Confirmed means the merchant accepted the order.
	Confirmed

	// DeliveryInProgress means the order left the kitchen.
	DeliveryInProgress

	// Completed means the order was delivered. Terminal.
	Completed

	// Cancelled means the order was rejected, cancelled or timed out. Terminal.
	Cancelled
)

// capability is one row of the status capability table.
type capability struct {
	customerMayCancel   bool
	mustContactMerchant bool
	staffMayCancel      bool
	terminal            bool
}

func getStatusCapabilities() map[Status]capability {
	//nolint:exhaustive // Unknown has no capabilities
	return map[Status]capability{
		PendingPayment:     {customerMayCancel: true, staffMayCancel: true},
		ToBeConfirmed:      {customerMayCancel: true, staffMayCancel: true},
		Confirmed:          {mustContactMerchant: true, staffMayCancel: true},
		DeliveryInProgress: {mustContactMerchant: true, staffMayCancel: true},
		Completed:          {terminal: true},
		Cancelled:          {terminal: true},
	}
}

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:            "Unknown",
		PendingPayment:     "PendingPayment",
		ToBeConfirmed:      "ToBeConfirmed",
		Confirmed:          "Confirmed",
		DeliveryInProgress: "DeliveryInProgress",
		Completed:          "Completed",
		Cancelled:          "Cancelled",
	}
}

// Validate checks that s is one of the six lifecycle states.
// Used on values read from the store before they reach the aggregate.
func (s Status) Validate() error {
	if _, ok := getStatusCapabilities()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status.
// It is safe to call on any value, including invalid ones.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// CustomerMayCancel reports whether a customer can cancel without the merchant.
func (s Status) CustomerMayCancel() bool {
	return getStatusCapabilities()[s].customerMayCancel
}

// MustContactMerchant reports whether a customer cancel has to go through the store.
func (s Status) MustContactMerchant() bool {
	return getStatusCapabilities()[s].mustContactMerchant
}

// StaffMayCancel reports whether staff can cancel the order.
func (s Status) StaffMayCancel() bool {
	return getStatusCapabilities()[s].staffMayCancel
}

// IsTerminal reports whether no further transition is possible.
func (s Status) IsTerminal() bool {
	return getStatusCapabilities()[s].terminal
}

// ConfirmPayment transitions PendingPayment -> ToBeConfirmed.
func (s Status) ConfirmPayment() (Status, error) {
	return s.require(PendingPayment, ToBeConfirmed, "confirm payment")
}

// Accept transitions ToBeConfirmed -> Confirmed.
func (s Status) Accept() (Status, error) {
	return s.require(ToBeConfirmed, Confirmed, "accept")
}

// Reject transitions ToBeConfirmed -> Cancelled.
func (s Status) Reject() (Status, error) {
	return s.require(ToBeConfirmed, Cancelled, "reject")
}

// Dispatch transitions Confirmed -> DeliveryInProgress.
func (s Status) Dispatch() (Status, error) {
	return s.require(Confirmed, DeliveryInProgress, "dispatch")
}

// Complete transitions DeliveryInProgress -> Completed.
func (s Status) Complete() (Status, error) {
	return s.require(DeliveryInProgress, Completed, "complete")
}

// ExpirePayment is the sweeper's forced PendingPayment -> Cancelled.
func (s Status) ExpirePayment() (Status, error) {
	return s.require(PendingPayment, Cancelled, "expire payment")
}

// ForceComplete is the sweeper's forced DeliveryInProgress -> Completed.
func (s Status) ForceComplete() (Status, error) {
	return s.require(DeliveryInProgress, Completed, "force complete")
}

// CancelByStaff transitions any non-terminal status to Cancelled.
func (s Status) CancelByStaff() (Status, error) {
	if !s.StaffMayCancel() {
		return Unknown, newInvalidStatusError(s, "cancel")
	}
	return Cancelled, nil
}

// CancelByCustomer transitions a customer-cancellable status to Cancelled.
//
// Returns:
//   - (Cancelled, nil) for PendingPayment and ToBeConfirmed
//   - an error wrapping ErrContactMerchant for Confirmed and DeliveryInProgress
//   - an error wrapping ErrInvalidStatus for terminal and unknown statuses
func (s Status) CancelByCustomer() (Status, error) {
	switch {
	case s.CustomerMayCancel():
		return Cancelled, nil
	case s.MustContactMerchant():
		return Unknown, errs.NewPreconditionFailedErrorWithCause(
			"customer cannot cancel",
			fmt.Errorf("%w: order is %s", ErrContactMerchant, s),
		)
	default:
		return Unknown, newInvalidStatusError(s, "cancel")
	}
}

func (s Status) require(from, to Status, action string) (Status, error) {
	if s != from {
		return Unknown, newInvalidStatusError(s, action)
	}
	return to, nil
}

func newInvalidStatusError(s Status, action string) error {
	return errs.NewPreconditionFailedErrorWithCause(
		"status is invalid",
		fmt.Errorf("%w: %s is not a valid status to %s", ErrInvalidStatus, s, action),
	)
}
