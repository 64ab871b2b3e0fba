package order

import (
	"errors"
	"strings"
	"time"

	"takeout/internal/core/domain/model/kernel"
	"takeout/internal/pkg/errs"

	"github.com/google/uuid"
)

const (
	// CustomerCancelReason is recorded when the customer cancels.
	CustomerCancelReason = "customer cancelled"

	// PaymentTimeoutReason is recorded when the sweeper cancels an unpaid order.
	PaymentTimeoutReason = "payment timeout"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrOrderHasNoItems is returned when an order would be created without line items.
	ErrOrderHasNoItems = errs.NewValueIsRequiredError("line items")
)

// Order is the aggregate root of the order lifecycle. It owns its line items
// and is the only place status and pay status change.
//
// Order follows these invariants:
//   - Has at least one line item, frozen at creation
//   - Order number is set once and never changes
//   - Status changes only through the transition methods below
//   - Pay status moves to RefundPending whenever a paid order is cancelled
//
// Every transition appends a StatusChanged event which the caller publishes
// after the change is committed; see PullEvents.
type Order struct {
	id              int64
	number          kernel.OrderNumber
	customerID      int64
	address         kernel.DeliveryAddress
	amount          kernel.Money
	remark          string
	orderTime       time.Time
	checkoutTime    *time.Time
	cancelTime      *time.Time
	cancelReason    string
	rejectionReason string
	deliveryTime    *time.Time
	status          Status
	payStatus       PayStatus
	paymentToken    string
	items           []LineItem

	events        []StatusChanged
	isConstructed bool
}

// NewOrder creates a submitted order in PendingPayment and Unpaid.
//
// Parameters:
//   - number: fresh caller-visible order number
//   - customerID: the ordering customer
//   - address: snapshot of the delivery address
//   - amount: order total as supplied by the caller
//   - remark: free-form customer note, may be empty
//   - items: one line item per cart entry, at least one
//   - now: submission time, recorded as order time
//
// Example:
//
//	entry, _ := cart.NewEntry("Kung Pao Chicken", 2, price, cart.Product{})
//	item, _ := order.NewLineItem(entry)
//	o, err := order.NewOrder(kernel.NewOrderNumber(now), 42, address, amount, "", []order.LineItem{item}, now)
func NewOrder(
	number kernel.OrderNumber,
	customerID int64,
	address kernel.DeliveryAddress,
	amount kernel.Money,
	remark string,
	items []LineItem,
	now time.Time,
) (*Order, error) {
	var errItems error
	if len(items) == 0 {
		errItems = ErrOrderHasNoItems
	}
	for _, item := range items {
		if err := item.Validate(); err != nil {
			errItems = errors.Join(errItems, err)
		}
	}
	var errCustomer error
	if customerID <= 0 {
		errCustomer = errs.NewValueIsRequiredError("customer id")
	}
	if err := errors.Join(
		number.Validate(),
		address.Validate(),
		amount.Validate(),
		errCustomer,
		errItems,
	); err != nil {
		return nil, err
	}

	o := &Order{
		number:        number,
		customerID:    customerID,
		address:       address,
		amount:        amount,
		remark:        strings.TrimSpace(remark),
		orderTime:     now,
		status:        PendingPayment,
		payStatus:     Unpaid,
		items:         append([]LineItem(nil), items...),
		isConstructed: true,
	}
	o.record(Unknown, "", now)
	return o, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

func (o *Order) ID() int64 {
	return o.id
}

func (o *Order) Number() kernel.OrderNumber {
	return o.number
}

func (o *Order) CustomerID() int64 {
	return o.customerID
}

func (o *Order) Address() kernel.DeliveryAddress {
	return o.address
}

func (o *Order) Amount() kernel.Money {
	return o.amount
}

func (o *Order) Remark() string {
	return o.remark
}

func (o *Order) OrderTime() time.Time {
	return o.orderTime
}

func (o *Order) CheckoutTime() *time.Time {
	return o.checkoutTime
}

func (o *Order) CancelTime() *time.Time {
	return o.cancelTime
}

func (o *Order) CancelReason() string {
	return o.cancelReason
}

func (o *Order) RejectionReason() string {
	return o.rejectionReason
}

func (o *Order) DeliveryTime() *time.Time {
	return o.deliveryTime
}

func (o *Order) Status() Status {
	return o.status
}

func (o *Order) PayStatus() PayStatus {
	return o.payStatus
}

func (o *Order) PaymentToken() string {
	return o.paymentToken
}

// Items returns a copy of the line items.
func (o *Order) Items() []LineItem {
	return append([]LineItem(nil), o.items...)
}

// AssignID stores the identifier the store generated on insert.
// It is a no-op once an id is set.
func (o *Order) AssignID(id int64) {
	if o.id == 0 {
		o.id = id
	}
}

// BelongsTo reports whether customerID placed the order.
func (o *Order) BelongsTo(customerID int64) bool {
	return o.customerID == customerID
}

// Summary renders the items as "name*qty;name*qty;".
func (o *Order) Summary() string {
	var b strings.Builder
	for _, item := range o.items {
		b.WriteString(item.String())
		b.WriteByte(';')
	}
	return b.String()
}

// ValidatePayment checks, without side effects, that the order can be paid.
func (o *Order) ValidatePayment() error {
	if o.payStatus == Paid {
		return errs.NewPreconditionFailedErrorWithCause("payment", ErrAlreadyPaid)
	}
	if _, err := o.status.ConfirmPayment(); err != nil {
		return err
	}
	if o.payStatus != Unpaid {
		return newInvalidStatusError(o.status, "confirm payment with pay status "+o.payStatus.String())
	}
	return nil
}

// ConfirmPayment records a successful charge identified by token.
func (o *Order) ConfirmPayment(token string, now time.Time) error {
	if err := o.ValidatePayment(); err != nil {
		return err
	}
	if strings.TrimSpace(token) == "" {
		return errs.NewValueIsRequiredError("payment token")
	}

	prev := o.status
	o.status = ToBeConfirmed
	o.payStatus = Paid
	o.paymentToken = token
	o.checkoutTime = &now
	o.record(prev, "", now)
	return nil
}

// Accept is the merchant taking the order.
func (o *Order) Accept(now time.Time) error {
	next, err := o.status.Accept()
	if err != nil {
		return err
	}
	o.move(next, "", now)
	return nil
}

// Reject is the merchant declining a paid order. The reason becomes both
// the rejection and the cancel reason.
func (o *Order) Reject(reason string, now time.Time) error {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return errs.NewValueIsRequiredError("rejection reason")
	}
	next, err := o.status.Reject()
	if err != nil {
		return err
	}
	o.rejectionReason = reason
	o.cancel(next, reason, now)
	return nil
}

// CancelByStaff cancels from any non-terminal status.
func (o *Order) CancelByStaff(reason string, now time.Time) error {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return errs.NewValueIsRequiredError("cancel reason")
	}
	next, err := o.status.CancelByStaff()
	if err != nil {
		return err
	}
	o.cancel(next, reason, now)
	return nil
}

// CancelByCustomer is the customer's self-service cancel. Accepted orders
// fail with ErrContactMerchant and are left unchanged.
func (o *Order) CancelByCustomer(now time.Time) error {
	next, err := o.status.CancelByCustomer()
	if err != nil {
		return err
	}
	o.cancel(next, CustomerCancelReason, now)
	return nil
}

// Dispatch hands the order to delivery.
func (o *Order) Dispatch(now time.Time) error {
	next, err := o.status.Dispatch()
	if err != nil {
		return err
	}
	o.move(next, "", now)
	return nil
}

// Complete records delivery.
func (o *Order) Complete(now time.Time) error {
	next, err := o.status.Complete()
	if err != nil {
		return err
	}
	o.deliveryTime = &now
	o.move(next, "", now)
	return nil
}

// ExpirePayment is the forced cancel of an order left unpaid too long.
func (o *Order) ExpirePayment(now time.Time) error {
	next, err := o.status.ExpirePayment()
	if err != nil {
		return err
	}
	o.cancel(next, PaymentTimeoutReason, now)
	return nil
}

// ForceComplete is the forced completion of an order left in delivery too long.
func (o *Order) ForceComplete(now time.Time) error {
	next, err := o.status.ForceComplete()
	if err != nil {
		return err
	}
	o.deliveryTime = &now
	o.move(next, "", now)
	return nil
}

// RefundDue reports whether a cancellation left money owed to the customer.
func (o *Order) RefundDue() bool {
	return o.payStatus == RefundPending
}

// MarkRefunded settles a pending refund. Status is unchanged.
func (o *Order) MarkRefunded() error {
	next, err := o.payStatus.settleRefund()
	if err != nil {
		return err
	}
	o.payStatus = next
	return nil
}

// PullEvents returns the recorded events and clears them. Events recorded
// before the order had an id are stamped with the current one.
func (o *Order) PullEvents() []StatusChanged {
	events := o.events
	o.events = nil
	for i := range events {
		events[i].OrderID = o.id
	}
	return events
}

func (o *Order) cancel(next Status, reason string, now time.Time) {
	o.cancelReason = reason
	o.cancelTime = &now
	o.payStatus = o.payStatus.afterCancellation()
	o.move(next, reason, now)
}

func (o *Order) move(next Status, reason string, now time.Time) {
	prev := o.status
	o.status = next
	o.record(prev, reason, now)
}

func (o *Order) record(prev Status, reason string, now time.Time) {
	o.events = append(o.events, StatusChanged{
		EventID:     uuid.New(),
		OrderID:     o.id,
		OrderNumber: o.number.String(),
		CustomerID:  o.customerID,
		Previous:    prev,
		Current:     o.status,
		PayStatus:   o.payStatus,
		Reason:      reason,
		OccurredAt:  now,
	})
}
