package order

import (
	"errors"
	"time"

	"takeout/internal/core/domain/model/kernel"
	"takeout/internal/pkg/errs"
)

// Snapshot is the persisted shape of an Order. Repositories read it from
// Order.Snapshot and hand it back to RestoreOrder.
type Snapshot struct {
	ID              int64
	Number          kernel.OrderNumber
	CustomerID      int64
	Address         kernel.DeliveryAddress
	Amount          kernel.Money
	Remark          string
	OrderTime       time.Time
	CheckoutTime    *time.Time
	CancelTime      *time.Time
	CancelReason    string
	RejectionReason string
	DeliveryTime    *time.Time
	Status          Status
	PayStatus       PayStatus
	PaymentToken    string
	Items           []LineItem
}

// Snapshot copies the aggregate state out for persistence.
func (o *Order) Snapshot() Snapshot {
	return Snapshot{
		ID:              o.id,
		Number:          o.number,
		CustomerID:      o.customerID,
		Address:         o.address,
		Amount:          o.amount,
		Remark:          o.remark,
		OrderTime:       o.orderTime,
		CheckoutTime:    o.checkoutTime,
		CancelTime:      o.cancelTime,
		CancelReason:    o.cancelReason,
		RejectionReason: o.rejectionReason,
		DeliveryTime:    o.deliveryTime,
		Status:          o.status,
		PayStatus:       o.payStatus,
		PaymentToken:    o.paymentToken,
		Items:           o.Items(),
	}
}

// RestoreOrder rebuilds a persisted order without recording events.
// Orders loaded without items (list scans) are allowed.
func RestoreOrder(s Snapshot) (*Order, error) {
	var errID error
	if s.ID <= 0 {
		errID = errs.NewValueIsRequiredError("order id")
	}
	if err := errors.Join(
		errID,
		s.Number.Validate(),
		s.Address.Validate(),
		s.Amount.Validate(),
		s.Status.Validate(),
		s.PayStatus.Validate(),
	); err != nil {
		return nil, err
	}

	return &Order{
		id:              s.ID,
		number:          s.Number,
		customerID:      s.CustomerID,
		address:         s.Address,
		amount:          s.Amount,
		remark:          s.Remark,
		orderTime:       s.OrderTime,
		checkoutTime:    s.CheckoutTime,
		cancelTime:      s.CancelTime,
		cancelReason:    s.CancelReason,
		rejectionReason: s.RejectionReason,
		deliveryTime:    s.DeliveryTime,
		status:          s.Status,
		payStatus:       s.PayStatus,
		paymentToken:    s.PaymentToken,
		items:           append([]LineItem(nil), s.Items...),
		isConstructed:   true,
	}, nil
}
