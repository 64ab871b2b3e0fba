package ports

import (
	"context"
	"errors"

	"takeout/internal/core/domain/model/kernel"
)

// ErrPaymentAlreadyCompleted is returned by PaymentGateway.Pay when the
// provider has already captured a payment for the order.
var ErrPaymentAlreadyCompleted = errors.New("payment already completed")

type PaymentRequest struct {
	OrderNumber kernel.OrderNumber
	CustomerID  int64
	Amount      kernel.Money
}

type PaymentReceipt struct {
	// Token identifies the charge at the provider and is needed to refund it.
	Token string
}

type RefundRequest struct {
	OrderNumber  kernel.OrderNumber
	PaymentToken string
	Amount       kernel.Money
	Reason       string
}

type RefundReceipt struct {
	RefundID string
}

// PaymentGateway charges and refunds orders. Implementations report every
// failure; callers never assume success.
type PaymentGateway interface {
	Pay(ctx context.Context, req PaymentRequest) (PaymentReceipt, error)
	Refund(ctx context.Context, req RefundRequest) (RefundReceipt, error)
}
