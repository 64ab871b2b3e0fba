package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"takeout/internal/core/domain/model/order"
	"takeout/internal/core/ports"
	"takeout/internal/pkg/clock"
	"takeout/internal/pkg/errs"
)

type ConfirmPaymentResult struct {
	OrderID      int64
	PaymentToken string
	CheckoutTime time.Time
}

// ConfirmPaymentCommandHandler charges an order through the payment gateway
// and moves it to ToBeConfirmed.
//
// The gateway call happens outside the transaction. If recording the charge
// fails, the order is reloaded: a charge the store already holds is left
// alone, any other charge is refunded best-effort. A concurrent confirmation
// that recorded the same charge yields order.ErrAlreadyPaid, another
// concurrent change yields errs.ConflictError and a store failure yields
// errs.UpstreamFailureError.
type ConfirmPaymentCommandHandler struct {
	lifecycle
	gateway ports.PaymentGateway
}

func NewConfirmPaymentCommandHandler(
	uowFactory OrderUoWFactory,
	gateway ports.PaymentGateway,
	publisher ports.OrderEventPublisher,
	clk clock.Clock,
	logger *slog.Logger,
) ConfirmPaymentCommandHandler {
	return ConfirmPaymentCommandHandler{
		lifecycle: lifecycle{
			uowFactory: uowFactory,
			publisher:  publisher,
			clock:      clk,
			logger:     logger.With("component", "ConfirmPaymentCommandHandler"),
		},
		gateway: gateway,
	}
}

func (h ConfirmPaymentCommandHandler) Handle(ctx context.Context, cmd ConfirmPaymentCommand) (ConfirmPaymentResult, error) {
	if err := cmd.Validate(); err != nil {
		return ConfirmPaymentResult{}, err
	}

	o, err := h.uowFactory.Create().OrderRepository().GetByNumber(ctx, cmd.OrderNumber())
	if err != nil {
		return ConfirmPaymentResult{}, err
	}
	if err = requireOwner(o, cmd.CustomerID()); err != nil {
		return ConfirmPaymentResult{}, err
	}
	if err = o.ValidatePayment(); err != nil {
		return ConfirmPaymentResult{}, err
	}

	receipt, err := h.gateway.Pay(ctx, ports.PaymentRequest{
		OrderNumber: o.Number(),
		CustomerID:  o.CustomerID(),
		Amount:      o.Amount(),
	})
	if errors.Is(err, ports.ErrPaymentAlreadyCompleted) {
		return ConfirmPaymentResult{}, errs.NewPreconditionFailedErrorWithCause("payment", errors.Join(order.ErrAlreadyPaid, err))
	}
	if err != nil {
		return ConfirmPaymentResult{}, errs.NewUpstreamFailureErrorWithCause("payment gateway", err)
	}

	err = h.apply(ctx, o, func(target *order.Order, now time.Time) error {
		return target.ConfirmPayment(receipt.Token, now)
	})
	if err != nil {
		return ConfirmPaymentResult{}, h.settleUnrecordedCharge(ctx, o, receipt.Token, err)
	}

	return ConfirmPaymentResult{
		OrderID:      o.ID(),
		PaymentToken: o.PaymentToken(),
		CheckoutTime: *o.CheckoutTime(),
	}, nil
}

// settleUnrecordedCharge decides what happens to a charge whose conditional
// update failed with cause and returns the error for the caller.
func (h ConfirmPaymentCommandHandler) settleUnrecordedCharge(
	ctx context.Context,
	o *order.Order,
	token string,
	cause error,
) error {
	if !errors.Is(cause, errs.ErrConflict) && !errors.Is(cause, errs.ErrPreconditionFailed) {
		cause = errs.NewUpstreamFailureErrorWithCause("order store", cause)
	}

	stored, err := h.uowFactory.Create().OrderRepository().GetByNumber(ctx, o.Number())
	if err != nil {
		h.logger.ErrorContext(ctx, "charge not recorded and order unreadable, reconcile manually",
			"order_id", o.ID(),
			"order_number", o.Number().String(),
			"payment_token", token,
			"error", errors.Join(cause, err),
		)
		return cause
	}

	if stored.PaymentToken() == token {
		if stored.PayStatus() == order.Paid {
			return errs.NewPreconditionFailedErrorWithCause("payment", errors.Join(order.ErrAlreadyPaid, cause))
		}
		// A later cancellation owns the refund of this charge.
		return cause
	}

	h.refundLostCharge(ctx, o, token)
	return cause
}

// refundLostCharge returns money charged for an order the store does not
// record it against. Failures are logged with the token for reconciliation.
func (h ConfirmPaymentCommandHandler) refundLostCharge(ctx context.Context, o *order.Order, token string) {
	_, err := h.gateway.Refund(ctx, ports.RefundRequest{
		OrderNumber:  o.Number(),
		PaymentToken: token,
		Amount:       o.Amount(),
		Reason:       "order changed during payment",
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to refund unrecorded charge",
			"order_id", o.ID(),
			"payment_token", token,
			"error", err,
		)
	}
}
