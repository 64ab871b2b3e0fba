package commands

import (
	"context"
	"log/slog"
	"time"

	"takeout/internal/core/domain/model/order"
	"takeout/internal/core/ports"
	"takeout/internal/pkg/clock"
)

// RejectOrderCommandHandler cancels a ToBeConfirmed order with the
// merchant's reason and refunds the customer.
//
// The cancellation is committed before the refund is attempted. When the
// refund fails the handler returns an error wrapping ErrRefundPending even
// though the rejection itself is durable.
type RejectOrderCommandHandler struct {
	lifecycle
	gateway ports.PaymentGateway
}

func NewRejectOrderCommandHandler(
	uowFactory OrderUoWFactory,
	gateway ports.PaymentGateway,
	publisher ports.OrderEventPublisher,
	clk clock.Clock,
	logger *slog.Logger,
) RejectOrderCommandHandler {
	return RejectOrderCommandHandler{
		lifecycle: lifecycle{
			uowFactory: uowFactory,
			publisher:  publisher,
			clock:      clk,
			logger:     logger.With("component", "RejectOrderCommandHandler"),
		},
		gateway: gateway,
	}
}

func (h RejectOrderCommandHandler) Handle(ctx context.Context, cmd RejectOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	o, err := h.load(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	err = h.apply(ctx, o, func(target *order.Order, now time.Time) error {
		return target.Reject(cmd.Reason(), now)
	})
	if err != nil {
		return err
	}

	return h.settleRefund(ctx, h.gateway, o)
}
