package commands

import (
	"context"
	"log/slog"
	"time"

	"takeout/internal/core/domain/model/order"
	"takeout/internal/core/ports"
	"takeout/internal/pkg/clock"
)

// CancelOrderByStaffCommandHandler cancels an order on behalf of the
// merchant and refunds it if it was paid. Refund failures are reported the
// same way as in RejectOrderCommandHandler.
type CancelOrderByStaffCommandHandler struct {
	lifecycle
	gateway ports.PaymentGateway
}

func NewCancelOrderByStaffCommandHandler(
	uowFactory OrderUoWFactory,
	gateway ports.PaymentGateway,
	publisher ports.OrderEventPublisher,
	clk clock.Clock,
	logger *slog.Logger,
) CancelOrderByStaffCommandHandler {
	return CancelOrderByStaffCommandHandler{
		lifecycle: lifecycle{
			uowFactory: uowFactory,
			publisher:  publisher,
			clock:      clk,
			logger:     logger.With("component", "CancelOrderByStaffCommandHandler"),
		},
		gateway: gateway,
	}
}

func (h CancelOrderByStaffCommandHandler) Handle(ctx context.Context, cmd CancelOrderByStaffCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	o, err := h.load(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	err = h.apply(ctx, o, func(target *order.Order, now time.Time) error {
		return target.CancelByStaff(cmd.Reason(), now)
	})
	if err != nil {
		return err
	}

	return h.settleRefund(ctx, h.gateway, o)
}
