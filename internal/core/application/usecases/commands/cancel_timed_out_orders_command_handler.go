package commands

import (
	"context"
	"log/slog"

	"takeout/internal/core/domain/model/order"
	"takeout/internal/core/ports"
	"takeout/internal/pkg/clock"
)

// CancelTimedOutOrdersCommandHandler cancels every PendingPayment order whose
// order time is at or before now minus the timeout, with reason "payment timeout".
type CancelTimedOutOrdersCommandHandler struct {
	lifecycle
}

func NewCancelTimedOutOrdersCommandHandler(
	uowFactory OrderUoWFactory,
	publisher ports.OrderEventPublisher,
	clk clock.Clock,
	logger *slog.Logger,
) CancelTimedOutOrdersCommandHandler {
	return CancelTimedOutOrdersCommandHandler{
		lifecycle: lifecycle{
			uowFactory: uowFactory,
			publisher:  publisher,
			clock:      clk,
			logger:     logger.With("component", "CancelTimedOutOrdersCommandHandler"),
		},
	}
}

func (h CancelTimedOutOrdersCommandHandler) Handle(ctx context.Context, cmd CancelTimedOutOrdersCommand) (SweepReport, error) {
	if err := cmd.Validate(); err != nil {
		return SweepReport{Rule: UnpaidTimeoutRule}, err
	}

	return h.sweep(ctx, sweepRule{
		name:   UnpaidTimeoutRule,
		status: order.PendingPayment,
		force:  (*order.Order).ExpirePayment,
	}, cmd.Timeout())
}
