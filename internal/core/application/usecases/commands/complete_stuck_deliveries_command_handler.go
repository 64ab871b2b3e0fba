package commands

import (
	"context"
	"log/slog"

	"takeout/internal/core/domain/model/order"
	"takeout/internal/core/ports"
	"takeout/internal/pkg/clock"
)

// CompleteStuckDeliveriesCommandHandler completes every DeliveryInProgress
// order whose order time is at or before now minus the timeout.
//
// The age is measured from the order time, not from dispatch, so an order
// dispatched late can be completed shortly after it left the kitchen.
type CompleteStuckDeliveriesCommandHandler struct {
	lifecycle
}

func NewCompleteStuckDeliveriesCommandHandler(
	uowFactory OrderUoWFactory,
	publisher ports.OrderEventPublisher,
	clk clock.Clock,
	logger *slog.Logger,
) CompleteStuckDeliveriesCommandHandler {
	return CompleteStuckDeliveriesCommandHandler{
		lifecycle: lifecycle{
			uowFactory: uowFactory,
			publisher:  publisher,
			clock:      clk,
			logger:     logger.With("component", "CompleteStuckDeliveriesCommandHandler"),
		},
	}
}

func (h CompleteStuckDeliveriesCommandHandler) Handle(ctx context.Context, cmd CompleteStuckDeliveriesCommand) (SweepReport, error) {
	if err := cmd.Validate(); err != nil {
		return SweepReport{Rule: StuckDeliveryRule}, err
	}

	return h.sweep(ctx, sweepRule{
		name:   StuckDeliveryRule,
		status: order.DeliveryInProgress,
		force:  (*order.Order).ForceComplete,
	}, cmd.Timeout())
}
