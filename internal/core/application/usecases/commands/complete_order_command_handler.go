package commands

import (
	"context"
	"log/slog"

	"takeout/internal/core/domain/model/order"
	"takeout/internal/core/ports"
	"takeout/internal/pkg/clock"
)

// CompleteOrderCommandHandler moves a DeliveryInProgress order to Completed and records the delivery time.
type CompleteOrderCommandHandler struct {
	lifecycle
}

func NewCompleteOrderCommandHandler(
	uowFactory OrderUoWFactory,
	publisher ports.OrderEventPublisher,
	clk clock.Clock,
	logger *slog.Logger,
) CompleteOrderCommandHandler {
	return CompleteOrderCommandHandler{
		lifecycle: lifecycle{
			uowFactory: uowFactory,
			publisher:  publisher,
			clock:      clk,
			logger:     logger.With("component", "CompleteOrderCommandHandler"),
		},
	}
}

func (h CompleteOrderCommandHandler) Handle(ctx context.Context, cmd CompleteOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	o, err := h.load(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	return h.apply(ctx, o, (*order.Order).Complete)
}
