package commands

import (
	"context"
	"log/slog"

	"takeout/internal/core/domain/model/order"
	"takeout/internal/core/ports"
	"takeout/internal/pkg/clock"
)

// AcceptOrderCommandHandler moves a ToBeConfirmed order to Confirmed.
type AcceptOrderCommandHandler struct {
	lifecycle
}

func NewAcceptOrderCommandHandler(
	uowFactory OrderUoWFactory,
	publisher ports.OrderEventPublisher,
	clk clock.Clock,
	logger *slog.Logger,
) AcceptOrderCommandHandler {
	return AcceptOrderCommandHandler{
		lifecycle: lifecycle{
			uowFactory: uowFactory,
			publisher:  publisher,
			clock:      clk,
			logger:     logger.With("component", "AcceptOrderCommandHandler"),
		},
	}
}

func (h AcceptOrderCommandHandler) Handle(ctx context.Context, cmd AcceptOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	o, err := h.load(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	return h.apply(ctx, o, (*order.Order).Accept)
}
