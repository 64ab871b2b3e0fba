package commands

import (
	"context"
	"log/slog"

	"takeout/internal/core/domain/model/order"
	"takeout/internal/core/ports"
	"takeout/internal/pkg/clock"
)

// CancelOrderByCustomerCommandHandler lets a customer cancel an order the
// merchant has not accepted yet.
//
// Errors:
//   - errs.ObjectNotFoundError if the order does not exist or belongs to someone else
//   - order.ErrContactMerchant if the order is Confirmed or DeliveryInProgress
//   - order.ErrInvalidStatus if the order is already Completed or Cancelled
//   - ErrRefundPending if the order was paid and the refund failed after the cancel committed
type CancelOrderByCustomerCommandHandler struct {
	lifecycle
	gateway ports.PaymentGateway
}

func NewCancelOrderByCustomerCommandHandler(
	uowFactory OrderUoWFactory,
	gateway ports.PaymentGateway,
	publisher ports.OrderEventPublisher,
	clk clock.Clock,
	logger *slog.Logger,
) CancelOrderByCustomerCommandHandler {
	return CancelOrderByCustomerCommandHandler{
		lifecycle: lifecycle{
			uowFactory: uowFactory,
			publisher:  publisher,
			clock:      clk,
			logger:     logger.With("component", "CancelOrderByCustomerCommandHandler"),
		},
		gateway: gateway,
	}
}

func (h CancelOrderByCustomerCommandHandler) Handle(ctx context.Context, cmd CancelOrderByCustomerCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	o, err := h.load(ctx, cmd.OrderID())
	if err != nil {
		return err
	}
	if err = requireOwner(o, cmd.CustomerID()); err != nil {
		return err
	}

	if err = h.apply(ctx, o, (*order.Order).CancelByCustomer); err != nil {
		return err
	}

	return h.settleRefund(ctx, h.gateway, o)
}
