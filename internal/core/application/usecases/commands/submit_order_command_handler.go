package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"takeout/internal/core/domain/model/kernel"
	"takeout/internal/core/domain/model/order"
	"takeout/internal/core/ports"
	"takeout/internal/pkg/clock"
	"takeout/internal/pkg/errs"
)

// ErrCartIsEmpty is the cause of the precondition failure returned when a
// customer submits an empty cart.
var ErrCartIsEmpty = errors.New("shopping cart is empty")

// SubmitOrderResult is what the customer needs to pay for the new order.
type SubmitOrderResult struct {
	ID        int64
	Number    kernel.OrderNumber
	Amount    kernel.Money
	OrderTime time.Time
}

// SubmitOrderCommandHandler creates an order from the cart. Resolving the
// address, creating the order with its line items and clearing the cart
// happen in one transaction: either all of them or none.
type SubmitOrderCommandHandler struct {
	uowFactory UoWFactory
	publisher  ports.OrderEventPublisher
	clock      clock.Clock
	logger     *slog.Logger
}

func NewSubmitOrderCommandHandler(
	uowFactory UoWFactory,
	publisher ports.OrderEventPublisher,
	clk clock.Clock,
	logger *slog.Logger,
) SubmitOrderCommandHandler {
	return SubmitOrderCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		clock:      clk,
		logger:     logger.With("component", "SubmitOrderCommandHandler"),
	}
}

// Handle fails with errs.ObjectNotFoundError for an unknown address and with
// a precondition failure wrapping ErrCartIsEmpty for an empty cart; in both
// cases nothing is written.
func (h SubmitOrderCommandHandler) Handle(ctx context.Context, cmd SubmitOrderCommand) (SubmitOrderResult, error) {
	if err := cmd.Validate(); err != nil {
		return SubmitOrderResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return SubmitOrderResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	address, err := uow.AddressBook().Get(ctx, cmd.CustomerID(), cmd.AddressID())
	if err != nil {
		return SubmitOrderResult{}, err
	}

	cartRepo := uow.CartRepository()
	entries, err := cartRepo.List(ctx, cmd.CustomerID())
	if err != nil {
		return SubmitOrderResult{}, err
	}
	if len(entries) == 0 {
		return SubmitOrderResult{}, errs.NewPreconditionFailedErrorWithCause("submit order", ErrCartIsEmpty)
	}

	items := make([]order.LineItem, 0, len(entries))
	for _, entry := range entries {
		item, itemErr := order.NewLineItem(entry)
		if itemErr != nil {
			return SubmitOrderResult{}, itemErr
		}
		items = append(items, item)
	}

	now := h.clock.Now()
	o, err := order.NewOrder(kernel.NewOrderNumber(now), cmd.CustomerID(), address, cmd.Amount(), cmd.Remark(), items, now)
	if err != nil {
		return SubmitOrderResult{}, err
	}

	if err = uow.OrderRepository().Add(ctx, o); err != nil {
		return SubmitOrderResult{}, err
	}

	if err = cartRepo.ClearAll(ctx, cmd.CustomerID()); err != nil {
		return SubmitOrderResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return SubmitOrderResult{}, err
	}

	publishEvents(ctx, h.publisher, h.logger, o)

	return SubmitOrderResult{
		ID:        o.ID(),
		Number:    o.Number(),
		Amount:    o.Amount(),
		OrderTime: o.OrderTime(),
	}, nil
}
