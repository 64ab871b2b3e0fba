package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"takeout/internal/core/domain/model/order"
	"takeout/internal/core/ports"
	"takeout/internal/pkg/clock"
	"takeout/internal/pkg/errs"
)

// ErrRefundPending is returned after a cancellation was committed but the
// gateway refund failed. The order stays Cancelled with pay status RefundPending.
var ErrRefundPending = errors.New("order cancelled, refund pending")

// mutation changes a loaded order in memory. It must not touch the store.
type mutation func(o *order.Order, now time.Time) error

// lifecycle holds what every transition handler needs.
type lifecycle struct {
	uowFactory OrderUoWFactory
	publisher  ports.OrderEventPublisher
	clock      clock.Clock
	logger     *slog.Logger
}

// load reads an order outside any transaction. The later conditional
// update is what protects against concurrent writers.
func (l lifecycle) load(ctx context.Context, orderID int64) (*order.Order, error) {
	return l.uowFactory.Create().OrderRepository().Get(ctx, orderID)
}

// apply runs fn on o and commits the result with a conditional update
// expecting the status o had before fn ran. Events are published only after
// the commit succeeded.
func (l lifecycle) apply(ctx context.Context, o *order.Order, fn mutation) error {
	expected := o.Status()
	if err := fn(o, l.clock.Now()); err != nil {
		return err
	}

	if err := l.commit(ctx, o, expected); err != nil {
		return err
	}

	l.publish(ctx, o)
	return nil
}

func (l lifecycle) commit(ctx context.Context, o *order.Order, expected order.Status) error {
	uow := l.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.OrderRepository().Update(ctx, o, expected); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

func (l lifecycle) publish(ctx context.Context, o *order.Order) {
	publishEvents(ctx, l.publisher, l.logger, o)
}

func publishEvents(ctx context.Context, publisher ports.OrderEventPublisher, logger *slog.Logger, o *order.Order) {
	for _, event := range o.PullEvents() {
		if err := publisher.PublishStatusChanged(ctx, event); err != nil {
			logger.WarnContext(ctx, "failed to publish order event",
				"order_id", event.OrderID,
				"status", event.Current.String(),
				"error", err,
			)
		}
	}
}

// settleRefund issues the refund owed by a committed cancellation and
// records it in a second conditional update. A gateway failure leaves the
// order RefundPending and returns ErrRefundPending.
func (l lifecycle) settleRefund(ctx context.Context, gateway ports.PaymentGateway, o *order.Order) error {
	if !o.RefundDue() {
		return nil
	}

	receipt, err := gateway.Refund(ctx, ports.RefundRequest{
		OrderNumber:  o.Number(),
		PaymentToken: o.PaymentToken(),
		Amount:       o.Amount(),
		Reason:       o.CancelReason(),
	})
	if err != nil {
		l.logger.WarnContext(ctx, "refund failed, order left refund pending",
			"order_id", o.ID(),
			"order_number", o.Number().String(),
			"error", err,
		)
		return errs.NewUpstreamFailureErrorWithCause("payment gateway", errors.Join(ErrRefundPending, err))
	}

	if err = o.MarkRefunded(); err != nil {
		return err
	}
	if err = l.commit(ctx, o, o.Status()); err != nil {
		return fmt.Errorf("refund %s issued for order %d but not recorded: %w", receipt.RefundID, o.ID(), err)
	}

	l.logger.InfoContext(ctx, "refund settled",
		"order_id", o.ID(),
		"refund_id", receipt.RefundID,
	)
	return nil
}

func requireOwner(o *order.Order, customerID int64) error {
	if !o.BelongsTo(customerID) {
		return errs.NewObjectNotFoundError("orderId", o.ID())
	}
	return nil
}
