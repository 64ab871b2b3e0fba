package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"takeout/internal/core/domain/model/order"
	"takeout/internal/pkg/errs"
)

const (
	UnpaidTimeoutRule  = "unpaid-timeout"
	StuckDeliveryRule  = "stuck-delivery"
	DefaultUnpaidAfter = 15 * time.Minute
	DefaultStuckAfter  = 60 * time.Minute
)

// SweepFailure is one order the sweeper could not transition.
type SweepFailure struct {
	OrderID int64
	Err     error
}

// SweepReport summarizes one sweeper run.
//
// Skipped counts orders that left the scanned status between the scan and
// the update, which means a user action won the race.
type SweepReport struct {
	Rule         string
	Cutoff       time.Time
	Scanned      int
	Transitioned int
	Skipped      int
	Failures     []SweepFailure
}

// Err joins the per-order failures, nil when there are none.
func (r SweepReport) Err() error {
	errList := make([]error, 0, len(r.Failures))
	for _, f := range r.Failures {
		errList = append(errList, fmt.Errorf("order %d: %w", f.OrderID, f.Err))
	}
	return errors.Join(errList...)
}

type sweepRule struct {
	name   string
	status order.Status
	force  mutation
}

// sweep scans once, then transitions each candidate in its own unit of work.
// A failing order is recorded and the scan continues; the next run retries it.
func (l lifecycle) sweep(ctx context.Context, rule sweepRule, timeout time.Duration) (SweepReport, error) {
	cutoff := l.clock.Now().Add(-timeout)
	report := SweepReport{Rule: rule.name, Cutoff: cutoff}

	candidates, err := l.uowFactory.Create().OrderRepository().ListByStatusPlacedBefore(ctx, rule.status, cutoff)
	if err != nil {
		return report, err
	}
	report.Scanned = len(candidates)

	for _, o := range candidates {
		if err = ctx.Err(); err != nil {
			return report, err
		}

		err = l.apply(ctx, o, rule.force)
		switch {
		case err == nil:
			report.Transitioned++
		case errors.Is(err, errs.ErrConflict), errors.Is(err, order.ErrInvalidStatus):
			report.Skipped++
		default:
			l.logger.ErrorContext(ctx, "failed to transition order",
				"rule", rule.name,
				"order_id", o.ID(),
				"error", err,
			)
			report.Failures = append(report.Failures, SweepFailure{OrderID: o.ID(), Err: err})
		}
	}

	return report, nil
}
