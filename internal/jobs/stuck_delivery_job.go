package jobs

import (
	"context"
	"log/slog"
	"time"

	"takeout/internal/core/application/usecases/commands"
)

// DefaultStuckSpec fires daily at 01:00 in the job location.
const DefaultStuckSpec = "0 0 1 * * *"

type completeStuckDeliveriesHandler interface {
	Handle(ctx context.Context, cmd commands.CompleteStuckDeliveriesCommand) (commands.SweepReport, error)
}

// StuckDeliveryJob completes orders left in delivery past the timeout.
type StuckDeliveryJob struct {
	*sweepJob
}

func NewStuckDeliveryJob(
	handler completeStuckDeliveriesHandler,
	timeout time.Duration,
	spec string,
	loc *time.Location,
	metrics *Metrics,
	logger *slog.Logger,
) (*StuckDeliveryJob, error) {
	cmd, err := commands.NewCompleteStuckDeliveriesCommand(timeout)
	if err != nil {
		return nil, err
	}
	if spec == "" {
		spec = DefaultStuckSpec
	}

	run := func(ctx context.Context) (commands.SweepReport, error) {
		return handler.Handle(ctx, cmd)
	}
	return &StuckDeliveryJob{
		sweepJob: newSweepJob(commands.StuckDeliveryRule, spec, loc, run, metrics,
			logger.With("component", "stuck_delivery_job")),
	}, nil
}
