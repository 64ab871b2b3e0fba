package jobs

import (
	"context"
	"log/slog"
	"time"

	"takeout/internal/core/application/usecases/commands"
)

// DefaultUnpaidSpec fires at the top of every minute.
const DefaultUnpaidSpec = "0 * * * * *"

type cancelTimedOutOrdersHandler interface {
	Handle(ctx context.Context, cmd commands.CancelTimedOutOrdersCommand) (commands.SweepReport, error)
}

// UnpaidOrderTimeoutJob cancels orders that stayed unpaid past the timeout.
type UnpaidOrderTimeoutJob struct {
	*sweepJob
}

func NewUnpaidOrderTimeoutJob(
	handler cancelTimedOutOrdersHandler,
	timeout time.Duration,
	spec string,
	loc *time.Location,
	metrics *Metrics,
	logger *slog.Logger,
) (*UnpaidOrderTimeoutJob, error) {
	cmd, err := commands.NewCancelTimedOutOrdersCommand(timeout)
	if err != nil {
		return nil, err
	}
	if spec == "" {
		spec = DefaultUnpaidSpec
	}

	run := func(ctx context.Context) (commands.SweepReport, error) {
		return handler.Handle(ctx, cmd)
	}
	return &UnpaidOrderTimeoutJob{
		sweepJob: newSweepJob(commands.UnpaidTimeoutRule, spec, loc, run, metrics,
			logger.With("component", "unpaid_order_timeout_job")),
	}, nil
}
