package jobs

import (
	"fmt"
	"log/slog"
	"time"
)

// Config schedules the sweepers. Zero values select the defaults.
type Config struct {
	UnpaidAfter time.Duration
	UnpaidSpec  string
	StuckAfter  time.Duration
	StuckSpec   string
	Location    *time.Location
}

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	unpaidOrderTimeoutJob *UnpaidOrderTimeoutJob
	stuckDeliveryJob      *StuckDeliveryJob
}

func NewJobManager(
	cancelTimedOutOrdersHandler cancelTimedOutOrdersHandler,
	completeStuckDeliveriesHandler completeStuckDeliveriesHandler,
	cfg Config,
	metrics *Metrics,
	logger *slog.Logger,
) (*JobManager, error) {
	unpaid, err := NewUnpaidOrderTimeoutJob(cancelTimedOutOrdersHandler,
		cfg.UnpaidAfter, cfg.UnpaidSpec, cfg.Location, metrics, logger)
	if err != nil {
		return nil, fmt.Errorf("unpaid order timeout job: %w", err)
	}

	stuck, err := NewStuckDeliveryJob(completeStuckDeliveriesHandler,
		cfg.StuckAfter, cfg.StuckSpec, cfg.Location, metrics, logger)
	if err != nil {
		return nil, fmt.Errorf("stuck delivery job: %w", err)
	}

	return &JobManager{
		unpaidOrderTimeoutJob: unpaid,
		stuckDeliveryJob:      stuck,
	}, nil
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.unpaidOrderTimeoutJob.Start(); err != nil {
		return fmt.Errorf("failed to start unpaid order timeout job: %w", err)
	}

	if err := jm.stuckDeliveryJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.unpaidOrderTimeoutJob.Stop()
		return fmt.Errorf("failed to start stuck delivery job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs and waits for running sweeps.
func (jm *JobManager) StopAll() {
	jm.unpaidOrderTimeoutJob.Stop()
	jm.stuckDeliveryJob.Stop()
}
