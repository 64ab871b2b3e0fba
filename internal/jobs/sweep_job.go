package jobs

import (
	"context"
	"log/slog"
	"time"

	"takeout/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// sweepJob runs one sweep per cron tick. Ticks that fire while a sweep is
// still running are skipped.
type sweepJob struct {
	rule    string
	spec    string
	run     func(ctx context.Context) (commands.SweepReport, error)
	cron    *cron.Cron
	metrics *Metrics
	logger  *slog.Logger
}

func newSweepJob(
	rule, spec string,
	loc *time.Location,
	run func(ctx context.Context) (commands.SweepReport, error),
	metrics *Metrics,
	logger *slog.Logger,
) *sweepJob {
	if loc == nil {
		loc = time.Local
	}
	return &sweepJob{
		rule: rule,
		spec: spec,
		run:  run,
		cron: cron.New(
			cron.WithSeconds(),
			cron.WithLocation(loc),
			cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
		),
		metrics: metrics,
		logger:  logger,
	}
}

func (j *sweepJob) Start() error {
	if _, err := j.cron.AddFunc(j.spec, func() { j.Run(context.Background()) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("sweep job started", "schedule", j.spec)
	return nil
}

// Stop waits for a running sweep to finish.
func (j *sweepJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("sweep job stopped")
}

// Run executes a single sweep and records its outcome.
func (j *sweepJob) Run(ctx context.Context) {
	start := time.Now()
	report, err := j.run(ctx)
	j.metrics.observe(j.rule, report, err)

	if err != nil {
		j.logger.ErrorContext(ctx, "sweep failed", "error", err)
		return
	}

	for _, f := range report.Failures {
		j.logger.WarnContext(ctx, "order not transitioned", "orderId", f.OrderID, "error", f.Err)
	}

	level := slog.LevelDebug
	if report.Transitioned > 0 || len(report.Failures) > 0 {
		level = slog.LevelInfo
	}
	j.logger.Log(ctx, level, "sweep finished",
		"cutoff", report.Cutoff,
		"scanned", report.Scanned,
		"transitioned", report.Transitioned,
		"skipped", report.Skipped,
		"failed", len(report.Failures),
		"took", time.Since(start),
	)
}
