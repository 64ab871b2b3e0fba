// Package jobs provides the scheduled timeout sweepers of the order lifecycle.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
// Schedules use six fields, seconds first.
//
// # Available Jobs
//
// 1. UnpaidOrderTimeoutJob - every minute by default, cancels orders left in
// PendingPayment for longer than the unpaid timeout (15 minutes by default)
// 2. StuckDeliveryJob - daily at 01:00 in the configured location, completes
// orders left in DeliveryInProgress for longer than the stuck timeout (60
// minutes by default)
//
// # Usage
//
//	jobManager, err := jobs.NewJobManager(cancelHandler, completeHandler, jobs.Config{}, metrics, logger)
//	if err != nil {
//		return err
//	}
//	if err := jobManager.StartAll(); err != nil {
//		return err
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// - Each order is transitioned in its own transaction, so one failing order
// is logged and retried on the next tick without blocking the rest
// - Orders moved by a user between the scan and the update count as skipped
// - A tick that fires while the previous sweep is still running is dropped
// - Failed job starts will stop any already running jobs
//
// # Metrics
//
// takeout_sweep_runs_total{rule,result} and
// takeout_sweep_orders_total{rule,outcome} are registered by NewMetrics.
package jobs
