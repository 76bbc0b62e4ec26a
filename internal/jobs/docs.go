// Package jobs provides scheduled background tasks for the delivery system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required for the delivery service.
//
// # Available Jobs
//
// 1. OutboxDispatchJob - Runs every second to drain the notification outbox and deliver pending customer and courier messages
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(dispatchNotificationsHandler, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Scheduling
//
// The job uses the cron expression "* * * * * *" which means it runs every second.
// This frequency keeps notification latency low without coupling sends to the
// request path.
//
// # Error Handling
//
// - A failed drain pass is logged and retried on the next tick
// - Entries whose delivery fails stay pending in the outbox, so delivery is at-least-once
package jobs
