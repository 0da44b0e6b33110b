// Package jobs provides the scheduled background tasks of the fulfillment
// service, implemented with github.com/robfig/cron/v3.
//
// # Available Jobs
//
// 1. StaleOrderJob - cancels pending orders no restaurant confirmed in time
// 2. RefundJob - completes the refund bookkeeping for cancelled paid orders
//
// Both run every minute. Jobs act as the system actor; the same
// status-conditional writes used by the API protect them from clobbering
// concurrent user actions.
//
// Jobs are managed through JobManager:
//
//	jobManager := jobs.NewJobManager(cancelStaleHandler, refundHandler, maxAge, logger)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
package jobs
