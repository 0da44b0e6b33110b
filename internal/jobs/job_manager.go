package jobs

import (
	"fmt"
	"log/slog"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
)

// JobManager coordinates the scheduled background jobs.
type JobManager struct {
	staleOrderJob *StaleOrderJob
	refundJob     *RefundJob
}

// NewJobManager creates a job manager with all required jobs wired to their
// command handlers.
func NewJobManager(
	cancelStaleOrdersHandler commands.CancelStaleOrdersCommandHandler,
	processPendingRefundsHandler commands.ProcessPendingRefundsCommandHandler,
	maxPendingAge time.Duration,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		staleOrderJob: NewStaleOrderJob(cancelStaleOrdersHandler, maxPendingAge, logger),
		refundJob:     NewRefundJob(processPendingRefundsHandler, logger),
	}
}

// StartAll starts all scheduled jobs. A failed start stops the jobs that
// already started.
func (jm *JobManager) StartAll() error {
	if err := jm.staleOrderJob.Start(); err != nil {
		return fmt.Errorf("failed to start stale order job: %w", err)
	}

	if err := jm.refundJob.Start(); err != nil {
		jm.staleOrderJob.Stop()
		return fmt.Errorf("failed to start refund job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs.
func (jm *JobManager) StopAll() {
	jm.staleOrderJob.Stop()
	jm.refundJob.Stop()
}
