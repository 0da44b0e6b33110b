package jobs

import (
	"context"
	"log/slog"

	"fulfillment/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// RefundJob completes the refund bookkeeping for cancelled paid orders.
// Runs every minute.
type RefundJob struct {
	handler commands.ProcessPendingRefundsCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewRefundJob creates the refund processing job.
func NewRefundJob(handler commands.ProcessPendingRefundsCommandHandler, logger *slog.Logger) *RefundJob {
	return &RefundJob{
		handler: handler,
		cron:    cron.New(),
		logger:  logger.With("component", "refund_job"),
	}
}

// Start schedules refund processing to run every minute.
func (j *RefundJob) Start() error {
	_, err := j.cron.AddFunc("* * * * *", func() {
		ctx := context.Background()

		processed, handleErr := j.handler.Handle(ctx, commands.NewProcessPendingRefundsCommand())
		if handleErr != nil {
			j.logger.ErrorContext(ctx, "Refund processing failed", "error", handleErr)
			return
		}

		if processed > 0 {
			j.logger.InfoContext(ctx, "Processed pending refunds", "count", processed)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Refund job started (running every minute)")
	return nil
}

// Stop stops the refund job.
func (j *RefundJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Refund job stopped")
}
