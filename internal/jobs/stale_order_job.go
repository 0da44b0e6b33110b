package jobs

import (
	"context"
	"log/slog"
	"time"

	"fulfillment/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// StaleOrderJob cancels pending orders that no restaurant confirmed within the
// allowed window. Runs every minute.
type StaleOrderJob struct {
	handler       commands.CancelStaleOrdersCommandHandler
	maxPendingAge time.Duration
	cron          *cron.Cron
	logger        *slog.Logger
}

// NewStaleOrderJob creates the stale-order sweep job.
func NewStaleOrderJob(
	handler commands.CancelStaleOrdersCommandHandler,
	maxPendingAge time.Duration,
	logger *slog.Logger,
) *StaleOrderJob {
	return &StaleOrderJob{
		handler:       handler,
		maxPendingAge: maxPendingAge,
		cron:          cron.New(),
		logger:        logger.With("component", "stale_order_job"),
	}
}

// Start schedules the sweep to run every minute.
func (j *StaleOrderJob) Start() error {
	_, err := j.cron.AddFunc("* * * * *", func() {
		ctx := context.Background()

		cmd, cmdErr := commands.NewCancelStaleOrdersCommand(j.maxPendingAge)
		if cmdErr != nil {
			j.logger.ErrorContext(ctx, "Stale order job misconfigured", "error", cmdErr)
			return
		}

		cancelled, handleErr := j.handler.Handle(ctx, cmd)
		if handleErr != nil {
			j.logger.ErrorContext(ctx, "Stale order sweep failed", "error", handleErr)
			return
		}

		if cancelled > 0 {
			j.logger.InfoContext(ctx, "Cancelled stale pending orders", "count", cancelled)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Stale order job started (running every minute)")
	return nil
}

// Stop stops the stale-order job.
func (j *StaleOrderJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Stale order job stopped")
}
