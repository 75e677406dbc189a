package jobs

import (
	"context"

	"dispatch/internal/core/application/usecases/queries"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// BacklogMonitorJob periodically reports how many orders sit in each status.
// Runs every minute; the counts are operational visibility only and never
// feed back into dispatch decisions.
type BacklogMonitorJob struct {
	handler queries.GetBacklogStatsQueryHandler
	cron    *cron.Cron
	logger  *zap.Logger
}

// NewBacklogMonitorJob creates a job reporting backlog statistics.
// Uses GetBacklogStatsQueryHandler to count orders once per minute.
func NewBacklogMonitorJob(handler queries.GetBacklogStatsQueryHandler, logger *zap.Logger) *BacklogMonitorJob {
	return &BacklogMonitorJob{
		handler: handler,
		cron:    cron.New(),
		logger:  logger.With(zap.String("component", "backlog_monitor_job")),
	}
}

// Start begins the backlog monitor job to run every minute.
func (j *BacklogMonitorJob) Start() error {
	_, err := j.cron.AddFunc("@every 1m", func() {
		ctx := context.Background()
		query := queries.NewGetBacklogStatsQuery()

		stats, err := j.handler.Handle(ctx, query)
		if err != nil {
			j.logger.Error("backlog monitor job failed", zap.Error(err))
			return
		}

		j.logger.Info("order backlog",
			zap.Int64("unassigned", stats.Unassigned),
			zap.Int64("taken", stats.Taken),
		)
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("backlog monitor job started (running every minute)")
	return nil
}

// Stop stops the backlog monitor job.
func (j *BacklogMonitorJob) Stop() {
	j.cron.Stop()
	j.logger.Info("backlog monitor job stopped")
}
