// Package jobs provides scheduled background tasks for the dispatch service.
//
// Jobs are cron-based, built on github.com/robfig/cron/v3, and are managed
// through JobManager:
//
//	jobManager := jobs.NewJobManager(backlogStatsHandler, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Available Jobs
//
// BacklogMonitorJob runs every minute and logs the number of orders per
// status. It is read-only: claim races and dispatch behavior are unaffected
// by whether the job runs.
package jobs
