// Package jobs provides scheduled background tasks for the order desk.
//
// Jobs are cron-based (github.com/robfig/cron/v3, six-field expressions with seconds)
// and managed through JobManager:
//
//	jobManager := jobs.NewJobManager(statusDistributionHandler, metrics, config.StatsCron, logger)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Available Jobs
//
// StatusDistributionJob reloads the per-status order counts into the orders_by_status
// gauge. A failed run is logged and retried on the next tick.
package jobs
