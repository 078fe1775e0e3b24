package jobs

import (
	"fmt"
	"log/slog"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	statusDistributionJob *StatusDistributionJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(
	statusDistributionHandler statusDistributionQueryHandler,
	sink StatusDistributionSink,
	statsSchedule string,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		statusDistributionJob: NewStatusDistributionJob(statusDistributionHandler, sink, statsSchedule, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.statusDistributionJob.Start(); err != nil {
		return fmt.Errorf("failed to start status distribution job: %w", err)
	}
	return nil
}

// StopAll stops all scheduled jobs and waits for running ones to finish.
func (jm *JobManager) StopAll() {
	jm.statusDistributionJob.Stop()
}
