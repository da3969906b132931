package jobs

import (
	"fmt"
	"log/slog"

	"fulfillment/internal/core/application/usecases/commands"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	pipelineJob *PipelineJob
}

// NewJobManager creates a new job manager with all required jobs.
// Takes the pipeline handler and its cron schedule as dependencies.
func NewJobManager(
	pipelineHandler commands.RunPipelineCommandHandler,
	pipelineSchedule string,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		pipelineJob: NewPipelineJob(pipelineHandler, pipelineSchedule, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.pipelineJob.Start(); err != nil {
		return fmt.Errorf("failed to start pipeline job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.pipelineJob.Stop()
}
