package jobs

import (
	"context"
	"log/slog"
	"sync"

	"fulfillment/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// DefaultPipelineSchedule runs a pipeline pass every fifteen minutes.
const DefaultPipelineSchedule = "0 */15 * * * *"

// PipelineJob runs the order lifecycle pipeline on a cron schedule. Each
// tick performs one full pass: acceptance, shipping, tracking.
type PipelineJob struct {
	handler  commands.RunPipelineCommandHandler
	schedule string
	cron     *cron.Cron
	running  sync.Mutex
	logger   *slog.Logger
}

// NewPipelineJob creates a scheduled job around the pipeline handler. An
// empty schedule falls back to DefaultPipelineSchedule.
func NewPipelineJob(handler commands.RunPipelineCommandHandler, schedule string, logger *slog.Logger) *PipelineJob {
	if schedule == "" {
		schedule = DefaultPipelineSchedule
	}

	return &PipelineJob{
		handler:  handler,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "pipeline_job"),
	}
}

// Start begins the pipeline job on its schedule.
func (j *PipelineJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, j.runOnce)
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Pipeline job started", "schedule", j.schedule)
	return nil
}

// Stop stops the pipeline job. A pass already in flight finishes on its own.
func (j *PipelineJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Pipeline job stopped")
}

// runOnce executes one pipeline pass. A tick that fires while the previous
// pass is still running is skipped; the acceptance stage's settle delays can
// make a pass outlast the schedule interval.
func (j *PipelineJob) runOnce() {
	if !j.running.TryLock() {
		j.logger.Warn("Previous pipeline pass still running, skipping tick")
		return
	}
	defer j.running.Unlock()

	ctx := context.Background()
	cmd := commands.NewRunPipelineCommand()

	if err := j.handler.Handle(ctx, cmd); err != nil {
		j.logger.ErrorContext(ctx, "Pipeline pass finished with errors", "error", err)
	}
}
