// Package jobs provides scheduled background tasks for the fulfillment engine.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to drive the order lifecycle pipeline on a fixed cadence.
//
// # Available Jobs
//
// 1. PipelineJob - Runs the full acceptance/shipping/tracking pipeline pass
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(pipelineHandler, schedule, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Scheduling
//
// The pipeline schedule is configuration-driven; the default runs a pass
// every fifteen minutes. A pass can outlast its interval because the
// acceptance stage sleeps between marketplace polls, so the job skips a
// tick while the previous pass is still running instead of stacking
// concurrent passes.
//
// # Error Handling
//
// Stage errors are already isolated inside the pipeline handler; whatever
// still reaches the job is logged and the next tick runs normally.
package jobs
