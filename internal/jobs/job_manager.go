package jobs

import (
	"context"
	"fmt"
	"log/slog"
)

// JobManager owns the background work of the service: the delivery process
// and, when enabled, the stalled delivery resume job.
type JobManager struct {
	process *DeliveryProcess
	resume  *ResumeStalledJob
	logger  *slog.Logger
}

// NewJobManager accepts a nil resume job when resuming is disabled.
func NewJobManager(process *DeliveryProcess, resume *ResumeStalledJob, logger *slog.Logger) *JobManager {
	return &JobManager{
		process: process,
		resume:  resume,
		logger:  logger.With("component", "job_manager"),
	}
}

// StartAll runs one resume pass right away, then schedules the rest.
func (jm *JobManager) StartAll(ctx context.Context) error {
	if jm.resume == nil {
		return nil
	}

	if n, err := jm.resume.RunOnce(ctx); err != nil {
		jm.logger.WarnContext(ctx, "Initial resume pass failed", "error", err)
	} else if n > 0 {
		jm.logger.InfoContext(ctx, "Resumed stalled deliveries on startup", "count", n)
	}

	if err := jm.resume.Start(); err != nil {
		return fmt.Errorf("failed to start resume stalled job: %w", err)
	}

	return nil
}

// StopAll stops the scheduler first so no new processes start, then waits
// for running process steps.
func (jm *JobManager) StopAll(ctx context.Context) error {
	if jm.resume != nil {
		jm.resume.Stop()
	}
	return jm.process.Stop(ctx)
}
