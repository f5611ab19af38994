package jobs

import (
	"context"
	"log/slog"
	"time"

	"delivery-service/internal/core/application/usecases/commands"
	"delivery-service/internal/core/ports"

	"github.com/robfig/cron/v3"
)

const (
	DefaultResumeSchedule     = "@every 1m"
	DefaultResumeStalledAfter = 2 * time.Minute
)

// ResumeStalledJob restarts the delivery process for packaged and delivering
// deliveries that have not moved for a while, typically after a restart lost
// the in-memory timers.
type ResumeStalledJob struct {
	repo         ports.DeliveryRepository
	process      commands.ProcessStarter
	schedule     string
	stalledAfter time.Duration
	cron         *cron.Cron
	logger       *slog.Logger
}

func NewResumeStalledJob(
	repo ports.DeliveryRepository,
	process commands.ProcessStarter,
	schedule string,
	stalledAfter time.Duration,
	logger *slog.Logger,
) *ResumeStalledJob {
	if schedule == "" {
		schedule = DefaultResumeSchedule
	}
	if stalledAfter <= 0 {
		stalledAfter = DefaultResumeStalledAfter
	}

	return &ResumeStalledJob{
		repo:         repo,
		process:      process,
		schedule:     schedule,
		stalledAfter: stalledAfter,
		cron:         cron.New(cron.WithSeconds()),
		logger:       logger.With("component", "resume_stalled_job"),
	}
}

func (j *ResumeStalledJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx := context.Background()
		if _, err := j.RunOnce(ctx); err != nil {
			j.logger.ErrorContext(ctx, "Resume stalled deliveries failed", "error", err)
		}
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Resume stalled deliveries job started", "schedule", j.schedule)
	return nil
}

func (j *ResumeStalledJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Resume stalled deliveries job stopped")
}

// RunOnce returns the number of processes it started.
func (j *ResumeStalledJob) RunOnce(ctx context.Context) (int, error) {
	stalled, err := j.repo.ListInProgress(ctx, time.Now().UTC().Add(-j.stalledAfter))
	if err != nil {
		return 0, err
	}

	started := 0
	for _, d := range stalled {
		if j.process.Start(d.OrderID(), d.Status()) {
			started++
			j.logger.InfoContext(ctx, "Resumed delivery process", "order_id", d.OrderID(), "status", d.Status())
		}
	}

	return started, nil
}
