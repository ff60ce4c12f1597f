package backup

import (
	"context"
	"fmt"
	"time"

	"gym_backoffice/pkg/utils"

	"github.com/robfig/cron/v3"
)

// exportTimeout bounds a single scheduled run.
const exportTimeout = 4 * time.Minute

// Scheduler runs the exporter on a cron schedule. A run that is still going
// when the next one is due causes that next run to be skipped.
type Scheduler struct {
	cron     *cron.Cron
	exporter *Exporter
}

// NewScheduler validates the schedule (standard five-field cron or a
// descriptor such as @daily) and registers the export job.
func NewScheduler(exporter *Exporter, schedule string) (*Scheduler, error) {
	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger)))
	s := &Scheduler{cron: c, exporter: exporter}

	if _, err := c.AddFunc(schedule, s.run); err != nil {
		return nil, fmt.Errorf("invalid backup schedule %q: %w", schedule, err)
	}
	return s, nil
}

func (s *Scheduler) run() {
	ctx, cancel := context.WithTimeout(context.Background(), exportTimeout)
	defer cancel()

	if _, err := s.exporter.Export(ctx); err != nil {
		utils.LogError(err, "Scheduled backup failed")
	}
}

// Start begins running the schedule in the background.
func (s *Scheduler) Start() {
	s.cron.Start()
	utils.LogInfo("Backup scheduler started", map[string]interface{}{"jobs": len(s.cron.Entries())})
}

// Stop stops the schedule and waits for a running export, up to ctx.
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
		utils.LogWarn(ctx.Err(), "Backup still running at shutdown")
	}
}
