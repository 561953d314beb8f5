package usecase

import (
	"context"
	"log/slog"
	"time"

	"PubrootReview/internal/ports"
	"PubrootReview/internal/reputation"
)

// Maintenance wires the scheduler driver with the periodic reputation
// refresh, so inactivity decay lands without waiting for a submission.
type Maintenance struct {
	driver       ports.Scheduler
	engine       *reputation.Engine
	contributors ports.ContributorStore
	logger       *slog.Logger
}

// NewMaintenance returns a helper to start/stop the recurring refresh.
func NewMaintenance(driver ports.Scheduler, engine *reputation.Engine, contributors ports.ContributorStore, log *slog.Logger) *Maintenance {
	return &Maintenance{driver: driver, engine: engine, contributors: contributors, logger: log}
}

// Start registers the refresh job with the scheduler.
func (m *Maintenance) Start(ctx context.Context) error {
	if m.driver == nil || m.engine == nil || m.contributors == nil {
		return nil
	}

	job := func(trigger time.Time) {
		updated, err := m.engine.UpdateAll(ctx, m.contributors, trigger)
		if err != nil {
			m.log("reputation refresh failed", "error", err)
			return
		}
		m.log("reputation refresh done", "updated", updated)
	}

	return m.driver.Start(ctx, job)
}

// Stop tears down the underlying scheduler.
func (m *Maintenance) Stop(ctx context.Context) error {
	if m.driver == nil {
		return nil
	}
	return m.driver.Stop(ctx)
}

func (m *Maintenance) log(msg string, args ...interface{}) {
	if m.logger != nil {
		m.logger.Info(msg, args...)
	}
}
