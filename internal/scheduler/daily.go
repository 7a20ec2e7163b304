// Package scheduler triggers a job once a day at a fixed wall-clock time.
package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/Veraticus/daily-problems/internal/common"
)

// Job is the work run on every tick. An error is logged and does not stop
// the schedule.
type Job func(ctx context.Context) error

// NextRun returns the first instant strictly after now whose wall-clock time
// in loc is hour:minute.
func NextRun(now time.Time, hour, minute int, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	local := now.In(loc)
	next := time.Date(local.Year(), local.Month(), local.Day(), hour, minute, 0, 0, loc)
	if !next.After(local) {
		next = time.Date(local.Year(), local.Month(), local.Day()+1, hour, minute, 0, 0, loc)
	}
	return next
}

// Daily runs a job every day at a fixed time. Runs never overlap: the next
// trigger is computed only after the previous job returns.
type Daily struct {
	job    Job
	logger *slog.Logger
	loc    *time.Location
	now    func() time.Time
	after  func(time.Duration) <-chan time.Time
	hour   int
	minute int
}

// NewDaily creates a daily schedule for job at hour:minute in loc.
func NewDaily(hour, minute int, loc *time.Location, job Job, logger *slog.Logger) *Daily {
	return &Daily{
		job:    job,
		logger: common.LoggerOrDefault(logger),
		loc:    loc,
		now:    time.Now,
		after:  time.After,
		hour:   hour,
		minute: minute,
	}
}

// Run blocks until ctx is canceled.
func (d *Daily) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			d.logger.Info("Scheduler stopping")
			return err
		}

		next := NextRun(d.now(), d.hour, d.minute, d.loc)
		d.logger.Info("Next ingestion run scheduled", "at", next.Format(time.RFC3339))

		select {
		case <-ctx.Done():
			d.logger.Info("Scheduler stopping")
			return ctx.Err()
		case <-d.after(next.Sub(d.now())):
		}

		if err := d.job(ctx); err != nil {
			d.logger.Error("Scheduled run failed", "error", err)
		}
	}
}
