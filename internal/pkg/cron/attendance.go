package cron

import (
	"context"
	"log/slog"
	"time"
)

const AutoCloseJob = "auto_close_open_punches"

// PunchCloser closes punches left open past their shift end.
type PunchCloser interface {
	AutoCloseOpenPunches(ctx context.Context) (int, error)
}

// AttendanceJobs holds the attendance housekeeping jobs.
type AttendanceJobs struct {
	closer   PunchCloser
	interval time.Duration
}

func NewAttendanceJobs(closer PunchCloser, interval time.Duration) *AttendanceJobs {
	if interval <= 0 {
		interval = time.Hour
	}
	return &AttendanceJobs{closer: closer, interval: interval}
}

// RegisterJobs adds the attendance jobs to s.
func (j *AttendanceJobs) RegisterJobs(s *Scheduler) {
	s.AddJob(AutoCloseJob, j.interval, j.closeOpenPunches)
}

func (j *AttendanceJobs) closeOpenPunches(ctx context.Context) error {
	closed, err := j.closer.AutoCloseOpenPunches(ctx)
	if closed > 0 {
		slog.Info("Auto-closed open punches", "count", closed)
	}
	return err
}
