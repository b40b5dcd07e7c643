package cron

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeCloser struct {
	closed int
	err    error
	calls  int
}

func (f *fakeCloser) AutoCloseOpenPunches(ctx context.Context) (int, error) {
	f.calls++
	return f.closed, f.err
}

func TestAttendanceJobs_RegisterAndRun(t *testing.T) {
	closer := &fakeCloser{closed: 3}
	s := NewScheduler()
	NewAttendanceJobs(closer, 0).RegisterJobs(s)

	assert.Equal(t, []string{AutoCloseJob}, s.Jobs())
	assert.NoError(t, s.Run(context.Background(), AutoCloseJob))
	assert.Equal(t, 1, closer.calls)
}

func TestAttendanceJobs_PropagatesError(t *testing.T) {
	closer := &fakeCloser{closed: 1, err: errors.New("db down")}
	s := NewScheduler()
	NewAttendanceJobs(closer, time.Minute).RegisterJobs(s)

	assert.EqualError(t, s.Run(context.Background(), AutoCloseJob), "db down")
}

func TestNewAttendanceJobs_DefaultInterval(t *testing.T) {
	j := NewAttendanceJobs(&fakeCloser{}, 0)
	assert.Equal(t, time.Hour, j.interval)
}
