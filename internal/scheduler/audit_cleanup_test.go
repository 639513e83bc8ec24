package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/mikestefanello/backlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/bookshelf/internal/tasks"
)

type fakeEnqueuer struct {
	mu    sync.Mutex
	tasks []backlite.Task
	err   error
}

func (f *fakeEnqueuer) Enqueue(task backlite.Task) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return "", f.err
	}
	f.tasks = append(f.tasks, task)
	return "task-1", nil
}

func TestValidateCronSchedule(t *testing.T) {
	assert.NoError(t, ValidateCronSchedule("0 3 * * *"))
	assert.NoError(t, ValidateCronSchedule("*/15 * * * *"))
	assert.Error(t, ValidateCronSchedule("not a schedule"))
	assert.Error(t, ValidateCronSchedule("0 0 3 * * *"), "seconds field is not accepted")
}

func TestNextRunTime(t *testing.T) {
	from := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	next, err := NextRunTime("0 3 * * *", from)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 5, 2, 3, 0, 0, 0, time.UTC), next)

	_, err = NextRunTime("bogus", from)
	assert.Error(t, err)
}

func TestDescribeSchedule(t *testing.T) {
	assert.Equal(t, "Daily at 03:00", DescribeSchedule("0 3 * * *"))
	assert.Equal(t, "Custom schedule: 5 4 * * *", DescribeSchedule("5 4 * * *"))
}

func TestAuditCleanupScheduler_StartStop(t *testing.T) {
	enqueuer := &fakeEnqueuer{}
	s := NewAuditCleanupScheduler(enqueuer, "0 3 * * *", 30)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	require.NoError(t, s.Start(ctx))
	assert.True(t, s.IsRunning())
	require.NotNil(t, s.GetNextRunTime())

	// second start is a no-op
	require.NoError(t, s.Start(ctx))

	s.Stop()
	assert.False(t, s.IsRunning())
	assert.Nil(t, s.GetNextRunTime())
}

func TestAuditCleanupScheduler_StopsOnContextCancel(t *testing.T) {
	s := NewAuditCleanupScheduler(&fakeEnqueuer{}, "0 3 * * *", 30)

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, s.Start(ctx))
	cancel()

	assert.Eventually(t, func() bool { return !s.IsRunning() }, 2*time.Second, 10*time.Millisecond)
}

func TestAuditCleanupScheduler_InvalidSchedule(t *testing.T) {
	s := NewAuditCleanupScheduler(&fakeEnqueuer{}, "every day", 30)

	err := s.Start(context.Background())
	require.Error(t, err)
	assert.False(t, s.IsRunning())
}

func TestAuditCleanupScheduler_RunNow(t *testing.T) {
	enqueuer := &fakeEnqueuer{}
	s := NewAuditCleanupScheduler(enqueuer, "0 3 * * *", 7)

	id, err := s.RunNow()
	require.NoError(t, err)
	assert.Equal(t, "task-1", id)
	require.Len(t, enqueuer.tasks, 1)
	assert.Equal(t, tasks.CleanupAuditEventsTask{RetentionDays: 7}, enqueuer.tasks[0])

	enqueuer.err = errors.New("queue closed")
	_, err = s.RunNow()
	assert.Error(t, err)
}
