// Package scheduler triggers periodic housekeeping by enqueuing tasks on a
// cron schedule.
package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/mikestefanello/backlite"
	"github.com/robfig/cron/v3"

	"github.com/mrlokans/bookshelf/internal/tasks"
)

// TaskEnqueuer is the part of tasks.Client the scheduler needs.
type TaskEnqueuer interface {
	Enqueue(task backlite.Task) (string, error)
}

// AuditCleanupScheduler periodically enqueues audit retention cleanup.
type AuditCleanupScheduler struct {
	enqueuer      TaskEnqueuer
	schedule      string
	retentionDays int

	cron      *cron.Cron
	entryID   cron.EntryID
	mu        sync.RWMutex
	isRunning bool
}

// NewAuditCleanupScheduler creates a new scheduler instance.
func NewAuditCleanupScheduler(enqueuer TaskEnqueuer, schedule string, retentionDays int) *AuditCleanupScheduler {
	return &AuditCleanupScheduler{
		enqueuer:      enqueuer,
		schedule:      schedule,
		retentionDays: retentionDays,
		cron:          cron.New(cron.WithParser(parser)),
	}
}

// Start registers the cleanup job and starts the cron loop. The scheduler
// stops when ctx is cancelled.
func (s *AuditCleanupScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	if err := ValidateCronSchedule(s.schedule); err != nil {
		return fmt.Errorf("invalid cron schedule '%s': %w", s.schedule, err)
	}

	if s.entryID == 0 {
		entryID, err := s.cron.AddFunc(s.schedule, func() {
			if _, err := s.RunNow(); err != nil {
				log.Printf("Audit cleanup scheduler: %v", err)
			}
		})
		if err != nil {
			return fmt.Errorf("failed to schedule audit cleanup: %w", err)
		}
		s.entryID = entryID
	}

	s.cron.Start()
	s.isRunning = true

	nextRun, _ := NextRunTime(s.schedule, time.Now())
	log.Printf("Audit cleanup scheduler: started with schedule '%s' (%s). Next run: %v",
		s.schedule, DescribeSchedule(s.schedule), nextRun)

	go func() {
		<-ctx.Done()
		s.Stop()
	}()

	return nil
}

// Stop gracefully stops the scheduler.
func (s *AuditCleanupScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	ctx := s.cron.Stop()
	<-ctx.Done()

	s.isRunning = false
	log.Printf("Audit cleanup scheduler: stopped")
}

// RunNow enqueues a cleanup task immediately and returns its task ID.
func (s *AuditCleanupScheduler) RunNow() (string, error) {
	id, err := s.enqueuer.Enqueue(tasks.CleanupAuditEventsTask{RetentionDays: s.retentionDays})
	if err != nil {
		return "", fmt.Errorf("failed to enqueue audit cleanup: %w", err)
	}
	log.Printf("Audit cleanup scheduler: enqueued task %s", id)
	return id, nil
}

// IsRunning returns whether the scheduler is active.
func (s *AuditCleanupScheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// GetNextRunTime returns when the next cleanup will be enqueued.
func (s *AuditCleanupScheduler) GetNextRunTime() *time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning {
		return nil
	}

	for _, entry := range s.cron.Entries() {
		if entry.ID == s.entryID {
			t := entry.Next
			return &t
		}
	}
	return nil
}
