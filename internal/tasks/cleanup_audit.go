package tasks

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/mikestefanello/backlite"
)

// CleanupAuditEventsQueue is the queue name of CleanupAuditEventsTask.
const CleanupAuditEventsQueue = "cleanup_audit_events"

// AuditEventCleaner provides the ability to delete old audit events.
type AuditEventCleaner interface {
	DeleteOldEvents(retention time.Duration) (int64, error)
}

// MaintenanceRecorder records the outcome of a housekeeping run.
type MaintenanceRecorder interface {
	LogMaintenance(action, description string, err error)
}

// CleanupAuditEventsTask removes audit events older than the configured retention period.
type CleanupAuditEventsTask struct {
	RetentionDays int `json:"retention_days"`
}

// Config returns the queue configuration for audit cleanup tasks.
func (t CleanupAuditEventsTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        CleanupAuditEventsQueue,
		MaxAttempts: 3,
		Backoff:     5 * time.Minute,
		Timeout:     2 * time.Minute,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// CleanupAuditEventsProcessor creates a processor function for CleanupAuditEventsTask.
// defaultDays applies when the task carries no retention of its own; recorder may be nil.
func CleanupAuditEventsProcessor(cleaner AuditEventCleaner, recorder MaintenanceRecorder, defaultDays int) backlite.QueueProcessor[CleanupAuditEventsTask] {
	return func(ctx context.Context, task CleanupAuditEventsTask) error {
		if cleaner == nil {
			return fmt.Errorf("audit event cleaner not configured")
		}

		retentionDays := task.RetentionDays
		if retentionDays <= 0 {
			retentionDays = defaultDays
		}
		if retentionDays <= 0 {
			retentionDays = DefaultConfig().AuditRetentionDays
		}
		retention := time.Duration(retentionDays) * 24 * time.Hour

		deleted, err := cleaner.DeleteOldEvents(retention)
		if err != nil {
			err = fmt.Errorf("cleanup audit events: %w", err)
			if recorder != nil {
				recorder.LogMaintenance("audit_cleanup", "Audit cleanup failed", err)
			}
			return err
		}

		log.Printf("[TASK] Cleaned up %d audit events older than %d days", deleted, retentionDays)
		if recorder != nil {
			recorder.LogMaintenance("audit_cleanup",
				fmt.Sprintf("Deleted %d audit events older than %d days", deleted, retentionDays), nil)
		}
		return nil
	}
}

// NewCleanupAuditEventsQueue creates a backlite queue for audit cleanup tasks.
func NewCleanupAuditEventsQueue(cleaner AuditEventCleaner, recorder MaintenanceRecorder, defaultDays int) backlite.Queue {
	return backlite.NewQueue(CleanupAuditEventsProcessor(cleaner, recorder, defaultDays))
}

// TaskStatusString renders a backlite status for API responses.
func TaskStatusString(status backlite.TaskStatus) string {
	switch status {
	case backlite.TaskStatusPending:
		return "pending"
	case backlite.TaskStatusRunning:
		return "running"
	case backlite.TaskStatusSuccess:
		return "success"
	case backlite.TaskStatusFailure:
		return "failure"
	case backlite.TaskStatusNotFound:
		return "not_found"
	default:
		return "unknown"
	}
}
