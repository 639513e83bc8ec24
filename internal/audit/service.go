// Package audit records catalog mutations and maintenance runs as
// AuditEvent rows.
package audit

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/mrlokans/bookshelf/internal/database/audit"
	"github.com/mrlokans/bookshelf/internal/entities"
)

const maxFieldLen = 500

// Service provides high-level audit logging functionality.
type Service struct {
	repo    *audit.Repository
	pending sync.WaitGroup
}

// NewService creates a new audit service.
func NewService(repo *audit.Repository) *Service {
	return &Service{repo: repo}
}

// Log records an audit event synchronously.
func (s *Service) Log(event *entities.AuditEvent) error {
	return s.repo.LogEvent(event)
}

// LogAsync records an audit event in the background (non-blocking).
func (s *Service) LogAsync(event *entities.AuditEvent) {
	s.pending.Add(1)
	go func() {
		defer s.pending.Done()
		if err := s.repo.LogEvent(event); err != nil {
			log.Printf("[AUDIT] Failed to log %s event: %v", event.Action, err)
		}
	}()
}

// Wait blocks until every event queued by LogAsync has been written.
func (s *Service) Wait() {
	s.pending.Wait()
}

// LogChange records a successful mutation of a catalog entity.
func (s *Service) LogChange(requestID string, eventType entities.AuditEventType, action, entityType string, entityID uint, description string, metadata map[string]any) {
	event := &entities.AuditEvent{
		EventType:   eventType,
		Action:      action,
		Description: truncate(description, maxFieldLen),
		EntityType:  entityType,
		EntityID:    &entityID,
		RequestID:   requestID,
		Status:      entities.AuditStatusSuccess,
	}

	if len(metadata) > 0 {
		if mdBytes, err := json.Marshal(metadata); err == nil {
			event.Metadata = string(mdBytes)
		}
	}

	s.LogAsync(event)
}

// LogMaintenance records the outcome of a background housekeeping run.
func (s *Service) LogMaintenance(action, description string, err error) {
	event := &entities.AuditEvent{
		EventType:   entities.AuditEventMaintain,
		Action:      action,
		Description: truncate(description, maxFieldLen),
		Status:      entities.AuditStatusSuccess,
	}

	if err != nil {
		event.Status = entities.AuditStatusFailed
		event.ErrorMsg = truncate(err.Error(), maxFieldLen)
	}

	s.LogAsync(event)
}

// GetEvents retrieves paginated audit events.
func (s *Service) GetEvents(limit, offset int) ([]entities.AuditEvent, int64, error) {
	return s.repo.GetEvents(limit, offset)
}

// GetEventsByType retrieves audit events filtered by type.
func (s *Service) GetEventsByType(eventType entities.AuditEventType, limit, offset int) ([]entities.AuditEvent, int64, error) {
	return s.repo.GetEventsByType(eventType, limit, offset)
}

// GetEntityHistory returns all events recorded for one entity.
func (s *Service) GetEntityHistory(entityType string, entityID uint) ([]entities.AuditEvent, error) {
	return s.repo.GetEventsForEntity(entityType, entityID)
}

// DeleteOldEvents removes events older than the specified duration.
func (s *Service) DeleteOldEvents(retention time.Duration) (int64, error) {
	cutoff := time.Now().UTC().Add(-retention)
	return s.repo.DeleteOldEvents(cutoff)
}

// truncate shortens a string to max length.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
