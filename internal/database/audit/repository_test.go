package audit

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/mrlokans/bookshelf/internal/database"
	"github.com/mrlokans/bookshelf/internal/entities"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := database.NewDatabase(filepath.Join(t.TempDir(), "audit.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db.DB
}

func TestRepository_LogEvent(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)

	event := &entities.AuditEvent{
		EventType:   entities.AuditEventCreate,
		Action:      "book_create",
		Description: "Created book: The Great Gatsby",
		Status:      entities.AuditStatusSuccess,
	}

	err := repo.LogEvent(event)
	require.NoError(t, err)
	assert.NotZero(t, event.ID)
	assert.False(t, event.CreatedAt.IsZero())
}

func TestRepository_GetEvents(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)

	for i := 0; i < 15; i++ {
		event := &entities.AuditEvent{
			EventType:   entities.AuditEventCreate,
			Action:      "book_create",
			Description: "Test event",
			Status:      entities.AuditStatusSuccess,
			CreatedAt:   time.Now().UTC().Add(time.Duration(-i) * time.Hour),
		}
		require.NoError(t, repo.LogEvent(event))
	}

	t.Run("first page", func(t *testing.T) {
		events, total, err := repo.GetEvents(10, 0)
		require.NoError(t, err)
		assert.Equal(t, int64(15), total)
		assert.Len(t, events, 10)
		assert.True(t, events[0].CreatedAt.After(events[1].CreatedAt))
	})

	t.Run("second page", func(t *testing.T) {
		events, total, err := repo.GetEvents(10, 10)
		require.NoError(t, err)
		assert.Equal(t, int64(15), total)
		assert.Len(t, events, 5)
	})

	t.Run("non-positive limit uses default", func(t *testing.T) {
		events, _, err := repo.GetEvents(0, -3)
		require.NoError(t, err)
		assert.Len(t, events, 15)
	})
}

func TestRepository_GetEventsByType(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)

	for _, et := range []entities.AuditEventType{
		entities.AuditEventCreate,
		entities.AuditEventDelete,
		entities.AuditEventCreate,
		entities.AuditEventMembership,
	} {
		require.NoError(t, repo.LogEvent(&entities.AuditEvent{EventType: et, Status: entities.AuditStatusSuccess}))
	}

	events, total, err := repo.GetEventsByType(entities.AuditEventCreate, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	for _, e := range events {
		assert.Equal(t, entities.AuditEventCreate, e.EventType)
	}

	events, total, err = repo.GetEventsByType(entities.AuditEventUpdate, 10, 0)
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, events)
}

func TestRepository_GetEventsForEntity(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)

	bookID := uint(3)
	otherID := uint(4)
	require.NoError(t, repo.LogEvent(&entities.AuditEvent{Action: "book_create", EntityType: "book", EntityID: &bookID}))
	require.NoError(t, repo.LogEvent(&entities.AuditEvent{Action: "book_update", EntityType: "book", EntityID: &bookID}))
	require.NoError(t, repo.LogEvent(&entities.AuditEvent{Action: "book_create", EntityType: "book", EntityID: &otherID}))
	require.NoError(t, repo.LogEvent(&entities.AuditEvent{Action: "bookshelf_create", EntityType: "bookshelf", EntityID: &bookID}))

	events, err := repo.GetEventsForEntity("book", bookID)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "book_update", events[0].Action)
	assert.Equal(t, "book_create", events[1].Action)
}

func TestRepository_DeleteOldEvents(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)

	now := time.Now().UTC()
	require.NoError(t, repo.LogEvent(&entities.AuditEvent{Action: "old", CreatedAt: now.Add(-48 * time.Hour)}))
	require.NoError(t, repo.LogEvent(&entities.AuditEvent{Action: "older", CreatedAt: now.Add(-72 * time.Hour)}))
	require.NoError(t, repo.LogEvent(&entities.AuditEvent{Action: "fresh", CreatedAt: now}))

	deleted, err := repo.DeleteOldEvents(now.Add(-24 * time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)

	events, total, err := repo.GetEvents(10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "fresh", events[0].Action)
}
