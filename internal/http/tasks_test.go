package http

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/mikestefanello/backlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/bookshelf/internal/tasks"
)

type fakeTaskQueue struct {
	enqueued   []backlite.Task
	enqueueErr error
	statuses   map[string]backlite.TaskStatus
}

func (f *fakeTaskQueue) Enqueue(task backlite.Task) (string, error) {
	if f.enqueueErr != nil {
		return "", f.enqueueErr
	}
	f.enqueued = append(f.enqueued, task)
	return "task-123", nil
}

func (f *fakeTaskQueue) Status(ctx context.Context, taskID string) (backlite.TaskStatus, error) {
	status, ok := f.statuses[taskID]
	if !ok {
		return backlite.TaskStatusNotFound, nil
	}
	return status, nil
}

func setupTasksRouter(queue *fakeTaskQueue) *gin.Engine {
	tc := NewTasksController(queue, 14)
	router := gin.New()
	router.GET("/api/tasks/types", tc.ListTaskTypes)
	router.GET("/api/tasks/:id", tc.GetTaskStatus)
	router.POST("/api/tasks/:id/run", tc.RunTask)
	return router
}

func TestTasksController_RunTask(t *testing.T) {
	queue := &fakeTaskQueue{}
	router := setupTasksRouter(queue)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/tasks/cleanup_audit_events/run", nil))

	assert.Equal(t, http.StatusAccepted, w.Code)
	assert.Contains(t, w.Body.String(), `"task_id":"task-123"`)
	require.Len(t, queue.enqueued, 1)
	assert.Equal(t, tasks.CleanupAuditEventsTask{RetentionDays: 14}, queue.enqueued[0])

	t.Run("unknown type", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/tasks/enrich_everything/run", nil))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("enqueue failure", func(t *testing.T) {
		queue.enqueueErr = errors.New("queue closed")
		defer func() { queue.enqueueErr = nil }()

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/tasks/cleanup_audit_events/run", nil))
		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestTasksController_GetTaskStatus(t *testing.T) {
	queue := &fakeTaskQueue{statuses: map[string]backlite.TaskStatus{"abc": backlite.TaskStatusSuccess}}
	router := setupTasksRouter(queue)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/tasks/abc", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":"abc","status":"success"}`, w.Body.String())

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/tasks/missing", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "not_found")
}

func TestTasksController_ListTaskTypes(t *testing.T) {
	router := setupTasksRouter(&fakeTaskQueue{})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/tasks/types", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "cleanup_audit_events")
	assert.Contains(t, w.Body.String(), "14 days")
}
