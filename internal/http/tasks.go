package http

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mikestefanello/backlite"

	"github.com/mrlokans/bookshelf/internal/tasks"
)

// TaskQueue is the part of tasks.Client used by TasksController.
type TaskQueue interface {
	Enqueue(task backlite.Task) (string, error)
	Status(ctx context.Context, taskID string) (backlite.TaskStatus, error)
}

// TasksController handles task queue management endpoints.
type TasksController struct {
	client        TaskQueue
	retentionDays int
}

// NewTasksController creates a new TasksController.
func NewTasksController(client TaskQueue, retentionDays int) *TasksController {
	return &TasksController{client: client, retentionDays: retentionDays}
}

// TaskTypeInfo describes an available task type.
type TaskTypeInfo struct {
	Type        string `json:"type"`
	Description string `json:"description"`
	Queue       string `json:"queue"`
}

// ListTaskTypes handles GET /api/tasks/types
func (tc *TasksController) ListTaskTypes(c *gin.Context) {
	types := []TaskTypeInfo{
		{
			Type:        tasks.CleanupAuditEventsQueue,
			Description: fmt.Sprintf("Delete audit events older than %d days", tc.retentionDays),
			Queue:       tasks.CleanupAuditEventsQueue,
		},
	}

	c.JSON(http.StatusOK, gin.H{
		"task_types": types,
	})
}

// GetTaskStatus handles GET /api/tasks/:id
func (tc *TasksController) GetTaskStatus(c *gin.Context) {
	taskID := c.Param("id")
	if taskID == "" {
		respondBadRequest(c, "task ID is required")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	status, err := tc.client.Status(ctx, taskID)
	if err != nil {
		respondInternalError(c, err, "task status")
		return
	}

	code := http.StatusOK
	if status == backlite.TaskStatusNotFound {
		code = http.StatusNotFound
	}
	c.JSON(code, gin.H{
		"id":     taskID,
		"status": tasks.TaskStatusString(status),
	})
}

// RunTask handles POST /api/tasks/:id/run where :id names a task type.
func (tc *TasksController) RunTask(c *gin.Context) {
	taskType := c.Param("id")

	var task backlite.Task
	switch taskType {
	case tasks.CleanupAuditEventsQueue:
		task = tasks.CleanupAuditEventsTask{RetentionDays: tc.retentionDays}
	default:
		respondBadRequest(c, fmt.Sprintf("unknown task type: %s", taskType))
		return
	}

	id, err := tc.client.Enqueue(task)
	if err != nil {
		respondInternalError(c, err, "enqueue "+taskType)
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"success": true,
		"task_id": id,
		"type":    taskType,
		"message": "task enqueued",
	})
}
