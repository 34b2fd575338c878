package handlers

import (
	"fmt"
	"net/http"

	"task-tracker-api/internal/middleware"
	"task-tracker-api/internal/models"
	"task-tracker-api/internal/service"
	"task-tracker-api/internal/store"

	"github.com/gin-gonic/gin"
)

// TaskRequest represents the request payload for creating or updating a task
type TaskRequest struct {
	Header      string              `json:"header" binding:"required,notblank"`
	Description string              `json:"description" binding:"required,notblank"`
	Assignee    string              `json:"assignee" binding:"omitempty,email"`
	Priority    models.TaskPriority `json:"priority" binding:"required,oneof=HIGH MEDIUM LOW"`
	Status      models.TaskStatus   `json:"status" binding:"required,oneof=PENDING IN_PROGRESS COMPLETED"`
}

func (r TaskRequest) draft() models.TaskDraft {
	return models.TaskDraft{
		Header:      r.Header,
		Description: r.Description,
		Assignee:    r.Assignee,
		Priority:    r.Priority,
		Status:      r.Status,
	}
}

// ChangeStatusRequest represents a minimal request to change status
type ChangeStatusRequest struct {
	Status models.TaskStatus `json:"status" binding:"required,oneof=PENDING IN_PROGRESS COMPLETED"`
}

// SetAssigneeRequest names the new assignee.
type SetAssigneeRequest struct {
	Assignee string `json:"assignee" binding:"required,email"`
}

// CommentRequest carries the text of a new comment.
type CommentRequest struct {
	Description string `json:"description" binding:"required,notblank"`
}

// ListTasksQuery selects one page of a user's tasks.
type ListTasksQuery struct {
	Email string `form:"email" binding:"required,email"`
	Page  int    `form:"page" binding:"min=0"`
	Size  int    `form:"size" binding:"required,min=1"`
}

// StatsQuery selects whose tasks are counted.
type StatsQuery struct {
	Email string `form:"email" binding:"required,email"`
}

type taskURI struct {
	ID uint64 `uri:"id" binding:"required,min=1"`
}

// TaskHandler serves the task endpoints. Every handler hands the caller's
// resolved email to the service, which makes the authorization decision.
type TaskHandler struct {
	tasks       *service.TaskService
	maxPageSize int
}

// NewTaskHandler creates a TaskHandler. maxPageSize caps ListTasks.
func NewTaskHandler(tasks *service.TaskService, maxPageSize int) *TaskHandler {
	return &TaskHandler{tasks: tasks, maxPageSize: maxPageSize}
}

func bindTaskID(c *gin.Context) (models.ID, bool) {
	var uri taskURI
	if err := c.ShouldBindUri(&uri); err != nil {
		respondBindError(c, err, "Task ID must be a positive integer")
		return 0, false
	}
	return models.ID(uri.ID), true
}

// CreateTask handles POST /api/tasks
func (h *TaskHandler) CreateTask(c *gin.Context) {
	var req TaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "Invalid request body")
		return
	}

	task, err := h.tasks.Create(c.Request.Context(), middleware.CallerEmail(c), req.draft())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, newTaskView(task))
}

// GetTaskByID handles GET /api/tasks/:id
func (h *TaskHandler) GetTaskByID(c *gin.Context) {
	id, ok := bindTaskID(c)
	if !ok {
		return
	}

	task, err := h.tasks.GetByID(c.Request.Context(), middleware.CallerEmail(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newTaskView(task))
}

// ListTasks handles GET /api/tasks?email=&page=&size=
// Returns the tasks the given user created or is assigned to, newest first.
func (h *TaskHandler) ListTasks(c *gin.Context) {
	var q ListTasksQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondBindError(c, err, "Invalid query parameters")
		return
	}
	if h.maxPageSize > 0 && q.Size > h.maxPageSize {
		respondValidation(c, map[string]string{
			"size": fmt.Sprintf("size must be at most %d", h.maxPageSize),
		})
		return
	}

	page, err := h.tasks.ListByUser(c.Request.Context(), middleware.CallerEmail(c), q.Email,
		store.PageRequest{Number: q.Page, Size: q.Size})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newPageView(page))
}

// UpdateTask handles PUT /api/tasks/:id
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	id, ok := bindTaskID(c)
	if !ok {
		return
	}
	var req TaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "Invalid request body")
		return
	}

	task, err := h.tasks.Update(c.Request.Context(), middleware.CallerEmail(c), id, req.draft())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newTaskView(task))
}

// DeleteTask handles DELETE /api/tasks/:id
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	id, ok := bindTaskID(c)
	if !ok {
		return
	}

	if err := h.tasks.Delete(c.Request.Context(), middleware.CallerEmail(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("Task with id %d has been deleted", id),
		"id":      id,
	})
}

// ChangeStatus handles PATCH /api/tasks/:id/status
func (h *TaskHandler) ChangeStatus(c *gin.Context) {
	id, ok := bindTaskID(c)
	if !ok {
		return
	}
	var req ChangeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "Invalid request body")
		return
	}

	task, err := h.tasks.ChangeStatus(c.Request.Context(), middleware.CallerEmail(c), id, req.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newTaskView(task))
}

// SetAssignee handles PATCH /api/tasks/:id/assignee
func (h *TaskHandler) SetAssignee(c *gin.Context) {
	id, ok := bindTaskID(c)
	if !ok {
		return
	}
	var req SetAssigneeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "Invalid request body")
		return
	}

	task, err := h.tasks.SetAssignee(c.Request.Context(), middleware.CallerEmail(c), id, req.Assignee)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newTaskView(task))
}

// AddComment handles POST /api/tasks/:id/comments
func (h *TaskHandler) AddComment(c *gin.Context) {
	id, ok := bindTaskID(c)
	if !ok {
		return
	}
	var req CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "Invalid request body")
		return
	}

	task, err := h.tasks.AddComment(c.Request.Context(), middleware.CallerEmail(c), id, req.Description)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newTaskView(task))
}

// GetStats handles GET /api/tasks/stats?email=
// Returns counts of tasks by status that the user created or is assigned to.
func (h *TaskHandler) GetStats(c *gin.Context) {
	var q StatsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondBindError(c, err, "Invalid query parameters")
		return
	}

	counts, err := h.tasks.Stats(c.Request.Context(), middleware.CallerEmail(c), q.Email)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newStatsView(counts))
}
