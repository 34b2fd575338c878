package handlers

import (
	"time"

	"task-tracker-api/internal/models"
	"task-tracker-api/internal/store"
)

// CommentView is the response shape of a comment.
type CommentView struct {
	ID        models.ID `json:"id"`
	Body      string    `json:"body"`
	Author    string    `json:"author"`
	CreatedAt time.Time `json:"createdAt"`
}

// TaskView is the response shape of a task.
type TaskView struct {
	ID          models.ID           `json:"id"`
	Header      string              `json:"header"`
	Description string              `json:"description"`
	Status      models.TaskStatus   `json:"status"`
	Priority    models.TaskPriority `json:"priority"`
	Creator     string              `json:"creator"`
	Assignee    string              `json:"assignee"`
	CreatedAt   time.Time           `json:"createdAt"`
	Comments    []CommentView       `json:"comments"`
}

// PageView is the response shape of a paginated listing.
type PageView struct {
	Content       []TaskView `json:"content"`
	PageNumber    int        `json:"pageNumber"`
	PageSize      int        `json:"pageSize"`
	TotalElements int64      `json:"totalElements"`
	TotalPages    int        `json:"totalPages"`
}

// StatsView counts tasks per status.
type StatsView struct {
	Pending    int64 `json:"pending"`
	InProgress int64 `json:"inProgress"`
	Completed  int64 `json:"completed"`
	Total      int64 `json:"total"`
}

func newTaskView(t models.Task) TaskView {
	comments := make([]CommentView, 0, len(t.Comments))
	for _, c := range t.Comments {
		comments = append(comments, CommentView{
			ID:        c.ID,
			Body:      c.Description,
			Author:    c.Author,
			CreatedAt: c.CreatedAt,
		})
	}
	return TaskView{
		ID:          t.ID,
		Header:      t.Header,
		Description: t.Description,
		Status:      t.Status,
		Priority:    t.Priority,
		Creator:     t.Creator,
		Assignee:    t.Assignee,
		CreatedAt:   t.CreatedAt,
		Comments:    comments,
	}
}

func newPageView(p store.Page) PageView {
	content := make([]TaskView, 0, len(p.Tasks))
	for _, t := range p.Tasks {
		content = append(content, newTaskView(t))
	}
	return PageView{
		Content:       content,
		PageNumber:    p.Number,
		PageSize:      p.Size,
		TotalElements: p.TotalElements,
		TotalPages:    p.TotalPages(),
	}
}

func newStatsView(c store.StatusCounts) StatsView {
	return StatsView{
		Pending:    c[models.StatusPending],
		InProgress: c[models.StatusInProgress],
		Completed:  c[models.StatusCompleted],
		Total:      c.Total(),
	}
}
