// Package store persists tasks and their comments.
package store

import (
	"context"
	"errors"

	"task-tracker-api/internal/models"
)

// ErrTaskNotFound is returned when no task has the requested id.
var ErrTaskNotFound = errors.New("task not found")

// PageRequest selects a zero-based page of Size elements.
type PageRequest struct {
	Number int
	Size   int
}

// Offset returns the index of the first element of the page.
func (p PageRequest) Offset() int {
	return p.Number * p.Size
}

// Page is one slice of an ordered result set.
type Page struct {
	Tasks         []models.Task
	Number        int
	Size          int
	TotalElements int64
}

// TotalPages is the number of pages of Size needed for TotalElements.
func (p Page) TotalPages() int {
	if p.Size <= 0 || p.TotalElements == 0 {
		return 0
	}
	return int((p.TotalElements + int64(p.Size) - 1) / int64(p.Size))
}

// StatusCounts holds the number of tasks in each status.
type StatusCounts map[models.TaskStatus]int64

// Total sums every status.
func (c StatusCounts) Total() int64 {
	var total int64
	for _, n := range c {
		total += n
	}
	return total
}

// TaskStore is the persistence contract used by the task service.
type TaskStore interface {
	// FindByID loads a task with its comments, ordered by id.
	FindByID(ctx context.Context, id models.ID) (models.Task, error)
	// Save inserts a task without id, or rewrites an existing one. Comments
	// without id are inserted; existing comments are left untouched.
	Save(ctx context.Context, task models.Task) (models.Task, error)
	// Delete removes the task and all of its comments.
	Delete(ctx context.Context, task models.Task) error
	// FindByCreatorOrAssignee pages through the tasks email created or is
	// assigned to, newest id first.
	FindByCreatorOrAssignee(ctx context.Context, email string, req PageRequest) (Page, error)
	// CountByStatus counts the tasks email created or is assigned to.
	CountByStatus(ctx context.Context, email string) (StatusCounts, error)
	// Transaction runs fn against a store bound to a single transaction,
	// committing if fn returns nil.
	Transaction(ctx context.Context, fn func(TaskStore) error) error
}
