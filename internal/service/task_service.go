// Package service holds the task lifecycle rules: who may read, change,
// reassign or comment on a task.
//
// Authorization is relational, not role based. Every operation receives the
// caller's resolved email explicitly (empty when unknown) and compares it
// with the creator and assignee stored on the task. Checks run in a fixed
// order: caller identity, task existence, then the relation.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"task-tracker-api/internal/models"
	"task-tracker-api/internal/store"
)

// TaskService applies task state transitions and their authorization rules.
type TaskService struct {
	store store.TaskStore
	log   *slog.Logger
	now   func() time.Time
}

// NewTaskService creates a TaskService backed by s.
func NewTaskService(s store.TaskStore, log *slog.Logger) *TaskService {
	if log == nil {
		log = slog.Default()
	}
	return &TaskService{
		store: s,
		log:   log,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// relation decides whether caller may act on task.
type relation func(task models.Task, caller string) bool

func creatorOnly(task models.Task, caller string) bool {
	return task.IsCreator(caller)
}

func creatorOrAssignee(task models.Task, caller string) bool {
	return task.IsCreator(caller) || task.IsAssignee(caller)
}

func anyCaller(models.Task, string) bool {
	return true
}

// mutate runs load, check, change and save inside one store transaction.
func (s *TaskService) mutate(ctx context.Context, caller string, id models.ID, allowed relation, change func(models.Task) models.Task) (models.Task, error) {
	if caller == "" {
		return models.Task{}, ErrUnauthenticated
	}

	var saved models.Task
	err := s.store.Transaction(ctx, func(tx store.TaskStore) error {
		task, err := tx.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if !allowed(task, caller) {
			return fmt.Errorf("%w: task %d", ErrForbidden, id)
		}
		saved, err = tx.Save(ctx, change(task))
		return err
	})
	if err != nil {
		return models.Task{}, err
	}
	return saved, nil
}

// GetByID returns the task with id to any authenticated caller.
func (s *TaskService) GetByID(ctx context.Context, caller string, id models.ID) (models.Task, error) {
	if caller == "" {
		return models.Task{}, ErrUnauthenticated
	}
	return s.store.FindByID(ctx, id)
}

// Create stores a new task owned by caller.
func (s *TaskService) Create(ctx context.Context, caller string, draft models.TaskDraft) (models.Task, error) {
	if caller == "" {
		return models.Task{}, ErrUnauthenticated
	}
	task, err := s.store.Save(ctx, models.NewTask(caller, draft, s.now()))
	if err != nil {
		return models.Task{}, err
	}
	s.log.InfoContext(ctx, "task created", "task_id", task.ID, "creator", caller)
	return task, nil
}

// Update overwrites header, description, assignee, priority and status.
// Only the creator may update.
func (s *TaskService) Update(ctx context.Context, caller string, id models.ID, draft models.TaskDraft) (models.Task, error) {
	task, err := s.mutate(ctx, caller, id, creatorOnly, func(t models.Task) models.Task {
		return t.WithDraft(draft)
	})
	if err != nil {
		return models.Task{}, err
	}
	s.log.InfoContext(ctx, "task updated", "task_id", id, "caller", caller)
	return task, nil
}

// Delete removes the task and its comments. Only the creator may delete.
func (s *TaskService) Delete(ctx context.Context, caller string, id models.ID) error {
	if caller == "" {
		return ErrUnauthenticated
	}
	err := s.store.Transaction(ctx, func(tx store.TaskStore) error {
		task, err := tx.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if !creatorOnly(task, caller) {
			return fmt.Errorf("%w: task %d", ErrForbidden, id)
		}
		return tx.Delete(ctx, task)
	})
	if err != nil {
		return err
	}
	s.log.InfoContext(ctx, "task deleted", "task_id", id, "caller", caller)
	return nil
}

// ChangeStatus sets the status. The creator and the assignee may both do
// this; any status may follow any other.
func (s *TaskService) ChangeStatus(ctx context.Context, caller string, id models.ID, status models.TaskStatus) (models.Task, error) {
	task, err := s.mutate(ctx, caller, id, creatorOrAssignee, func(t models.Task) models.Task {
		return t.WithStatus(status)
	})
	if err != nil {
		return models.Task{}, err
	}
	s.log.InfoContext(ctx, "task status changed", "task_id", id, "caller", caller, "status", status)
	return task, nil
}

// SetAssignee hands the task to assignee. Only the creator may reassign.
func (s *TaskService) SetAssignee(ctx context.Context, caller string, id models.ID, assignee string) (models.Task, error) {
	task, err := s.mutate(ctx, caller, id, creatorOnly, func(t models.Task) models.Task {
		return t.WithAssignee(assignee)
	})
	if err != nil {
		return models.Task{}, err
	}
	s.log.InfoContext(ctx, "task assignee set", "task_id", id, "caller", caller, "assignee", assignee)
	return task, nil
}

// AddComment appends a comment. Any authenticated caller may comment; the
// author is recorded as the task's creator, not the caller.
func (s *TaskService) AddComment(ctx context.Context, caller string, id models.ID, text string) (models.Task, error) {
	createdAt := s.now()
	task, err := s.mutate(ctx, caller, id, anyCaller, func(t models.Task) models.Task {
		return t.WithComment(models.NewComment(t.Creator, text, createdAt))
	})
	if err != nil {
		return models.Task{}, err
	}
	s.log.InfoContext(ctx, "task comment added", "task_id", id, "caller", caller)
	return task, nil
}

// ListByUser pages through the tasks email created or is assigned to,
// newest first.
func (s *TaskService) ListByUser(ctx context.Context, caller, email string, req store.PageRequest) (store.Page, error) {
	if caller == "" {
		return store.Page{}, ErrUnauthenticated
	}
	return s.store.FindByCreatorOrAssignee(ctx, email, req)
}

// Stats counts the tasks per status that email created or is assigned to.
func (s *TaskService) Stats(ctx context.Context, caller, email string) (store.StatusCounts, error) {
	if caller == "" {
		return nil, ErrUnauthenticated
	}
	return s.store.CountByStatus(ctx, email)
}
