package store

import (
	"context"
	"errors"
	"fmt"
	"math"

	"task-tracker-api/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormTaskStore implements TaskStore on top of gorm.
type GormTaskStore struct {
	db *gorm.DB
}

// NewGormTaskStore wraps db.
func NewGormTaskStore(db *gorm.DB) *GormTaskStore {
	return &GormTaskStore{db: db}
}

var _ TaskStore = (*GormTaskStore)(nil)

func orderComments(db *gorm.DB) *gorm.DB {
	return db.Order("comments.id asc")
}

// visibleTo starts a fresh task query restricted to the tasks email created
// or is assigned to.
func (s *GormTaskStore) visibleTo(ctx context.Context, email string) *gorm.DB {
	return s.db.WithContext(ctx).Model(&models.Task{}).
		Where("creator = ? OR assignee = ?", email, email)
}

func (s *GormTaskStore) FindByID(ctx context.Context, id models.ID) (models.Task, error) {
	// SQLite rowids are signed 64-bit; larger ids can never have been assigned.
	if id > math.MaxInt64 {
		return models.Task{}, fmt.Errorf("%w: id %d", ErrTaskNotFound, id)
	}
	var task models.Task
	err := s.db.WithContext(ctx).
		Preload("Comments", orderComments).
		Where("id = ?", id).
		First(&task).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Task{}, fmt.Errorf("%w: id %d", ErrTaskNotFound, id)
		}
		return models.Task{}, fmt.Errorf("failed to fetch task %d: %w", id, err)
	}
	return task, nil
}

func (s *GormTaskStore) Save(ctx context.Context, task models.Task) (models.Task, error) {
	err := s.Transaction(ctx, func(ts TaskStore) error {
		tx := ts.(*GormTaskStore).db

		if task.ID == 0 {
			if err := tx.Omit(clause.Associations).Create(&task).Error; err != nil {
				return fmt.Errorf("failed to create task: %w", err)
			}
		} else {
			res := tx.Model(&models.Task{}).
				Where("id = ?", task.ID).
				Select("header", "description", "status", "priority", "assignee").
				Updates(map[string]any{
					"header":      task.Header,
					"description": task.Description,
					"status":      task.Status,
					"priority":    task.Priority,
					"assignee":    task.Assignee,
				})
			if res.Error != nil {
				return fmt.Errorf("failed to update task %d: %w", task.ID, res.Error)
			}
			if res.RowsAffected == 0 {
				return fmt.Errorf("%w: id %d", ErrTaskNotFound, task.ID)
			}
		}

		for i := range task.Comments {
			c := &task.Comments[i]
			if c.ID != 0 {
				continue
			}
			c.TaskID = task.ID
			if err := tx.Create(c).Error; err != nil {
				return fmt.Errorf("failed to add comment to task %d: %w", task.ID, err)
			}
		}
		return nil
	})
	if err != nil {
		return models.Task{}, err
	}
	return task, nil
}

func (s *GormTaskStore) Delete(ctx context.Context, task models.Task) error {
	return s.Transaction(ctx, func(ts TaskStore) error {
		tx := ts.(*GormTaskStore).db
		if err := tx.Where("task_id = ?", task.ID).Delete(&models.Comment{}).Error; err != nil {
			return fmt.Errorf("failed to delete comments of task %d: %w", task.ID, err)
		}
		res := tx.Where("id = ?", task.ID).Delete(&models.Task{})
		if res.Error != nil {
			return fmt.Errorf("failed to delete task %d: %w", task.ID, res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("%w: id %d", ErrTaskNotFound, task.ID)
		}
		return nil
	})
}

func (s *GormTaskStore) FindByCreatorOrAssignee(ctx context.Context, email string, req PageRequest) (Page, error) {
	page := Page{Number: req.Number, Size: req.Size, Tasks: []models.Task{}}
	// An empty email would otherwise match every unassigned task.
	if email == "" || req.Size <= 0 {
		return page, nil
	}

	// Total count (without pagination)
	if err := s.visibleTo(ctx, email).Count(&page.TotalElements).Error; err != nil {
		return Page{}, fmt.Errorf("failed to count tasks: %w", err)
	}
	// Compare page numbers rather than offsets: Number*Size may overflow.
	if page.TotalElements == 0 || int64(req.Number) >= int64(page.TotalPages()) {
		return page, nil
	}

	err := s.visibleTo(ctx, email).
		Preload("Comments", orderComments).
		Order("id desc").
		Limit(req.Size).
		Offset(req.Offset()).
		Find(&page.Tasks).Error
	if err != nil {
		return Page{}, fmt.Errorf("failed to fetch tasks: %w", err)
	}
	return page, nil
}

func (s *GormTaskStore) CountByStatus(ctx context.Context, email string) (StatusCounts, error) {
	type row struct {
		Status string
		Count  int64
	}

	var rows []row
	err := s.visibleTo(ctx, email).
		Select("status, COUNT(*) as count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to compute stats: %w", err)
	}

	// Initialize with zeros
	counts := make(StatusCounts, len(models.Statuses))
	for _, st := range models.Statuses {
		counts[st] = 0
	}
	for _, r := range rows {
		counts[models.TaskStatus(r.Status)] = r.Count
	}
	return counts, nil
}

func (s *GormTaskStore) Transaction(ctx context.Context, fn func(TaskStore) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&GormTaskStore{db: tx})
	})
}
