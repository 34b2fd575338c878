package models

import (
	"time"
)

// ID is the store-assigned identifier shared by every persisted entity.
type ID uint64

// TaskStatus represents the status of a task
type TaskStatus string

const (
	StatusPending    TaskStatus = "PENDING"
	StatusInProgress TaskStatus = "IN_PROGRESS"
	StatusCompleted  TaskStatus = "COMPLETED"
)

// Statuses lists every valid status in workflow order.
var Statuses = []TaskStatus{StatusPending, StatusInProgress, StatusCompleted}

// Valid reports whether s is one of the defined statuses.
func (s TaskStatus) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

// TaskPriority represents the priority of a task
type TaskPriority string

const (
	PriorityHigh   TaskPriority = "HIGH"
	PriorityMedium TaskPriority = "MEDIUM"
	PriorityLow    TaskPriority = "LOW"
)

// Valid reports whether p is one of the defined priorities.
func (p TaskPriority) Valid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

// Task represents a task in the system.
//
// Values are treated as immutable by the service layer: the With* methods
// return modified copies and leave the receiver untouched.
type Task struct {
	ID          ID           `gorm:"primaryKey;autoIncrement"`
	Header      string       `gorm:"not null"`
	Description string       `gorm:"not null"`
	Status      TaskStatus   `gorm:"not null"`
	Priority    TaskPriority `gorm:"not null"`
	Creator     string       `gorm:"not null;index"`
	Assignee    string       `gorm:"index"`
	CreatedAt   time.Time    `gorm:"not null;autoCreateTime:false"`
	Comments    []Comment    `gorm:"foreignKey:TaskID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for Task Model
func (Task) TableName() string {
	return "tasks"
}

// TaskDraft carries the caller-controlled attributes of a task, as used by
// both create and full update.
type TaskDraft struct {
	Header      string
	Description string
	Assignee    string
	Priority    TaskPriority
	Status      TaskStatus
}

// NewTask builds a not yet persisted task owned by creator.
func NewTask(creator string, d TaskDraft, createdAt time.Time) Task {
	return Task{
		Header:      d.Header,
		Description: d.Description,
		Status:      d.Status,
		Priority:    d.Priority,
		Creator:     creator,
		Assignee:    d.Assignee,
		CreatedAt:   createdAt,
	}
}

// IsCreator reports whether email created the task.
func (t Task) IsCreator(email string) bool {
	return email != "" && email == t.Creator
}

// IsAssignee reports whether email is the current assignee.
func (t Task) IsAssignee(email string) bool {
	return email != "" && email == t.Assignee
}

// WithDraft overwrites every draft-controlled attribute. Identity, creator,
// creation time and comments are kept.
func (t Task) WithDraft(d TaskDraft) Task {
	t.Header = d.Header
	t.Description = d.Description
	t.Assignee = d.Assignee
	t.Priority = d.Priority
	t.Status = d.Status
	t.Comments = cloneComments(t.Comments)
	return t
}

// WithStatus returns a copy of t with the given status.
func (t Task) WithStatus(s TaskStatus) Task {
	t.Status = s
	t.Comments = cloneComments(t.Comments)
	return t
}

// WithAssignee returns a copy of t with the given assignee.
func (t Task) WithAssignee(email string) Task {
	t.Assignee = email
	t.Comments = cloneComments(t.Comments)
	return t
}

// WithComment returns a copy of t with c appended to its comments.
func (t Task) WithComment(c Comment) Task {
	c.TaskID = t.ID
	comments := make([]Comment, 0, len(t.Comments)+1)
	comments = append(comments, t.Comments...)
	t.Comments = append(comments, c)
	return t
}

func cloneComments(in []Comment) []Comment {
	if in == nil {
		return nil
	}
	out := make([]Comment, len(in))
	copy(out, in)
	return out
}
