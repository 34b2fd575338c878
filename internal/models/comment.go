package models

import "time"

// Comment is an annotation attached to exactly one task.
type Comment struct {
	ID          ID        `gorm:"primaryKey;autoIncrement"`
	TaskID      ID        `gorm:"not null;index"`
	Author      string    `gorm:"not null"`
	Description string    `gorm:"not null"`
	CreatedAt   time.Time `gorm:"not null;autoCreateTime:false"`
}

// TableName specifies the table name for Comment Model
func (Comment) TableName() string {
	return "comments"
}

// NewComment builds a not yet persisted comment.
func NewComment(author, description string, createdAt time.Time) Comment {
	return Comment{
		Author:      author,
		Description: description,
		CreatedAt:   createdAt,
	}
}
