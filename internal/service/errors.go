package service

import (
	"errors"

	"task-tracker-api/internal/store"
)

var (
	// ErrUnauthenticated means no caller identity could be resolved.
	ErrUnauthenticated = errors.New("caller is not authenticated")

	// ErrTaskNotFound means the referenced task does not exist.
	ErrTaskNotFound = store.ErrTaskNotFound

	// ErrForbidden means the caller is neither the creator nor, where that
	// suffices, the assignee of the task.
	ErrForbidden = errors.New("caller is not allowed to modify this task")
)
