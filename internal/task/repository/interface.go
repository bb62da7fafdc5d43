package repository

import (
	"context"

	"conversational-task-management/internal/model"
)

// Repository is the interface for task data access operations.
type Repository interface {
	// CreateBatch materializes one task per recipient inside a single
	// transaction. Either every recipient gets a task or none do.
	CreateBatch(ctx context.Context, opt CreateBatchOptions) ([]model.Task, error)

	GetStatusByCode(ctx context.Context, code string) (model.TaskStatus, error)
	ListStatuses(ctx context.Context) ([]model.TaskStatus, error)

	// EnsureStatus returns the status with the given code, creating it
	// when missing. Used as a last resort when the seeded rows are gone.
	EnsureStatus(ctx context.Context, code, name string) (model.TaskStatus, error)
}
