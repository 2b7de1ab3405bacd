package repository

import (
	"context"

	"task-assignment-bot/internal/model"
)

// TaskRepository is the interface for spreadsheet data access operations.
type TaskRepository interface {
	CreateTask(ctx context.Context, t model.Task) error
	ListTasks(ctx context.Context, opt ListTasksOptions) ([]model.Task, error)
}
