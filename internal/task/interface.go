package task

import (
	"context"

	"task-assignment-bot/internal/model"
)

// UseCase defines the business logic interface for the task domain.
type UseCase interface {
	// ParseTask turns one natural-language instruction into a structured task.
	// The task is held in memory until confirmed or cancelled, not persisted.
	ParseTask(ctx context.Context, sc model.Scope, input ParseTaskInput) (ParseTaskOutput, error)

	// ConfirmTask persists a previously parsed task to the spreadsheet and
	// returns the saved record.
	ConfirmTask(ctx context.Context, sc model.Scope, pendingID string) (model.Task, error)

	// CancelTask discards a previously parsed task without saving it.
	CancelTask(ctx context.Context, sc model.Scope, pendingID string) error

	// ListTasks returns tasks already saved to the spreadsheet.
	ListTasks(ctx context.Context, sc model.Scope, input ListTasksInput) (ListTasksOutput, error)
}
