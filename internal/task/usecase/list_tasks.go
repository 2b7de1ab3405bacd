package usecase

import (
	"context"

	"task-assignment-bot/internal/model"
	"task-assignment-bot/internal/task"
	"task-assignment-bot/internal/task/repository"
)

// ListTasks returns saved tasks from the spreadsheet, optionally filtered by
// assignee. Pending (unconfirmed) tasks are not included.
func (uc *implUseCase) ListTasks(ctx context.Context, sc model.Scope, input task.ListTasksInput) (task.ListTasksOutput, error) {
	limit := input.Limit
	if limit == 0 {
		limit = 10
	}

	assignee := input.Assignee
	if assignee != "" {
		assignee = uc.users.Normalize(assignee)
	}

	tasks, err := uc.repo.ListTasks(ctx, repository.ListTasksOptions{
		Assignee: assignee,
		Limit:    limit,
	})
	if err != nil {
		uc.l.Errorf(ctx, "failed to list tasks: %v", err)
		return task.ListTasksOutput{}, err
	}

	return task.ListTasksOutput{Tasks: tasks, Count: len(tasks)}, nil
}
