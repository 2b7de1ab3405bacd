package usecase

import (
	"context"
	"fmt"

	"task-assignment-bot/internal/model"
	"task-assignment-bot/internal/task"
)

// ConfirmTask promotes a pending task to confirmed and writes it to the
// spreadsheet. The pending entry stays cached until the write succeeds so a
// transient sheet failure can be retried by tapping Confirm again.
func (uc *implUseCase) ConfirmTask(ctx context.Context, sc model.Scope, pendingID string) (model.Task, error) {
	t, ok := uc.pending.Get(pendingID)
	if !ok {
		return model.Task{}, task.ErrPendingNotFound
	}

	t.Status = model.TaskStatusConfirmed
	if err := uc.repo.CreateTask(ctx, t); err != nil {
		uc.l.Errorf(ctx, "failed to save task %s: %v", t.ID, err)
		return model.Task{}, fmt.Errorf("%w: %v", task.ErrStoreFailed, err)
	}

	uc.pending.Remove(pendingID)
	uc.l.Infof(ctx, "task %s confirmed by %s and saved", t.ID, sc.Username)
	return t, nil
}

// CancelTask drops a pending task without saving it.
func (uc *implUseCase) CancelTask(ctx context.Context, sc model.Scope, pendingID string) error {
	if !uc.pending.Remove(pendingID) {
		return task.ErrPendingNotFound
	}
	uc.l.Infof(ctx, "pending task %s cancelled by %s", pendingID, sc.Username)
	return nil
}
