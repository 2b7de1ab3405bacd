package sheets

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"task-assignment-bot/internal/model"
	"task-assignment-bot/internal/task/repository"
	"task-assignment-bot/pkg/gsheets"
)

// Errors returned by the sheets repository.
var (
	ErrNoWritePath     = errors.New("no webhook URL and no Sheets API client configured")
	ErrReadUnsupported = errors.New("listing tasks requires Sheets API credentials")
)

func (r *implRepository) CreateTask(ctx context.Context, t model.Task) error {
	if r.cfg.WebhookURL != "" {
		err := r.postWebhook(ctx, t)
		if err == nil {
			return nil
		}
		r.l.Warnf(ctx, "sheets repository: webhook post failed, trying API fallback: %v", err)
		if r.api == nil {
			return err
		}
	}

	if r.api == nil {
		return ErrNoWritePath
	}

	err := r.api.AppendRow(ctx, gsheets.AppendRequest{
		SpreadsheetID: r.cfg.SpreadsheetID,
		SheetName:     r.cfg.SheetName,
		Values:        taskToRow(t),
	})
	if err != nil {
		r.l.Errorf(ctx, "sheets repository: failed to append row: %v", err)
		return err
	}
	return nil
}

func (r *implRepository) ListTasks(ctx context.Context, opt repository.ListTasksOptions) ([]model.Task, error) {
	if r.api == nil {
		return nil, ErrReadUnsupported
	}

	limit := opt.Limit
	if limit == 0 {
		limit = 20
	}

	// A2:P skips the header row the Apps Script writes on first run.
	rows, err := r.api.ReadRows(ctx, gsheets.ReadRequest{
		SpreadsheetID: r.cfg.SpreadsheetID,
		SheetName:     r.cfg.SheetName,
		Range:         "A2:P",
	})
	if err != nil {
		return nil, err
	}

	tasks := make([]model.Task, 0, len(rows))
	for _, row := range rows {
		t := rowToTask(row)
		if t.ID == "" && t.Task == "" {
			continue
		}
		if opt.Assignee != "" && !strings.EqualFold(t.Assignee, opt.Assignee) {
			continue
		}
		if opt.Status != "" && !strings.EqualFold(t.Status, opt.Status) {
			continue
		}
		tasks = append(tasks, t)
		if len(tasks) >= limit {
			break
		}
	}
	return tasks, nil
}

// postWebhook sends the task JSON to the Apps Script web app.
func (r *implRepository) postWebhook(ctx context.Context, t model.Task) error {
	body, err := json.Marshal(t)
	if err != nil {
		return fmt.Errorf("failed to marshal task: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.cfg.WebhookURL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("webhook request failed: %w", err)
	}
	defer resp.Body.Close()

	// Apps Script answers 302 to a one-time googleusercontent URL on success.
	if resp.StatusCode >= http.StatusBadRequest {
		raw, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("webhook returned status %d: %s", resp.StatusCode, string(raw))
	}
	return nil
}

// taskToRow flattens a task into the sheet's column order (A through P).
func taskToRow(t model.Task) []any {
	timesAreIn := ""
	if t.TimezoneInfo != nil {
		timesAreIn = t.TimezoneInfo.TimesAreIn
	}
	return []any{
		t.ID,
		t.Task,
		t.Assignee,
		t.Assigner,
		t.DueDate,
		t.DueTime,
		t.ReminderDate,
		t.ReminderTime,
		t.Site,
		t.Priority,
		t.Status,
		t.RepeatInterval,
		t.TimezoneContext,
		timesAreIn,
		t.CreatedAt,
		t.OriginalPrompt,
	}
}

// rowToTask maps one sheet row back to a task. Short rows are tolerated
// because the Sheets API trims trailing empty cells.
func rowToTask(row []any) model.Task {
	return model.Task{
		ID:              cell(row, 0),
		Task:            cell(row, 1),
		Assignee:        cell(row, 2),
		Assigner:        cell(row, 3),
		DueDate:         cell(row, 4),
		DueTime:         cell(row, 5),
		ReminderDate:    cell(row, 6),
		ReminderTime:    cell(row, 7),
		Site:            cell(row, 8),
		Priority:        cell(row, 9),
		Status:          cell(row, 10),
		RepeatInterval:  cell(row, 11),
		TimezoneContext: cell(row, 12),
		CreatedAt:       cell(row, 14),
		OriginalPrompt:  cell(row, 15),
	}
}

func cell(row []any, i int) string {
	if i >= len(row) || row[i] == nil {
		return ""
	}
	if s, ok := row[i].(string); ok {
		return s
	}
	return fmt.Sprint(row[i])
}
