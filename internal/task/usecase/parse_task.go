package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"task-assignment-bot/internal/model"
	"task-assignment-bot/internal/task"
	"task-assignment-bot/pkg/temporal"
	"task-assignment-bot/pkg/timezone"
)

// createdAtFormat matches what the spreadsheet stores: minute precision, UTC.
const createdAtFormat = "2006-01-02T15:04"

// ParseTask runs the full parsing pipeline for one instruction:
// preprocessor scan, LLM parse with hints, deterministic overlay, assignee
// normalization and timezone policy. The result is cached as a pending task
// until the user confirms or cancels it.
func (uc *implUseCase) ParseTask(ctx context.Context, sc model.Scope, input task.ParseTaskInput) (task.ParseTaskOutput, error) {
	raw := strings.TrimSpace(input.RawText)
	if raw == "" {
		return task.ParseTaskOutput{}, task.ErrEmptyInput
	}

	assigner := uc.users.Normalize(sc.Username)
	if assigner == "" {
		assigner = sc.UserID
	}

	loc := uc.users.Timezone(assigner)
	now := time.Now().In(loc)

	ext := uc.pre.Preprocess(raw, now)
	if ext.Confidence >= temporal.ConfidenceUsableThreshold {
		uc.l.Infof(ctx, "temporal preprocessor hit: confidence=%.1f due=%s %s reminder=%s %s",
			ext.Confidence, ext.Data.DueDate, ext.Data.DueTime, ext.Data.ReminderDate, ext.Data.ReminderTime)
	}

	prompt := buildParsePrompt(raw, ext, assigner, now)
	fields, provider, err := uc.parseInputWithLLM(ctx, prompt)
	if err != nil {
		return task.ParseTaskOutput{}, fmt.Errorf("%w: %v", task.ErrParseFailed, err)
	}

	// Deterministic extraction always wins over the model's reading.
	overlayExtraction(&fields, ext)

	if strings.TrimSpace(fields.Task) == "" {
		uc.l.Warnf(ctx, "LLM returned no task field for input %q", raw)
		return task.ParseTaskOutput{}, task.ErrParseFailed
	}

	assignee := uc.users.Normalize(fields.Assignee)
	if assignee == "" {
		// No assignee named means the assigner is talking to themselves.
		assignee = assigner
	} else if !uc.users.Known(fields.Assignee) {
		uc.l.Warnf(ctx, "assignee %q is not on the roster, timezone defaults to UTC", fields.Assignee)
	}

	t := model.Task{
		ID:                 uuid.NewString(),
		Task:               strings.TrimSpace(fields.Task),
		Assignee:           assignee,
		Assigner:           assigner,
		DueDate:            fields.DueDate,
		DueTime:            fields.DueTime,
		ReminderDate:       fields.ReminderDate,
		ReminderTime:       fields.ReminderTime,
		Site:               strings.TrimSpace(fields.Site),
		Priority:           normalizePriority(fields.Priority),
		Status:             model.TaskStatusPending,
		RepeatInterval:     strings.ToLower(strings.TrimSpace(fields.RepeatInterval)),
		TimezoneContext:    fields.TimezoneContext,
		CreatedAt:          time.Now().UTC().Format(createdAtFormat),
		OriginalPrompt:     raw,
		CorrectionsHistory: "",
	}

	// A time with no date is anchored to the assigner's today; a reminder
	// with no date inherits the due date.
	if t.DueTime != "" && t.DueDate == "" {
		t.DueDate = now.Format("2006-01-02")
	}
	if t.ReminderTime != "" && t.ReminderDate == "" {
		t.ReminderDate = t.DueDate
	}

	// No reminder named: fall back to the assignee's configured lead time.
	if t.ReminderTime == "" && t.DueDate != "" && t.DueTime != "" {
		if mins := uc.users.DefaultReminderMinutes(t.Assignee); mins > 0 {
			if due, dueErr := time.ParseInLocation("2006-01-02 15:04", t.DueDate+" "+t.DueTime, loc); dueErr == nil {
				rem := due.Add(-time.Duration(mins) * time.Minute)
				t.ReminderDate = rem.Format("2006-01-02")
				t.ReminderTime = rem.Format("15:04")
			}
		}
	}

	f := timezone.Fields{
		Assignee:     t.Assignee,
		DueDate:      t.DueDate,
		DueTime:      t.DueTime,
		ReminderDate: t.ReminderDate,
		ReminderTime: t.ReminderTime,
		Context:      t.TimezoneContext,
	}
	info, tzErr := uc.tz.ProcessTask(&f, t.Assigner)
	if tzErr != nil {
		uc.l.Warnf(ctx, "timezone conversion failed, keeping original clock values: %v", tzErr)
	} else {
		t.DueDate, t.DueTime = f.DueDate, f.DueTime
		t.ReminderDate, t.ReminderTime = f.ReminderDate, f.ReminderTime
		t.TimezoneInfo = &model.TimezoneInfo{
			TimesAreIn: info.TimesAreIn,
			AssignerTZ: info.AssignerTZ,
			AssigneeTZ: info.AssigneeTZ,
			Converted:  info.Converted,
		}
	}
	if t.TimezoneContext == "" {
		t.TimezoneContext = model.TimezoneContextAssignerLocal
	}

	uc.pending.Add(t.ID, t)
	uc.l.Infof(ctx, "parsed task %s for %s (assigner %s, provider %s), awaiting confirmation",
		t.ID, t.Assignee, t.Assigner, provider)

	return task.ParseTaskOutput{
		PendingID: t.ID,
		Task:      t,
		Summary:   formatConfirmation(t),
		Provider:  provider,
	}, nil
}
