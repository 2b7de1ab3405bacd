package usecase

import (
	"fmt"
	"strings"

	"task-assignment-bot/internal/model"
)

// formatConfirmation renders the summary shown to the user before saving.
// Clock values are the assignee's local time once conversion has run, so the
// label spells out whose clock the reader is looking at.
func formatConfirmation(t model.Task) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("📋 Task: %s\n", t.Task))
	sb.WriteString(fmt.Sprintf("👤 Assigned to: %s\n", t.Assignee))

	if t.DueDate != "" {
		line := fmt.Sprintf("📅 Due by %s", t.DueDate)
		if t.DueTime != "" {
			line += fmt.Sprintf(" at %s%s", t.DueTime, clockLabel(t))
		}
		sb.WriteString(line + "\n")
	}

	if t.ReminderDate != "" && t.ReminderTime != "" {
		sb.WriteString(fmt.Sprintf("⏰ Reminder set for %s at %s\n", t.ReminderDate, t.ReminderTime))
	}
	if t.Site != "" {
		sb.WriteString(fmt.Sprintf("📍 Site: %s\n", t.Site))
	}
	if t.RepeatInterval != "" {
		sb.WriteString(fmt.Sprintf("🔄 Repeats: %s\n", t.RepeatInterval))
	}

	return strings.TrimRight(sb.String(), "\n")
}

// clockLabel annotates a due time with whose clock it is on.
func clockLabel(t model.Task) string {
	if t.TimezoneInfo == nil {
		return ""
	}
	if t.TimezoneInfo.TimesAreIn != "" {
		return fmt.Sprintf(" (%s)", t.TimezoneInfo.TimesAreIn)
	}
	if t.TimezoneInfo.Converted {
		return fmt.Sprintf(" (%s's local time)", t.Assignee)
	}
	return ""
}
