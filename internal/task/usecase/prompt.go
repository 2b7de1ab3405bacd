package usecase

import (
	"fmt"
	"strings"
	"time"

	"task-assignment-bot/pkg/temporal"
)

// systemPrompt pins the LLM to a strict JSON contract. Keep the field list in
// sync with parsedFields.
const systemPrompt = `You are a task parser. Return only valid JSON.

Extract a single task assignment from the message and return a JSON object
with exactly these fields:
{
  "task": "what needs to be done",
  "assignee": "who should do it",
  "due_date": "YYYY-MM-DD or empty string",
  "due_time": "HH:MM in 24-hour clock or empty string",
  "reminder_date": "YYYY-MM-DD or empty string",
  "reminder_time": "HH:MM in 24-hour clock or empty string",
  "site": "location if mentioned, else empty string",
  "priority": "low, medium, or high",
  "repeat_interval": "daily, weekly, monthly, or empty string",
  "timezone_context": "timezone abbreviation if the message states one, else empty string"
}

Rules:
- Always use the 24-hour clock for times.
- When the message includes pre-parsed dates or times, copy them exactly
  instead of re-deriving them.
- Use empty strings for anything not present. Never invent values.`

// fewShotExamples anchor the output format. Two are enough; more examples
// mostly burn tokens on small local models.
const fewShotExamples = `Examples:

Message: Remind Joel to check the generator tomorrow at 3pm
{"task": "check the generator", "assignee": "Joel", "due_date": "", "due_time": "15:00", "reminder_date": "", "reminder_time": "", "site": "", "priority": "medium", "repeat_interval": "", "timezone_context": ""}

Message: Have Bryan inspect the north site pumps every Monday, high priority
{"task": "inspect the north site pumps", "assignee": "Bryan", "due_date": "", "due_time": "", "reminder_date": "", "reminder_time": "", "site": "north site", "priority": "high", "repeat_interval": "weekly", "timezone_context": ""}`

// buildParsePrompt assembles the user-turn prompt for one instruction.
//
// When the preprocessor extracted temporal fields with usable confidence, the
// prompt carries the annotated text plus pre-parsed hint lines so the LLM
// only has to fill in the non-temporal fields. Otherwise the raw text goes
// through untouched.
func buildParsePrompt(rawText string, ext temporal.Extraction, assigner string, now time.Time) string {
	var sb strings.Builder

	sb.WriteString(fewShotExamples)
	sb.WriteString("\n\n")
	sb.WriteString(fmt.Sprintf("(Context: It is currently %s on %s where %s is located)\n\n",
		now.Format("15:04"), now.Format("2006-01-02"), assigner))

	if ext.Confidence < temporal.ConfidenceUsableThreshold {
		sb.WriteString(fmt.Sprintf("Message: %s", rawText))
		return sb.String()
	}

	sb.WriteString(fmt.Sprintf("Task: %s\n", ext.ProcessedText))
	if ext.Data.DueDate != "" {
		sb.WriteString(fmt.Sprintf("Pre-parsed due date: %s\n", ext.Data.DueDate))
	}
	if ext.Data.DueTime != "" {
		sb.WriteString(fmt.Sprintf("Pre-parsed due time: %s\n", ext.Data.DueTime))
	}
	if ext.Data.ReminderTime != "" && ext.Data.ReminderTime != ext.Data.DueTime {
		sb.WriteString(fmt.Sprintf("Pre-parsed reminder time: %s\n", ext.Data.ReminderTime))
	}
	if ext.Data.TimezoneContext != "" {
		sb.WriteString(fmt.Sprintf("Detected timezone: %s\n", ext.Data.TimezoneContext))
	}
	return sb.String()
}
