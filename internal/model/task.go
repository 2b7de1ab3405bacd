package model

// Task is a parsed task-assignment record as it is pushed to the spreadsheet.
// Temporal fields are plain strings (ISO date, 24h HH:MM) because the sheet
// stores them that way and the timezone layer rewrites them in place.
type Task struct {
	ID                 string        `json:"id"`
	Task               string        `json:"task"`
	Assignee           string        `json:"assignee"`
	Assigner           string        `json:"assigner"`
	DueDate            string        `json:"due_date,omitempty"`
	DueTime            string        `json:"due_time,omitempty"`
	ReminderDate       string        `json:"reminder_date,omitempty"`
	ReminderTime       string        `json:"reminder_time,omitempty"`
	Site               string        `json:"site,omitempty"`
	Priority           string        `json:"priority,omitempty"`
	Status             string        `json:"status,omitempty"`
	RepeatInterval     string        `json:"repeat_interval,omitempty"`
	TimezoneContext    string        `json:"timezone_context,omitempty"`
	TimezoneInfo       *TimezoneInfo `json:"timezone_info,omitempty"`
	CreatedAt          string        `json:"created_at,omitempty"`
	OriginalPrompt     string        `json:"original_prompt,omitempty"`
	CorrectionsHistory string        `json:"corrections_history,omitempty"`
}

// TimezoneContextAssignerLocal is the sentinel meaning "no explicit timezone
// was stated; clock values are in the assigner's home zone". It is the only
// context under which cross-user conversion happens.
const TimezoneContextAssignerLocal = "assigner_local"

// TimezoneInfo records the timezone conversion decision made for a task.
type TimezoneInfo struct {
	TimesAreIn string `json:"times_are_in,omitempty"`
	AssignerTZ string `json:"assigner_tz"`
	AssigneeTZ string `json:"assignee_tz"`
	Converted  bool   `json:"converted"`
}

// Task status values as stored in the sheet.
const (
	TaskStatusPending   = "pending"
	TaskStatusConfirmed = "confirmed"
	TaskStatusDone      = "done"
)
