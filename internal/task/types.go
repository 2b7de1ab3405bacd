package task

import "task-assignment-bot/internal/model"

// ParseTaskInput is the input for parsing one natural-language instruction.
// The sender identity lives in model.Scope, not here.
type ParseTaskInput struct {
	RawText        string // Natural language instruction from the user
	TelegramChatID int64  // Used to send the confirmation prompt back
}

// ParseTaskOutput is the result of parsing: the structured task plus the
// confirmation summary shown to the user before saving.
type ParseTaskOutput struct {
	PendingID string     // Key used to confirm or cancel the task later
	Task      model.Task // The parsed, timezone-adjusted task
	Summary   string     // Human-readable confirmation text
	Provider  string     // LLM provider that produced the parse
}

// ListTasksInput is the input for listing saved tasks.
type ListTasksInput struct {
	Assignee string // Filter by assignee name (optional)
	Limit    int    // Max results (default 10)
}

// ListTasksOutput is the result of listing saved tasks.
type ListTasksOutput struct {
	Tasks []model.Task
	Count int
}
