package usecase

// parsedFields is the JSON shape the LLM is instructed to return for one
// task. Every field is a string so a sloppy model response cannot fail the
// unmarshal on a missing value.
type parsedFields struct {
	Task            string `json:"task"`
	Assignee        string `json:"assignee"`
	DueDate         string `json:"due_date"`
	DueTime         string `json:"due_time"`
	ReminderDate    string `json:"reminder_date"`
	ReminderTime    string `json:"reminder_time"`
	Site            string `json:"site"`
	Priority        string `json:"priority"`
	RepeatInterval  string `json:"repeat_interval"`
	TimezoneContext string `json:"timezone_context"`
}
