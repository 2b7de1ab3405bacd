package repository

// ListTasksOptions holds the parameters for listing tasks from the sheet.
type ListTasksOptions struct {
	Assignee string // Filter by canonical assignee name
	Status   string // Filter by status ("pending", "confirmed", "done")
	Limit    int    // Max number of results (default 20)
}
