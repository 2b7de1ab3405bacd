package task

import "errors"

// Domain-specific errors for the task package.
var (
	ErrEmptyInput      = errors.New("input text is empty")
	ErrParseFailed     = errors.New("failed to parse a task from input")
	ErrPendingNotFound = errors.New("no pending task with that id")
	ErrStoreFailed     = errors.New("failed to save task to spreadsheet")
)
