package usecase

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"task-assignment-bot/internal/model"
	"task-assignment-bot/internal/task/repository"
	"task-assignment-bot/internal/user"
	"task-assignment-bot/pkg/llmprovider"
	pkgLog "task-assignment-bot/pkg/log"
	"task-assignment-bot/pkg/temporal"
	"task-assignment-bot/pkg/timezone"
)

const (
	// pendingCap bounds how many unconfirmed tasks can sit in memory at once.
	pendingCap = 256
	// pendingTTL is how long a parsed task waits for confirmation before it
	// silently expires.
	pendingTTL = 15 * time.Minute
)

type implUseCase struct {
	l        pkgLog.Logger
	llm      *llmprovider.Manager
	pre      *temporal.Preprocessor
	tz       *timezone.Converter
	users    *user.Directory
	repo     repository.TaskRepository
	pending  *expirable.LRU[string, model.Task]
	timezone string // default IANA zone for unknown assigners
}

// New creates a new task UseCase instance.
func New(
	l pkgLog.Logger,
	llm *llmprovider.Manager,
	pre *temporal.Preprocessor,
	tz *timezone.Converter,
	users *user.Directory,
	repo repository.TaskRepository,
	timezone string,
) *implUseCase {
	return &implUseCase{
		l:        l,
		llm:      llm,
		pre:      pre,
		tz:       tz,
		users:    users,
		repo:     repo,
		pending:  expirable.NewLRU[string, model.Task](pendingCap, nil, pendingTTL),
		timezone: timezone,
	}
}
