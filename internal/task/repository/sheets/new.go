package sheets

import (
	"net/http"
	"time"

	"task-assignment-bot/internal/task/repository"
	"task-assignment-bot/pkg/gsheets"
	pkgLog "task-assignment-bot/pkg/log"
)

// Config holds the spreadsheet wiring for the repository.
type Config struct {
	// WebhookURL is the Apps Script web app endpoint. When set it is the
	// primary write path: the deployed script owns column layout and
	// formatting, so the bot only posts task JSON at it.
	WebhookURL string

	// SpreadsheetID and SheetName drive the Sheets API path, used as the
	// write fallback and for all reads.
	SpreadsheetID string
	SheetName     string
}

type implRepository struct {
	cfg        Config
	api        *gsheets.Client // nil when only the webhook is configured
	httpClient *http.Client
	l          pkgLog.Logger
}

// New creates a spreadsheet-backed task repository. api may be nil; in that
// case writes go through the webhook only and ListTasks returns
// ErrReadUnsupported.
func New(cfg Config, api *gsheets.Client, l pkgLog.Logger) repository.TaskRepository {
	if cfg.SheetName == "" {
		cfg.SheetName = "Tasks"
	}
	return &implRepository{
		cfg:        cfg,
		api:        api,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		l:          l,
	}
}
