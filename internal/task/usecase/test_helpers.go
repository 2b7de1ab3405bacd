package usecase

import (
	"context"
	"testing"

	"task-assignment-bot/internal/model"
	"task-assignment-bot/internal/task/repository"
	"task-assignment-bot/internal/user"
	"task-assignment-bot/pkg/llmprovider"
	"task-assignment-bot/pkg/temporal"
	"task-assignment-bot/pkg/timezone"
)

// Mock logger for testing
type mockLogger struct{}

func (m *mockLogger) Debug(ctx context.Context, arg ...any)                   {}
func (m *mockLogger) Debugf(ctx context.Context, template string, arg ...any) {}
func (m *mockLogger) Info(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Infof(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) Warn(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Warnf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) Error(ctx context.Context, arg ...any)                   {}
func (m *mockLogger) Errorf(ctx context.Context, template string, arg ...any) {}
func (m *mockLogger) Fatal(ctx context.Context, arg ...any)                   {}
func (m *mockLogger) Fatalf(ctx context.Context, template string, arg ...any) {}

// mockProvider is a scripted LLM provider. It records the last request so
// tests can assert on the prompt that was built.
type mockProvider struct {
	responseText string
	err          error
	lastRequest  *llmprovider.Request
}

func (m *mockProvider) GenerateContent(ctx context.Context, req *llmprovider.Request) (*llmprovider.Response, error) {
	m.lastRequest = req
	if m.err != nil {
		return nil, m.err
	}
	return &llmprovider.Response{
		Text:         m.responseText,
		ProviderName: "mock",
		ModelName:    "mock-model",
	}, nil
}

func (m *mockProvider) Name() string  { return "mock" }
func (m *mockProvider) Model() string { return "mock-model" }

// mockRepo captures created tasks and serves a canned list.
type mockRepo struct {
	created   []model.Task
	createErr error
	listOut   []model.Task
	listErr   error
	lastList  repository.ListTasksOptions
}

func (m *mockRepo) CreateTask(ctx context.Context, t model.Task) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.created = append(m.created, t)
	return nil
}

func (m *mockRepo) ListTasks(ctx context.Context, opt repository.ListTasksOptions) ([]model.Task, error) {
	m.lastList = opt
	return m.listOut, m.listErr
}

func testDirectory(t *testing.T) *user.Directory {
	t.Helper()
	dir, err := user.NewDirectory([]user.Config{
		{Name: "Colin", Timezone: "America/Los_Angeles"},
		{Name: "Joel", Timezone: "America/Chicago"},
		{Name: "Bryan", Timezone: "America/Chicago", DefaultReminderMinutes: 45},
	})
	if err != nil {
		t.Fatalf("failed to build directory: %v", err)
	}
	return dir
}

// newTestUseCase wires a usecase around the given mocks with the real
// preprocessor, converter and user directory.
func newTestUseCase(t *testing.T, provider *mockProvider, repo *mockRepo) *implUseCase {
	t.Helper()

	l := &mockLogger{}
	dir := testDirectory(t)

	pre, err := temporal.NewPreprocessor("America/Los_Angeles")
	if err != nil {
		t.Fatalf("failed to build preprocessor: %v", err)
	}

	manager := llmprovider.NewManager(
		[]llmprovider.Provider{provider},
		&llmprovider.Config{FallbackEnabled: false, RetryAttempts: 1},
		l,
	)

	return New(l, manager, pre, timezone.NewConverter(dir), dir, repo, "America/Los_Angeles")
}
