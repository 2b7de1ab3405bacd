package model

// Scope carries the caller identity through the usecase layer.
type Scope struct {
	UserID      string // platform-scoped ID, e.g. "telegram_12345"
	Username    string // raw chat-platform handle
	DisplayName string // friendly name if the platform provides one
}

// Environment names.
type Environment string

const (
	EnvironmentDevelopment Environment = "development"
	EnvironmentProduction  Environment = "production"
)
