package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"task-assignment-bot/config"
	_ "task-assignment-bot/docs" // Swagger docs
	"task-assignment-bot/internal/httpserver"
	tgDelivery "task-assignment-bot/internal/task/delivery/telegram"
	sheetsRepo "task-assignment-bot/internal/task/repository/sheets"
	"task-assignment-bot/internal/task/usecase"
	"task-assignment-bot/internal/user"
	"task-assignment-bot/pkg/gsheets"
	"task-assignment-bot/pkg/llmprovider"
	"task-assignment-bot/pkg/log"
	"task-assignment-bot/pkg/telegram"
	"task-assignment-bot/pkg/temporal"
	"task-assignment-bot/pkg/timezone"
)

// @title       Task Assignment Bot API
// @description Natural-language task assignment over Telegram with timezone-aware scheduling and Google Sheets storage.
// @version     1
// @host        localhost:8080
// @schemes     http
func main() {
	// 1. Configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		return
	}

	// 2. Logger
	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info(ctx, "Starting Task Assignment Bot...")
	logger.Infof(ctx, "Environment: %s", cfg.Environment.Name)

	// 3. User roster
	userConfigs := make([]user.Config, 0, len(cfg.Users))
	for _, u := range cfg.Users {
		userConfigs = append(userConfigs, user.Config{
			Name:                   u.Name,
			Timezone:               u.Timezone,
			Aliases:                u.Aliases,
			DefaultReminderMinutes: u.DefaultReminderMinutes,
			Disabled:               u.Disabled,
		})
	}
	directory, err := user.NewDirectory(userConfigs)
	if err != nil {
		logger.Error(ctx, "Invalid user roster: ", err)
		return
	}
	logger.Infof(ctx, "User roster loaded: %v", directory.Names())

	// 4. Temporal preprocessing and timezone policy
	preprocessor, err := temporal.NewPreprocessor(cfg.Timezone.Default)
	if err != nil {
		logger.Warnf(ctx, "Invalid default timezone %q, falling back to UTC: %v", cfg.Timezone.Default, err)
		preprocessor, _ = temporal.NewPreprocessor("UTC")
	}
	converter := timezone.NewConverter(directory)

	// 5. LLM provider chain
	providers, err := llmprovider.InitializeProviders(&cfg.LLM)
	if err != nil {
		logger.Error(ctx, "Failed to initialize LLM providers: ", err)
		return
	}
	for _, p := range providers {
		logger.Infof(ctx, "LLM provider ready: %s (%s)", p.Name(), p.Model())
	}
	llmManager := llmprovider.NewManager(providers, &llmprovider.Config{
		FallbackEnabled: cfg.LLM.FallbackEnabled,
		RetryAttempts:   cfg.LLM.RetryAttempts,
		RetryDelay:      parseDuration(cfg.LLM.RetryDelay, time.Second),
		MaxTotalTimeout: parseDuration(cfg.LLM.MaxTotalTimeout, 60*time.Second),
	}, logger)

	// 6. Spreadsheet repository
	var sheetsClient *gsheets.Client
	if cfg.Sheets.CredentialsPath != "" {
		sheetsClient, err = gsheets.NewClientFromCredentialsFile(ctx, cfg.Sheets.CredentialsPath)
		if err != nil {
			logger.Warnf(ctx, "Sheets API not available (optional when webhook is set): %v", err)
			sheetsClient = nil
		} else {
			logger.Info(ctx, "✅ Google Sheets API initialized")
		}
	}
	if cfg.Sheets.WebhookURL == "" && sheetsClient == nil {
		logger.Warn(ctx, "No sheets webhook URL and no API credentials: confirmed tasks cannot be saved")
	}
	taskRepo := sheetsRepo.New(sheetsRepo.Config{
		WebhookURL:    cfg.Sheets.WebhookURL,
		SpreadsheetID: cfg.Sheets.SpreadsheetID,
		SheetName:     cfg.Sheets.SheetName,
	}, sheetsClient, logger)

	// 7. Task domain
	var telegramHandler tgDelivery.Handler
	if cfg.Telegram.BotToken != "" {
		telegramBot := telegram.NewBot(cfg.Telegram.BotToken)

		taskUC := usecase.New(logger, llmManager, preprocessor, converter, directory, taskRepo, cfg.Timezone.Default)
		telegramHandler = tgDelivery.New(logger, taskUC, telegramBot, cfg.Telegram.RateLimitPerMin)

		// Register webhook: auto-detect ngrok or fallback to manual config
		webhookURL := cfg.Telegram.WebhookURL
		if webhookURL == "" {
			ngrokURL, ngrokErr := detectNgrokURL(ctx, "http://ngrok:4040")
			if ngrokErr != nil {
				logger.Warnf(ctx, "Could not detect ngrok URL: %v", ngrokErr)
			} else {
				webhookURL = ngrokURL + "/webhook/telegram"
				logger.Infof(ctx, "Auto-detected ngrok URL: %s", webhookURL)
			}
		}

		if webhookURL != "" {
			if whErr := telegramBot.SetWebhookWithSecret(webhookURL, cfg.Telegram.WebhookSecret); whErr != nil {
				logger.Warnf(ctx, "Failed to set Telegram webhook: %v", whErr)
			} else {
				logger.Infof(ctx, "✅ Telegram webhook registered at %s", webhookURL)
			}
		}
	} else {
		logger.Warn(ctx, "Telegram disabled: TELEGRAM_BOT_TOKEN is missing")
	}

	// 8. HTTP Server
	httpServer, err := httpserver.New(logger, httpserver.Config{
		Logger:          logger,
		Port:            cfg.HTTPServer.Port,
		Mode:            cfg.HTTPServer.Mode,
		Environment:     cfg.Environment.Name,
		TelegramHandler: telegramHandler,
		TelegramSecret:  cfg.Telegram.WebhookSecret,
	})
	if err != nil {
		logger.Error(ctx, "Failed to initialize HTTP server: ", err)
		return
	}

	// 9. Run
	if err := httpServer.Run(); err != nil {
		logger.Error(ctx, "Failed to run server: ", err)
		return
	}

	logger.Info(ctx, "Server stopped gracefully")
}

// parseDuration reads a config duration string, falling back on bad input.
func parseDuration(s string, fallback time.Duration) time.Duration {
	if s == "" {
		return fallback
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return fallback
	}
	return d
}
