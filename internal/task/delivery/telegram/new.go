package telegram

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/time/rate"

	"task-assignment-bot/internal/task"
	pkgLog "task-assignment-bot/pkg/log"
	pkgTelegram "task-assignment-bot/pkg/telegram"
)

// Handler is the interface for the Telegram delivery handler.
type Handler interface {
	HandleWebhook(c *gin.Context)
}

type handler struct {
	l          pkgLog.Logger
	uc         task.UseCase
	bot        *pkgTelegram.Bot
	limiters   *expirable.LRU[int64, *rate.Limiter]
	ratePerMin int
}

// limiterCap bounds how many chats keep a live rate limiter; idle chats age
// out after an hour.
const (
	limiterCap = 1024
	limiterTTL = time.Hour
)

// New creates a new Telegram delivery handler. ratePerMin caps how many
// messages a single chat may send per minute; zero disables throttling.
func New(l pkgLog.Logger, uc task.UseCase, bot *pkgTelegram.Bot, ratePerMin int) Handler {
	return &handler{
		l:          l,
		uc:         uc,
		bot:        bot,
		limiters:   expirable.NewLRU[int64, *rate.Limiter](limiterCap, nil, limiterTTL),
		ratePerMin: ratePerMin,
	}
}
