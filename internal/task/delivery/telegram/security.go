package telegram

import (
	"crypto/subtle"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	pkgResponse "task-assignment-bot/pkg/response"
)

// secretTokenHeader is set by Telegram on every webhook delivery when the
// webhook was registered with a secret token.
const secretTokenHeader = "X-Telegram-Bot-Api-Secret-Token"

// SecretTokenMiddleware rejects webhook calls that do not carry the secret
// token the webhook was registered with. An empty secret disables the check.
func SecretTokenMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if secret == "" {
			c.Next()
			return
		}
		got := c.GetHeader(secretTokenHeader)
		if subtle.ConstantTimeCompare([]byte(got), []byte(secret)) != 1 {
			pkgResponse.Unauthorized(c)
			c.Abort()
			return
		}
		c.Next()
	}
}

// allowChat rate-limits one chat. Limiters are created lazily and expire with
// the LRU so an abusive chat cannot pin memory forever.
func (h *handler) allowChat(chatID int64) bool {
	if h.ratePerMin <= 0 {
		return true
	}
	limiter, ok := h.limiters.Get(chatID)
	if !ok {
		limiter = rate.NewLimiter(rate.Limit(float64(h.ratePerMin)/60.0), h.ratePerMin)
		h.limiters.Add(chatID, limiter)
	}
	return limiter.Allow()
}
