package telegram

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	"task-assignment-bot/internal/model"
	"task-assignment-bot/internal/task"
	pkgResponse "task-assignment-bot/pkg/response"
	pkgTelegram "task-assignment-bot/pkg/telegram"
)

// Callback data prefixes for the confirmation keyboard.
const (
	callbackConfirmPrefix = "confirm:"
	callbackCancelPrefix  = "cancel:"
)

// HandleWebhook is the Gin handler for incoming Telegram webhook updates.
// It responds with HTTP 200 immediately and processes the update in a
// background goroutine to avoid Telegram webhook timeout (Telegram expects a
// response within a few seconds, but the parse pipeline: preprocessor + LLM
// + timezone conversion can take 5-10s on a local model).
func (h *handler) HandleWebhook(c *gin.Context) {
	ctx := c.Request.Context()

	var update pkgTelegram.Update
	if err := c.ShouldBindJSON(&update); err != nil {
		h.l.Errorf(ctx, "telegram handler: failed to parse update: %v", err)
		pkgResponse.Error(c, err, nil)
		return
	}

	switch {
	case update.CallbackQuery != nil:
		// Snapshot before spawning goroutine to avoid data races on gin context
		cb := update.CallbackQuery
		go func() {
			// Detach from HTTP request context (which gets cancelled after response)
			bgCtx := context.Background()
			if err := h.processCallback(bgCtx, cb); err != nil {
				h.l.Errorf(bgCtx, "telegram handler: background processCallback failed: %v", err)
			}
		}()

	case update.Message != nil:
		msg := update.Message
		if msg.Chat == nil {
			pkgResponse.OK(c, map[string]string{"status": "ignored"})
			return
		}
		if !h.allowChat(msg.Chat.ID) {
			h.l.Warnf(ctx, "telegram handler: chat %d throttled", msg.Chat.ID)
			pkgResponse.OK(c, map[string]string{"status": "throttled"})
			return
		}
		go func() {
			bgCtx := context.Background()
			if err := h.processMessage(bgCtx, msg); err != nil {
				h.l.Errorf(bgCtx, "telegram handler: background processMessage failed: %v", err)
				// Best-effort error notification to user
				_ = h.bot.SendMessage(msg.Chat.ID, "Something went wrong while handling your request. Please try again.")
			}
		}()

	default:
		// Ignore non-message updates (polls, channel_post, etc.)
		pkgResponse.OK(c, map[string]string{"status": "ignored"})
		return
	}

	// Telegram acknowledged immediately
	pkgResponse.OK(c, map[string]string{"status": "accepted"})
}

// processMessage handles a single Telegram message.
func (h *handler) processMessage(ctx context.Context, msg *pkgTelegram.Message) error {
	if msg.Text == "" {
		return nil
	}

	// ---- Built-in commands ----
	switch {
	case msg.Text == "/start":
		return h.bot.SendMessageWithMode(msg.Chat.ID,
			"👋 Welcome to the *Task Assignment Bot*!\n\nSend me an instruction in plain English and I will turn it into a tracked task:\n• 🕐 Dates and times are understood, in everyone's own timezone\n• 📊 Confirmed tasks land in the team spreadsheet\n\n_Example: \"Remind Joel to check the generator tomorrow at 3pm\"_",
			"Markdown",
		)
	case msg.Text == "/help":
		return h.bot.SendMessageWithMode(msg.Chat.ID,
			"*How to use:*\n\nJust describe the task:\n`Have Bryan inspect the north site pumps Friday at 9am`\n\nI will show you what I understood; tap ✅ Confirm to save it or ❌ Cancel to discard it.\n\n*Commands:*\n`/tasks` — list saved tasks\n`/tasks <name>` — list tasks for one person",
			"Markdown",
		)
	case msg.Text == "/tasks" || strings.HasPrefix(msg.Text, "/tasks "):
		return h.handleListTasks(ctx, msg)
	}

	sc := scopeFromUser(msg.From)

	// Notify user that processing has started
	if err := h.bot.SendMessage(msg.Chat.ID, "⏳ Working on it..."); err != nil {
		h.l.Warnf(ctx, "telegram handler: failed to send ack message: %v", err)
	}

	input := task.ParseTaskInput{
		RawText:        msg.Text,
		TelegramChatID: msg.Chat.ID,
	}

	output, err := h.uc.ParseTask(ctx, sc, input)
	if err != nil {
		h.l.Errorf(ctx, "telegram handler: ParseTask failed: %v", err)
		if errors.Is(err, task.ErrEmptyInput) || errors.Is(err, task.ErrParseFailed) {
			return h.bot.SendMessage(msg.Chat.ID, "⚠️ I could not find a task in that message. Try something like \"Remind Joel to check the generator tomorrow at 3pm\".")
		}
		return h.bot.SendMessage(msg.Chat.ID, fmt.Sprintf("Could not process the request: %v", err))
	}

	return h.bot.SendMessageWithKeyboard(msg.Chat.ID,
		output.Summary+"\n\nSave this task?",
		confirmKeyboard(output.PendingID),
	)
}

// processCallback handles a press on the Confirm/Cancel keyboard.
func (h *handler) processCallback(ctx context.Context, cb *pkgTelegram.CallbackQuery) error {
	sc := scopeFromUser(cb.From)

	switch {
	case strings.HasPrefix(cb.Data, callbackConfirmPrefix):
		pendingID := strings.TrimPrefix(cb.Data, callbackConfirmPrefix)

		saved, err := h.uc.ConfirmTask(ctx, sc, pendingID)
		switch {
		case errors.Is(err, task.ErrPendingNotFound):
			_ = h.bot.AnswerCallbackQuery(cb.ID, "This confirmation has expired.")
			return h.editCallbackMessage(cb, "⌛ This confirmation expired. Send the task again.")
		case err != nil:
			h.l.Errorf(ctx, "telegram handler: ConfirmTask failed: %v", err)
			// Pending entry survives a failed write, so the button stays usable.
			return h.bot.AnswerCallbackQuery(cb.ID, "Saving failed, please tap Confirm again.")
		}

		_ = h.bot.AnswerCallbackQuery(cb.ID, "Task saved.")
		return h.editCallbackMessage(cb, formatSaved(saved))

	case strings.HasPrefix(cb.Data, callbackCancelPrefix):
		pendingID := strings.TrimPrefix(cb.Data, callbackCancelPrefix)

		if err := h.uc.CancelTask(ctx, sc, pendingID); err != nil && !errors.Is(err, task.ErrPendingNotFound) {
			h.l.Errorf(ctx, "telegram handler: CancelTask failed: %v", err)
		}
		_ = h.bot.AnswerCallbackQuery(cb.ID, "Task discarded.")
		return h.editCallbackMessage(cb, "❌ Task discarded.")

	default:
		h.l.Warnf(ctx, "telegram handler: unknown callback data %q", cb.Data)
		return h.bot.AnswerCallbackQuery(cb.ID, "")
	}
}

// handleListTasks serves /tasks and /tasks <name>.
func (h *handler) handleListTasks(ctx context.Context, msg *pkgTelegram.Message) error {
	sc := scopeFromUser(msg.From)

	input := task.ListTasksInput{}
	if arg := strings.TrimSpace(strings.TrimPrefix(msg.Text, "/tasks")); arg != "" {
		input.Assignee = arg
	}

	output, err := h.uc.ListTasks(ctx, sc, input)
	if err != nil {
		h.l.Errorf(ctx, "telegram handler: ListTasks failed: %v", err)
		return h.bot.SendMessage(msg.Chat.ID, "Could not read the task sheet right now. Please try again later.")
	}
	if output.Count == 0 {
		return h.bot.SendMessage(msg.Chat.ID, "No saved tasks found.")
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("📊 *%d task(s)*\n\n", output.Count))
	for i, t := range output.Tasks {
		sb.WriteString(fmt.Sprintf("%d. *%s* — %s", i+1, t.Task, t.Assignee))
		if t.DueDate != "" {
			sb.WriteString(fmt.Sprintf(" (due %s", t.DueDate))
			if t.DueTime != "" {
				sb.WriteString(" " + t.DueTime)
			}
			sb.WriteString(")")
		}
		sb.WriteString("\n")
	}

	return h.bot.SendMessageWithMode(msg.Chat.ID, sb.String(), "Markdown")
}

// editCallbackMessage replaces the confirmation prompt in place, dropping the
// keyboard. Callbacks from very old messages may arrive without one.
func (h *handler) editCallbackMessage(cb *pkgTelegram.CallbackQuery, text string) error {
	if cb.Message == nil || cb.Message.Chat == nil {
		return nil
	}
	return h.bot.EditMessageText(cb.Message.Chat.ID, cb.Message.MessageID, text, nil)
}

// scopeFromUser builds the request scope from Telegram sender identity.
// Username is preferred; accounts without one fall back to the first name,
// which is what the user directory normalizes anyway.
func scopeFromUser(u *pkgTelegram.User) model.Scope {
	if u == nil {
		return model.Scope{}
	}
	username := u.Username
	if username == "" {
		username = u.FirstName
	}
	return model.Scope{
		UserID:   fmt.Sprintf("telegram_%d", u.ID),
		Username: username,
	}
}

func confirmKeyboard(pendingID string) *pkgTelegram.InlineKeyboardMarkup {
	return &pkgTelegram.InlineKeyboardMarkup{
		InlineKeyboard: [][]pkgTelegram.InlineKeyboardButton{{
			{Text: "✅ Confirm", CallbackData: callbackConfirmPrefix + pendingID},
			{Text: "❌ Cancel", CallbackData: callbackCancelPrefix + pendingID},
		}},
	}
}

func formatSaved(t model.Task) string {
	return fmt.Sprintf("✅ Saved to the task sheet.\n\n📋 %s — %s", t.Task, t.Assignee)
}
