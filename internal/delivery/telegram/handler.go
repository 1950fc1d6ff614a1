package telegram

import (
	"context"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/yerkanat/wordorder-bot/internal/service"
)

// tickInterval is how often active session timers advance.
const tickInterval = time.Second

type Handler struct {
	bot       *tgbotapi.BotAPI
	logger    *zap.Logger
	store     SessionStore
	newEngine EngineFactory
}

func NewHandler(
	bot *tgbotapi.BotAPI,
	logger *zap.Logger,
	store SessionStore,
	newEngine EngineFactory,
) *Handler {
	return &Handler{
		bot:       bot,
		logger:    logger,
		store:     store,
		newEngine: newEngine,
	}
}

// Run consumes bot updates and timer ticks in one loop, so session state is
// only ever mutated from this goroutine. A tie between a final answer and
// timer expiry resolves to whichever event the loop dequeues first.
func (h *Handler) Run(ctx context.Context) error {
	h.logger.Info("telegram handler started")
	defer h.logger.Info("telegram handler stopped")

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := h.bot.GetUpdatesChan(u)

	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case update := <-updates:
			h.handleUpdate(ctx, update)
		case <-ticker.C:
			h.handleTick()
		}
	}
}

func (h *Handler) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	if update.CallbackQuery != nil {
		h.logger.Debug("callback received",
			zap.Int64("user_id", update.CallbackQuery.From.ID),
			zap.String("data", update.CallbackQuery.Data),
		)
		h.handleCallback(ctx, update.CallbackQuery)
		return
	}

	if update.Message == nil {
		h.logger.Debug("update without message and callback")
		return
	}

	chatID := update.Message.Chat.ID
	h.logger.Debug("update received",
		zap.Int64("chat_id", chatID),
		zap.String("text", update.Message.Text),
	)

	if update.Message.IsCommand() {
		switch update.Message.Command() {
		case "start":
			msg := newMessage(chatID, welcomeText())
			msg.ReplyMarkup = buildDifficultyKeyboard()
			h.send(msg)

		case "quiz":
			msg := newMessage(chatID, chooseDifficultyText())
			msg.ReplyMarkup = buildDifficultyKeyboard()
			h.send(msg)

		case "help":
			h.send(newMessage(chatID, helpText()))

		default:
			h.send(newPlainMessage(chatID, msgUnknownCommand))
		}

		return
	}

	h.send(newPlainMessage(chatID, msgUseButtons))
}

// handleTick advances every active session timer and renders the final
// report for sessions the countdown just ended.
func (h *Handler) handleTick() {
	for _, chatID := range h.store.Chats() {
		entry := h.store.Get(chatID)
		if entry == nil || entry.Engine.State() != service.StateQuiz {
			continue
		}

		if entry.Engine.Tick(tickInterval) == service.StateResult {
			h.editResult(chatID, entry, true)
		}
	}
}

func (h *Handler) send(c tgbotapi.Chattable) *tgbotapi.Message {
	sent, err := h.bot.Send(c)
	if err != nil {
		h.logger.Error("failed to send telegram message", zap.Error(err))
		return nil
	}
	return &sent
}
