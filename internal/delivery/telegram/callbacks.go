package telegram

import (
	"context"
	"errors"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/yerkanat/wordorder-bot/internal/domain/entities"
	"github.com/yerkanat/wordorder-bot/internal/repository"
	"github.com/yerkanat/wordorder-bot/internal/service"
	"github.com/yerkanat/wordorder-bot/internal/storage"
)

func (h *Handler) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	cd := decodeCallback(cb.Data)
	if cd.Action != actionQuiz || len(cd.Params) == 0 || cb.Message == nil {
		return
	}

	chatID := cb.Message.Chat.ID
	var toast string

	switch cd.Params[0] {
	case quizStart:
		if len(cd.Params) == 2 {
			h.startQuiz(ctx, chatID, entities.Difficulty(cd.Params[1]))
		}
	case quizWord:
		toast = h.placeWord(chatID, cd.Params[1:])
	case quizSlot:
		toast = h.clearSlot(chatID, cd.Params[1:])
	case quizSubmit:
		toast = h.submitAnswer(chatID)
	case quizRestart:
		toast = h.restartQuiz(ctx, chatID)
	case quizQuit:
		toast = h.quitQuiz(chatID)
	default:
		return
	}

	// Remove the user's "clock"; toast is shown as a small popup when set.
	answer := tgbotapi.NewCallback(cb.ID, toast)
	if _, err := h.bot.Request(answer); err != nil {
		h.logger.Error("failed to answer callback", zap.Error(err))
	}
}

// startQuiz creates a fresh engine for the chat and runs selection. Any
// previous session of the chat is replaced wholesale.
func (h *Handler) startQuiz(ctx context.Context, chatID int64, difficulty entities.Difficulty) {
	engine := h.newEngine()

	if err := engine.Start(ctx, difficulty); err != nil {
		h.sendStartError(chatID, err)
		return
	}

	text, kb := renderQuestion(engine, "")
	msg := newMessage(chatID, text)
	msg.ReplyMarkup = kb

	sent := h.send(msg)
	if sent == nil {
		return
	}

	h.store.Store(chatID, &storage.Entry{Engine: engine, MessageID: sent.MessageID})
}

func (h *Handler) placeWord(chatID int64, params []string) string {
	entry := h.activeEntry(chatID)
	if entry == nil {
		return msgNoActiveQuiz
	}
	if len(params) != 1 {
		return ""
	}

	idx, err := strconv.Atoi(params[0])
	if err != nil {
		h.logger.Warn("invalid word callback index", zap.String("index", params[0]))
		return ""
	}

	entry.Engine.Assembler().PlaceFromPool(idx)
	h.editQuiz(chatID, entry, "")
	return ""
}

func (h *Handler) clearSlot(chatID int64, params []string) string {
	entry := h.activeEntry(chatID)
	if entry == nil {
		return msgNoActiveQuiz
	}
	if len(params) != 1 {
		return ""
	}

	idx, err := strconv.Atoi(params[0])
	if err != nil {
		h.logger.Warn("invalid slot callback index", zap.String("index", params[0]))
		return ""
	}

	entry.Engine.Assembler().ClearSlot(idx)
	h.editQuiz(chatID, entry, "")
	return ""
}

func (h *Handler) submitAnswer(chatID int64) string {
	entry := h.activeEntry(chatID)
	if entry == nil {
		return msgNoActiveQuiz
	}

	if !entry.Engine.Assembler().IsComplete() {
		return msgFillAllBlanks
	}

	record, err := entry.Engine.SubmitAnswer()
	if err != nil {
		h.logger.Error("failed to submit answer", zap.Int64("chat_id", chatID), zap.Error(err))
		return msgInternalError
	}

	if entry.Engine.State() == service.StateQuiz {
		h.editQuiz(chatID, entry, feedbackText(record))
		return ""
	}

	h.editResult(chatID, entry, false)
	return ""
}

func (h *Handler) restartQuiz(ctx context.Context, chatID int64) string {
	entry := h.store.Get(chatID)
	if entry == nil || entry.Engine.State() != service.StateResult {
		return msgNoActiveQuiz
	}

	if err := entry.Engine.Restart(ctx); err != nil {
		h.sendStartError(chatID, err)
		return ""
	}

	h.editQuiz(chatID, entry, "")
	return ""
}

func (h *Handler) quitQuiz(chatID int64) string {
	entry := h.store.Get(chatID)
	if entry == nil || entry.Engine.State() != service.StateResult {
		return msgNoActiveQuiz
	}

	if err := entry.Engine.Quit(); err != nil {
		h.logger.Error("failed to quit session", zap.Int64("chat_id", chatID), zap.Error(err))
		return msgInternalError
	}
	h.store.Delete(chatID)

	edit := newEdit(chatID, entry.MessageID, chooseDifficultyText())
	kb := buildDifficultyKeyboard()
	edit.ReplyMarkup = &kb
	h.send(edit)
	return ""
}

// activeEntry returns the chat's entry when a quiz is in progress.
func (h *Handler) activeEntry(chatID int64) *storage.Entry {
	entry := h.store.Get(chatID)
	if entry == nil || entry.Engine.State() != service.StateQuiz {
		return nil
	}
	return entry
}

// editQuiz re-renders the current question into the chat's quiz message.
func (h *Handler) editQuiz(chatID int64, entry *storage.Entry, feedback string) {
	text, kb := renderQuestion(entry.Engine, feedback)
	edit := newEdit(chatID, entry.MessageID, text)
	edit.ReplyMarkup = &kb
	h.send(edit)
}

// editResult renders the final report into the chat's quiz message.
func (h *Handler) editResult(chatID int64, entry *storage.Entry, timedOut bool) {
	text, kb := renderResult(entry.Engine, timedOut)
	edit := newEdit(chatID, entry.MessageID, text)
	edit.ReplyMarkup = &kb
	h.send(edit)
}

// sendStartError maps selection failures to user-facing messages.
func (h *Handler) sendStartError(chatID int64, err error) {
	switch {
	case errors.Is(err, service.ErrNoQuestions):
		h.send(newPlainMessage(chatID, msgNoQuestions))
	case errors.Is(err, repository.ErrBankUnavailable):
		h.send(newPlainMessage(chatID, msgBankUnavailable))
	default:
		h.logger.Error("failed to start quiz", zap.Int64("chat_id", chatID), zap.Error(err))
		h.send(newPlainMessage(chatID, msgInternalError))
	}
}
