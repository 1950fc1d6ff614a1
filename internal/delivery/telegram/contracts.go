package telegram

import (
	"github.com/yerkanat/wordorder-bot/internal/service"
	"github.com/yerkanat/wordorder-bot/internal/storage"
)

// EngineFactory creates a fresh quiz engine for a chat. A new engine replaces
// whatever session the chat had before.
type EngineFactory func() *service.QuizEngine

// SessionStore is the delivery-side view of active quiz sessions.
type SessionStore interface {
	Store(chatID int64, e *storage.Entry)
	Get(chatID int64) *storage.Entry
	Delete(chatID int64)
	Chats() []int64
}
