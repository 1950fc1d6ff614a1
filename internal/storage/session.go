package storage

import (
	"sync"

	"github.com/yerkanat/wordorder-bot/internal/service"
)

// Entry binds a chat to its active quiz engine and the Telegram message the
// quiz is rendered into.
type Entry struct {
	Engine    *service.QuizEngine
	MessageID int
}

// SessionStorage provides in-memory storage of active quiz engines by chat ID.
type SessionStorage struct {
	mu      sync.RWMutex
	entries map[int64]*Entry
}

// NewSessionStorage creates a new SessionStorage.
func NewSessionStorage() *SessionStorage {
	return &SessionStorage{
		entries: make(map[int64]*Entry),
	}
}

// Store saves the entry for a given chat ID, replacing any previous one.
func (s *SessionStorage) Store(chatID int64, e *Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[chatID] = e
}

// Get retrieves the entry for a given chat ID.
func (s *SessionStorage) Get(chatID int64) *Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.entries[chatID]
}

// Delete removes the entry for a given chat ID.
func (s *SessionStorage) Delete(chatID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, chatID)
}

// Chats returns a snapshot of the chat IDs with stored entries.
func (s *SessionStorage) Chats() []int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	chats := make([]int64, 0, len(s.entries))
	for chatID := range s.entries {
		chats = append(chats, chatID)
	}
	return chats
}
