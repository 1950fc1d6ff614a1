package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSessionStorage(t *testing.T) {
	s := NewSessionStorage()

	assert.Nil(t, s.Get(1))
	assert.Empty(t, s.Chats())

	first := &Entry{MessageID: 10}
	s.Store(1, first)
	s.Store(2, &Entry{MessageID: 20})

	assert.Same(t, first, s.Get(1))
	assert.ElementsMatch(t, []int64{1, 2}, s.Chats())

	replacement := &Entry{MessageID: 11}
	s.Store(1, replacement)
	assert.Same(t, replacement, s.Get(1), "storing replaces the previous entry")

	s.Delete(1)
	assert.Nil(t, s.Get(1))
	assert.ElementsMatch(t, []int64{2}, s.Chats())
}
