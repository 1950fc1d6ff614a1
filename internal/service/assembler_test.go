package service

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yerkanat/wordorder-bot/internal/domain/entities"
)

func studentQuestion() entities.QuestionRecord {
	return entities.QuestionRecord{
		ID:              "q1",
		Context:         "Introduce yourself.",
		Template:        "_____ _____ _____ _____.",
		ScrambledWords:  []string{"student", "I", "a", "am"},
		CorrectSentence: "I am a student.",
		Distractor:      "are",
		Difficulty:      entities.DifficultyEasy,
	}
}

func newTestAssembler(t *testing.T) *Assembler {
	t.Helper()
	return NewAssembler(studentQuestion(), rand.New(rand.NewSource(1)))
}

func TestNewAssembler_TokenizesAndBuildsPool(t *testing.T) {
	a := newTestAssembler(t)

	assert.Equal(t, 4, a.SlotCount())
	assert.ElementsMatch(t, []string{"student", "I", "a", "am", "are"}, a.Pool(),
		"pool is the scrambled words plus the distractor")
}

func TestNewAssembler_PoolShuffleIsSeedDeterministic(t *testing.T) {
	a := NewAssembler(studentQuestion(), rand.New(rand.NewSource(3)))
	b := NewAssembler(studentQuestion(), rand.New(rand.NewSource(3)))

	assert.Equal(t, a.Pool(), b.Pool())
}

func TestNewAssembler_EmptyDistractorNotPooled(t *testing.T) {
	q := studentQuestion()
	q.Distractor = ""

	a := NewAssembler(q, rand.New(rand.NewSource(1)))
	assert.Len(t, a.Pool(), 4)
}

func TestAssembler_PlaceAndBuildAnswer(t *testing.T) {
	a := newTestAssembler(t)

	for i, word := range []string{"I", "am", "a"} {
		a.PlaceWord(word)
		assert.False(t, a.IsComplete(), "complete after %d placements", i+1)
	}

	a.PlaceWord("student")
	require.True(t, a.IsComplete())
	assert.Equal(t, "I am a student.", a.BuildAnswer())
	assert.Equal(t, []string{"are"}, a.Pool(), "only the distractor remains")
}

func TestAssembler_PlaceWhenFullIsNoop(t *testing.T) {
	a := newTestAssembler(t)
	for _, word := range []string{"I", "am", "a", "student"} {
		a.PlaceWord(word)
	}

	poolBefore := a.Pool()
	answerBefore := a.BuildAnswer()

	a.PlaceWord("are")

	assert.Equal(t, poolBefore, a.Pool())
	assert.Equal(t, answerBefore, a.BuildAnswer())
}

func TestAssembler_PlaceUnknownWordStillAssigns(t *testing.T) {
	a := newTestAssembler(t)

	a.PlaceWord("banana")

	word, filled := a.SlotWord(0)
	require.True(t, filled)
	assert.Equal(t, "banana", word)
	assert.Len(t, a.Pool(), 5, "pool removal is skipped for unknown words")
}

func TestAssembler_ClearSlot(t *testing.T) {
	a := newTestAssembler(t)
	a.PlaceWord("I")
	a.PlaceWord("am")

	a.ClearSlot(0)

	_, filled := a.SlotWord(0)
	assert.False(t, filled)
	assert.Contains(t, a.Pool(), "I")
	assert.Len(t, a.Pool(), 4)

	word, filled := a.SlotWord(1)
	require.True(t, filled)
	assert.Equal(t, "am", word, "other slots keep their words")

	// Clearing again (or out of range) changes nothing.
	a.ClearSlot(0)
	a.ClearSlot(99)
	a.ClearSlot(-1)
	assert.Len(t, a.Pool(), 4)
}

func TestAssembler_NextEmptySlotInTemplateOrder(t *testing.T) {
	a := newTestAssembler(t)
	a.PlaceWord("I")
	a.PlaceWord("am")
	a.ClearSlot(0)

	a.PlaceWord("a")

	word, filled := a.SlotWord(0)
	require.True(t, filled)
	assert.Equal(t, "a", word, "first empty slot is refilled before later ones")
}

func TestAssembler_BuildAnswerWithGaps(t *testing.T) {
	a := newTestAssembler(t)
	a.PlaceWord("I")
	a.PlaceWord("am")

	assert.Equal(t, "I am .", a.BuildAnswer(), "unfilled slots collapse away")
}

func TestAssembler_Preview(t *testing.T) {
	a := newTestAssembler(t)
	a.PlaceWord("I")

	assert.Equal(t, "I ____ ____ ____.", a.Preview("____"))
}

func TestTokenizeTemplate(t *testing.T) {
	tests := []struct {
		name     string
		template string
		slots    int
		segments int
	}{
		{"four blanks with literal tail", "_____ _____ _____ _____.", 4, 8},
		{"blank in the middle", "She _____ every morning.", 1, 3},
		{"no blanks", "Just a sentence.", 0, 1},
		{"minimum marker run", "a ___ b", 1, 3},
		{"two-underscore run is literal", "a __ b", 0, 1},
		{"empty template", "", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			segments := tokenizeTemplate(tt.template)
			assert.Len(t, segments, tt.segments)

			slots := 0
			for _, seg := range segments {
				if seg.kind == slotSegment {
					slots++
				}
			}
			assert.Equal(t, tt.slots, slots)
		})
	}
}
