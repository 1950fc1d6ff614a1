package service

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yerkanat/wordorder-bot/internal/domain/entities"
)

func makePool(easy, hard int) []entities.QuestionRecord {
	pool := make([]entities.QuestionRecord, 0, easy+hard)
	for i := 0; i < easy; i++ {
		pool = append(pool, entities.QuestionRecord{
			ID:         fmt.Sprintf("e%d", i),
			Difficulty: entities.DifficultyEasy,
		})
	}
	for i := 0; i < hard; i++ {
		pool = append(pool, entities.QuestionRecord{
			ID:         fmt.Sprintf("h%d", i),
			Difficulty: entities.DifficultyHard,
		})
	}
	return pool
}

func TestSelect_CountAndDifficulty(t *testing.T) {
	selector := NewSelector(rand.New(rand.NewSource(1)))
	pool := makePool(8, 4)

	selected, err := selector.Select(pool, entities.DifficultyEasy, 5)
	require.NoError(t, err)
	require.Len(t, selected, 5)

	seen := make(map[string]bool)
	for _, q := range selected {
		assert.Equal(t, entities.DifficultyEasy, q.Difficulty)
		assert.False(t, seen[q.ID], "record %s appears twice", q.ID)
		seen[q.ID] = true
	}
}

func TestSelect_NoMatchingDifficulty(t *testing.T) {
	selector := NewSelector(rand.New(rand.NewSource(1)))

	t.Run("difficulty absent from pool", func(t *testing.T) {
		_, err := selector.Select(makePool(8, 4), entities.DifficultyMedium, 5)
		assert.ErrorIs(t, err, ErrNoQuestions)
	})

	t.Run("empty pool", func(t *testing.T) {
		_, err := selector.Select(nil, entities.DifficultyEasy, 5)
		assert.ErrorIs(t, err, ErrNoQuestions)
	})
}

func TestSelect_CountBoundedByFiltered(t *testing.T) {
	selector := NewSelector(rand.New(rand.NewSource(1)))

	selected, err := selector.Select(makePool(3, 4), entities.DifficultyEasy, 50)
	require.NoError(t, err)
	assert.Len(t, selected, 3)
}

func TestSelect_DoesNotMutatePool(t *testing.T) {
	selector := NewSelector(rand.New(rand.NewSource(7)))
	pool := makePool(8, 4)

	before := make([]string, len(pool))
	for i, q := range pool {
		before[i] = q.ID
	}

	_, err := selector.Select(pool, entities.DifficultyEasy, 5)
	require.NoError(t, err)

	for i, q := range pool {
		assert.Equal(t, before[i], q.ID, "pool order changed at %d", i)
	}
}

// TestSelect_UniformPositions checks the shuffle statistically: over many
// trials every element should land in every position roughly equally often.
func TestSelect_UniformPositions(t *testing.T) {
	const (
		size   = 5
		trials = 20000
	)

	selector := NewSelector(rand.New(rand.NewSource(42)))
	pool := makePool(size, 0)

	counts := make([]int, size)
	for i := 0; i < trials; i++ {
		selected, err := selector.Select(pool, entities.DifficultyEasy, size)
		require.NoError(t, err)

		for pos, q := range selected {
			if q.ID == "e0" {
				counts[pos]++
			}
		}
	}

	expected := trials / size
	for pos, n := range counts {
		assert.InDelta(t, expected, n, float64(expected)/8,
			"element e0 at position %d: got %d, expected ~%d", pos, n, expected)
	}
}
