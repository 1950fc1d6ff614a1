package service

import (
	"errors"
	"math/rand"

	"github.com/yerkanat/wordorder-bot/internal/domain/entities"
)

var ErrNoQuestions = errors.New("no questions available")

// Selector draws a randomized, bounded subset of the question bank.
type Selector struct {
	rng *rand.Rand
}

// NewSelector creates a Selector backed by the given random source.
// Tests inject a seeded source to assert exact permutations.
func NewSelector(rng *rand.Rand) *Selector {
	return &Selector{rng: rng}
}

// Select filters pool to records of the requested difficulty, shuffles a
// working copy and returns the first min(count, len) records. The input pool
// is never mutated and no record appears twice in the result.
func (s *Selector) Select(
	pool []entities.QuestionRecord,
	difficulty entities.Difficulty,
	count int,
) ([]entities.QuestionRecord, error) {
	var filtered []entities.QuestionRecord
	for _, q := range pool {
		if q.Difficulty == difficulty {
			filtered = append(filtered, q)
		}
	}

	if len(filtered) == 0 {
		return nil, ErrNoQuestions
	}

	// filtered is already a fresh copy; shuffle it in place.
	fisherYates(s.rng, filtered)

	if count < 0 {
		count = 0
	}
	if count > len(filtered) {
		count = len(filtered)
	}

	return filtered[:count], nil
}

// fisherYates applies an unbiased in-place permutation: with a uniform
// source every ordering of items is equally likely.
func fisherYates[T any](rng *rand.Rand, items []T) {
	for i := len(items) - 1; i >= 1; i-- {
		j := rng.Intn(i + 1)
		items[i], items[j] = items[j], items[i]
	}
}
