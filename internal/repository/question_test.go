package repository

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/yerkanat/wordorder-bot/internal/domain/entities"
)

const sampleBank = "id|context|template|scrambledWords|correctSentence|distractor|difficulty\n" +
	"q1|Introduce yourself.|_____ _____ _____ _____.|[\"a\",\"I\",\"student\",\"am\"]|I am a student.| are | easy \n" +
	"\n" +
	"broken|only|five|fields|here\n" +
	"q2|Say hello.|_____ there.|not-json|Hi there.|bye|medium\r\n"

func newTestRepository(t *testing.T, handler http.HandlerFunc) *QuestionRepository {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return NewQuestionRepository(srv.URL, srv.Client(), zap.NewNop())
}

func serveBody(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(body))
	}
}

func TestQuestions_ParsesBank(t *testing.T) {
	repo := newTestRepository(t, serveBody(sampleBank))

	questions, err := repo.Questions(context.Background())
	require.NoError(t, err)
	require.Len(t, questions, 2)

	q1 := questions[0]
	assert.Equal(t, "q1", q1.ID)
	assert.Equal(t, "Introduce yourself.", q1.Context)
	assert.Equal(t, "_____ _____ _____ _____.", q1.Template)
	assert.Equal(t, []string{"a", "I", "student", "am"}, q1.ScrambledWords)
	assert.Equal(t, "I am a student.", q1.CorrectSentence)
	assert.Equal(t, "are", q1.Distractor, "distractor is trimmed")
	assert.Equal(t, entities.DifficultyEasy, q1.Difficulty, "difficulty is trimmed")

	// Undecodable scrambled words degrade the record instead of dropping it.
	q2 := questions[1]
	assert.Equal(t, "q2", q2.ID)
	assert.Empty(t, q2.ScrambledWords)
	assert.Equal(t, "Hi there.", q2.CorrectSentence)
	assert.Equal(t, entities.DifficultyMedium, q2.Difficulty, "CRLF line ending is handled")
}

func TestQuestions_HeaderDiscardedUnconditionally(t *testing.T) {
	// The header itself has seven fields and would parse as a record.
	repo := newTestRepository(t, serveBody(sampleBank))

	questions, err := repo.Questions(context.Background())
	require.NoError(t, err)

	for _, q := range questions {
		assert.NotEqual(t, "id", q.ID)
	}
}

func TestQuestions_ShortLineDropped(t *testing.T) {
	repo := newTestRepository(t, serveBody(sampleBank))

	questions, err := repo.Questions(context.Background())
	require.NoError(t, err)

	for _, q := range questions {
		assert.NotEqual(t, "broken", q.ID)
	}
}

func TestQuestions_EmptyBankIsNotAnError(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"header only", "id|context|template|scrambledWords|correctSentence|distractor|difficulty\n"},
		{"empty body", ""},
		{"all lines malformed", "header\nbad line\nanother|bad|line\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newTestRepository(t, serveBody(tt.body))

			questions, err := repo.Questions(context.Background())
			require.NoError(t, err)
			assert.Empty(t, questions)
		})
	}
}

func TestQuestions_FetchFailure(t *testing.T) {
	t.Run("non-success status", func(t *testing.T) {
		repo := newTestRepository(t, func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		})

		_, err := repo.Questions(context.Background())
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrBankUnavailable)
	})

	t.Run("transport error", func(t *testing.T) {
		srv := httptest.NewServer(serveBody(sampleBank))
		srv.Close() // refuse connections

		repo := NewQuestionRepository(srv.URL, http.DefaultClient, zap.NewNop())

		_, err := repo.Questions(context.Background())
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrBankUnavailable)
	})
}

func TestReload_ReplacesCachedRecords(t *testing.T) {
	var generation atomic.Int32

	repo := newTestRepository(t, func(w http.ResponseWriter, _ *http.Request) {
		if generation.Load() == 0 {
			_, _ = w.Write([]byte("header\nv1|c|___ t|[\"w\"]|w t|d|easy\n"))
			return
		}
		_, _ = w.Write([]byte("header\nv2|c|___ t|[\"w\"]|w t|d|easy\n"))
	})

	questions, err := repo.Questions(context.Background())
	require.NoError(t, err)
	require.Len(t, questions, 1)
	assert.Equal(t, "v1", questions[0].ID)

	generation.Store(1)
	require.NoError(t, repo.Reload(context.Background()))

	questions, err = repo.Questions(context.Background())
	require.NoError(t, err)
	require.Len(t, questions, 1)
	assert.Equal(t, "v2", questions[0].ID)
}

func TestReload_FailureKeepsCache(t *testing.T) {
	var fail atomic.Bool

	repo := newTestRepository(t, func(w http.ResponseWriter, _ *http.Request) {
		if fail.Load() {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(sampleBank))
	})

	questions, err := repo.Questions(context.Background())
	require.NoError(t, err)
	require.Len(t, questions, 2)

	fail.Store(true)
	err = repo.Reload(context.Background())
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrBankUnavailable))

	questions, err = repo.Questions(context.Background())
	require.NoError(t, err)
	assert.Len(t, questions, 2, "previous bank stays served after a failed refresh")
}
