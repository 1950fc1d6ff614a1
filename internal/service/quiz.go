package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/yerkanat/wordorder-bot/internal/domain/entities"
)

// State is the lifecycle phase of a quiz engine.
type State string

const (
	StateLobby   State = "lobby"
	StateLoading State = "loading"
	StateQuiz    State = "quiz"
	StateResult  State = "result"
)

var ErrInvalidTransition = errors.New("invalid state transition")

// QuestionSource supplies the current question bank.
type QuestionSource interface {
	Questions(ctx context.Context) ([]entities.QuestionRecord, error)
}

// QuizConfig bounds a session.
type QuizConfig struct {
	QuestionCount int           // questions drawn per session
	TimeBudget    time.Duration // countdown for the whole session
}

// QuizEngine is the per-chat session state machine: Lobby → Loading → Quiz →
// Result, cycling back to Loading on restart or Lobby on quit. Every method
// is driven from a single event loop, so the engine holds no locks; the
// delivery layer guarantees one event is processed to completion before the
// next.
type QuizEngine struct {
	source   QuestionSource
	selector *Selector
	rng      *rand.Rand // word-pool shuffling, independent of selection shuffling
	cfg      QuizConfig
	logger   *zap.Logger

	state      State
	difficulty entities.Difficulty
	session    *entities.Session
	assembler  *Assembler
}

// NewQuizEngine creates an engine in the Lobby state.
func NewQuizEngine(
	source QuestionSource,
	selector *Selector,
	rng *rand.Rand,
	cfg QuizConfig,
	logger *zap.Logger,
) *QuizEngine {
	return &QuizEngine{
		source:   source,
		selector: selector,
		rng:      rng,
		cfg:      cfg,
		logger:   logger,
		state:    StateLobby,
	}
}

// State returns the current lifecycle phase.
func (e *QuizEngine) State() State {
	return e.state
}

// Session returns the current session, or nil outside Quiz and Result.
func (e *QuizEngine) Session() *entities.Session {
	return e.session
}

// Assembler returns the interactive state of the current question, or nil
// outside Quiz.
func (e *QuizEngine) Assembler() *Assembler {
	return e.assembler
}

// Start moves Lobby → Loading and runs the selection for the requested
// difficulty. On success the engine enters Quiz with a fresh session; on
// failure it returns to Lobby and the error is surfaced to the caller.
// A failed start leaves no partial session behind.
func (e *QuizEngine) Start(ctx context.Context, difficulty entities.Difficulty) error {
	if e.state != StateLobby {
		return fmt.Errorf("%w: start from %s", ErrInvalidTransition, e.state)
	}

	e.difficulty = difficulty
	return e.load(ctx)
}

// Restart re-runs selection with the same difficulty.
func (e *QuizEngine) Restart(ctx context.Context) error {
	if e.state != StateResult {
		return fmt.Errorf("%w: restart from %s", ErrInvalidTransition, e.state)
	}

	return e.load(ctx)
}

// Quit returns to the lobby, discarding the finished session.
func (e *QuizEngine) Quit() error {
	if e.state != StateResult {
		return fmt.Errorf("%w: quit from %s", ErrInvalidTransition, e.state)
	}

	e.session = nil
	e.state = StateLobby
	return nil
}

func (e *QuizEngine) load(ctx context.Context) error {
	e.state = StateLoading
	e.session = nil
	e.assembler = nil

	pool, err := e.source.Questions(ctx)
	if err != nil {
		e.state = StateLobby
		return err
	}

	selected, err := e.selector.Select(pool, e.difficulty, e.cfg.QuestionCount)
	if err != nil {
		e.state = StateLobby
		return err
	}
	// A non-positive question count yields an empty draw without an error.
	if len(selected) == 0 {
		e.state = StateLobby
		return fmt.Errorf("%w: empty selection", ErrNoQuestions)
	}

	e.session = entities.NewSession(e.difficulty, selected, e.cfg.TimeBudget)
	e.assembler = NewAssembler(e.session.Current(), e.rng)
	e.state = StateQuiz

	e.logger.Info("quiz session started",
		zap.String("session_id", e.session.ID.String()),
		zap.String("difficulty", string(e.difficulty)),
		zap.Int("questions", len(selected)),
	)
	return nil
}

// SubmitAnswer scores the assembled sentence, appends it to the answer log
// and either advances to the next question or finishes the session. The
// returned record lets the caller show per-question feedback.
func (e *QuizEngine) SubmitAnswer() (entities.AnswerRecord, error) {
	if e.state != StateQuiz {
		return entities.AnswerRecord{}, fmt.Errorf("%w: submit from %s", ErrInvalidTransition, e.state)
	}

	q := e.session.Current()
	userAnswer := e.assembler.BuildAnswer()

	record := entities.AnswerRecord{
		QuestionID:    q.ID,
		UserAnswer:    userAnswer,
		CorrectAnswer: q.CorrectSentence,
		IsCorrect:     IsCorrectAnswer(userAnswer, q.CorrectSentence),
		AnsweredAt:    time.Now(),
	}
	e.session.Record(record)

	if e.session.Advance() {
		e.assembler = NewAssembler(e.session.Current(), e.rng)
	} else {
		e.assembler = nil
		e.state = StateResult
		e.logger.Info("quiz session finished",
			zap.String("session_id", e.session.ID.String()),
			zap.Int("score", e.session.Score()),
		)
	}

	return record, nil
}

// Tick advances the countdown. When the budget runs out the engine is forced
// into Result regardless of unanswered questions; those simply have no
// answer records. Ticks outside Quiz are ignored.
func (e *QuizEngine) Tick(elapsed time.Duration) State {
	if e.state != StateQuiz {
		return e.state
	}

	e.session.Remaining -= elapsed
	if e.session.Remaining <= 0 {
		e.session.Remaining = 0
		e.assembler = nil
		e.state = StateResult
		e.logger.Info("quiz session time expired",
			zap.String("session_id", e.session.ID.String()),
			zap.Int("answered", len(e.session.Answers)),
			zap.Int("total", len(e.session.Questions)),
		)
	}

	return e.state
}
