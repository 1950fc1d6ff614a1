package entities

import (
	"math"
	"time"

	"github.com/google/uuid"
)

// AnswerRecord is one scored attempt. It is appended to the session's answer
// log exactly once per completed question and never changed afterwards.
type AnswerRecord struct {
	QuestionID    string    // ID of the answered question
	UserAnswer    string    // sentence the user assembled
	CorrectAnswer string    // reference answer
	IsCorrect     bool      // whether the answer matched after normalization
	AnsweredAt    time.Time // timestamp when the answer was submitted
}

// Session is one timed run: a fixed ordered set of questions, a cursor, the
// answer log and the remaining time. It is created when loading succeeds and
// replaced wholesale when a new session starts.
type Session struct {
	ID           uuid.UUID        // unique session ID
	Difficulty   Difficulty       // tier the session was drawn from
	Questions    []QuestionRecord // ordered questions selected for this run
	CurrentIndex int              // cursor into Questions
	Answers      []AnswerRecord   // answer log, one entry per completed question
	Remaining    time.Duration    // countdown left on the session timer
	StartedAt    time.Time        // timestamp when the session started
}

// NewSession creates a session over the selected questions with a full
// time budget and an empty answer log.
func NewSession(difficulty Difficulty, questions []QuestionRecord, budget time.Duration) *Session {
	return &Session{
		ID:         uuid.New(),
		Difficulty: difficulty,
		Questions:  questions,
		Remaining:  budget,
		StartedAt:  time.Now(),
	}
}

// Current returns the question at the cursor.
func (s *Session) Current() QuestionRecord {
	return s.Questions[s.CurrentIndex]
}

// Record appends an answer to the log.
func (s *Session) Record(a AnswerRecord) {
	s.Answers = append(s.Answers, a)
}

// Advance moves the cursor to the next question and reports whether one
// remains.
func (s *Session) Advance() bool {
	s.CurrentIndex++
	return s.CurrentIndex < len(s.Questions)
}

// Score counts the correct answers in the log. Questions left unanswered
// when the timer cuts a session short have no log entry and contribute
// nothing.
func (s *Session) Score() int {
	score := 0
	for _, a := range s.Answers {
		if a.IsCorrect {
			score++
		}
	}
	return score
}

// Percentage is the score over the number of questions drawn for the
// session, rounded to the nearest integer.
func (s *Session) Percentage() int {
	if len(s.Questions) == 0 {
		return 0
	}
	return int(math.Round(float64(s.Score()) / float64(len(s.Questions)) * 100))
}
