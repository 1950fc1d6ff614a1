package entities

import "regexp"

// Difficulty is the tier assigned to a question record.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Valid reports whether d is one of the three known tiers.
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// blankRun matches a maximal run of blank-marker characters in a template.
var blankRun = regexp.MustCompile(`_{3,}`)

// QuestionRecord is a single fill-in-the-blank exercise from the question
// bank. Records are created once at load time and never mutated; a bank
// reload replaces them wholesale.
type QuestionRecord struct {
	ID              string     // unique question identifier
	Context         string     // prompt text shown to the user
	Template        string     // literal text interleaved with blank markers
	ScrambledWords  []string   // words needed to complete the sentence, in scrambled order
	CorrectSentence string     // reference answer
	Distractor      string     // extra word that does not belong in the answer
	Difficulty      Difficulty // one of "easy", "medium", "hard"
}

// BlankCount returns the number of blank-marker runs in the template.
// It is expected to equal len(ScrambledWords); a mismatch is a data-quality
// issue the engine tolerates rather than corrects.
func (q QuestionRecord) BlankCount() int {
	return len(blankRun.FindAllStringIndex(q.Template, -1))
}
