package service

import (
	"math/rand"
	"regexp"
	"strings"

	"github.com/yerkanat/wordorder-bot/internal/domain/entities"
)

// blankRun matches a maximal run of 3 or more blank-marker characters; each
// run becomes one blank slot.
var blankRun = regexp.MustCompile(`_{3,}`)

type segmentKind int

const (
	literalSegment segmentKind = iota
	slotSegment
)

// segment is one tokenized piece of a template: literal text or a blank slot.
type segment struct {
	kind segmentKind
	text string // literal text, empty for slots
	slot int    // slot index, -1 for literals
}

// Assembler is the interactive state of a single question: the tokenized
// template, its blank slots and the pool of words not yet placed. One
// instance exists per question and is replaced wholesale on question change.
type Assembler struct {
	segments []segment
	words    []string // assigned word per slot
	filled   []bool   // whether the slot holds a word
	pool     []string // words not yet placed, in display order
}

// NewAssembler tokenizes the question template and builds the word pool:
// the scrambled words plus the distractor, shuffled with the given source.
// Pool shuffling is independent of selection-level shuffling.
func NewAssembler(q entities.QuestionRecord, rng *rand.Rand) *Assembler {
	segments := tokenizeTemplate(q.Template)

	slots := 0
	for _, seg := range segments {
		if seg.kind == slotSegment {
			slots++
		}
	}

	pool := make([]string, 0, len(q.ScrambledWords)+1)
	pool = append(pool, q.ScrambledWords...)
	if q.Distractor != "" {
		pool = append(pool, q.Distractor)
	}
	fisherYates(rng, pool)

	return &Assembler{
		segments: segments,
		words:    make([]string, slots),
		filled:   make([]bool, slots),
		pool:     pool,
	}
}

// tokenizeTemplate splits a template into an ordered sequence of literal
// segments and blank slots.
func tokenizeTemplate(template string) []segment {
	var segments []segment
	slot := 0
	rest := 0

	for _, loc := range blankRun.FindAllStringIndex(template, -1) {
		if loc[0] > rest {
			segments = append(segments, segment{kind: literalSegment, text: template[rest:loc[0]], slot: -1})
		}
		segments = append(segments, segment{kind: slotSegment, slot: slot})
		slot++
		rest = loc[1]
	}

	if rest < len(template) {
		segments = append(segments, segment{kind: literalSegment, text: template[rest:], slot: -1})
	}

	return segments
}

// PlaceWord assigns word to the first empty slot in template order and
// removes one matching occurrence from the pool. With every slot full this
// is a no-op. A word missing from the pool is still assigned; only the pool
// removal is skipped.
func (a *Assembler) PlaceWord(word string) {
	slot := -1
	for i, filled := range a.filled {
		if !filled {
			slot = i
			break
		}
	}
	if slot == -1 {
		return
	}

	a.words[slot] = word
	a.filled[slot] = true

	for i, w := range a.pool {
		if w == word {
			a.pool = append(a.pool[:i], a.pool[i+1:]...)
			break
		}
	}
}

// PlaceFromPool places the pool word at index i. Callback data carries pool
// positions rather than the words themselves, which keeps it short and
// avoids escaping issues.
func (a *Assembler) PlaceFromPool(i int) {
	if i < 0 || i >= len(a.pool) {
		return
	}
	a.PlaceWord(a.pool[i])
}

// ClearSlot returns the slot's word to the pool and empties the slot.
// Clearing an already empty slot is a no-op.
func (a *Assembler) ClearSlot(slot int) {
	if slot < 0 || slot >= len(a.filled) || !a.filled[slot] {
		return
	}

	a.pool = append(a.pool, a.words[slot])
	a.words[slot] = ""
	a.filled[slot] = false
}

// IsComplete reports whether every blank slot holds a word.
func (a *Assembler) IsComplete() bool {
	for _, filled := range a.filled {
		if !filled {
			return false
		}
	}
	return true
}

// BuildAnswer concatenates literal segments and assigned words in template
// order, then collapses whitespace runs and trims the ends. Unfilled slots
// contribute nothing; callers are expected to submit only when IsComplete.
func (a *Assembler) BuildAnswer() string {
	var b strings.Builder
	for _, seg := range a.segments {
		if seg.kind == slotSegment {
			b.WriteString(a.words[seg.slot])
		} else {
			b.WriteString(seg.text)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// Preview renders the template with placed words substituted and the given
// placeholder standing in for empty slots.
func (a *Assembler) Preview(placeholder string) string {
	var b strings.Builder
	for _, seg := range a.segments {
		switch {
		case seg.kind == literalSegment:
			b.WriteString(seg.text)
		case a.filled[seg.slot]:
			b.WriteString(a.words[seg.slot])
		default:
			b.WriteString(placeholder)
		}
	}
	return b.String()
}

// Pool returns a copy of the words not yet placed, in display order.
func (a *Assembler) Pool() []string {
	return append([]string(nil), a.pool...)
}

// SlotCount returns the number of blank slots in the template.
func (a *Assembler) SlotCount() int {
	return len(a.filled)
}

// SlotWord returns the word assigned to the slot and whether it is filled.
func (a *Assembler) SlotWord(slot int) (string, bool) {
	if slot < 0 || slot >= len(a.filled) {
		return "", false
	}
	return a.words[slot], a.filled[slot]
}
