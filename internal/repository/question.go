package repository

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/yerkanat/wordorder-bot/internal/domain/entities"
)

// bankFieldCount is the number of |-separated fields in a bank record line:
// id, context, template, scrambled words JSON, correct sentence, distractor,
// difficulty.
const bankFieldCount = 7

// ErrBankUnavailable is returned when the bank resource itself cannot be
// fetched. Malformed individual lines never escalate to it.
var ErrBankUnavailable = errors.New("question bank unavailable")

// QuestionRepository provides access to the fill-in-the-blank question bank.
// The bank is fetched once from a remote line-oriented text resource and
// cached in memory; Reload replaces the cached records wholesale.
type QuestionRepository struct {
	url    string
	client *http.Client
	logger *zap.Logger

	mu        sync.RWMutex
	questions []entities.QuestionRecord
	loaded    bool
}

// NewQuestionRepository creates a repository reading the bank from url.
func NewQuestionRepository(url string, client *http.Client, logger *zap.Logger) *QuestionRepository {
	if client == nil {
		client = http.DefaultClient
	}

	return &QuestionRepository{
		url:    url,
		client: client,
		logger: logger,
	}
}

// Questions returns the cached bank, fetching it on first use. A bank where
// every line is malformed (or an empty bank) yields an empty slice, not an
// error; callers decide whether that is fatal.
func (r *QuestionRepository) Questions(ctx context.Context) ([]entities.QuestionRecord, error) {
	r.mu.RLock()
	if r.loaded {
		questions := r.questions
		r.mu.RUnlock()
		return questions, nil
	}
	r.mu.RUnlock()

	if err := r.Reload(ctx); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.questions, nil
}

// Reload fetches and parses the bank resource, replacing the cached records.
func (r *QuestionRepository) Reload(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.url, nil)
	if err != nil {
		return fmt.Errorf("build bank request: %w", err)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBankUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: unexpected status %s", ErrBankUnavailable, resp.Status)
	}

	questions, err := r.parse(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBankUnavailable, err)
	}

	r.mu.Lock()
	r.questions = questions
	r.loaded = true
	r.mu.Unlock()

	r.logger.Info("question bank loaded", zap.Int("questions", len(questions)))
	return nil
}

// parse reads the line-oriented bank format: the first line is a header and
// is discarded, blank lines are ignored, every other line is one record.
// Lines with fewer than the expected fields are dropped with a warning;
// undecodable scrambled-words JSON degrades the record to an empty word
// list. Neither aborts the load.
func (r *QuestionRepository) parse(src io.Reader) ([]entities.QuestionRecord, error) {
	scanner := bufio.NewScanner(src)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var questions []entities.QuestionRecord
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		line := scanner.Text()

		if lineNo == 1 {
			continue // header
		}
		if strings.TrimSpace(line) == "" {
			continue
		}

		fields := strings.Split(line, "|")
		if len(fields) < bankFieldCount {
			r.logger.Warn("skipping malformed bank line",
				zap.Int("line", lineNo),
				zap.Int("fields", len(fields)),
			)
			continue
		}

		q := entities.QuestionRecord{
			ID:              fields[0],
			Context:         fields[1],
			Template:        fields[2],
			CorrectSentence: fields[4],
			Distractor:      strings.TrimSpace(fields[5]),
			Difficulty:      entities.Difficulty(strings.TrimSpace(fields[6])),
		}

		if err := json.Unmarshal([]byte(fields[3]), &q.ScrambledWords); err != nil {
			r.logger.Warn("undecodable scrambled words, keeping degraded record",
				zap.String("id", q.ID),
				zap.Error(err),
			)
			q.ScrambledWords = nil
		}

		if !q.Difficulty.Valid() {
			r.logger.Warn("unknown difficulty tier",
				zap.String("id", q.ID),
				zap.String("difficulty", string(q.Difficulty)),
			)
		}

		if blanks := q.BlankCount(); blanks != len(q.ScrambledWords) {
			r.logger.Warn("blank count does not match scrambled words",
				zap.String("id", q.ID),
				zap.Int("blanks", blanks),
				zap.Int("words", len(q.ScrambledWords)),
			)
		}

		questions = append(questions, q)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read bank body: %w", err)
	}

	return questions, nil
}
