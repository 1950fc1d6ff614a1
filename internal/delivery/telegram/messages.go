// messages.go contains message templates and formatting functions for Telegram.

package telegram

import (
	"fmt"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/yerkanat/wordorder-bot/internal/domain/entities"
)

// Error and info messages.
const (
	msgNoQuestions     = "No questions available for that difficulty yet. Try another one."
	msgBankUnavailable = "The question bank could not be loaded. Try again later."
	msgInternalError   = "Something went wrong. Try again later."
	msgNoActiveQuiz    = "No active quiz. Send /quiz to start one."
	msgFillAllBlanks   = "Fill every blank before submitting."
	msgUseButtons      = "Use the buttons under the quiz message, or send /quiz to start a new round."
	msgUnknownCommand  = "Unknown command. Available commands:\n\n/quiz — start a round\n/help — how to play"
)

const blankPlaceholder = "____"

// md escapes plain text for MarkdownV2.
func md(s string) string {
	return tgbotapi.EscapeText(tgbotapi.ModeMarkdownV2, s)
}

func bold(s string) string {
	return "*" + md(s) + "*"
}

// newMessage creates a message with MarkdownV2 parse mode.
func newMessage(chatID int64, text string) tgbotapi.MessageConfig {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdownV2
	return msg
}

// newPlainMessage creates a plain message without MarkdownV2 parse mode.
func newPlainMessage(chatID int64, text string) tgbotapi.MessageConfig {
	return tgbotapi.NewMessage(chatID, text)
}

// newEdit creates an edit with MarkdownV2 parse mode.
func newEdit(chatID int64, msgID int, text string) tgbotapi.EditMessageTextConfig {
	edit := tgbotapi.NewEditMessageText(chatID, msgID, text)
	edit.ParseMode = tgbotapi.ModeMarkdownV2
	return edit
}

// welcomeText builds the /start greeting.
func welcomeText() string {
	var sb strings.Builder

	sb.WriteString(bold("Word Order Trainer"))
	sb.WriteString("\n\n")
	sb.WriteString(md("Rebuild each sentence from its scrambled words before the timer runs out. One word in the pool is a decoy and belongs nowhere."))
	sb.WriteString("\n\n")
	sb.WriteString(md("Pick a difficulty to start:"))

	return sb.String()
}

// helpText builds the /help message.
func helpText() string {
	var sb strings.Builder

	sb.WriteString(bold("How to play"))
	sb.WriteString("\n\n")
	sb.WriteString(md("1. Pick a difficulty — a timed round of questions starts.\n"))
	sb.WriteString(md("2. Tap words to drop them into the blanks, in order.\n"))
	sb.WriteString(md("3. Tap a placed word to put it back into the pool.\n"))
	sb.WriteString(md("4. Submit when every blank is filled. Unanswered questions score nothing when time runs out."))

	return sb.String()
}

// chooseDifficultyText builds the /quiz prompt.
func chooseDifficultyText() string {
	return md("Pick a difficulty:")
}

// questionText renders the current question of an active session.
func questionText(s *entities.Session, preview, feedback string) string {
	var sb strings.Builder

	sb.WriteString(bold(fmt.Sprintf("Question %d/%d", s.CurrentIndex+1, len(s.Questions))))
	sb.WriteString(md(fmt.Sprintf("  ·  ⏱ %s", formatRemaining(s.Remaining))))
	sb.WriteString("\n\n")

	if feedback != "" {
		sb.WriteString(feedback)
		sb.WriteString("\n\n")
	}

	sb.WriteString(md(s.Current().Context))
	sb.WriteString("\n\n")
	sb.WriteString(bold(preview))

	return sb.String()
}

// resultText renders the final report of a finished session.
func resultText(s *entities.Session, timedOut bool) string {
	var sb strings.Builder

	if timedOut {
		sb.WriteString(bold("⏰ Time's up!"))
	} else {
		sb.WriteString(bold("🏁 Round finished!"))
	}
	sb.WriteString("\n\n")

	sb.WriteString(md(fmt.Sprintf("Score: %d/%d (%d%%)", s.Score(), len(s.Questions), s.Percentage())))
	sb.WriteString("\n")
	sb.WriteString(md(fmt.Sprintf("Answered: %d/%d", len(s.Answers), len(s.Questions))))

	var missed []entities.AnswerRecord
	for _, a := range s.Answers {
		if !a.IsCorrect {
			missed = append(missed, a)
		}
	}

	if len(missed) > 0 {
		sb.WriteString("\n\n")
		sb.WriteString(bold("Worth another look:"))
		sb.WriteString("\n")
		for _, a := range missed {
			sb.WriteString(md(fmt.Sprintf("❌ %s\n✅ %s\n", a.UserAnswer, a.CorrectAnswer)))
		}
	}

	return sb.String()
}

// feedbackText renders the verdict on the previous answer.
func feedbackText(a entities.AnswerRecord) string {
	if a.IsCorrect {
		return md("✅ Correct!")
	}
	return md(fmt.Sprintf("❌ Not quite. Correct: %s", a.CorrectAnswer))
}

// formatRemaining formats a countdown as m:ss.
func formatRemaining(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d.Round(time.Second) / time.Second)
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}
