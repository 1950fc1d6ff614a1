package telegram

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/yerkanat/wordorder-bot/internal/service"
)

// renderQuestion builds the quiz message for the engine's current question.
// feedback, when non-empty, is the verdict on the previous answer and is
// already MarkdownV2-safe.
func renderQuestion(e *service.QuizEngine, feedback string) (string, tgbotapi.InlineKeyboardMarkup) {
	asm := e.Assembler()
	text := questionText(e.Session(), asm.Preview(blankPlaceholder), feedback)
	return text, buildQuizKeyboard(asm)
}

// renderResult builds the final report message.
func renderResult(e *service.QuizEngine, timedOut bool) (string, tgbotapi.InlineKeyboardMarkup) {
	return resultText(e.Session(), timedOut), buildResultKeyboard()
}
