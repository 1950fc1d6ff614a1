package telegram

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/yerkanat/wordorder-bot/internal/domain/entities"
	"github.com/yerkanat/wordorder-bot/internal/service"
)

const wordsPerRow = 3

// buildDifficultyKeyboard offers the three tiers.
func buildDifficultyKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🟢 Easy", buildQuizStartCallback(string(entities.DifficultyEasy))),
			tgbotapi.NewInlineKeyboardButtonData("🟡 Medium", buildQuizStartCallback(string(entities.DifficultyMedium))),
			tgbotapi.NewInlineKeyboardButtonData("🔴 Hard", buildQuizStartCallback(string(entities.DifficultyHard))),
		),
	)
}

// buildQuizKeyboard renders the word pool, the filled blanks and, once every
// blank is filled, the submit button.
func buildQuizKeyboard(a *service.Assembler) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton

	var row []tgbotapi.InlineKeyboardButton
	for i, word := range a.Pool() {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(word, buildWordCallback(i)))
		if len(row) == wordsPerRow {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}

	row = nil
	for i := 0; i < a.SlotCount(); i++ {
		word, filled := a.SlotWord(i)
		if !filled {
			continue
		}
		row = append(row, tgbotapi.NewInlineKeyboardButtonData("✖ "+word, buildSlotCallback(i)))
		if len(row) == wordsPerRow {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}

	if a.IsComplete() {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ Submit", buildSubmitCallback()),
		))
	}

	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// buildResultKeyboard offers restart and quit.
func buildResultKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔁 Play again", buildRestartCallback()),
			tgbotapi.NewInlineKeyboardButtonData("🏠 Lobby", buildQuitCallback()),
		),
	)
}
