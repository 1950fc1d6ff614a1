package telegram

import (
	"strconv"
	"strings"
)

// Callback action constants.
const (
	actionQuiz = "quiz"
)

// Quiz sub-actions.
const (
	quizStart   = "start"
	quizWord    = "word"
	quizSlot    = "slot"
	quizSubmit  = "submit"
	quizRestart = "restart"
	quizQuit    = "quit"
)

// callbackData represents structured callback data.
type callbackData struct {
	Action string
	Params []string
	Raw    string
}

// encode creates callback string.
func (cd callbackData) encode() string {
	if len(cd.Params) == 0 {
		return cd.Action
	}
	return cd.Action + ":" + strings.Join(cd.Params, ":")
}

// decodeCallback parses callback data string.
func decodeCallback(data string) callbackData {
	parts := strings.Split(data, ":")
	if len(parts) == 0 {
		return callbackData{Raw: data}
	}

	return callbackData{
		Action: parts[0],
		Params: parts[1:],
		Raw:    data,
	}
}

// buildQuizStartCallback builds callback data for starting a session with
// the chosen difficulty.
func buildQuizStartCallback(difficulty string) string {
	return callbackData{
		Action: actionQuiz,
		Params: []string{quizStart, difficulty},
	}.encode()
}

// buildWordCallback builds callback data for placing the pool word at index i.
func buildWordCallback(i int) string {
	return callbackData{
		Action: actionQuiz,
		Params: []string{quizWord, strconv.Itoa(i)},
	}.encode()
}

// buildSlotCallback builds callback data for clearing the blank slot at index i.
func buildSlotCallback(i int) string {
	return callbackData{
		Action: actionQuiz,
		Params: []string{quizSlot, strconv.Itoa(i)},
	}.encode()
}

// buildSubmitCallback builds callback data for submitting the assembled sentence.
func buildSubmitCallback() string {
	return callbackData{Action: actionQuiz, Params: []string{quizSubmit}}.encode()
}

// buildRestartCallback builds callback data for restarting with the same difficulty.
func buildRestartCallback() string {
	return callbackData{Action: actionQuiz, Params: []string{quizRestart}}.encode()
}

// buildQuitCallback builds callback data for returning to the lobby.
func buildQuitCallback() string {
	return callbackData{Action: actionQuiz, Params: []string{quizQuit}}.encode()
}
