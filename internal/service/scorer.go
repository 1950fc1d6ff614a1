package service

import "strings"

// punctStripper removes the sentence punctuation ignored during comparison.
var punctStripper = strings.NewReplacer(".", "", "?", "", "!", "", ",", "")

// Normalize canonicalizes a sentence for comparison: punctuation stripped,
// case folded, whitespace runs collapsed to one space, ends trimmed.
// Normalizing an already normalized string is a no-op.
func Normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(punctStripper.Replace(s))), " ")
}

// IsCorrectAnswer reports whether the user's sentence matches the reference
// answer after normalization. Exact equality, no partial credit.
func IsCorrectAnswer(userAnswer, correctSentence string) bool {
	return Normalize(userAnswer) == Normalize(correctSentence)
}
