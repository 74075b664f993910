package solver

import (
	"strings"
	"unicode/utf8"
)

const (
	MinQuestionLength = 3
	MaxQuestionLength = 1000

	// LongQuestionLength is where the UI suggests splitting the problem.
	LongQuestionLength = 200
)

// ValidateQuestion returns a user-facing problem with q, or "" if it is acceptable.
func ValidateQuestion(q string) string {
	n := utf8.RuneCountInString(strings.TrimSpace(q))
	if n < MinQuestionLength {
		return "Question too short"
	}
	if n > MaxQuestionLength {
		return "Question too long, please simplify"
	}
	return ""
}
