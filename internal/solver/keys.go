package solver

import (
	"fmt"
	"strings"

	"mathexpert-backend/internal/models"
)

// MinKeyLength is the shortest credential worth a probe call.
const MinKeyLength = 11

var invalidKeyMarkers = []string{"api_key_invalid", "invalid key", "api key not valid", "401"}

// CheckKeyShape rejects keys that cannot be valid without calling the API.
func CheckKeyShape(key string) (models.KeyStatus, string, bool) {
	key = strings.TrimSpace(key)
	if key == "" {
		return models.KeyMissing, "Please enter your Gemini API key", false
	}
	if len(key) < MinKeyLength {
		return models.KeyTooShort, "API key seems too short", false
	}
	return "", "", true
}

// ClassifyKeyError maps a probe call result to a status and a user-facing message.
func ClassifyKeyError(err error) (models.KeyStatus, string) {
	if err == nil {
		return models.KeyValid, "API key is VALID and working!"
	}
	msg := err.Error()
	lower := strings.ToLower(msg)
	if containsAny(lower, invalidKeyMarkers...) {
		return models.KeyInvalid, "Invalid API key"
	}
	if strings.Contains(lower, "quota") {
		return models.KeyQuotaExceeded, "API quota exceeded"
	}
	return models.KeyError, fmt.Sprintf("API error: %s", msg)
}
