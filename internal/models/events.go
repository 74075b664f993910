package models

import (
	"time"

	"github.com/google/uuid"
)

// WebSocket message types
type WSMessage struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

// SubscribedEvent is the first message on a socket; updates published after it are delivered.
type SubscribedEvent struct {
	SessionID uuid.UUID `json:"session_id"`
}

type StatusUpdate struct {
	SessionID uuid.UUID `json:"session_id"`
	Step      int       `json:"step"`
	StepName  string    `json:"step_name"`
}

type PartialContent struct {
	SessionID       uuid.UUID `json:"session_id"`
	Chunk           string    `json:"chunk"`
	TotalChunksSent int       `json:"total_chunks_sent"`
}

type CompletedEvent struct {
	SessionID uuid.UUID `json:"session_id"`
	Complete  bool      `json:"complete"`
	Failed    bool      `json:"failed"`
	SolvedAt  time.Time `json:"solved_at"`
}

type ErrorEvent struct {
	SessionID    uuid.UUID `json:"session_id"`
	ErrorCode    string    `json:"error_code"`
	ErrorMessage string    `json:"error_message"`
}

// API Error response
type APIError struct {
	Code      string            `json:"code"`
	Message   string            `json:"message"`
	Fields    map[string]string `json:"fields,omitempty"`
	RequestID string            `json:"request_id"`
}

type ErrorResponse struct {
	Error APIError `json:"error"`
}
