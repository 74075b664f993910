// Package session keeps the short-lived per-browser form state.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"mathexpert-backend/internal/models"
)

var ErrNotFound = errors.New("session not found")

// State is everything the form needs to redraw itself.
type State struct {
	ID                uuid.UUID       `json:"id"`
	Question          string          `json:"question"`
	Language          models.Language `json:"language"`
	Streaming         bool            `json:"streaming"`
	SolutionGenerated bool            `json:"solution_generated"`
	Solution          string          `json:"solution,omitempty"`
	SolutionFailed    bool            `json:"solution_failed"`
	SolvedAt          *time.Time      `json:"solved_at,omitempty"`
	CreatedAt         time.Time       `json:"created_at"`
}

func New() State {
	return State{
		ID:        uuid.New(),
		Language:  models.LanguageEnglish,
		Streaming: true,
		CreatedAt: time.Now().UTC(),
	}
}

// Cleared resets the question and solution, keeping the user's preferences.
func (s State) Cleared() State {
	s.Question = ""
	s.SolutionGenerated = false
	s.Solution = ""
	s.SolutionFailed = false
	s.SolvedAt = nil
	return s
}

// Downloadable reports whether the last solution can be offered as a file.
func (s State) Downloadable() bool {
	return s.SolutionGenerated && s.Solution != "" && !s.SolutionFailed
}

// UpdatesChannel is the pub/sub channel carrying progress for one session.
func UpdatesChannel(id uuid.UUID) string {
	return "session_updates:" + id.String()
}

type Store struct {
	redis *redis.Client
	ttl   time.Duration
}

func NewStore(client *redis.Client, ttl time.Duration) *Store {
	return &Store{redis: client, ttl: ttl}
}

func key(id uuid.UUID) string {
	return fmt.Sprintf("session:%s", id.String())
}

func (s *Store) Get(ctx context.Context, id uuid.UUID) (*State, error) {
	data, err := s.redis.Get(ctx, key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	var st State
	if err := json.Unmarshal(data, &st); err != nil {
		return nil, fmt.Errorf("failed to decode session: %w", err)
	}
	return &st, nil
}

// Save writes st and restarts its TTL.
func (s *Store) Save(ctx context.Context, st State) error {
	data, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	if err := s.redis.Set(ctx, key(st.ID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// Publish sends a progress message to whoever watches the session.
func (s *Store) Publish(ctx context.Context, id uuid.UUID, msg models.WSMessage) {
	data, _ := json.Marshal(msg)
	s.redis.Publish(ctx, UpdatesChannel(id), string(data))
}
