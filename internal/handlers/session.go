package handlers

import (
	"context"
	"log"
	"net/http"
	"unicode/utf8"

	"github.com/google/uuid"

	"mathexpert-backend/internal/models"
	"mathexpert-backend/internal/session"
	"mathexpert-backend/internal/solver"
)

type sessionStore interface {
	Get(ctx context.Context, id uuid.UUID) (*session.State, error)
	Save(ctx context.Context, st session.State) error
}

type tokenIssuer interface {
	Issue(id uuid.UUID) (string, error)
}

type SessionHandler struct {
	store  sessionStore
	tokens tokenIssuer
}

func NewSessionHandler(store sessionStore, tokens tokenIssuer) *SessionHandler {
	return &SessionHandler{store: store, tokens: tokens}
}

type sessionResponse struct {
	Token          string        `json:"token,omitempty"`
	Session        session.State `json:"session"`
	ComplexProblem bool          `json:"complex_problem"`
}

func newSessionResponse(st session.State) sessionResponse {
	return sessionResponse{
		Session:        st,
		ComplexProblem: utf8.RuneCountInString(st.Question) > solver.LongQuestionLength,
	}
}

func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	st := session.New()
	if err := h.store.Save(r.Context(), st); err != nil {
		log.Printf("Failed to save session: %v", err)
		handleServiceError(w, r, err)
		return
	}

	token, err := h.tokens.Issue(st.ID)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	resp := newSessionResponse(st)
	resp.Token = token
	writeJSON(w, http.StatusCreated, resp)
}

func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	st, ok := loadSession(w, r, h.store)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, newSessionResponse(*st))
}

type updateSessionRequest struct {
	Question  *string          `json:"question"`
	Language  *models.Language `json:"language"`
	Streaming *bool            `json:"streaming"`
}

func (h *SessionHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req updateSessionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}
	if req.Language != nil && !req.Language.Valid() {
		writeJSON(w, http.StatusBadRequest, errorRespWithFields("VALIDATION_ERROR", "Validation failed",
			map[string]string{"language": "Unsupported language"}, r))
		return
	}

	st, ok := loadSession(w, r, h.store)
	if !ok {
		return
	}

	if req.Question != nil {
		st.Question = *req.Question
	}
	if req.Language != nil {
		st.Language = *req.Language
	}
	if req.Streaming != nil {
		st.Streaming = *req.Streaming
	}

	if err := h.store.Save(r.Context(), *st); err != nil {
		handleServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newSessionResponse(*st))
}

// Clear empties the question and forgets the last solution.
func (h *SessionHandler) Clear(w http.ResponseWriter, r *http.Request) {
	st, ok := loadSession(w, r, h.store)
	if !ok {
		return
	}

	cleared := st.Cleared()
	if err := h.store.Save(r.Context(), cleared); err != nil {
		handleServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newSessionResponse(cleared))
}
