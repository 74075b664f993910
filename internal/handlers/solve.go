package handlers

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"mathexpert-backend/internal/models"
	"mathexpert-backend/internal/services"
	"mathexpert-backend/internal/session"
)

type solveService interface {
	Solve(ctx context.Context, st session.State, req models.SolveRequest) (session.State, *models.SolveResponse, error)
	VerifyKey(ctx context.Context, apiKey string) models.VerifyKeyResponse
}

type SolveHandler struct {
	store  sessionStore
	solver solveService
}

func NewSolveHandler(store sessionStore, solver solveService) *SolveHandler {
	return &SolveHandler{store: store, solver: solver}
}

func (h *SolveHandler) Solve(w http.ResponseWriter, r *http.Request) {
	var req models.SolveRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	st, ok := loadSession(w, r, h.store)
	if !ok {
		return
	}

	next, resp, err := h.solver.Solve(r.Context(), *st, req)
	if saveErr := h.store.Save(r.Context(), next); saveErr != nil {
		log.Printf("Failed to save session %s: %v", next.ID, saveErr)
	}
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// Download returns the raw text of the last solution as a file.
func (h *SolveHandler) Download(w http.ResponseWriter, r *http.Request) {
	st, ok := loadSession(w, r, h.store)
	if !ok {
		return
	}
	if !st.Downloadable() {
		handleServiceError(w, r, &services.NotFoundError{Message: "No solution to download"})
		return
	}

	var stamp int64
	if st.SolvedAt != nil {
		stamp = st.SolvedAt.Unix()
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="complete_math_solution_%d.txt"`, stamp))
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(st.Solution))
}

func (h *SolveHandler) VerifyKey(w http.ResponseWriter, r *http.Request) {
	var req models.VerifyKeyRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	writeJSON(w, http.StatusOK, h.solver.VerifyKey(r.Context(), req.APIKey))
}
