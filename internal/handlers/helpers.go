package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"mathexpert-backend/internal/middleware"
	"mathexpert-backend/internal/models"
	"mathexpert-backend/internal/services"
	"mathexpert-backend/internal/session"
)

// Shared helpers

const maxBodyBytes = 64 << 10

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	return json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(dst)
}

func errorResp(code, message string, r *http.Request) models.ErrorResponse {
	return models.ErrorResponse{
		Error: models.APIError{
			Code:      code,
			Message:   message,
			RequestID: r.Header.Get("X-Request-ID"),
		},
	}
}

func errorRespWithFields(code, message string, fields map[string]string, r *http.Request) models.ErrorResponse {
	return models.ErrorResponse{
		Error: models.APIError{
			Code:      code,
			Message:   message,
			Fields:    fields,
			RequestID: r.Header.Get("X-Request-ID"),
		},
	}
}

func handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch e := err.(type) {
	case *services.ValidationError:
		writeJSON(w, http.StatusBadRequest, errorRespWithFields("VALIDATION_ERROR", "Validation failed", e.Fields, r))
	case *services.CredentialError:
		code := "MISSING_API_KEY"
		if e.Status == models.KeyTooShort {
			code = "INVALID_API_KEY"
		}
		writeJSON(w, http.StatusBadRequest, errorResp(code, e.Message, r))
	case *services.NotFoundError:
		code := e.Code
		if code == "" {
			code = "NOT_FOUND"
		}
		writeJSON(w, http.StatusNotFound, errorResp(code, e.Message, r))
	default:
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "An unexpected error occurred", r))
	}
}

// loadSession fetches the caller's session, writing the error response itself on failure.
func loadSession(w http.ResponseWriter, r *http.Request, store sessionStore) (*session.State, bool) {
	st, err := store.Get(r.Context(), middleware.GetSessionID(r.Context()))
	if errors.Is(err, session.ErrNotFound) {
		err = &services.NotFoundError{Code: "SESSION_EXPIRED", Message: "Session expired, please start a new one"}
	}
	if err != nil {
		handleServiceError(w, r, err)
		return nil, false
	}
	return st, true
}
