package router

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"mathexpert-backend/internal/handlers"
	"mathexpert-backend/internal/middleware"
	"mathexpert-backend/internal/session"
)

func newTestRouter() http.Handler {
	tokens := session.NewTokens("secret", time.Hour)
	ws := func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusTeapot) }
	return New(
		middleware.NewSessionAuth(tokens),
		handlers.NewSessionHandler(nil, tokens),
		handlers.NewSolveHandler(nil, nil),
		ws,
		"http://localhost:5173",
	)
}

func TestRouter_Public(t *testing.T) {
	r := newTestRouter()

	tests := []struct {
		path string
		code int
	}{
		{"/health", http.StatusOK},
		{"/", http.StatusOK},
		{"/api/v1/languages", http.StatusOK},
		{"/api/v1/ws", http.StatusTeapot},
	}

	for _, tc := range tests {
		t.Run(tc.path, func(t *testing.T) {
			rr := httptest.NewRecorder()
			r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, tc.path, nil))
			if rr.Code != tc.code {
				t.Errorf("expected %d, got %d", tc.code, rr.Code)
			}
		})
	}
}

func TestRouter_SessionRoutesRequireToken(t *testing.T) {
	r := newTestRouter()

	tests := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/v1/session"},
		{http.MethodPut, "/api/v1/session"},
		{http.MethodDelete, "/api/v1/session"},
		{http.MethodPost, "/api/v1/solve"},
		{http.MethodGet, "/api/v1/solution/download"},
	}

	for _, tc := range tests {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			rr := httptest.NewRecorder()
			r.ServeHTTP(rr, httptest.NewRequest(tc.method, tc.path, nil))
			if rr.Code != http.StatusUnauthorized {
				t.Errorf("expected 401, got %d", rr.Code)
			}
		})
	}
}
