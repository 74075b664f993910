package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"mathexpert-backend/internal/handlers"
	"mathexpert-backend/internal/middleware"
)

func New(
	sessionAuth *middleware.SessionAuth,
	sessionHandler *handlers.SessionHandler,
	solveHandler *handlers.SolveHandler,
	wsHandler http.HandlerFunc,
	frontendURL string,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.CORS(frontendURL))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Get("/", handlers.Index)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/languages", handlers.Languages)
		r.Post("/key/verify", solveHandler.VerifyKey)

		// ──── Session Routes ────
		r.Post("/session", sessionHandler.Create)
		r.Group(func(r chi.Router) {
			r.Use(sessionAuth.Middleware)
			r.Get("/session", sessionHandler.Get)
			r.Put("/session", sessionHandler.Update)
			r.Delete("/session", sessionHandler.Clear)

			// ──── Solve Routes ────
			r.Post("/solve", solveHandler.Solve)
			r.Get("/solution/download", solveHandler.Download)
		})

		// ──── WebSocket ────
		r.Get("/ws", wsHandler)
	})

	return r
}
