package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mathexpert-backend/internal/config"
	"mathexpert-backend/internal/database"
	"mathexpert-backend/internal/handlers"
	"mathexpert-backend/internal/middleware"
	"mathexpert-backend/internal/models"
	"mathexpert-backend/internal/router"
	"mathexpert-backend/internal/services"
	"mathexpert-backend/internal/session"
	"mathexpert-backend/internal/websocket"
)

func main() {
	log.Println("🚀 Starting Math Expert Pro...")

	// ──── Step 1: Load Environment Variables ────
	cfg := config.Load()
	log.Println("✓ Environment variables loaded")

	// ──── Step 2: Initialize Redis Clients ────
	redisClients, err := database.NewRedisClients(cfg.RedisURL)
	if err != nil {
		log.Fatalf("✗ Redis connection failed: %v", err)
	}
	defer redisClients.Close()
	log.Println("✓ Redis connected")

	// ──── Step 3: Sessions ────
	sessionStore := session.NewStore(redisClients.Sessions, cfg.SessionTTL)
	tokens := session.NewTokens(cfg.SessionSecret, cfg.SessionTTL)
	log.Printf("✓ Session store ready (ttl %s)", cfg.SessionTTL)

	// ──── Step 4: Gemini ────
	gemini := services.NewGeminiService(cfg.GeminiModel)
	solveService := services.NewSolveService(
		gemini,
		sessionStore,
		models.GenerationOptions{
			MaxOutputTokens: int32(cfg.GeminiMaxOutputTokens),
			Temperature:     float32(cfg.GeminiTemperature),
			TopP:            float32(cfg.GeminiTopP),
		},
		cfg.SolveTimeout,
		cfg.GeminiAPIKey,
	)
	if cfg.GeminiAPIKey == "" {
		log.Println("✓ Gemini client configured (keys supplied per request)")
	} else {
		log.Println("✓ Gemini client configured (server key available)")
	}

	// ──── Step 5: Handlers ────
	sessionHandler := handlers.NewSessionHandler(sessionStore, tokens)
	solveHandler := handlers.NewSolveHandler(sessionStore, solveService)
	wsHub := websocket.NewHub(redisClients.PubSub, tokens)

	// ──── Step 6: Start HTTP Server ────
	r := router.New(
		middleware.NewSessionAuth(tokens),
		sessionHandler,
		solveHandler,
		wsHub.HandleWebSocket,
		cfg.FrontendURL,
	)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.SolveTimeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down...")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		server.Shutdown(ctx)
	}()

	log.Printf("✓ Math Expert Pro ready on http://localhost:%s", cfg.Port)
	log.Printf("  API: http://localhost:%s/api/v1", cfg.Port)
	log.Printf("  WS:  ws://localhost:%s/api/v1/ws", cfg.Port)

	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("Server error: %v", err)
	}
}
