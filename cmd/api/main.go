package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/hollowmoor/haunt-engine/internal/config"
	"github.com/hollowmoor/haunt-engine/internal/engine"
	"github.com/hollowmoor/haunt-engine/internal/handlers"
	"github.com/hollowmoor/haunt-engine/internal/logger"
	"github.com/hollowmoor/haunt-engine/internal/middleware"
	"github.com/hollowmoor/haunt-engine/internal/services"
)

func main() {
	// Optional .env for local development
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	log := logger.Setup(cfg)

	log.Info("Starting Haunt Engine API",
		"port", cfg.Port,
		"environment", cfg.Environment,
		"llm_provider", cfg.LLMProvider,
		"model_name", cfg.ModelName)

	var llmService services.LLMService
	switch strings.ToLower(cfg.LLMProvider) {
	case "openai":
		if cfg.OpenAIAPIKey == "" {
			log.Error("OpenAI API key is required when using openai provider")
			os.Exit(1)
		}
		llmService = services.NewOpenAIService(cfg.OpenAIAPIKey, cfg.ModelName, log)
		log.Info("Using OpenAI LLM provider")
	case "mock":
		// Local development without a provider credential
		llmService = services.NewMockLLMService()
		log.Warn("Using mock LLM provider; turns will not produce real stories")
	default:
		log.Error("Invalid LLM provider specified", "provider", cfg.LLMProvider, "supported", []string{"openai", "mock"})
		os.Exit(1)
	}

	var cache services.Cache
	if cfg.RedisURL != "" {
		redisService := services.NewRedisService(cfg.RedisURL, log)

		pingCtx, pingCancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := redisService.Ping(pingCtx); err != nil {
			log.Error("Failed to connect to completion cache", "error", err)
			pingCancel()
			os.Exit(1)
		}
		pingCancel()

		cache = redisService
		llmService = services.NewCachedLLMService(llmService, cache, cfg.CacheTTL, log)
		log.Info("Completion cache enabled", "ttl", cfg.CacheTTL)
	}

	turnEngine := engine.New(llmService, log)

	mux := http.NewServeMux()

	healthHandler := handlers.NewHealthHandler(cache, log)
	mux.Handle("/health", healthHandler)

	turnHandler := handlers.NewTurnHandler(turnEngine, log)
	mux.Handle("/v1/turn/", turnHandler)
	mux.Handle("/v1/turn", turnHandler)

	handler := middleware.Logger(log, mux)
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second, // completions can be slow
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("Server starting", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Server is shutting down...")

	if cache != nil {
		if err := cache.Close(); err != nil {
			log.Error("Error closing cache connection", "error", err)
		}
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	log.Info("Server exited")
}
