package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"spellbound/internal/audio"
	"spellbound/internal/catalog"
	"spellbound/internal/config"
	"spellbound/internal/handlers"
	"spellbound/internal/history"
	"spellbound/internal/storage"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize the key-value store (supports sqlite, postgres, mysql, redis, memory)
	store, err := openStore(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize store: %v", err)
	}
	defer store.Close()

	log.Printf("Store ready (type: %s)", cfg.StoreType)

	// Initialize services
	loader := catalog.NewLoader(cfg.CatalogURL, nil)
	recorder := history.NewRecorder(store)
	ttsService := audio.NewTTSService(cfg.AudioPath)

	// Initialize handlers
	quizHandler := handlers.NewQuizHandler(loader, store, recorder, ttsService, cfg.QuizWordCount)

	// Setup routes
	mux := http.NewServeMux()

	// Static files (word catalogs under /static/data, generated audio under /static/audio)
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.Dir(cfg.StaticFilesPath))))

	// Catalog and criteria routes
	mux.HandleFunc("GET /api/categories", quizHandler.GetCategories)
	mux.HandleFunc("POST /api/criteria", quizHandler.SaveCriteria)

	// Quiz routes
	mux.HandleFunc("POST /api/quiz/start", quizHandler.StartQuiz)
	mux.HandleFunc("GET /api/quiz/current", quizHandler.CurrentWord)
	mux.HandleFunc("POST /api/quiz/submit", quizHandler.SubmitSpelling)
	mux.HandleFunc("POST /api/quiz/next", quizHandler.Advance)

	// Results and history routes
	mux.HandleFunc("GET /api/results", quizHandler.Results)
	mux.HandleFunc("POST /api/history/clear-request", quizHandler.RequestClear)
	mux.HandleFunc("POST /api/history/clear", quizHandler.ClearHistory)

	// Text-to-speech side channel
	mux.HandleFunc("GET /api/tts", quizHandler.Speak)

	// Wrap with logging middleware
	handler := handlers.Logging(mux)

	// Start server
	addr := ":" + cfg.ServerPort
	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on http://localhost%s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Error during shutdown: %v", err)
	}
}

// openStore creates the configured key-value store backend
func openStore(cfg *config.Config) (storage.KeyValueStore, error) {
	switch strings.ToLower(cfg.StoreType) {
	case "postgres", "postgresql":
		return storage.OpenSQL(storage.NewPostgresDialect(), storage.DialectConfig{URL: cfg.DatabaseURL})
	case "mysql":
		return storage.OpenSQL(storage.NewMySQLDialect(), storage.DialectConfig{URL: cfg.DatabaseURL})
	case "sqlite", "sqlite3", "":
		return storage.OpenSQL(storage.NewSQLiteDialect(), storage.DialectConfig{Path: cfg.DatabasePath})
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := client.Ping(context.Background()).Err(); err != nil {
			return nil, fmt.Errorf("failed to ping redis: %w", err)
		}
		return storage.NewRedisStore(client), nil
	case "memory":
		return storage.NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unsupported store type: %s", cfg.StoreType)
	}
}
