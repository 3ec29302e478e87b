package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/example/kazlearn/internal/api"
	"github.com/example/kazlearn/internal/auth"
	"github.com/example/kazlearn/internal/config"
	"github.com/example/kazlearn/internal/database"
	"github.com/example/kazlearn/internal/excel"
	"github.com/example/kazlearn/internal/learning"
	"github.com/example/kazlearn/internal/notifier"
	"github.com/example/kazlearn/internal/scheduler"
)

func main() {
	cfg := config.Load()
	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET environment variable is not set")
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Repositories
	users := database.NewUserRepository(db)
	sessions := database.NewSessionRepository(db)
	languages := database.NewLanguageRepository(db)
	categories := database.NewCategoryRepository(db)
	lookups := database.NewLookupRepository(db)
	words := database.NewWordRepository(db)
	sentences := database.NewSentenceRepository(db)
	progress := database.NewProgressRepository(db)
	learningSessions := database.NewLearningSessionRepository(db)
	streaks := database.NewStreakRepository(db)
	goals := database.NewGoalRepository(db)

	engine := learning.NewEngine(progress, words)

	// Auth
	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.AccessTokenTTL)
	middleware := auth.NewMiddleware(tokens, users, sessions, cfg.RefreshThreshold)

	// Background jobs; reminders only when a bot token is configured
	var tg scheduler.Notifier
	if cfg.TelegramBotToken != "" {
		telegram, err := notifier.NewTelegram(cfg.TelegramBotToken)
		if err != nil {
			log.Printf("Telegram notifier disabled: %v", err)
		} else {
			tg = telegram
		}
	}
	jobs := scheduler.New(tg, users, sessions, engine, cfg.NotificationStartHour, cfg.NotificationEndHour)
	jobs.Start()
	defer jobs.Stop()

	importer := excel.NewImporter(words, categories, languages, lookups)

	router := api.NewRouter(api.Handlers{
		Auth:     api.NewAuthHandler(users, sessions, languages, tokens),
		Words:    api.NewWordHandler(words, categories, languages, lookups, sentences),
		Learning: api.NewLearningHandler(engine, progress, learningSessions, streaks, goals, words),
		Import:   api.NewImportHandler(importer),
	}, middleware)

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Printf("Server listening on :%s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Wait for a termination signal, then drain in-flight requests
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	sig := <-sigChan
	log.Printf("Received signal: %v, shutting down", sig)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error during shutdown: %v", err)
	}
	log.Println("Server stopped")
}
