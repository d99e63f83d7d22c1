// File: cmd/server/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"

	"github.com/iyunix/go-chat/internal/auth"
	"github.com/iyunix/go-chat/internal/config"
	"github.com/iyunix/go-chat/internal/database"
	"github.com/iyunix/go-chat/internal/handlers"
	"github.com/iyunix/go-chat/internal/logger"
	"github.com/iyunix/go-chat/internal/middleware"
	"github.com/iyunix/go-chat/internal/render"
	"github.com/iyunix/go-chat/internal/repository/message"
	"github.com/iyunix/go-chat/internal/repository/session"
	"github.com/iyunix/go-chat/internal/repository/unitofwork"
	"github.com/iyunix/go-chat/internal/rpc"
	"github.com/iyunix/go-chat/internal/services/ai"
	"github.com/iyunix/go-chat/internal/services/chat"
)

// devAuthSecret signs tokens in development when AUTH_SECRET is unset.
// It matches the chatcli dev-token default.
const devAuthSecret = "go-chat-dev-secret"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "server: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	zl := logger.New(logger.Options{
		Service:    "go_chat",
		Level:      cfg.LogLevel,
		Production: cfg.IsProduction(),
		FilePath:   cfg.LogFile,
	})
	defer func() { _ = zl.Sync() }()
	var log logger.Logger = zl

	// --- Database ---
	db, err := database.Open(database.Options{
		URL:     cfg.DatabaseURL,
		Path:    cfg.DatabasePath,
		Verbose: cfg.LogLevel == "DEBUG",
	})
	if err != nil {
		return err
	}
	if err := database.Migrate(db); err != nil {
		return err
	}

	// --- Repositories ---
	sessionRepo := session.NewSessionRepository(db, log)
	messageRepo := message.NewMessageRepository(db, log)
	uowFactory := unitofwork.NewFactory(db, log)

	// --- Completion provider ---
	aiCfg := ai.DefaultConfig()
	aiCfg.Provider = cfg.AIProvider
	aiCfg.GeminiTextKey = cfg.GeminiTextKey
	aiCfg.GeminiImageKey = cfg.GeminiImageKey
	aiCfg.GeminiBaseURL = cfg.GeminiBaseURL
	aiCfg.GeminiTextModel = cfg.GeminiTextModel
	aiCfg.GeminiImageModel = cfg.GeminiImageModel
	aiCfg.OpenAIKey = cfg.OpenAIKey
	aiCfg.OpenAIBaseURL = cfg.OpenAIBaseURL
	aiCfg.OpenAITextModel = cfg.OpenAITextModel
	aiCfg.OpenAIImageModel = cfg.OpenAIImageModel
	aiCfg.HTTPTimeout = cfg.CompletionTimeout + 5*time.Second
	provider, err := ai.NewProvider(aiCfg)
	if err != nil {
		return err
	}

	// --- Services ---
	chatCfg := chat.DefaultConfig()
	chatCfg.CompletionTimeout = cfg.CompletionTimeout
	if err := chatCfg.Validate(); err != nil {
		return err
	}
	chatService := chat.NewChatService(chatCfg, sessionRepo, messageRepo, uowFactory, provider, log)

	// --- Identity ---
	secret := cfg.AuthSecret
	if secret == "" {
		log.Warn("AUTH_SECRET not set, using the development signing secret")
		secret = devAuthSecret
	}
	var verifierOpts []auth.VerifierOption
	if cfg.AuthIssuer != "" {
		verifierOpts = append(verifierOpts, auth.WithIssuer(cfg.AuthIssuer))
	}
	if cfg.AuthAudience != "" {
		verifierOpts = append(verifierOpts, auth.WithAudience(cfg.AuthAudience))
	}
	verifier := auth.NewVerifier([]byte(secret), verifierOpts...)

	// --- Router ---
	r := mux.NewRouter()
	r.Use(middleware.RecoverPanic(log))
	r.Use(middleware.Logging(log))
	r.Use(middleware.Identity(verifier, cfg.AuthCookieName, log))

	healthHandler := handlers.NewHealthHandler(db, provider.Name())
	logHandler := handlers.NewLogHandler(log)
	r.HandleFunc("/health", healthHandler.Health).Methods(http.MethodGet)
	r.HandleFunc("/api/log", logHandler.LogClientEvent).Methods(http.MethodPost)

	rpc.NewServer(chatService, render.NewMarkdown(), log).RegisterRoutes(r)

	// --- Server ---
	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           middleware.CORS(cfg.CORSOrigins)(r),
		ReadHeaderTimeout: 10 * time.Second,
		// Generation calls can take up to the completion timeout.
		WriteTimeout: cfg.CompletionTimeout + 30*time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server starting",
			"addr", srv.Addr,
			"environment", cfg.Environment,
			"provider", provider.Name(),
			"database", dbKind(cfg))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// --- Graceful Shutdown ---
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		log.Error("server failed", "error", err)
		return err
	case <-stop:
	}

	log.Info("shutting down server gracefully")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("server shutdown failed", "error", err)
		return err
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	log.Info("server stopped")
	return nil
}

func dbKind(cfg *config.Config) string {
	if cfg.DatabaseURL != "" {
		return "postgres"
	}
	return "sqlite:" + cfg.DatabasePath
}
