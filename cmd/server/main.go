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

	"github.com/Netflix/go-env"
	"github.com/dgraph-io/badger/v4"
	"github.com/joho/godotenv"

	"github.com/imanolof29/chat/api"
	"github.com/imanolof29/chat/auth"
	"github.com/imanolof29/chat/broker"
	"github.com/imanolof29/chat/logs"
	"github.com/imanolof29/chat/moderation"
	"github.com/imanolof29/chat/observability"
	"github.com/imanolof29/chat/repositories"
	"github.com/imanolof29/chat/services"
	"github.com/imanolof29/chat/workers"
	"github.com/imanolof29/chat/ws"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		os.Exit(1)
	}
}

// run initializes all components, manages the server lifecycle, and
// centralizes error reporting so that every defer (database close,
// supervisor stop) executes before the process exits.
func run() error {
	// 1. Configuration & Logger
	_ = godotenv.Load()
	var config Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	log := logs.FromLevel(config.LogLevel)

	// 2. Database (BadgerDB)
	db, err := badger.Open(badger.DefaultOptions(config.BadgerFilepath).
		WithLoggingLevel(badger.WARNING))
	if err != nil {
		return fmt.Errorf("database opening failed: %w", err)
	}
	defer func() {
		log.Info("Closing BadgerDB...")
		_ = db.Close()
	}()

	// 3. Repositories & Domain Services
	userRepository := repositories.NewUserRepository(db)
	conversationRepository := repositories.NewConversationRepository(db)
	messageRepository := repositories.NewMessageRepository(db, log)

	tokenService := auth.NewTokenService(config.AuthTokenSecret, config.AuthTokenDuration)
	authService := services.NewAuthService(userRepository, tokenService)
	chatService := services.NewChatService(conversationRepository, messageRepository)

	// 4. Moderation (optional)
	var filter broker.ContentFilter
	if config.ModerationWordsPath != "" {
		replacement := '*'
		if runes := []rune(config.ModerationCharReplacement); len(runes) > 0 {
			replacement = runes[0]
		}
		moderator, err := moderation.NewModeratorFromFile(
			config.ModerationWordsPath, replacement)
		if err != nil {
			return fmt.Errorf("loading moderation words: %w", err)
		}
		filter = moderator
		log.Info("Moderation enabled", "path", config.ModerationWordsPath)
	}

	// 5. Broker
	registry := broker.NewConnectionRegistry()
	presence := broker.NewRoomPresence()
	sessions := broker.NewSessionTable()
	authenticator := broker.NewAuthenticator(tokenService)
	broadcaster := broker.NewBroadcaster(log, registry, presence)
	relay := broker.NewMessageRelay(log, conversationRepository, userRepository,
		messageRepository, filter)
	router := broker.NewEventRouter(log, authenticator, sessions, registry,
		presence, relay, broadcaster, config.HistoryLimit)

	// 6. Background Workers
	collector := observability.NewCollector()
	sup := workers.NewSupervisor(log, config.RestartInterval).
		Add(workers.NewBadgerGC(db, log, config.GCInterval)).
		Add(workers.NewHealthMonitor(log, collector, config.HealthInterval))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go sup.Run(ctx)

	// 7. HTTP & WebSocket Server
	wsHandler := ws.NewHandler(log, router, collector)
	apiHandler := api.NewHandler(log, authService, chatService, tokenService)
	server := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", config.Host, config.Port),
		Handler: api.NewRouter(apiHandler, wsHandler),
	}

	errChan := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", "address", server.Addr, "at", time.Now().UTC())
		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("http server error: %w", err)
		}
	}()

	// 8. Wait for Stop or Error
	select {
	case <-ctx.Done():
		log.Info("Shutting down gracefully...")
	case err := <-errChan:
		return err
	}

	// 9. Final Cleanup
	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Warn("HTTP shutdown incomplete", "err", err)
	}
	sup.Stop()
	log.Info("Program stopped cleanly")

	return nil
}
