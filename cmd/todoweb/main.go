package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"todoweb/internal/server"
	"todoweb/internal/storage/boltdb"
	"todoweb/internal/storage/sqlite"
	"todoweb/internal/util"
)

func main() {
	addrFlag := flag.String("addr", util.EnvOrDefault("TODO_ADDR", ":7000"), "HTTP listen address")
	dbFlag := flag.String("db", util.EnvOrDefault("TODO_DB_PATH", "data/todo.db"), "Path to sqlite database file")
	sessionsFlag := flag.String("sessions", util.EnvOrDefault("TODO_SESSION_DB_PATH", "data/sessions.db"), "Path to session database file")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	logger.Info("todo web application starting")

	// The session secret keys the HMAC under which tokens are stored.
	// There is no usable fallback, so a missing secret stops the process.
	secret := os.Getenv("TODO_SESSION_SECRET")
	if secret == "" {
		logger.Error("TODO_SESSION_SECRET is not set; refusing to start")
		os.Exit(1)
	}

	store, err := sqlite.Open(*dbFlag, logger)
	if err != nil {
		logger.Error("unable to open database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer store.Close()

	sessions, err := boltdb.Open(*sessionsFlag, []byte(secret), logger)
	if err != nil {
		logger.Error("unable to open session store", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer sessions.Close()

	srv := server.New(store, store, sessions, logger)

	httpServer := &http.Server{
		Addr:    *addrFlag,
		Handler: srv.Engine(),
	}

	go func() {
		logger.Info("starting server", slog.String("addr", httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server stopped unexpectedly", slog.String("error", err.Error()))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error("failed to shutdown server", slog.String("error", err.Error()))
	}

	logger.Info("server stopped")
}
