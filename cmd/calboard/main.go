package main

import (
	"context"
	"database/sql"
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/dukerupert/calboard/internal/config"
	"github.com/dukerupert/calboard/internal/database"
	"github.com/dukerupert/calboard/internal/logging"
	"github.com/dukerupert/calboard/internal/server"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("failed to load .env", "error", err)
	}

	cfg, err := config.Load(os.Getenv("CALBOARD_CONFIG"), os.Getenv)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := logging.Setup(cfg.LogLevel)

	var db *sql.DB
	if cfg.Persist {
		db, err = database.Open(cfg.DBPath)
		if err != nil {
			logger.Error("failed to open database", "path", cfg.DBPath, "error", err)
			os.Exit(1)
		}
		defer db.Close()
	}

	srv := server.New(cfg, db, logger)

	httpServer := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      srv.Router(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logger.Info("calboard running", "addr", "http://localhost:"+cfg.Port, "mode", cfg.Mode, "persist", cfg.Persist)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error("shutdown error", "error", err)
	}
}
