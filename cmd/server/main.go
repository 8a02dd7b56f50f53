// Package main is the entry point for the portfolio API server.
//
// main stays minimal: read configuration from the environment, build the
// logger, hand everything to internal/server. All actual wiring lives there.
package main

import (
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/sakif/portfolio-api/internal/server"
)

// defaultJWTSecret is the insecure dev fallback used when JWT_SECRET is
// unset. It exists so `go run ./cmd/server` works out of the box; any real
// deployment must override it, and the server logs a warning when it's in use.
const defaultJWTSecret = "portfolio-secret-key-change-in-production"

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))

	port := 8080
	if portStr := os.Getenv("PORT"); portStr != "" {
		var err error
		port, err = strconv.Atoi(portStr)
		if err != nil {
			logger.Error("invalid PORT value", slog.String("value", portStr))
			os.Exit(1)
		}
	}

	dbPath := "data/portfolio.db"
	if envDB := os.Getenv("DB_PATH"); envDB != "" {
		dbPath = envDB
	}

	// STORE=memory runs without a database file — everything is lost on
	// restart. Useful for demos and local frontend work.
	useMemory := os.Getenv("STORE") == "memory"

	if !useMemory {
		// Create the data directory if needed (like `mkdir -p`).
		if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
			logger.Error("failed to create database directory",
				slog.String("dir", filepath.Dir(dbPath)),
				slog.String("error", err.Error()),
			)
			os.Exit(1)
		}
	}

	// JWT_SECRET should be long random data: JWT_SECRET=$(openssl rand -hex 32)
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		logger.Warn("JWT_SECRET not set — using the insecure built-in default; do not do this in production")
		jwtSecret = defaultJWTSecret
	}

	// TOKEN_TTL makes issued tokens expire (e.g. "24h"). Unset or zero keeps
	// the historic behaviour: tokens are valid until the secret rotates.
	var tokenTTL time.Duration
	if ttlStr := os.Getenv("TOKEN_TTL"); ttlStr != "" {
		var err error
		tokenTTL, err = time.ParseDuration(ttlStr)
		if err != nil {
			logger.Error("invalid TOKEN_TTL value", slog.String("value", ttlStr))
			os.Exit(1)
		}
	}

	cfg := server.Config{
		Port:          port,
		DBPath:        dbPath,
		UseMemory:     useMemory,
		JWTSecret:     jwtSecret,
		TokenTTL:      tokenTTL,
		AdminUsername: os.Getenv("ADMIN_USERNAME"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
	}

	srv, err := server.New(cfg, logger)
	if err != nil {
		logger.Error("failed to create server", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Start blocks until the server is shut down (Ctrl+C or SIGTERM).
	if err := srv.Start(); err != nil {
		logger.Error("server error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
