// Command createadmin provisions an admin account in the database.
//
// One-shot tool for first-time setup:
//
//	ADMIN_USERNAME=admin ADMIN_PASSWORD=... go run ./cmd/createadmin
//
// If the username already exists, nothing is changed. The server can do the
// same seeding itself via the same env vars; this exists for setups where
// the operator wants to provision before ever starting the server.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/sakif/portfolio-api/internal/auth"
	"github.com/sakif/portfolio-api/internal/model"
	"github.com/sakif/portfolio-api/internal/repository/sqlite"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	username := os.Getenv("ADMIN_USERNAME")
	if username == "" {
		username = "admin"
	}
	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		logger.Error("ADMIN_PASSWORD must be set")
		os.Exit(1)
	}

	dbPath := "data/portfolio.db"
	if envDB := os.Getenv("DB_PATH"); envDB != "" {
		dbPath = envDB
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		logger.Error("failed to create database directory", slog.String("error", err.Error()))
		os.Exit(1)
	}

	db, err := sqlite.New(dbPath)
	if err != nil {
		logger.Error("failed to open database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer db.Close()

	ctx := context.Background()

	if _, err := db.GetUserByUsername(ctx, username); err == nil {
		fmt.Println("Admin user already exists!")
		return
	}

	hash, err := auth.NewPasswordService().Hash(password)
	if err != nil {
		logger.Error("failed to hash password", slog.String("error", err.Error()))
		os.Exit(1)
	}

	user := &model.User{
		Username:     username,
		PasswordHash: hash,
	}
	if err := db.CreateUser(ctx, user); err != nil {
		logger.Error("failed to create admin user", slog.String("error", err.Error()))
		os.Exit(1)
	}

	fmt.Println("Admin user created successfully!")
	fmt.Println("Username:", user.Username)
	fmt.Println("User ID: ", user.ID)
}
