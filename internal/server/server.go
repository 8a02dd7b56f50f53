// Package server sets up the HTTP server, router, and all route definitions.
//
// This is the composition root: the one place where the store, services,
// handlers and middleware are wired together. main.go only reads config and
// calls New/Start; nothing outside this package knows how the pieces connect.
//
// Dependency chain:
//
//	repository.Store (sqlite or memory)
//	  → AuthService / ArticleService
//	    → AuthHandler / ArticleHandler
//	      → chi routes
package server

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/sakif/portfolio-api/internal/auth"
	"github.com/sakif/portfolio-api/internal/handler"
	"github.com/sakif/portfolio-api/internal/middleware"
	"github.com/sakif/portfolio-api/internal/model"
	"github.com/sakif/portfolio-api/internal/repository"
	"github.com/sakif/portfolio-api/internal/repository/memory"
	sqliteRepo "github.com/sakif/portfolio-api/internal/repository/sqlite"
	"github.com/sakif/portfolio-api/internal/service"
)

// Config holds server configuration, assembled from env vars in main.
type Config struct {
	Port      int
	DBPath    string        // ignored when UseMemory is set
	UseMemory bool          // run on the in-memory store instead of sqlite
	JWTSecret string        // HMAC signing secret, min 16 chars
	TokenTTL  time.Duration // 0 = tokens never expire

	// AdminUsername/AdminPassword, when both set, seed an admin account at
	// startup if it doesn't exist yet.
	AdminUsername string
	AdminPassword string
}

// Server owns the router and the store. The store is closed during graceful
// shutdown; for the memory store Close is a no-op.
type Server struct {
	router *chi.Mux
	config Config
	logger *slog.Logger
	store  repository.Store
	closer io.Closer
}

// New wires the whole dependency graph and returns a ready-to-start server.
func New(cfg Config, logger *slog.Logger) (*Server, error) {
	var (
		store  repository.Store
		closer io.Closer
	)
	if cfg.UseMemory {
		store = memory.New()
	} else {
		db, err := sqliteRepo.New(cfg.DBPath)
		if err != nil {
			return nil, fmt.Errorf("opening database: %w", err)
		}
		store = db
		closer = db
	}

	s := &Server{
		router: chi.NewRouter(),
		config: cfg,
		logger: logger,
		store:  store,
		closer: closer,
	}

	if err := s.setupRoutes(); err != nil {
		if closer != nil {
			closer.Close()
		}
		return nil, fmt.Errorf("setting up routes: %w", err)
	}

	if cfg.AdminUsername != "" && cfg.AdminPassword != "" {
		if err := s.seedAdmin(); err != nil {
			if closer != nil {
				closer.Close()
			}
			return nil, fmt.Errorf("seeding admin user: %w", err)
		}
	}

	return s, nil
}

// Handler exposes the configured router. Tests drive the full middleware +
// route stack through this without opening a network listener.
func (s *Server) Handler() http.Handler {
	return s.router
}

// setupRoutes configures middleware and routes.
//
//	POST   /api/auth/register       → register, returns token       (public)
//	POST   /api/auth/login          → login, returns token          (public)
//	GET    /api/articles/published  → published articles            (public)
//	GET    /api/articles            → all articles incl. drafts     (bearer)
//	GET    /api/articles/{id}       → single article                (bearer)
//	POST   /api/articles            → create article                (bearer)
//	PUT    /api/articles/{id}       → partial update                (bearer)
//	DELETE /api/articles/{id}       → delete, idempotent            (bearer)
//	GET    /healthz                 → liveness probe                (public)
//
// Route order matters for chi: /api/articles/published is registered in the
// public group so it never falls through to the authenticated /articles/{id}.
func (s *Server) setupRoutes() error {
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(middleware.Logger(s.logger))

	tokens, err := auth.NewTokenService(s.config.JWTSecret, s.config.TokenTTL)
	if err != nil {
		return fmt.Errorf("creating token service: %w", err)
	}
	passwords := auth.NewPasswordService()

	authService := service.NewAuthService(s.store, tokens, passwords, s.logger)
	articleService := service.NewArticleService(s.store, s.logger)

	authHandler := handler.NewAuthHandler(authService, s.logger)
	articleHandler := handler.NewArticleHandler(articleService, s.logger)

	s.router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	s.router.Route("/api", func(r chi.Router) {
		r.Post("/auth/register", authHandler.HandleRegister)
		r.Post("/auth/login", authHandler.HandleLogin)

		r.Get("/articles/published", articleHandler.HandleListPublished)

		// Everything below the gate requires a valid bearer token.
		r.Group(func(r chi.Router) {
			r.Use(auth.RequireAuth(tokens))

			r.Get("/articles", articleHandler.HandleList)
			r.Get("/articles/{id}", articleHandler.HandleGetByID)
			r.Post("/articles", articleHandler.HandleCreate)
			r.Put("/articles/{id}", articleHandler.HandleUpdate)
			r.Delete("/articles/{id}", articleHandler.HandleDelete)
		})
	})

	return nil
}

// seedAdmin provisions the configured admin account if it doesn't exist.
// Runs once at startup; an existing username is left untouched so restarts
// don't clobber a changed password.
func (s *Server) seedAdmin() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := s.store.GetUserByUsername(ctx, s.config.AdminUsername); err == nil {
		s.logger.Info("admin user already exists", slog.String("username", s.config.AdminUsername))
		return nil
	}

	hash, err := auth.NewPasswordService().Hash(s.config.AdminPassword)
	if err != nil {
		return err
	}

	user := &model.User{
		Username:     s.config.AdminUsername,
		PasswordHash: hash,
	}
	if err := s.store.CreateUser(ctx, user); err != nil {
		return err
	}

	s.logger.Info("admin user created",
		slog.String("userID", user.ID),
		slog.String("username", user.Username),
	)
	return nil
}

// Start runs the HTTP server until SIGINT/SIGTERM, then shuts down
// gracefully: stop accepting connections, give in-flight requests 30 seconds,
// close the store.
func (s *Server) Start() error {
	if s.closer != nil {
		defer s.closer.Close()
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.config.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	serverErrors := make(chan error, 1)

	go func() {
		s.logger.Info("server starting",
			slog.Int("port", s.config.Port),
			slog.Bool("memoryStore", s.config.UseMemory),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}

	case sig := <-quit:
		s.logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped gracefully")
	}

	return nil
}
