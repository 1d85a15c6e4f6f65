package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	"github.com/myevents/myevents-go/internal/config"
	"github.com/myevents/myevents-go/internal/crypto"
	"github.com/myevents/myevents-go/internal/handler"
	"github.com/myevents/myevents-go/internal/middleware"
	"github.com/myevents/myevents-go/internal/repository"
	"github.com/myevents/myevents-go/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Warn("no .env file found, using environment variables")
	}

	cfg := config.Load()

	db, err := repository.NewDB(cfg.DatabaseDSN)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := repository.InitSchema(ctx, db); err != nil {
		cancel()
		slog.Error("schema init failed", "error", err)
		os.Exit(1)
	}
	cancel()

	tokens := crypto.NewTokenManager(cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)

	userRepo := repository.NewUserRepository(db)
	eventRepo := repository.NewEventRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	registrationRepo := repository.NewRegistrationRepository(db)

	authService := service.NewAuthService(userRepo, tokens)
	eventService := service.NewEventService(eventRepo)
	sessionService := service.NewSessionService(sessionRepo)
	registrationService := service.NewRegistrationService(registrationRepo, eventRepo)

	authHandler := handler.NewAuthHandler(authService, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	eventHandler := handler.NewEventHandler(eventService)
	sessionHandler := handler.NewSessionHandler(sessionService)
	registrationHandler := handler.NewRegistrationHandler(registrationService)

	authenticate := middleware.Authenticate(tokens, userRepo)

	r := chi.NewRouter()
	r.Use(middleware.Logger)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	// Credential endpoints are rate limited per IP.
	r.Group(func(r chi.Router) {
		r.Use(middleware.RateLimit(5, 10))
		r.Post("/api/v1/users", authHandler.HandleRegister)
		r.Post("/api/v1/login/access-token", authHandler.HandleLogin)
		r.Post("/api/v1/login/refresh-token", authHandler.HandleRefresh)
	})
	r.Post("/api/v1/logout", authHandler.HandleLogout)

	// Public event views.
	r.Get("/api/v1/events/all", eventHandler.HandleListPublished)
	r.Get("/api/v1/event/{event_id}", eventHandler.HandleGet)

	// Authenticated routes.
	r.Group(func(r chi.Router) {
		r.Use(authenticate)

		r.Get("/api/v1/users/me", authHandler.HandleMe)

		r.Post("/api/v1/event", eventHandler.HandleCreate)
		r.Get("/api/v1/events", eventHandler.HandleListOwned)
		r.Patch("/api/v1/event/{event_id}", eventHandler.HandleUpdate)
		r.Delete("/api/v1/event/{event_id}", eventHandler.HandleDelete)

		r.Post("/api/v1/session", sessionHandler.HandleCreate)
		r.Get("/api/v1/session/{session_id}", sessionHandler.HandleGet)
		r.Get("/api/v1/event/{event_id}/sessions", sessionHandler.HandleListByEvent)
		r.Patch("/api/v1/session/{session_id}", sessionHandler.HandleUpdate)
		r.Delete("/api/v1/session/{session_id}", sessionHandler.HandleDelete)

		r.Post("/api/v1/event/{event_id}/register", registrationHandler.HandleRegister)
		r.Get("/api/v1/event/{event_id}/registrations", registrationHandler.HandleListByEvent)
		r.Get("/api/v1/user/registrations", registrationHandler.HandleListByUser)
	})

	// Superuser-only routes.
	r.Group(func(r chi.Router) {
		r.Use(authenticate)
		r.Use(middleware.RequireSuperuser)
		r.Get("/api/v1/users/{user_id}", authHandler.HandleGetUser)
		r.Patch("/api/v1/users/{user_id}/active", authHandler.HandleSetActive)
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		slog.Info("server starting", "port", cfg.Port, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped")
}
