package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rohits-web03/folio/internal/api"
	"github.com/rohits-web03/folio/internal/api/handlers"
	"github.com/rohits-web03/folio/internal/api/middleware"
	"github.com/rohits-web03/folio/internal/api/services"
	"github.com/rohits-web03/folio/internal/config"
	"github.com/rohits-web03/folio/internal/repositories"
	"golang.org/x/sync/errgroup"
)

// @title Folio API
// @version 1.0
// @description Portfolio projects, contact messages and admin API.
// @host localhost:8080
// @BasePath /
func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg := config.Envs

	// Connect to database
	db, err := repositories.ConnectDatabase(cfg)
	if err != nil {
		return err
	}

	store := repositories.NewDatabaseStorage(db)
	sessions := repositories.NewSessionStore(db)
	tokens := services.NewTokenService(cfg.JWTSecret)

	auth := &middleware.Auth{Tokens: tokens, Sessions: sessions, Users: store}
	h := &handlers.Handler{
		Store:    store,
		Sessions: sessions,
		Auth:     auth,
		Google:   services.NewGoogleOAuthConfig(cfg.Google),
		Options: handlers.Options{
			SessionTTL:        cfg.SessionTTL,
			SecureCookies:     cfg.IsProduction(),
			AdminEmails:       cfg.AdminEmails,
			AdminEmail:        cfg.AdminEmail,
			AdminPasswordHash: cfg.AdminPasswordHash,
		},
	}
	if cfg.R2.Enabled() {
		h.Images = repositories.NewR2ImageStore(cfg.R2)
	} else {
		log.Println("R2 not configured, image uploads disabled")
	}
	if h.Google == nil {
		log.Println("Google OAuth not configured, Google login disabled")
	}

	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Port),
		Handler: api.SetupRouter(h, cfg.CorsConfig()),
		// Timeouts prevent resource exhaustion from slow clients
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Printf("Starting Folio server on port: %s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("could not listen on port %s: %w", cfg.Port, err)
		}
		return nil
	})

	g.Go(func() error {
		return sessions.RunPurge(ctx, cfg.SessionPurgeInterval)
	})

	g.Go(func() error {
		<-ctx.Done()
		log.Println("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
