package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nemopss/pennywise/backend/api"
	"github.com/nemopss/pennywise/backend/auth"
	"github.com/nemopss/pennywise/backend/config"
	"github.com/nemopss/pennywise/backend/db"
	"github.com/nemopss/pennywise/backend/events"
	"github.com/nemopss/pennywise/backend/logger"
)

// @title PennyWise API
// @version 1.0
// @description Personal finance tracking: expenses, daily totals and savings goals.
// @BasePath /
// @SecurityDefinitions.apikey ApiKeyAuth
// @In header
// @Name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	level, _ := cfg.SlogLevel()
	l := logger.New(os.Stdout, level, cfg.LogFormat)
	slog.SetDefault(l)

	if err := run(cfg, l); err != nil {
		l.Error("server failed", logger.FieldError, err)
		os.Exit(1)
	}
	l.Info("server stopped gracefully")
}

func run(cfg *config.Config, l *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	gin.SetMode(cfg.GinMode)

	storage, err := db.NewStorage(cfg.DBDriver, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer storage.Close()
	l.Info("database ready", "driver", cfg.DBDriver)

	verifier, err := newVerifier(ctx, cfg)
	if err != nil {
		return err
	}

	hasher, err := auth.NewPasswordHasher(cfg.PasswordHasher)
	if err != nil {
		return err
	}

	publisher, err := newPublisher(cfg)
	if err != nil {
		return err
	}
	defer publisher.Close()

	handler := api.NewHandler(storage, verifier, hasher, publisher)

	srv := &http.Server{
		Addr:           ":" + cfg.Port,
		Handler:        api.NewRouter(handler, l),
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 16,
	}

	errCh := make(chan error, 1)
	go func() {
		l.Info("starting PennyWise API", "port", cfg.Port, "auth_provider", cfg.AuthProvider)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
		l.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func newVerifier(ctx context.Context, cfg *config.Config) (auth.Verifier, error) {
	if cfg.AuthProvider == "firebase" {
		return auth.NewFirebaseVerifier(ctx, cfg.FirebaseCredentialsFile, cfg.FirebaseProjectID)
	}
	return auth.NewJWTVerifier(cfg.JWTSecret, cfg.JWTIssuer)
}

func newPublisher(cfg *config.Config) (events.Publisher, error) {
	if cfg.AMQPURL == "" {
		return events.NopPublisher{}, nil
	}
	return events.NewAMQPPublisher(cfg.AMQPURL, cfg.AMQPExchange)
}
