// Package server assembles the HTTP surface of the sync server and runs it.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/iudanet/focuskeeper/internal/config"
	"github.com/iudanet/focuskeeper/internal/server/apikey"
	"github.com/iudanet/focuskeeper/internal/server/handlers"
	"github.com/iudanet/focuskeeper/internal/server/middleware"
	"github.com/iudanet/focuskeeper/internal/server/storage"
	"github.com/iudanet/focuskeeper/internal/server/storage/sqlite"
	"github.com/iudanet/focuskeeper/pkg/api"
)

// Таймауты HTTP сервера
const (
	readHeaderTimeout = 10 * time.Second
	idleTimeout       = 2 * time.Minute
)

// Options собирает зависимости HTTP обработчика
type Options struct {
	Logger  *slog.Logger
	Storage storage.SyncStorage
	Keys    middleware.KeyValidator
	Limiter *middleware.RateLimiter // nil - без ограничения частоты
	Version string
}

// NewHandler builds the routes and the middleware chain:
// recovery, request logging, rate limit, then API key auth on the sync routes.
func NewHandler(opts Options) http.Handler {
	syncHandler := handlers.NewSyncHandler(opts.Logger, opts.Storage)
	healthHandler := handlers.NewHealthHandler(opts.Logger, opts.Storage, opts.Version)
	auth := middleware.APIKeyMiddleware(opts.Logger, opts.Keys)

	mux := http.NewServeMux()
	mux.HandleFunc("GET "+api.PathHealth, healthHandler.Health)
	mux.Handle("POST "+api.PathSync, auth(http.HandlerFunc(syncHandler.Push)))
	mux.Handle("GET "+api.PathPull, auth(http.HandlerFunc(syncHandler.Pull)))

	var h http.Handler = mux
	if opts.Limiter != nil {
		h = middleware.RateLimitMiddleware(opts.Limiter, opts.Logger)(h)
	}
	h = middleware.LoggingWithSkip(opts.Logger, []string{api.PathHealth})(h)
	h = middleware.RecoveryMiddleware(opts.Logger)(h)

	return h
}

// Run opens the database, listens on cfg.Addr and serves until ctx is cancelled.
func Run(ctx context.Context, cfg *config.ServerConfig, logger *slog.Logger, version string) error {
	store, err := sqlite.New(ctx, cfg.DBPath)
	if err != nil {
		return fmt.Errorf("failed to open storage: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error("Failed to close database", "error", err)
		}
	}()

	var limiter *middleware.RateLimiter
	if cfg.RateLimit > 0 {
		limiter = middleware.NewRateLimiter(cfg.RateLimit, cfg.RateWindow, logger)
		defer limiter.Stop()
	}

	handler := NewHandler(Options{
		Logger:  logger,
		Storage: store,
		Keys:    apikey.New(cfg.APIKeySecret),
		Limiter: limiter,
		Version: version,
	})

	ln, err := net.Listen("tcp", cfg.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", cfg.Addr, err)
	}

	return Serve(ctx, ln, handler, cfg.ShutdownTimeout, logger)
}

// Serve serves handler on ln until ctx is cancelled, then shuts down gracefully.
func Serve(ctx context.Context, ln net.Listener, handler http.Handler, shutdownTimeout time.Duration, logger *slog.Logger) error {
	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: readHeaderTimeout,
		IdleTimeout:       idleTimeout,
		ErrorLog:          slog.NewLogLogger(logger.Handler(), slog.LevelWarn),
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("Server listening", "addr", ln.Addr().String())
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Server stopping")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	})

	return g.Wait()
}
