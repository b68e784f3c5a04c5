// Package daemon serves session configuration for server deployments, where
// clients do not hold the provider in their own session records.
package daemon

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"sidebar/internal/logging"
	"sidebar/internal/store"
)

type Options struct {
	Address string
	Token   string
	Version string
	Repo    store.Repository
	Logger  logging.Logger
}

func NewRouter(opts Options) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(loggingMiddleware(opts.Logger))
	router.Use(tokenAuthMiddleware(opts.Token))
	api := &API{
		Version:  opts.Version,
		Sessions: opts.Repo.Sessions(),
		Logger:   opts.Logger,
	}
	api.RegisterRoutes(router)
	return router
}

// Run serves until ctx is cancelled and then shuts down gracefully.
func Run(ctx context.Context, opts Options) error {
	if opts.Repo == nil {
		return errors.New("daemon: repository is required")
	}
	if strings.TrimSpace(opts.Address) == "" {
		return errors.New("daemon: address is required")
	}
	if opts.Logger == nil {
		opts.Logger = logging.Nop()
	}
	gin.SetMode(gin.ReleaseMode)
	srv := &http.Server{
		Addr:              opts.Address,
		Handler:           NewRouter(opts),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		opts.Logger.Info("daemon_listening", logging.F("address", opts.Address))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok && err != nil {
			return fmt.Errorf("daemon: %w", err)
		}
		return nil
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("daemon: shutdown: %w", err)
	}
	opts.Logger.Info("daemon_stopped")
	return nil
}
