package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/pop-arcade/internal/api"
	"github.com/vovakirdan/pop-arcade/internal/history"
	"github.com/vovakirdan/pop-arcade/internal/platform/tui"
)

var flagAPIAddr string

var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Serve run history over HTTP",
	Long: `Start a read-only HTTP API over the run history and lifetime scores.

Endpoints:
  GET /health
  GET /api/modes
  GET /api/runs?mode=&limit=
  GET /api/runs/:id
  GET /api/runs/:id/card.png
  GET /api/modes/:mode/latest
  GET /api/modes/:mode/best
  GET /api/modes/:mode/scores?limit=
  GET /api/stats

Examples:
  popalot api
  popalot api --addr 127.0.0.1:9000`,
	RunE: runAPI,
}

func init() {
	apiCmd.Flags().StringVar(&flagAPIAddr, "addr", ":8080", "HTTP listen address")
}

// liveRuns rereads the stored list on every call so runs saved by other
// processes show up.
type liveRuns struct {
	store *history.Store
}

func (l liveRuns) Runs() []history.Record {
	l.store.Reload()
	return l.store.Runs()
}

func newAPIRouter(svc tui.Services, logger *log.Logger) *gin.Engine {
	cfg := api.Config{
		Runs:   liveRuns{store: svc.History},
		Logger: logger,
	}
	if svc.Store != nil {
		cfg.Lifetime = svc.Store
	}
	return api.NewRouter(cfg)
}

func runAPI(_ *cobra.Command, _ []string) error {
	logger, closeLog := newLogger(false)
	defer closeLog()

	svc, cleanup := openServices(logger, false)
	defer cleanup()

	server := &http.Server{
		Addr:              flagAPIAddr,
		Handler:           newAPIRouter(svc, logger),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting HTTP API", "address", flagAPIAddr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("api: %w", err)
		}
		return nil
	case <-done:
	}

	logger.Info("shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(ctx)
}
