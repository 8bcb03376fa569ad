package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/pop-arcade/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
	flagServeHTTP   string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the Pop-a-Lot SSH server",
	Long: `Start an SSH server that allows users to connect and play.

Each SSH connection gets its own session with the mode picker menu.
Runs are stored per-server (all users share the same history).
Sound is never played on the server.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.popalot/host_key

Examples:
  popalot serve                           # Listen on :23234 with auto-generated key
  popalot serve --ssh :2222               # Listen on port 2222
  popalot serve --host-key ./my_host_key  # Use specific host key
  popalot serve --http :8080              # Also serve the HTTP API

Users can connect with:
  ssh localhost -p 23234`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
	serveCmd.Flags().StringVar(&flagServeHTTP, "http", "", "Also serve the HTTP API on this address")
}

func runServe(cmd *cobra.Command, _ []string) error {
	logger, closeLog := newLogger(false)
	defer closeLog()

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	if err := setupConfig(ctx, logger, true); err != nil {
		return err
	}

	svc, cleanup := openServices(logger, false)
	defer cleanup()

	cfg := tui.SSHServerConfig{
		Address:     flagSSHAddr,
		HostKeyPath: flagHostKey,
		TickRate:    flagFPS,
		IdleTimeout: time.Duration(flagIdleTimeout) * time.Minute,
	}

	server, err := tui.NewSSHServer(cfg, svc)
	if err != nil {
		return err
	}

	if flagServeHTTP != "" {
		httpServer := &http.Server{
			Addr:              flagServeHTTP,
			Handler:           newAPIRouter(svc, logger),
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			logger.Info("starting HTTP API", "address", flagServeHTTP)
			if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("HTTP API stopped", "error", err)
			}
		}()
		defer httpServer.Close()
	}

	fmt.Printf("Starting Pop-a-Lot SSH server on %s\n", cfg.Address)
	fmt.Println("Press Ctrl+C to stop")

	return server.ListenAndServe()
}
