package config

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

// Live holds the current configuration for long-running commands and swaps
// it when the backing file changes. Runs already in progress keep the
// snapshot they started with.
type Live struct {
	mu  sync.RWMutex
	cfg PopConfig
}

// NewLive wraps an initial configuration.
func NewLive(cfg PopConfig) *Live {
	return &Live{cfg: cfg}
}

// Get returns the current configuration.
func (l *Live) Get() PopConfig {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.cfg
}

// Set replaces the current configuration.
func (l *Live) Set(cfg PopConfig) {
	l.mu.Lock()
	l.cfg = cfg
	l.mu.Unlock()
}

// Watch reloads path whenever it is written or recreated, until ctx is done.
// Invalid files are logged and the previous configuration is kept.
// The parent directory is watched so editors that save by rename are seen.
func (l *Live) Watch(ctx context.Context, path string, logger *log.Logger) error {
	if logger == nil {
		logger = log.Default()
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("config: cannot create watcher: %w", err)
	}
	defer watcher.Close()

	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("config: cannot resolve %s: %w", path, err)
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("config: cannot watch %s: %w", filepath.Dir(abs), err)
	}
	logger.Debug("watching config", "path", abs)

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != abs {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			cfg, err := readPop(abs)
			if err == nil {
				err = cfg.Validate()
			}
			if err != nil {
				logger.Warn("config reload rejected", "path", abs, "error", err)
				continue
			}
			l.Set(cfg)
			logger.Info("config reloaded", "path", abs, "modes", len(cfg.Modes))
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error("config watcher", "error", err)
		}
	}
}
