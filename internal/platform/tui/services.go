package tui

import (
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/pop-arcade/internal/audio"
	"github.com/vovakirdan/pop-arcade/internal/commentary"
	"github.com/vovakirdan/pop-arcade/internal/history"
	"github.com/vovakirdan/pop-arcade/internal/storage"
)

// Services are the shared collaborators of every screen. Any field except
// Logger may be nil; the matching feature is then skipped.
type Services struct {
	Store      *storage.Store
	History    *history.Store
	Commentary *commentary.Generator
	Audio      *audio.Player
	Logger     *log.Logger

	// CardDir is where Ctrl+S writes PNG cards; empty means ~/.popalot/cards.
	CardDir string
}

func (s Services) logger() *log.Logger {
	if s.Logger == nil {
		return log.Default()
	}
	return s.Logger
}

func (s Services) cardDir() string {
	if s.CardDir != "" {
		return s.CardDir
	}
	return filepath.Join(DataDir(), "cards")
}

// DataDir returns ~/.popalot, or .popalot when the home directory is unknown.
func DataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".popalot"
	}
	return filepath.Join(home, ".popalot")
}
