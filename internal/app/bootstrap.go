//go:build windows

package app

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/marvintrvl/windowanchor/internal/config"
	"github.com/marvintrvl/windowanchor/internal/display"
	"github.com/marvintrvl/windowanchor/internal/persistence"
	"github.com/marvintrvl/windowanchor/internal/restore"
	"github.com/marvintrvl/windowanchor/internal/snapshot"
	"github.com/marvintrvl/windowanchor/internal/winwindow"
)

// DataDir returns the WindowAnchor application-data directory,
// WindowAnchor under os.UserConfigDir (%AppData% on Windows), creating it
// if necessary.
func DataDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolving user config dir: %w", err)
	}
	dir := filepath.Join(base, "WindowAnchor")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating data dir: %w", err)
	}
	return dir, nil
}

// Bootstrap wires the display, window, snapshot, persistence and restore
// layers into a ready-to-use App. Callers are responsible for closing the
// returned App's Store when done.
func Bootstrap() (*App, error) {
	dataDir, err := DataDir()
	if err != nil {
		return nil, err
	}

	store, err := persistence.Open(dataDir)
	if err != nil {
		return nil, fmt.Errorf("opening workspace store: %w", err)
	}

	logger := slog.New(persistence.NewSlogHandler(store.Logger))

	cfg, err := config.Load(config.DefaultConfigPath(dataDir))
	if err != nil {
		logger.Warn("failed to load config, using defaults", "error", err)
		cfg = config.DefaultConfig()
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolving home dir: %w", err)
	}

	displays := display.NewModel()
	windows := winwindow.NewModel(displays)
	snapEngine := snapshot.NewEngine(displays, windows, homeDir)

	source := &restore.WinWindowSource{Displays: displays, Windows: windows}
	restoreEngine := restore.NewEngine(source, restore.ShellLauncher{}, logger)

	return New(store, snapEngine, restoreEngine, cfg, logger), nil
}
