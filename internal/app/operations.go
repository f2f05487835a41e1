// Package app wires the core engines (snapshot, restore, persistence)
// into a single Operations implementation shared by the CLI, the TUI
// and the MCP server so none of the three reimplements this glue.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sys/windows"

	"github.com/marvintrvl/windowanchor/internal/config"
	"github.com/marvintrvl/windowanchor/internal/model"
	"github.com/marvintrvl/windowanchor/internal/persistence"
	"github.com/marvintrvl/windowanchor/internal/restore"
	"github.com/marvintrvl/windowanchor/internal/snapshot"
)

// Snapshotter is the capture entry point, satisfied by *snapshot.Engine.
type Snapshotter interface {
	TakeSnapshot(name string, saveFiles bool, selected []windows.HWND, sink snapshot.ProgressSink) (model.WorkspaceSnapshot, error)
}

// App implements mcpserver.Operations and backs the CLI and TUI with the
// same save/list/restore/switch/delete behavior.
type App struct {
	Store         *persistence.Store
	Snapshot      Snapshotter
	RestoreEngine *restore.Engine
	Config        *config.Config
	Logger        *slog.Logger
}

// New constructs an App from its already-wired dependencies.
func New(store *persistence.Store, snap Snapshotter, restoreEngine *restore.Engine, cfg *config.Config, logger *slog.Logger) *App {
	return &App{Store: store, Snapshot: snap, RestoreEngine: restoreEngine, Config: cfg, Logger: logger}
}

// Save captures the current desktop and persists it under name.
func (a *App) Save(ctx context.Context, name string, saveFiles bool) (model.WorkspaceSnapshot, error) {
	snap, err := a.Snapshot.TakeSnapshot(name, saveFiles, nil, nil)
	if err != nil {
		return model.WorkspaceSnapshot{}, fmt.Errorf("taking snapshot: %w", err)
	}
	if err := a.Store.Save(snap); err != nil {
		return model.WorkspaceSnapshot{}, fmt.Errorf("saving workspace: %w", err)
	}
	if a.Logger != nil {
		a.Logger.Info("workspace saved", "name", name, "entries", len(snap.Entries))
	}
	return snap, nil
}

// List returns every saved workspace's name.
func (a *App) List(ctx context.Context) ([]string, error) {
	return a.Store.List()
}

// Restore loads the named workspace and runs it through RestoreEngine.
func (a *App) Restore(ctx context.Context, name string) (int, int, error) {
	snap, err := a.Store.Load(name)
	if err != nil {
		return 0, 0, fmt.Errorf("loading workspace %q: %w", name, err)
	}
	result, err := a.RestoreEngine.Restore(ctx, snap.Entries)
	if err != nil {
		return result.MatchedCount, result.TotalCount, fmt.Errorf("restoring %q: %w", name, err)
	}
	return result.MatchedCount, result.TotalCount, nil
}

// Switch gracefully closes the current desktop and restores the named
// workspace in its place.
func (a *App) Switch(ctx context.Context, name string) (string, error) {
	snap, err := a.Store.Load(name)
	if err != nil {
		return "", fmt.Errorf("loading workspace %q: %w", name, err)
	}
	status, result, err := a.RestoreEngine.SwitchWorkspaceAsync(ctx, snap, nil)
	if err != nil {
		return "", fmt.Errorf("switching to %q: %w", name, err)
	}
	return fmt.Sprintf("%s: matched %d/%d", status, result.MatchedCount, result.TotalCount), nil
}

// Delete removes a saved workspace by name.
func (a *App) Delete(ctx context.Context, name string) error {
	return a.Store.Delete(name)
}

// Load returns the raw snapshot for a saved workspace, used by the TUI
// preview pane.
func (a *App) Load(name string) (model.WorkspaceSnapshot, error) {
	return a.Store.Load(name)
}
