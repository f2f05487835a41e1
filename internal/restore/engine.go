package restore

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
	"time"

	"github.com/marvintrvl/windowanchor/internal/model"
)

// ErrCancelled is returned when an external cancellation is observed at a
// phase boundary (spec §7, error kind Cancelled).
var ErrCancelled = errors.New("restore: cancelled")

const (
	phase3Wait         = 3 * time.Second
	phase5Wait         = 2 * time.Second
	contextSwitchPoll  = 500 * time.Millisecond
	contextSwitchLimit = 120 * time.Second
)

// WindowSource abstracts the live-window operations RestoreEngine needs
// from WindowModel, decoupling this package from any concrete handle
// type so it builds on every platform.
type WindowSource interface {
	Live(ctx context.Context) ([]LiveWindowView, error)
	Reposition(ctx context.Context, handle uintptr, saved model.WindowRecord) error
	GracefulCloseAll(ctx context.Context) int
	CountUserWindows(ctx context.Context) (int, error)
}

// Launcher abstracts process spawning and shell-execute so RestoreEngine
// never calls exec.Command directly (spec §6: documents go through the
// shell-association pathway, applications are launched directly).
type Launcher interface {
	ShellExecuteDocument(path string) error
	ExecuteDirect(executablePath string, args []string) error
}

// Result is the outcome of a restore pass, reported for the one
// user-visible error surface spec §7 allows: "zero entries matched".
type Result struct {
	MatchedCount int
	TotalCount   int
	Cancelled    bool
}

// Engine drives the five-phase match/launch/reposition state machine.
type Engine struct {
	windows  WindowSource
	launcher Launcher
	logger   *slog.Logger
}

// NewEngine constructs a RestoreEngine. A nil logger falls back to
// slog.Default().
func NewEngine(windows WindowSource, launcher Launcher, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{windows: windows, launcher: launcher, logger: logger}
}

// Restore runs the five-phase state machine over snapshot's entries.
// Cancellation is checked at every phase boundary; whatever has already
// been repositioned when cancellation is observed stays in place (spec
// §4.5, §5).
func (e *Engine) Restore(ctx context.Context, entries []model.WorkspaceEntry) (Result, error) {
	matched := make(map[int]bool, len(entries))

	live, err := e.windows.Live(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("listing live windows: %w", err)
	}

	// Phase 1: match already-live windows.
	if err := e.checkCancelled(ctx); err != nil {
		return e.resultFor(matched, len(entries), true), err
	}
	e.applyMatchPass(ctx, entries, live, matched)

	// Phase 2: open documents / launch missing apps.
	if err := e.checkCancelled(ctx); err != nil {
		return e.resultFor(matched, len(entries), true), err
	}
	running := runningExecutableSet(live)
	plans := planLaunches(entries, matched, running)
	launchedAny := e.executeLaunchPlans(entries, plans)

	if !launchedAny {
		return e.resultFor(matched, len(entries), false), nil
	}

	// Phase 3: wait for apps to initialize.
	if err := e.sleepCancelable(ctx, phase3Wait); err != nil {
		return e.resultFor(matched, len(entries), true), err
	}

	// Phase 4: match + reposition newly-appeared windows.
	if err := e.checkCancelled(ctx); err != nil {
		return e.resultFor(matched, len(entries), true), err
	}
	live, err = e.windows.Live(ctx)
	if err == nil {
		e.applyMatchPass(ctx, entries, live, matched)
	}

	// Phase 5: wait for slow apps, final match pass.
	if err := e.sleepCancelable(ctx, phase5Wait); err != nil {
		return e.resultFor(matched, len(entries), true), err
	}
	if err := e.checkCancelled(ctx); err != nil {
		return e.resultFor(matched, len(entries), true), err
	}
	live, err = e.windows.Live(ctx)
	if err == nil {
		e.applyMatchPass(ctx, entries, live, matched)
	}

	return e.resultFor(matched, len(entries), false), nil
}

func (e *Engine) applyMatchPass(ctx context.Context, entries []model.WorkspaceEntry, live []LiveWindowView, matched map[int]bool) {
	results := matchPass(entries, live, matched)
	for _, r := range results {
		matched[r.entryIndex] = true
		if err := e.windows.Reposition(ctx, r.handle, entries[r.entryIndex].Position); err != nil {
			e.logger.Warn("reposition failed", "entry", r.entryIndex, "error", err)
		}
	}
}

func (e *Engine) executeLaunchPlans(entries []model.WorkspaceEntry, plans []launchPlan) bool {
	launchedAny := false
	for _, p := range plans {
		entry := entries[p.entryIndex]
		switch p.action {
		case launchShellExecuteDocument:
			if err := e.launcher.ShellExecuteDocument(p.args[0]); err != nil {
				e.logger.Warn("shell-execute document failed", "path", p.args[0], "error", err)
				continue
			}
			launchedAny = true
		case launchExecutable:
			if err := e.launcher.ExecuteDirect(entry.Position.ExecutablePath, p.args); err != nil {
				e.logger.Warn("launch failed", "executable", entry.Position.ExecutablePath, "error", err)
				continue
			}
			launchedAny = true
		case launchSkip:
		}
	}
	return launchedAny
}

func (e *Engine) resultFor(matched map[int]bool, total int, cancelled bool) Result {
	return Result{MatchedCount: len(matched), TotalCount: total, Cancelled: cancelled}
}

func (e *Engine) checkCancelled(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ErrCancelled
	default:
		return nil
	}
}

func (e *Engine) sleepCancelable(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ErrCancelled
	case <-timer.C:
		return nil
	}
}

func runningExecutableSet(live []LiveWindowView) map[string]bool {
	set := make(map[string]bool, len(live))
	for _, w := range live {
		if w.ExecutablePath != "" {
			set[strings.ToLower(w.ExecutablePath)] = true
		}
	}
	return set
}

// ShellLauncher is the production Launcher implementation: documents are
// opened via `cmd /c start` (the shell-association pathway), executables
// spawned directly.
type ShellLauncher struct{}

func (ShellLauncher) ShellExecuteDocument(path string) error {
	cmd := exec.Command("cmd", "/c", "start", "", path)
	return cmd.Start()
}

func (ShellLauncher) ExecuteDirect(executablePath string, args []string) error {
	cmd := exec.Command(executablePath, args...)
	return cmd.Start()
}
