package restore

import (
	"context"
	"time"

	"github.com/marvintrvl/windowanchor/internal/model"
)

// SwitchProgressSink is notified whenever the context-switch close loop's
// remaining live-window count changes.
type SwitchProgressSink interface {
	ReportRemaining(count int)
}

type noopSwitchSink struct{}

func (noopSwitchSink) ReportRemaining(int) {}

// SwitchStatus is the terminal outcome of SwitchWorkspaceAsync, reported
// to the collaborator UI verbatim (spec §8 scenario 5: "Switch
// Cancelled").
type SwitchStatus string

const (
	SwitchCompleted SwitchStatus = "Switch Completed"
	SwitchCancelled SwitchStatus = "Switch Cancelled"
)

// SwitchWorkspaceAsync implements the stronger context-switch restore
// variant: graceful-close every non-self window, poll until the desktop
// is empty or the timeout elapses, and only then run the normal
// five-phase restore (spec §4.5).
func (e *Engine) SwitchWorkspaceAsync(ctx context.Context, target model.WorkspaceSnapshot, sink SwitchProgressSink) (SwitchStatus, Result, error) {
	if sink == nil {
		sink = noopSwitchSink{}
	}

	e.windows.GracefulCloseAll(ctx)

	deadline := time.Now().Add(contextSwitchLimit)
	lastCount := -1
	for {
		if err := e.checkCancelled(ctx); err != nil {
			return SwitchCancelled, Result{}, err
		}

		count, err := e.windows.CountUserWindows(ctx)
		if err != nil {
			e.logger.Warn("counting user windows during context switch", "error", err)
		} else if count != lastCount {
			sink.ReportRemaining(count)
			lastCount = count
		}

		if err == nil && count == 0 {
			break
		}

		if time.Now().After(deadline) {
			return SwitchCancelled, Result{}, nil
		}

		if err := e.sleepCancelable(ctx, contextSwitchPoll); err != nil {
			return SwitchCancelled, Result{}, err
		}
	}

	result, err := e.Restore(ctx, target.Entries)
	if err != nil {
		return SwitchCancelled, result, err
	}
	return SwitchCompleted, result, nil
}

// SelectiveRestore returns a copy of snapshot whose monitors and entries
// are filtered down to monitorIDs, ready to pass to the normal restore; it
// does not run the restore itself. A nil monitorIDs means "all monitors"
// (spec §4.5).
func SelectiveRestore(snapshot model.WorkspaceSnapshot, monitorIDs map[string]bool) model.WorkspaceSnapshot {
	if monitorIDs == nil {
		return snapshot
	}

	filtered := snapshot
	filtered.Monitors = nil
	for _, m := range snapshot.Monitors {
		if monitorIDs[m.ID] {
			filtered.Monitors = append(filtered.Monitors, m)
		}
	}

	filtered.Entries = nil
	for _, e := range snapshot.Entries {
		if monitorIDs[e.MonitorID] {
			filtered.Entries = append(filtered.Entries, e)
		}
	}

	return filtered
}
