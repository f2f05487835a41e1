package restore

import (
	"strings"

	"github.com/marvintrvl/windowanchor/internal/model"
)

// browserSessionRestoreExecutables are the browser basenames eligible for
// --restore-last-session when they have no launch argument (spec §4.5).
var browserSessionRestoreExecutables = map[string]bool{
	"chrome": true, "msedge": true, "opera": true, "brave": true, "brave_browser": true,
}

// codeEditorExecutables are the Electron code editors whose workspace
// launch argument is passed directly to the editor instead of being
// shell-executed.
var codeEditorExecutables = map[string]bool{"code": true, "cursor": true}

// launchAction is what Phase 2 decided to do with one entry.
type launchAction int

const (
	launchSkip launchAction = iota
	launchShellExecuteDocument
	launchExecutable
)

// launchPlan is the Phase 2 decision for one entry: what to do, and if
// launching, the exact arguments to pass.
type launchPlan struct {
	entryIndex int
	action     launchAction
	args       []string
}

// planLaunches decides, for every unmatched entry, whether to skip it,
// shell-execute its document, or execute its executable directly,
// implementing the same-exe pending-document pre-scan that prevents a
// plain-app launch from stealing the window DDE routes to the pending
// document (spec §4.5: "Why Phase-2's pending doc for same exe rule
// exists").
func planLaunches(entries []model.WorkspaceEntry, matched map[int]bool, runningExecutables map[string]bool) []launchPlan {
	pendingDocExes := make(map[string]bool)
	for i, e := range entries {
		if matched[i] {
			continue
		}
		if e.LaunchArg != "" {
			pendingDocExes[strings.ToLower(e.Position.ExecutablePath)] = true
		}
	}

	var plans []launchPlan
	for i, e := range entries {
		if matched[i] {
			plans = append(plans, launchPlan{entryIndex: i, action: launchSkip})
			continue
		}

		exeKey := strings.ToLower(e.Position.ExecutablePath)

		if e.LaunchArg != "" {
			if codeEditorExecutables[strings.ToLower(e.Position.ProcessName)] {
				plans = append(plans, launchPlan{entryIndex: i, action: launchExecutable, args: launchArgsFor(e)})
				continue
			}
			plans = append(plans, launchPlan{entryIndex: i, action: launchShellExecuteDocument, args: []string{e.LaunchArg}})
			continue
		}

		if runningExecutables[exeKey] {
			plans = append(plans, launchPlan{entryIndex: i, action: launchSkip})
			continue
		}

		if pendingDocExes[exeKey] {
			plans = append(plans, launchPlan{entryIndex: i, action: launchSkip})
			continue
		}

		args := launchArgsFor(e)
		plans = append(plans, launchPlan{entryIndex: i, action: launchExecutable, args: args})
	}

	return plans
}

// launchArgsFor builds the argument list for a direct-executable launch:
// a workspace-directory argument for Electron code editors, a
// --restore-last-session flag for browsers with no pending document, and
// no extra arguments otherwise.
func launchArgsFor(e model.WorkspaceEntry) []string {
	processName := strings.ToLower(e.Position.ProcessName)
	if codeEditorExecutables[processName] && e.LaunchArg != "" {
		return []string{e.LaunchArg}
	}
	if browserSessionRestoreExecutables[processName] {
		return []string{"--restore-last-session"}
	}
	return nil
}
