package restore

import (
	"testing"

	"github.com/marvintrvl/windowanchor/internal/model"
)

func TestPlanLaunches_PendingDocDefersPlainAppEntry(t *testing.T) {
	entries := []model.WorkspaceEntry{
		{Position: model.WindowRecord{ExecutablePath: `C:\winword.exe`}, LaunchArg: `C:\a.docx`},
		{Position: model.WindowRecord{ExecutablePath: `C:\winword.exe`}},
	}
	plans := planLaunches(entries, nil, nil)
	if plans[0].action != launchShellExecuteDocument {
		t.Fatalf("entry A should shell-execute its document, got %+v", plans[0])
	}
	if plans[1].action != launchSkip {
		t.Fatalf("entry B should be skipped because its exe has a pending document, got %+v", plans[1])
	}
}

func TestPlanLaunches_SkipsAlreadyMatchedEntry(t *testing.T) {
	entries := []model.WorkspaceEntry{
		{Position: model.WindowRecord{ExecutablePath: `C:\a.exe`}},
	}
	plans := planLaunches(entries, map[int]bool{0: true}, nil)
	if plans[0].action != launchSkip {
		t.Fatalf("expected skip for already-matched entry, got %+v", plans[0])
	}
}

func TestPlanLaunches_SkipsWhenExecutableAlreadyRunning(t *testing.T) {
	entries := []model.WorkspaceEntry{
		{Position: model.WindowRecord{ExecutablePath: `C:\a.exe`}},
	}
	plans := planLaunches(entries, nil, map[string]bool{`c:\a.exe`: true})
	if plans[0].action != launchSkip {
		t.Fatalf("expected skip for already-running executable, got %+v", plans[0])
	}
}

func TestPlanLaunches_BrowserWithoutLaunchArgGetsSessionRestoreFlag(t *testing.T) {
	entries := []model.WorkspaceEntry{
		{Position: model.WindowRecord{ExecutablePath: `C:\chrome.exe`, ProcessName: "chrome"}},
	}
	plans := planLaunches(entries, nil, nil)
	if plans[0].action != launchExecutable || len(plans[0].args) != 1 || plans[0].args[0] != "--restore-last-session" {
		t.Fatalf("expected browser session restore flag, got %+v", plans[0])
	}
}
