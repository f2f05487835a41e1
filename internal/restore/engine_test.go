package restore

import (
	"context"
	"testing"

	"github.com/marvintrvl/windowanchor/internal/model"
)

type fakeWindowSource struct {
	live         []LiveWindowView
	repositioned []uintptr
	closedCalls  int
	countSeq     []int
	countIdx     int
}

func (f *fakeWindowSource) Live(ctx context.Context) ([]LiveWindowView, error) {
	return f.live, nil
}

func (f *fakeWindowSource) Reposition(ctx context.Context, handle uintptr, saved model.WindowRecord) error {
	f.repositioned = append(f.repositioned, handle)
	return nil
}

func (f *fakeWindowSource) GracefulCloseAll(ctx context.Context) int {
	f.closedCalls++
	return len(f.live)
}

func (f *fakeWindowSource) CountUserWindows(ctx context.Context) (int, error) {
	if f.countIdx >= len(f.countSeq) {
		return f.countSeq[len(f.countSeq)-1], nil
	}
	v := f.countSeq[f.countIdx]
	f.countIdx++
	return v, nil
}

type fakeLauncher struct {
	documentsOpened []string
	executed        []string
}

func (f *fakeLauncher) ShellExecuteDocument(path string) error {
	f.documentsOpened = append(f.documentsOpened, path)
	return nil
}

func (f *fakeLauncher) ExecuteDirect(executablePath string, args []string) error {
	f.executed = append(f.executed, executablePath)
	return nil
}

func TestEngine_Restore_MatchesLiveWindowInPhaseOne(t *testing.T) {
	entries := []model.WorkspaceEntry{
		{Position: model.WindowRecord{ExecutablePath: `C:\np.exe`, WindowClassName: "Notepad"}},
	}
	ws := &fakeWindowSource{live: []LiveWindowView{{Handle: 1, ExecutablePath: `C:\np.exe`, WindowClassName: "Notepad"}}}
	engine := NewEngine(ws, &fakeLauncher{}, nil)

	result, err := engine.Restore(context.Background(), entries)
	if err != nil {
		t.Fatal(err)
	}
	if result.MatchedCount != 1 {
		t.Fatalf("expected 1 match, got %+v", result)
	}
	if len(ws.repositioned) != 1 || ws.repositioned[0] != 1 {
		t.Fatalf("expected reposition of handle 1, got %v", ws.repositioned)
	}
}

func TestEngine_Restore_LaunchesMissingApp(t *testing.T) {
	entries := []model.WorkspaceEntry{
		{Position: model.WindowRecord{ExecutablePath: `C:\np.exe`}},
	}
	ws := &fakeWindowSource{}
	launcher := &fakeLauncher{}
	engine := NewEngine(ws, launcher, nil)

	_, err := engine.Restore(context.Background(), entries)
	if err != nil {
		t.Fatal(err)
	}
	if len(launcher.executed) != 1 || launcher.executed[0] != `C:\np.exe` {
		t.Fatalf("expected direct launch of np.exe, got %v", launcher.executed)
	}
}

func TestEngine_Restore_CancelledBeforeStart(t *testing.T) {
	entries := []model.WorkspaceEntry{
		{Position: model.WindowRecord{ExecutablePath: `C:\np.exe`}},
	}
	ws := &fakeWindowSource{}
	engine := NewEngine(ws, &fakeLauncher{}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := engine.Restore(ctx, entries)
	if err != ErrCancelled {
		t.Fatalf("expected ErrCancelled, got %v", err)
	}
}

func TestSwitchWorkspaceAsync_CompletesWhenDesktopEmpties(t *testing.T) {
	ws := &fakeWindowSource{countSeq: []int{2, 1, 0}}
	engine := NewEngine(ws, &fakeLauncher{}, nil)

	status, _, err := engine.SwitchWorkspaceAsync(context.Background(), model.WorkspaceSnapshot{}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if status != SwitchCompleted {
		t.Fatalf("status = %v, want SwitchCompleted", status)
	}
	if ws.closedCalls != 1 {
		t.Fatalf("expected exactly one graceful-close-all call, got %d", ws.closedCalls)
	}
}

func TestSelectiveRestore_FiltersToMonitorSet(t *testing.T) {
	snapshot := model.WorkspaceSnapshot{
		Monitors: []model.Monitor{{ID: "A"}, {ID: "B"}},
		Entries: []model.WorkspaceEntry{
			{MonitorID: "A"},
			{MonitorID: "B"},
		},
	}
	filtered := SelectiveRestore(snapshot, map[string]bool{"A": true})
	if len(filtered.Monitors) != 1 || filtered.Monitors[0].ID != "A" {
		t.Fatalf("filtered monitors = %+v", filtered.Monitors)
	}
	if len(filtered.Entries) != 1 || filtered.Entries[0].MonitorID != "A" {
		t.Fatalf("filtered entries = %+v", filtered.Entries)
	}
}

func TestSelectiveRestore_NilMeansAllMonitors(t *testing.T) {
	snapshot := model.WorkspaceSnapshot{Monitors: []model.Monitor{{ID: "A"}}}
	filtered := SelectiveRestore(snapshot, nil)
	if len(filtered.Monitors) != 1 {
		t.Fatalf("expected all monitors kept, got %+v", filtered.Monitors)
	}
}
