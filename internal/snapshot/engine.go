//go:build windows

// Package snapshot implements the SnapshotEngine orchestration described
// in spec §4.4: it drives DisplayModel, WindowModel, and FileResolver to
// produce a WorkspaceSnapshot, reporting progress as it goes.
package snapshot

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/marvintrvl/windowanchor/internal/display"
	"github.com/marvintrvl/windowanchor/internal/fileresolver"
	"github.com/marvintrvl/windowanchor/internal/model"
	"github.com/marvintrvl/windowanchor/internal/winwindow"
	"golang.org/x/sys/windows"
)

// ProgressSink receives progress callbacks from TakeSnapshot. All methods
// are dispatched from the worker context; implementations that touch UI
// state must hop back to the UI context themselves (spec §5).
type ProgressSink interface {
	ReportWindow(current, total int, processName, titleSnippet string)
	ReportMessage(message string)
}

// noopSink discards every callback.
type noopSink struct{}

func (noopSink) ReportWindow(int, int, string, string) {}
func (noopSink) ReportMessage(string)                  {}

// passwordManagerProcesses is the smart-exclusion deny-list (spec §4.4).
var passwordManagerProcesses = map[string]bool{
	"keepass": true, "keepassxc": true, "1password": true, "bitwarden": true,
	"lastpass": true, "dashlane": true, "keeper": true, "roboform": true, "enpass": true,
}

// privateBrowsingTitlePatterns are matched case-insensitively anywhere in
// the window title (spec §4.4).
var privateBrowsingTitlePatterns = []string{
	"InPrivate", "Incognito", "Private Browsing", "Private Window",
}

// codeEditorProcesses are the Electron-based editors eligible for
// workspace-folder promotion (spec §4.4).
var codeEditorProcesses = map[string]bool{"code": true, "cursor": true}

// explorerProcessName is the OS file browser's process name, used for the
// Explorer fast path.
const explorerProcessName = "explorer"

// Engine wires DisplayModel and WindowModel together to produce
// snapshots.
type Engine struct {
	displays *display.Model
	windows  *winwindow.Model
	homeDir  string
}

// NewEngine constructs a SnapshotEngine. homeDir is the root used by
// FileResolver's Tier 3 filesystem search.
func NewEngine(displays *display.Model, windowModel *winwindow.Model, homeDir string) *Engine {
	return &Engine{displays: displays, windows: windowModel, homeDir: homeDir}
}

// TakeSnapshot implements spec §4.4's TakeSnapshot operation. selected
// restricts recorded entries to the given handles; a nil slice records
// every included window.
func (e *Engine) TakeSnapshot(name string, saveFiles bool, selected []windows.HWND, sink ProgressSink) (model.WorkspaceSnapshot, error) {
	if sink == nil {
		sink = noopSink{}
	}

	fingerprint := e.displays.Fingerprint()
	monitors, err := e.displays.Enumerate()
	if err != nil {
		monitors = nil
	}

	live, err := e.windows.Enumerate(monitors)
	if err != nil {
		return model.WorkspaceSnapshot{}, err
	}

	if selected != nil {
		live = filterSelected(live, selected)
	}

	var index *fileresolver.Index
	if saveFiles {
		sink.ReportMessage("building jump list index…")
		executables := distinctExecutables(live)
		handlers := distinctHandlerExecutables(live)
		index, _ = fileresolver.BuildIndex(executables, handlers)
	}

	entries := make([]model.WorkspaceEntry, 0, len(live))
	total := len(live)
	for i, lw := range live {
		sink.ReportWindow(i+1, total, lw.Record.ProcessName, lw.Record.TitleSnippet)

		entry := model.WorkspaceEntry{
			Position:     lw.Record,
			MonitorID:    lw.Record.MonitorID,
			MonitorIndex: lw.Record.MonitorIndex,
			MonitorName:  lw.Record.MonitorName,
			Source:       model.SourceNone,
		}

		if !saveFiles {
			entries = append(entries, entry)
			continue
		}

		if isUncheckedByDefault(lw.Record.ProcessName, lw.Record.TitleSnippet) {
			entries = append(entries, entry)
			continue
		}

		resolution := fileresolver.Resolve(
			uintptr(lw.Handle),
			lw.Record.ProcessName == explorerProcessName,
			lw.Record.ProcessName,
			lw.Record.ExecutablePath,
			lw.Record.TitleSnippet,
			e.homeDir,
			index,
		)

		entry.FilePath = resolution.FilePath
		entry.Confidence = resolution.Confidence
		entry.Source = resolution.Source

		if codeEditorProcesses[strings.ToLower(lw.Record.ProcessName)] {
			entry.FilePath = promoteWorkspaceFolder(entry.FilePath)
		}

		if resolution.Confidence >= 80 {
			entry.LaunchArg = entry.FilePath
		}

		entries = append(entries, entry)
	}

	sink.ReportMessage("saving…")

	return model.WorkspaceSnapshot{
		Name:               name,
		MonitorFingerprint: fingerprint,
		SavedAt:            timeNowUTC(),
		SavedWithFiles:     saveFiles,
		Monitors:           monitors,
		Entries:            entries,
	}, nil
}

func isUncheckedByDefault(processName, title string) bool {
	if passwordManagerProcesses[strings.ToLower(processName)] {
		return true
	}
	lowerTitle := strings.ToLower(title)
	for _, pattern := range privateBrowsingTitlePatterns {
		if strings.Contains(lowerTitle, strings.ToLower(pattern)) {
			return true
		}
	}
	return false
}

// promoteWorkspaceFolder implements workspace-folder promotion for
// Electron-based code editors (spec §4.4): directories and
// .code-workspace manifests are kept as-is; any other existing file is
// replaced by its containing directory.
func promoteWorkspaceFolder(path string) string {
	if path == "" {
		return path
	}
	info, err := statForPromotion(path)
	if err != nil {
		return path
	}
	if info.IsDir() {
		return path
	}
	if strings.EqualFold(filepath.Ext(path), ".code-workspace") {
		return path
	}
	return filepath.Dir(path)
}

func filterSelected(live []winwindow.LiveWindow, selected []windows.HWND) []winwindow.LiveWindow {
	want := make(map[windows.HWND]bool, len(selected))
	for _, h := range selected {
		want[h] = true
	}
	out := make([]winwindow.LiveWindow, 0, len(selected))
	for _, lw := range live {
		if want[lw.Handle] {
			out = append(out, lw)
		}
	}
	return out
}

func distinctExecutables(live []winwindow.LiveWindow) []string {
	seen := make(map[string]bool, len(live))
	var out []string
	for _, lw := range live {
		exe := lw.Record.ExecutablePath
		if exe == "" || seen[exe] {
			continue
		}
		seen[exe] = true
		out = append(out, exe)
	}
	return out
}

// distinctHandlerExecutables resolves, for each window, the registered
// handler for the file extension its own executable's name implies it
// edits, so BuildIndex can also key its handler-hash index (spec
// §4.3.1's direct -> handler -> process-name resolution order). Windows
// whose executable carries no recognizable document extension are
// skipped; there is nothing to look up a handler for.
func distinctHandlerExecutables(live []winwindow.LiveWindow) map[string]string {
	handlers := make(map[string]string)
	for _, lw := range live {
		exe := lw.Record.ExecutablePath
		if exe == "" {
			continue
		}
		if _, ok := handlers[exe]; ok {
			continue
		}
		ext := extensionForProcess(strings.ToLower(lw.Record.ProcessName))
		if ext == "" {
			continue
		}
		if handlerExe := fileresolver.HandlerExecutable(ext); handlerExe != "" {
			handlers[exe] = handlerExe
		}
	}
	return handlers
}

// extensionForProcess maps a known editor's process name back to the
// document extension it opens, so its registered handler can be looked
// up even though the process itself is not the handler (spec §4.3.1's
// click-to-run Office example: the winword process is a wrapper around
// whatever WINWORD.EXE the registry actually points at).
func extensionForProcess(processName string) string {
	switch processName {
	case "winword":
		return ".docx"
	case "excel":
		return ".xlsx"
	case "powerpnt":
		return ".pptx"
	case "acrord32", "acrobat":
		return ".pdf"
	case "notepad", "notepad++":
		return ".txt"
	default:
		return ""
	}
}

// timeNowUTC and statForPromotion are indirected through vars so tests
// can substitute them without reaching into the OS clock or filesystem.
var timeNowUTC = func() time.Time { return time.Now().UTC() }

var statForPromotion = os.Stat
