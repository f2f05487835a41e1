//go:build windows

package winwindow

import (
	"os"

	"github.com/marvintrvl/windowanchor/internal/display"
	"github.com/marvintrvl/windowanchor/internal/model"
	"github.com/marvintrvl/windowanchor/internal/platform"
	"golang.org/x/sys/windows"
)

// Model enumerates and manipulates top-level windows.
type Model struct {
	displays *display.Model
	selfPID  uint32
}

// NewModel constructs a WindowModel. selfPID lets callers exclude the
// capturing process's own windows from enumeration (spec §4.4: "Skip any
// window belonging to this process itself").
func NewModel(displays *display.Model) *Model {
	return &Model{displays: displays, selfPID: uint32(os.Getpid())}
}

// LiveWindow is a currently-open window paired with its owning monitor.
type LiveWindow struct {
	Handle  windows.HWND
	Record  model.WindowRecord
}

// Enumerate walks every top-level window, applies the spec §4.2 filter,
// and captures placement + monitor assignment for each survivor.
func (m *Model) Enumerate(monitors []model.Monitor) ([]LiveWindow, error) {
	var out []LiveWindow
	err := platform.EnumWindows(func(hwnd windows.HWND) bool {
		if lw, ok := m.capture(hwnd, monitors); ok {
			out = append(out, lw)
		}
		return true
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (m *Model) capture(hwnd windows.HWND, monitors []model.Monitor) (LiveWindow, bool) {
	cand := Candidate{
		Visible:   platform.IsWindowVisible(hwnd),
		HasOwner:  platform.GetOwner(hwnd) != 0,
		ClassName: platform.GetClassName(hwnd),
		Title:     platform.GetWindowText(hwnd),
	}
	rect, err := platform.GetWindowRect(hwnd)
	if err == nil {
		cand.Width = rect.Right - rect.Left
		cand.Height = rect.Bottom - rect.Top
	}
	if !ShouldInclude(cand) {
		return LiveWindow{}, false
	}

	pid := platform.GetWindowProcessID(hwnd)
	if pid == m.selfPID {
		return LiveWindow{}, false
	}

	exe := platform.ExecutablePathForProcess(pid)

	placement, err := platform.GetWindowPlacement(hwnd)
	restoredRect := model.Rect{}
	showCmd := model.ShowNormal
	if err == nil {
		restoredRect = rectFromWin32(placement.RcNormalPosition)
		showCmd = showCommandFromWin32(placement.ShowCmd)
		if showCmd == model.ShowNormal && err == nil {
			if actual, aerr := platform.GetWindowRect(hwnd); aerr == nil {
				actualRect := rectFromWin32(actual)
				if driftExceeds(restoredRect, actualRect, SnapDriftThreshold) {
					restoredRect = actualRect
				}
			}
		}
	}

	dpi := platform.GetDpiForWindowHandle(hwnd)

	mon := m.displays.MonitorForWindow(hwnd, monitors)

	record := model.WindowRecord{
		ExecutablePath:  exe,
		ProcessName:     platform.ProcessName(exe),
		WindowClassName: cand.ClassName,
		TitleSnippet:    model.TruncateTitle(cand.Title),
		ShowCmd:         showCmd,
		Rect:            restoredRect,
		DPI:             dpi,
		MonitorID:       mon.ID,
		MonitorIndex:    mon.Index,
		MonitorName:     mon.FriendlyName,
	}

	return LiveWindow{Handle: hwnd, Record: record}, true
}

func rectFromWin32(r platform.RECT) model.Rect {
	return model.Rect{Left: r.Left, Top: r.Top, Right: r.Right, Bottom: r.Bottom}
}

func showCommandFromWin32(cmd uint32) model.ShowCommand {
	switch cmd {
	case platform.SWMaximize:
		return model.ShowMaximized
	case platform.SWShowMinimized:
		return model.ShowMinimized
	default:
		return model.ShowNormal
	}
}
