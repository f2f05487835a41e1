//go:build windows

package winwindow

import (
	"fmt"

	"github.com/marvintrvl/windowanchor/internal/model"
	"github.com/marvintrvl/windowanchor/internal/platform"
	"golang.org/x/sys/windows"
)

// Reposition applies a saved WindowRecord to a live window: it reads the
// current placement to preserve flag bits, overwrites show-command and
// rectangle with the DPI-scaled saved values, writes it back, and issues an
// explicit maximize call when the target state is MAXIMIZED (spec §4.2:
// "window-placement alone is unreliable across monitor DPI changes").
func (m *Model) Reposition(hwnd windows.HWND, saved model.WindowRecord) error {
	current, err := platform.GetWindowPlacement(hwnd)
	if err != nil {
		return fmt.Errorf("reading current placement: %w", err)
	}

	currentDPI := platform.GetDpiForWindowHandle(hwnd)
	scaled := ScaleCoords(saved.Rect, saved.DPI, currentDPI)

	current.ShowCmd = win32ShowCommand(saved.ShowCmd)
	current.RcNormalPosition = platform.RECT{
		Left: scaled.Left, Top: scaled.Top, Right: scaled.Right, Bottom: scaled.Bottom,
	}

	if err := platform.SetWindowPlacement(hwnd, current); err != nil {
		return fmt.Errorf("writing placement: %w", err)
	}

	switch saved.ShowCmd {
	case model.ShowMaximized:
		platform.ShowWindow(hwnd, platform.SWMaximize)
	case model.ShowMinimized:
		// WINDOWPLACEMENT alone is sufficient for minimized state.
	}
	return nil
}

func win32ShowCommand(c model.ShowCommand) uint32 {
	switch c {
	case model.ShowMaximized:
		return platform.SWMaximize
	case model.ShowMinimized:
		return platform.SWShowMinimized
	default:
		return platform.SWShowNormal
	}
}

// GracefulClose posts WM_CLOSE (never a force-kill) to every window in
// windows except those belonging to the current process. The returned
// count is advisory only: a window may show a save-confirmation dialog
// that indefinitely extends its lifetime (spec §4.2).
func (m *Model) GracefulClose(windows_ []LiveWindow) int {
	posted := 0
	for _, w := range windows_ {
		pid := platform.GetWindowProcessID(w.Handle)
		if pid == m.selfPID {
			continue
		}
		if err := platform.PostCloseMessage(w.Handle); err == nil {
			posted++
		}
	}
	return posted
}

// CountUserWindows re-enumerates and counts windows passing the spec §4.2
// filter, excluding this process. Used by the context-switch poll loop to
// decide when the desktop is empty (spec §8, invariant 8).
func (m *Model) CountUserWindows(monitors []model.Monitor) (int, error) {
	live, err := m.Enumerate(monitors)
	if err != nil {
		return 0, err
	}
	return len(live), nil
}
