//go:build windows

package restore

import (
	"context"

	"github.com/marvintrvl/windowanchor/internal/display"
	"github.com/marvintrvl/windowanchor/internal/model"
	"github.com/marvintrvl/windowanchor/internal/winwindow"
	"golang.org/x/sys/windows"
)

// WinWindowSource adapts winwindow.Model and display.Model to the
// WindowSource interface RestoreEngine consumes.
type WinWindowSource struct {
	Displays *display.Model
	Windows  *winwindow.Model
}

func (s *WinWindowSource) Live(ctx context.Context) ([]LiveWindowView, error) {
	monitors, err := s.Displays.Enumerate()
	if err != nil {
		monitors = nil
	}
	live, err := s.Windows.Enumerate(monitors)
	if err != nil {
		return nil, err
	}
	out := make([]LiveWindowView, len(live))
	for i, lw := range live {
		out[i] = LiveWindowView{
			Handle:          uintptr(lw.Handle),
			ExecutablePath:  lw.Record.ExecutablePath,
			WindowClassName: lw.Record.WindowClassName,
			Title:           lw.Record.TitleSnippet,
		}
	}
	return out, nil
}

func (s *WinWindowSource) Reposition(ctx context.Context, handle uintptr, saved model.WindowRecord) error {
	return s.Windows.Reposition(windows.HWND(handle), saved)
}

func (s *WinWindowSource) GracefulCloseAll(ctx context.Context) int {
	monitors, err := s.Displays.Enumerate()
	if err != nil {
		monitors = nil
	}
	live, err := s.Windows.Enumerate(monitors)
	if err != nil {
		return 0
	}
	return s.Windows.GracefulClose(live)
}

func (s *WinWindowSource) CountUserWindows(ctx context.Context) (int, error) {
	monitors, err := s.Displays.Enumerate()
	if err != nil {
		monitors = nil
	}
	return s.Windows.CountUserWindows(monitors)
}
