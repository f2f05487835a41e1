//go:build windows

package display

import (
	"fmt"
	"sort"
	"strings"

	"github.com/marvintrvl/windowanchor/internal/model"
	"github.com/marvintrvl/windowanchor/internal/platform"
	"golang.org/x/sys/windows"
)

// Model enumerates monitors and maps windows to them. It holds no
// connection state of its own (unlike an X11 client) — every call is a
// fresh set of Win32 queries, matching the OS's own stateless monitor APIs.
type Model struct{}

// NewModel constructs a DisplayModel. There is nothing to connect: Win32
// display queries need no persistent handle.
func NewModel() *Model { return &Model{} }

// geometrySweepEntry is one HMONITOR from the GDI geometry pass, keyed by
// its GDI device name for the later join against the display-config walk.
type geometrySweepEntry struct {
	deviceName string
	rect       platform.RECT
	workArea   platform.RECT
	isPrimary  bool
}

func geometrySweep() ([]geometrySweepEntry, error) {
	var entries []geometrySweepEntry
	var sweepErr error
	err := platform.EnumDisplayMonitors(func(hMonitor uintptr, _ platform.RECT) bool {
		mi, err := platform.GetMonitorInfo(hMonitor)
		if err != nil {
			sweepErr = err
			return true // keep going; one bad monitor shouldn't abort the sweep
		}
		entries = append(entries, geometrySweepEntry{
			deviceName: platform.UTF16PtrToString(&mi.SzDevice[0]),
			rect:       mi.RcMonitor,
			workArea:   mi.RcWork,
			isPrimary:  mi.DwFlags&platform.MonitorInfoFPrimary != 0,
		})
		return true
	})
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 && sweepErr != nil {
		return nil, sweepErr
	}
	return entries, nil
}

// Enumerate performs the full spec §4.1 monitor-enumeration algorithm:
// a geometry sweep joined against a display-config walk, sorted primary
// first then by left edge, with indices reassigned after sort. On a
// display-config failure it degrades to the GDI-only fallback.
func (m *Model) Enumerate() ([]model.Monitor, error) {
	sweep, sweepErr := geometrySweep()
	if sweepErr != nil && len(sweep) == 0 {
		return nil, sweepErr
	}

	paths, cfgErr := platform.QueryActiveDisplayPaths()
	if cfgErr != nil {
		return gdiOnlyFallback(sweep), nil
	}

	byDevice := make(map[string]platform.DisplayPath, len(paths))
	for _, p := range paths {
		byDevice[strings.ToUpper(p.SourceGDIDeviceName)] = p
	}

	monitors := make([]model.Monitor, 0, len(sweep))
	for _, e := range sweep {
		var id, friendly string
		if p, ok := byDevice[strings.ToUpper(e.deviceName)]; ok {
			edid := EdidInfo{
				ManufacturerID:    p.EdidManufacturerID,
				ProductCode:       p.EdidProductCode,
				ConnectorInstance: p.ConnectorInstance,
				Valid:             p.EdidValid,
				DevicePath:        e.deviceName,
			}
			id = edid.Identity()
			friendly = p.TargetFriendlyName
		} else {
			id = GDIIdentity(e.deviceName)
		}
		if friendly == "" {
			friendly = e.deviceName
		}
		monitors = append(monitors, model.Monitor{
			ID:           id,
			FriendlyName: friendly,
			DeviceName:   e.deviceName,
			Left:         e.rect.Left,
			Top:          e.rect.Top,
			WidthPixels:  e.rect.Right - e.rect.Left,
			HeightPixels: e.rect.Bottom - e.rect.Top,
			IsPrimary:    e.isPrimary,
		})
	}

	sortAndIndex(monitors)
	return monitors, nil
}

func gdiOnlyFallback(sweep []geometrySweepEntry) []model.Monitor {
	monitors := make([]model.Monitor, 0, len(sweep))
	for i, e := range sweep {
		monitors = append(monitors, model.Monitor{
			ID:           GDIIdentity(e.deviceName),
			FriendlyName: fmt.Sprintf("Monitor %d", i+1),
			DeviceName:   e.deviceName,
			Left:         e.rect.Left,
			Top:          e.rect.Top,
			WidthPixels:  e.rect.Right - e.rect.Left,
			HeightPixels: e.rect.Bottom - e.rect.Top,
			IsPrimary:    e.isPrimary,
		})
	}
	sortAndIndex(monitors)
	return monitors
}

func sortAndIndex(monitors []model.Monitor) {
	sort.SliceStable(monitors, func(i, j int) bool {
		if monitors[i].IsPrimary != monitors[j].IsPrimary {
			return monitors[i].IsPrimary
		}
		return monitors[i].Left < monitors[j].Left
	})
	for i := range monitors {
		monitors[i].Index = i
	}
}

// Fingerprint returns the spec §4.1 fingerprint for the currently connected
// monitor set, or one of the in-band sentinel strings on failure.
func (m *Model) Fingerprint() string {
	sweep, sweepErr := geometrySweep()
	if sweepErr != nil && len(sweep) == 0 {
		return ErrBufferSize
	}
	if len(sweep) == 0 {
		return ErrNoMonitors
	}

	paths, cfgErr := platform.QueryActiveDisplayPaths()
	if cfgErr != nil {
		identities := make([]string, 0, len(sweep))
		for _, e := range sweep {
			identities = append(identities, GDIIdentity(e.deviceName))
		}
		return Fingerprint(identities)
	}

	byDevice := make(map[string]platform.DisplayPath, len(paths))
	for _, p := range paths {
		byDevice[strings.ToUpper(p.SourceGDIDeviceName)] = p
	}

	identities := make([]string, 0, len(sweep))
	for _, e := range sweep {
		if p, ok := byDevice[strings.ToUpper(e.deviceName)]; ok {
			edid := EdidInfo{
				ManufacturerID:    p.EdidManufacturerID,
				ProductCode:       p.EdidProductCode,
				ConnectorInstance: p.ConnectorInstance,
				Valid:             p.EdidValid,
				DevicePath:        e.deviceName,
			}
			identities = append(identities, edid.Identity())
		} else {
			identities = append(identities, GDIIdentity(e.deviceName))
		}
	}
	return Fingerprint(identities)
}

// MonitorForWindow returns the monitor (from monitors) nearest to hwnd,
// matched by device-name equality (case-insensitive). If no monitor in the
// list matches, it returns a synthetic gdi:<device-name> id — this must
// still compare equal to ids produced by the GDI-only fallback path, per
// spec §4.1.
func (m *Model) MonitorForWindow(hwnd windows.HWND, monitors []model.Monitor) model.Monitor {
	hMonitor := platform.MonitorFromWindowHandle(hwnd)
	if hMonitor == 0 {
		return model.Monitor{ID: ErrNoMonitors}
	}
	mi, err := platform.GetMonitorInfo(hMonitor)
	if err != nil {
		return model.Monitor{ID: ErrNoMonitors}
	}
	deviceName := platform.UTF16PtrToString(&mi.SzDevice[0])
	for _, mon := range monitors {
		if strings.EqualFold(mon.DeviceName, deviceName) {
			return mon
		}
	}
	return model.Monitor{
		ID:           GDIIdentity(deviceName),
		DeviceName:   deviceName,
		FriendlyName: deviceName,
		Left:         mi.RcMonitor.Left,
		Top:          mi.RcMonitor.Top,
		WidthPixels:  mi.RcMonitor.Right - mi.RcMonitor.Left,
		HeightPixels: mi.RcMonitor.Bottom - mi.RcMonitor.Top,
	}
}
