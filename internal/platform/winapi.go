//go:build windows

// Package platform wires the raw Win32 entry points that golang.org/x/sys/windows
// does not expose (user32, gdi32 and shcore are GUI-facing and outside that
// package's kernel/registry/process surface) behind small, typed Go
// functions. DisplayModel and WindowModel build on top of this file instead
// of poking syscall.NewLazyDLL themselves.
package platform

import (
	"fmt"
	"syscall"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	user32  = syscall.NewLazyDLL("user32.dll")
	gdi32   = syscall.NewLazyDLL("gdi32.dll")
	shcore  = syscall.NewLazyDLL("shcore.dll")

	procEnumDisplayMonitors      = user32.NewProc("EnumDisplayMonitors")
	procGetMonitorInfoW          = user32.NewProc("GetMonitorInfoW")
	procMonitorFromWindow        = user32.NewProc("MonitorFromWindow")
	procMonitorFromRect          = user32.NewProc("MonitorFromRect")
	procEnumDisplayDevicesW      = user32.NewProc("EnumDisplayDevicesW")
	procEnumWindows              = user32.NewProc("EnumWindows")
	procGetWindowTextW           = user32.NewProc("GetWindowTextW")
	procGetWindowTextLengthW     = user32.NewProc("GetWindowTextLengthW")
	procGetClassNameW            = user32.NewProc("GetClassNameW")
	procIsWindowVisible          = user32.NewProc("IsWindowVisible")
	procGetWindow                = user32.NewProc("GetWindow")
	procGetWindowRect            = user32.NewProc("GetWindowRect")
	procGetWindowPlacement       = user32.NewProc("GetWindowPlacement")
	procSetWindowPlacement       = user32.NewProc("SetWindowPlacement")
	procShowWindow               = user32.NewProc("ShowWindow")
	procPostMessageW             = user32.NewProc("PostMessageW")
	procGetWindowThreadProcessId = user32.NewProc("GetWindowThreadProcessId")
	procGetDpiForWindow          = user32.NewProc("GetDpiForWindow")
	procGetDC                    = user32.NewProc("GetDC")
	procReleaseDC                = user32.NewProc("ReleaseDC")

	procGetDeviceCaps = gdi32.NewProc("GetDeviceCaps")

	procGetDpiForMonitor = shcore.NewProc("GetDpiForMonitor")
)

// GDI/User32 constants used by DisplayModel and WindowModel.
const (
	GWOwner = 4 // GW_OWNER, for GetWindow

	SWHide            = 0
	SWShowNormal      = 1
	SWShowMinimized   = 2
	SWMaximize        = 3
	SWShowNoActivate  = 4
	SWRestore         = 9

	WMClose = 0x0010

	MonitorInfoFPrimary = 0x1

	LogPixelsX = 88 // GetDeviceCaps index for horizontal DPI

	MDTEffectiveDPI = 0 // MDT_EFFECTIVE_DPI for GetDpiForMonitor

	EDDGetDeviceInterfaceName = 0x00000001
)

// RECT mirrors the Win32 RECT layout used throughout window placement.
type RECT struct {
	Left, Top, Right, Bottom int32
}

// WindowPlacement mirrors WINDOWPLACEMENT.
type WindowPlacement struct {
	Length           uint32
	Flags            uint32
	ShowCmd          uint32
	PtMinPosition    POINT
	PtMaxPosition    POINT
	RcNormalPosition RECT
}

// POINT mirrors POINT.
type POINT struct{ X, Y int32 }

// MonitorInfoEx mirrors MONITORINFOEXW.
type MonitorInfoEx struct {
	CbSize    uint32
	RcMonitor RECT
	RcWork    RECT
	DwFlags   uint32
	SzDevice  [32]uint16
}

// EnumWindowsCallback is invoked once per top-level window; return false to
// stop enumeration early.
type EnumWindowsCallback func(hwnd windows.HWND) bool

// EnumWindows enumerates all top-level windows on the desktop.
func EnumWindows(cb EnumWindowsCallback) error {
	var cbErr error
	goCB := syscall.NewCallback(func(hwnd windows.HWND, lparam uintptr) uintptr {
		if !cb(hwnd) {
			return 0
		}
		return 1
	})
	r, _, e := procEnumWindows.Call(goCB, 0)
	if r == 0 && cbErr == nil {
		if e != syscall.Errno(0) {
			return fmt.Errorf("EnumWindows: %w", e)
		}
	}
	return nil
}

// IsWindowVisible reports whether hwnd is currently visible.
func IsWindowVisible(hwnd windows.HWND) bool {
	r, _, _ := procIsWindowVisible.Call(uintptr(hwnd))
	return r != 0
}

// GetOwner returns the owner window of hwnd, or 0 if it has none.
func GetOwner(hwnd windows.HWND) windows.HWND {
	r, _, _ := procGetWindow.Call(uintptr(hwnd), uintptr(GWOwner))
	return windows.HWND(r)
}

// GetWindowText returns the window title, truncated only by the OS's own
// 256-code-unit GetWindowText boundary.
func GetWindowText(hwnd windows.HWND) string {
	length, _, _ := procGetWindowTextLengthW.Call(uintptr(hwnd))
	if length == 0 {
		return ""
	}
	buf := make([]uint16, length+1)
	procGetWindowTextW.Call(uintptr(hwnd), uintptr(unsafe.Pointer(&buf[0])), uintptr(len(buf)))
	return syscall.UTF16ToString(buf)
}

// GetClassName returns the window class name.
func GetClassName(hwnd windows.HWND) string {
	buf := make([]uint16, 256)
	n, _, _ := procGetClassNameW.Call(uintptr(hwnd), uintptr(unsafe.Pointer(&buf[0])), uintptr(len(buf)))
	if n == 0 {
		return ""
	}
	return syscall.UTF16ToString(buf[:n])
}

// GetWindowRect returns the current (actual) screen rectangle of hwnd.
func GetWindowRect(hwnd windows.HWND) (RECT, error) {
	var r RECT
	ret, _, e := procGetWindowRect.Call(uintptr(hwnd), uintptr(unsafe.Pointer(&r)))
	if ret == 0 {
		return r, fmt.Errorf("GetWindowRect: %w", e)
	}
	return r, nil
}

// GetWindowPlacement returns hwnd's WINDOWPLACEMENT structure.
func GetWindowPlacement(hwnd windows.HWND) (WindowPlacement, error) {
	var wp WindowPlacement
	wp.Length = uint32(unsafe.Sizeof(wp))
	ret, _, e := procGetWindowPlacement.Call(uintptr(hwnd), uintptr(unsafe.Pointer(&wp)))
	if ret == 0 {
		return wp, fmt.Errorf("GetWindowPlacement: %w", e)
	}
	return wp, nil
}

// SetWindowPlacement applies a WINDOWPLACEMENT structure to hwnd.
func SetWindowPlacement(hwnd windows.HWND, wp WindowPlacement) error {
	ret, _, e := procSetWindowPlacement.Call(uintptr(hwnd), uintptr(unsafe.Pointer(&wp)))
	if ret == 0 {
		return fmt.Errorf("SetWindowPlacement: %w", e)
	}
	return nil
}

// ShowWindow issues an explicit show-state change (used for the
// post-placement maximize call spec §4.2 requires).
func ShowWindow(hwnd windows.HWND, cmdShow int) {
	procShowWindow.Call(uintptr(hwnd), uintptr(cmdShow))
}

// PostCloseMessage posts WM_CLOSE to hwnd without waiting for it to be
// processed (spec §4.2's graceful close: "not force-kill").
func PostCloseMessage(hwnd windows.HWND) error {
	ret, _, e := procPostMessageW.Call(uintptr(hwnd), uintptr(WMClose), 0, 0)
	if ret == 0 {
		return fmt.Errorf("PostMessage WM_CLOSE: %w", e)
	}
	return nil
}

// GetWindowProcessID returns the owning process id for hwnd.
func GetWindowProcessID(hwnd windows.HWND) uint32 {
	var pid uint32
	procGetWindowThreadProcessId.Call(uintptr(hwnd), uintptr(unsafe.Pointer(&pid)))
	return pid
}

// GetDpiForWindowHandle returns the per-window DPI. When GetDpiForWindow is
// unavailable it falls back to the window DC's LOGPIXELSX value, and it
// returns 96 (the default "100%" scale) when either call yields zero.
func GetDpiForWindowHandle(hwnd windows.HWND) uint32 {
	if procGetDpiForWindow.Find() != nil {
		return dpiViaDeviceCaps(hwnd)
	}
	r, _, _ := procGetDpiForWindow.Call(uintptr(hwnd))
	if r == 0 {
		return 96
	}
	return uint32(r)
}

func dpiViaDeviceCaps(hwnd windows.HWND) uint32 {
	hdc, _, _ := procGetDC.Call(uintptr(hwnd))
	if hdc == 0 {
		return 96
	}
	defer procReleaseDC.Call(uintptr(hwnd), hdc)
	dpi, _, _ := procGetDeviceCaps.Call(hdc, uintptr(LogPixelsX))
	if dpi == 0 {
		return 96
	}
	return uint32(dpi)
}

// MonitorFromWindowHandle returns the HMONITOR nearest to hwnd, calling
// MonitorFromWindow with MONITOR_DEFAULTTONEAREST (2).
func MonitorFromWindowHandle(hwnd windows.HWND) uintptr {
	const monitorDefaultToNearest = 2
	r, _, _ := procMonitorFromWindow.Call(uintptr(hwnd), uintptr(monitorDefaultToNearest))
	return r
}

// GetMonitorInfo returns geometry and device name for an HMONITOR.
func GetMonitorInfo(hMonitor uintptr) (MonitorInfoEx, error) {
	var mi MonitorInfoEx
	mi.CbSize = uint32(unsafe.Sizeof(mi))
	ret, _, e := procGetMonitorInfoW.Call(hMonitor, uintptr(unsafe.Pointer(&mi)))
	if ret == 0 {
		return mi, fmt.Errorf("GetMonitorInfo: %w", e)
	}
	return mi, nil
}

// EnumDisplayMonitorsCallback is invoked once per HMONITOR.
type EnumDisplayMonitorsCallback func(hMonitor uintptr, rect RECT) bool

// EnumDisplayMonitors enumerates every HMONITOR on the desktop (the GDI
// geometry sweep spec §4.1 describes).
func EnumDisplayMonitors(cb EnumDisplayMonitorsCallback) error {
	proc := syscall.NewCallback(func(hMonitor uintptr, hdc uintptr, rect *RECT, lparam uintptr) uintptr {
		if !cb(hMonitor, *rect) {
			return 0
		}
		return 1
	})
	ret, _, e := procEnumDisplayMonitors.Call(0, 0, proc, 0)
	if ret == 0 && e != syscall.Errno(0) {
		return fmt.Errorf("EnumDisplayMonitors: %w", e)
	}
	return nil
}

func UTF16PtrToString(p *uint16) string {
	if p == nil {
		return ""
	}
	return windows.UTF16PtrToString(p)
}
