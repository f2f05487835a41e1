// Package winwindow implements the WindowModel: enumerating, filtering,
// capturing, scaling and restoring top-level application windows.
package winwindow

import "strings"

// SkipClasses is the static set of window classes spec §4.2 excludes as
// shell chrome, background workers or transient popups.
var SkipClasses = map[string]bool{
	"Shell_TrayWnd":                      true,
	"DV2ControlHost":                     true,
	"MsgrIMEWindowClass":                 true,
	"SysShadow":                          true,
	"Button":                             true,
	"Windows.UI.Core.CoreWindow":         true,
	"Progman":                            true,
	"WorkerW":                            true,
	"NotifyIconOverflowWindow":           true,
	"TrayClockWClass":                    true,
	"MSTaskListWClass":                   true,
	"MSTaskSwWClass":                     true,
	"ReBarWindow32":                      true,
	"TopLevelWindowForOverflowXamlIsland": true,
}

// Candidate is the minimal view of a raw window query needed to decide
// whether it counts as a capturable user window. Kept separate from the
// Win32-backed enumeration so the filtering rule itself can be unit tested
// without a display.
type Candidate struct {
	Visible    bool
	HasOwner   bool
	ClassName  string
	Title      string
	Width      int32
	Height     int32
}

// MinWindowDimension is the spec §4.2 minimum bounding-rect size (in either
// dimension) for a window to count as a real application window.
const MinWindowDimension = 100

// ShouldInclude applies the spec §4.2 filtering criteria: visible, no
// owner, class not in the skip set, non-whitespace title, and a bounding
// rectangle at least 100x100.
func ShouldInclude(c Candidate) bool {
	if !c.Visible || c.HasOwner {
		return false
	}
	if SkipClasses[c.ClassName] {
		return false
	}
	if strings.TrimSpace(c.Title) == "" {
		return false
	}
	if c.Width < MinWindowDimension || c.Height < MinWindowDimension {
		return false
	}
	return true
}
