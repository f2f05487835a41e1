package winwindow

import "github.com/marvintrvl/windowanchor/internal/model"

// DefaultDPI is substituted whenever a saved DPI of zero is encountered
// (spec §4.2: "a zero saved-DPI value is treated as 96").
const DefaultDPI = 96

// SnapDriftThreshold is the pixel-edge difference above which a window's
// NORMAL-state restored rectangle is considered stale relative to its
// actual current rectangle (spec §4.2: "> the typical 7-14 pixel DWM shadow
// drift and << real snap offsets (100+ pixels)").
const SnapDriftThreshold = 15

// ScaleCoords rescales a rectangle from savedDPI to currentDPI, truncating
// each edge. A zero savedDPI is treated as DefaultDPI before scaling.
func ScaleCoords(r model.Rect, savedDPI, currentDPI uint32) model.Rect {
	if savedDPI == 0 {
		savedDPI = DefaultDPI
	}
	if currentDPI == 0 {
		currentDPI = DefaultDPI
	}
	if savedDPI == currentDPI {
		return r
	}
	scale := func(v int32) int32 {
		return int32(float64(v) * float64(currentDPI) / float64(savedDPI))
	}
	return model.Rect{
		Left:   scale(r.Left),
		Top:    scale(r.Top),
		Right:  scale(r.Right),
		Bottom: scale(r.Bottom),
	}
}

// driftExceeds reports whether any edge of actual differs from restored by
// more than SnapDriftThreshold pixels.
func driftExceeds(restored, actual model.Rect, threshold int32) bool {
	diff := func(a, b int32) int32 {
		if a > b {
			return a - b
		}
		return b - a
	}
	return diff(restored.Left, actual.Left) > threshold ||
		diff(restored.Top, actual.Top) > threshold ||
		diff(restored.Right, actual.Right) > threshold ||
		diff(restored.Bottom, actual.Bottom) > threshold
}
