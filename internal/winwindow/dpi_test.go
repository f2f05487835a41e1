package winwindow

import (
	"testing"

	"github.com/marvintrvl/windowanchor/internal/model"
)

func TestScaleCoords_Identity(t *testing.T) {
	r := model.Rect{Left: 100, Top: 100, Right: 600, Bottom: 500}
	got := ScaleCoords(r, 96, 96)
	if got != r {
		t.Fatalf("ScaleCoords with equal DPI should be identity: got %+v, want %+v", got, r)
	}
}

func TestScaleCoords_ZeroSavedDPITreatedAs96(t *testing.T) {
	r := model.Rect{Left: 0, Top: 0, Right: 960, Bottom: 960}
	got := ScaleCoords(r, 0, 192)
	want := model.Rect{Left: 0, Top: 0, Right: 1920, Bottom: 1920}
	if got != want {
		t.Fatalf("ScaleCoords(0 saved) = %+v, want %+v", got, want)
	}
}

func TestScaleCoords_RoundTripWithinTruncationError(t *testing.T) {
	r := model.Rect{Left: 100, Top: 200, Right: 900, Bottom: 800}
	scaledUp := ScaleCoords(r, 96, 144)
	back := ScaleCoords(scaledUp, 144, 96)

	within := func(a, b int32) bool {
		d := a - b
		if d < 0 {
			d = -d
		}
		return d <= 1
	}
	if !within(back.Left, r.Left) || !within(back.Top, r.Top) ||
		!within(back.Right, r.Right) || !within(back.Bottom, r.Bottom) {
		t.Fatalf("round trip drifted beyond 1px truncation error: got %+v, want ~%+v", back, r)
	}
}

func TestDriftExceeds(t *testing.T) {
	restored := model.Rect{Left: 100, Top: 100, Right: 600, Bottom: 500}

	smallDrift := model.Rect{Left: 107, Top: 100, Right: 600, Bottom: 500}
	if driftExceeds(restored, smallDrift, SnapDriftThreshold) {
		t.Fatalf("7px DWM shadow drift should not exceed threshold")
	}

	snapOffset := model.Rect{Left: 960, Top: 100, Right: 1460, Bottom: 500}
	if !driftExceeds(restored, snapOffset, SnapDriftThreshold) {
		t.Fatalf("large snap offset should exceed threshold")
	}
}
