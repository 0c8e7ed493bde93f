package viewport

import (
	"math"
	"testing"
	"time"

	"tableflip.dev/roadmap/pkg/timeutil"
)

func newTestViewport() *Viewport {
	return New(DefaultConfig(), timeutil.Date(2021, 1, 1), timeutil.Date(2029, 1, 1), 1200)
}

func TestZoomByClamps(t *testing.T) {
	v := newTestViewport()
	for _, delta := range []float64{100, -1000, 0.5, -0.2, 1e9, -1e9, 3} {
		v.ZoomBy(delta)
		if z := v.Zoom(); z < 0.15 || z > 10 {
			t.Fatalf("zoom %v escaped bounds after delta %v", z, delta)
		}
		v.ZoomAt(delta, 600)
		if z := v.Zoom(); z < 0.15 || z > 10 {
			t.Fatalf("anchored zoom %v escaped bounds after delta %v", z, delta)
		}
	}
	v.ZoomBy(1e6)
	if v.Zoom() != 10 {
		t.Fatalf("expected max zoom, got %v", v.Zoom())
	}
	v.ZoomBy(-1e6)
	if v.Zoom() != 0.15 {
		t.Fatalf("expected min zoom, got %v", v.Zoom())
	}
}

func TestZoomAtKeepsAnchorDate(t *testing.T) {
	tests := []struct {
		zoom, delta, scroll, anchor float64
	}{
		{1, 0.5, 4000, 300},
		{1, -0.5, 4000, 900},
		{2, 3, 8000, 0},
		{0.5, 0.25, 1000, 1199},
		{5, -2.5, 30000, 600},
	}
	for _, tt := range tests {
		v := newTestViewport()
		v.SetZoom(tt.zoom)
		v.SetScroll(tt.scroll)
		before := (v.Scroll() + tt.anchor) / v.PixelsPerDay()

		v.ZoomAt(tt.delta, tt.anchor)

		after := (v.Scroll() + tt.anchor) / v.PixelsPerDay()
		// The same fractional day must sit under the anchor.
		if px := math.Abs(after-before) * v.PixelsPerDay(); px > 1 {
			t.Fatalf("%+v: anchor drifted by %.3fpx", tt, px)
		}
	}
}

func TestZoomByKeepsScrollRatio(t *testing.T) {
	v := newTestViewport()
	v.SetScroll(3000)
	ratio := v.Scroll() / v.TotalWidth()
	v.ZoomBy(1)
	if got := v.Scroll() / v.TotalWidth(); math.Abs(got-ratio) > 1e-9 {
		t.Fatalf("scroll ratio changed: %v -> %v", ratio, got)
	}
}

func TestScrollClamped(t *testing.T) {
	v := newTestViewport()
	v.SetScroll(-50)
	if v.Scroll() != 0 {
		t.Fatalf("expected 0, got %v", v.Scroll())
	}
	v.SetScroll(1e12)
	if want := v.TotalWidth() - v.Width(); v.Scroll() != want {
		t.Fatalf("expected %v, got %v", want, v.Scroll())
	}
}

func TestPresetSpan(t *testing.T) {
	v := newTestViewport()
	today := timeutil.Date(2024, 6, 15)
	if err := v.ApplyPreset("3months", today); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if want := 1200.0 / (90 * 4); math.Abs(v.Zoom()-want) > 1e-9 {
		t.Fatalf("expected zoom %v, got %v", want, v.Zoom())
	}
	if got := v.DateAt(0); !timeutil.SameDay(got, timeutil.Date(2024, 6, 1)) {
		t.Fatalf("expected left edge 2024-06-01, got %s", timeutil.FormatDate(got))
	}

	if err := v.ApplyPreset("2years", today); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if got := v.DateAt(0); !timeutil.SameDay(got, timeutil.Date(2024, 4, 15)) {
		t.Fatalf("expected left edge 2024-04-15, got %s", timeutil.FormatDate(got))
	}

	if err := v.ApplyPreset("decade", today); err == nil {
		t.Fatalf("expected unknown view error")
	}
}

func TestPresetSpanClampsZoom(t *testing.T) {
	v := New(DefaultConfig(), timeutil.Date(2024, 1, 1), timeutil.Date(2025, 1, 1), 1200)
	v.SetPresetSpan(1, timeutil.Date(2024, 1, 1))
	if v.Zoom() != 10 {
		t.Fatalf("expected zoom clamped to 10, got %v", v.Zoom())
	}
	v.SetPresetSpan(100000, timeutil.Date(2024, 1, 1))
	if v.Zoom() != 0.15 {
		t.Fatalf("expected zoom clamped to 0.15, got %v", v.Zoom())
	}
}

func TestFitAll(t *testing.T) {
	v := newTestViewport()
	v.SetScroll(5000)
	v.FitAll()
	if v.Scroll() != 0 {
		t.Fatalf("expected scroll 0, got %v", v.Scroll())
	}
	if math.Abs(v.TotalWidth()-v.Width()) > 1e-6 {
		t.Fatalf("expected total width %v to equal viewport %v", v.TotalWidth(), v.Width())
	}
}

func TestScrollToDateCentres(t *testing.T) {
	v := newTestViewport()
	d := timeutil.Date(2025, 3, 1)
	v.ScrollToDate(d)
	if got := v.ScreenX(d); math.Abs(got-600) > 1e-6 {
		t.Fatalf("expected date centred at 600, got %v", got)
	}
}

func TestVisibleRange(t *testing.T) {
	v := New(DefaultConfig(), timeutil.Date(2024, 1, 1), timeutil.Date(2025, 1, 1), 400)
	from, to := v.VisibleRange()
	if !timeutil.SameDay(from, timeutil.Date(2024, 1, 1)) {
		t.Fatalf("unexpected from %s", timeutil.FormatDate(from))
	}
	if !timeutil.SameDay(to, timeutil.Date(2024, 1, 1).AddDate(0, 0, 99)) {
		t.Fatalf("unexpected to %s", timeutil.FormatDate(to))
	}
	v.SetWidth(1e6)
	_, to = v.VisibleRange()
	if !timeutil.SameDay(to, time.Date(2024, 12, 31, 0, 0, 0, 0, time.Local)) {
		t.Fatalf("expected range clipped to last day, got %s", timeutil.FormatDate(to))
	}
}
