// Package viewport owns the zoom factor and horizontal scroll offset of the
// timeline and keeps them consistent with the coordinate mapper.
package viewport

import (
	"fmt"
	"math"
	"strings"
	"time"

	"tableflip.dev/roadmap/pkg/coord"
	"tableflip.dev/roadmap/pkg/timeutil"
)

// Config holds the zoom bounds and the base pixel width of one day.
type Config struct {
	DayWidth float64
	MinZoom  float64
	MaxZoom  float64
}

// DefaultConfig returns the stock 4px/day scale with zoom bounds [0.15, 10].
func DefaultConfig() Config {
	return Config{DayWidth: 4, MinZoom: 0.15, MaxZoom: 10}
}

// Viewport is a window of Width pixels onto the timeline.
type Viewport struct {
	cfg    Config
	start  time.Time
	end    time.Time
	width  float64
	zoom   float64
	scroll float64
}

// New returns a viewport at zoom 1 scrolled to the range start.
func New(cfg Config, start, end time.Time, width float64) *Viewport {
	if cfg.DayWidth <= 0 {
		cfg.DayWidth = DefaultConfig().DayWidth
	}
	if cfg.MinZoom <= 0 {
		cfg.MinZoom = DefaultConfig().MinZoom
	}
	if cfg.MaxZoom < cfg.MinZoom {
		cfg.MaxZoom = cfg.MinZoom
	}
	return &Viewport{
		cfg:   cfg,
		start: timeutil.Midnight(start),
		end:   timeutil.Midnight(end),
		width: math.Max(0, width),
		zoom:  clamp(1, cfg.MinZoom, cfg.MaxZoom),
	}
}

// Config returns the scale and zoom bounds v was built with.
func (v *Viewport) Config() Config { return v.cfg }

// Zoom is the current zoom factor.
func (v *Viewport) Zoom() float64 { return v.zoom }

// Scroll is the content offset of the left edge in pixels.
func (v *Viewport) Scroll() float64 { return v.scroll }

// Width is the visible width in pixels.
func (v *Viewport) Width() float64 { return v.width }

// Start is the first day of the timeline range.
func (v *Viewport) Start() time.Time { return v.start }

// End is the exclusive end of the timeline range.
func (v *Viewport) End() time.Time { return v.end }

// Mapper returns the coordinate mapper for the current zoom.
func (v *Viewport) Mapper() coord.Mapper {
	return coord.New(v.start, v.end, v.cfg.DayWidth, v.zoom)
}

// PixelsPerDay is the current scale.
func (v *Viewport) PixelsPerDay() float64 {
	return v.cfg.DayWidth * v.zoom
}

// TotalWidth is the pixel width of the whole range at the current zoom.
func (v *Viewport) TotalWidth() float64 {
	return v.Mapper().TotalWidth()
}

// SetWidth resizes the window, keeping the scroll offset in bounds.
func (v *Viewport) SetWidth(width float64) {
	v.width = math.Max(0, width)
	v.SetScroll(v.scroll)
}

// SetRange swaps the timeline bounds, keeping zoom and the date at the left
// edge where possible.
func (v *Viewport) SetRange(start, end time.Time) {
	left := v.DateAt(0)
	v.start = timeutil.Midnight(start)
	v.end = timeutil.Midnight(end)
	v.SetScroll(v.Mapper().DateToX(left))
}

// SetZoom sets an absolute zoom level, clamped, keeping the fractional scroll
// position.
func (v *Viewport) SetZoom(z float64) {
	v.rescale(clamp(z, v.cfg.MinZoom, v.cfg.MaxZoom), nil)
}

// ZoomBy changes the zoom level by delta, clamped to the configured bounds.
// The fractional scroll position is preserved.
func (v *Viewport) ZoomBy(delta float64) {
	v.rescale(clamp(v.zoom+delta, v.cfg.MinZoom, v.cfg.MaxZoom), nil)
}

// ZoomAt changes the zoom level by delta keeping the date under screen
// position anchorX fixed at that position.
func (v *Viewport) ZoomAt(delta, anchorX float64) {
	v.rescale(clamp(v.zoom+delta, v.cfg.MinZoom, v.cfg.MaxZoom), &anchorX)
}

func (v *Viewport) rescale(zoom float64, anchorX *float64) {
	if zoom == v.zoom {
		return
	}
	oldTotal := v.TotalWidth()
	ratio := 0.0
	anchor := 0.0
	if anchorX != nil {
		anchor = *anchorX
	}
	if oldTotal > 0 {
		ratio = (v.scroll + anchor) / oldTotal
	}
	v.zoom = zoom
	v.SetScroll(ratio*v.TotalWidth() - anchor)
}

// SetPresetSpan zooms so that days fill the window and scrolls anchor to the
// left edge.
func (v *Viewport) SetPresetSpan(days int, anchor time.Time) {
	if days > 0 && v.width > 0 {
		v.zoom = clamp(v.width/(float64(days)*v.cfg.DayWidth), v.cfg.MinZoom, v.cfg.MaxZoom)
	}
	v.SetScroll(math.Max(0, v.Mapper().DateToX(anchor)))
}

// FitAll zooms so that the whole range occupies the window exactly and
// scrolls to the start. The lower zoom bound does not apply here.
func (v *Viewport) FitAll() {
	days := v.Mapper().Days()
	if days > 0 && v.width > 0 {
		v.zoom = math.Min(v.width/(float64(days)*v.cfg.DayWidth), v.cfg.MaxZoom)
	}
	v.scroll = 0
}

// SetScroll moves the window to x, clamped to [0, TotalWidth-Width].
func (v *Viewport) SetScroll(x float64) {
	limit := math.Max(0, v.TotalWidth()-v.width)
	if math.IsNaN(x) {
		x = 0
	}
	v.scroll = clamp(x, 0, limit)
}

// ScrollBy moves the window by dx pixels.
func (v *Viewport) ScrollBy(dx float64) {
	v.SetScroll(v.scroll + dx)
}

// ScrollToDate centres t in the window.
func (v *Viewport) ScrollToDate(t time.Time) {
	v.SetScroll(v.Mapper().DateToX(t) - v.width/2)
}

// DateAt returns the day under screen position x.
func (v *Viewport) DateAt(x float64) time.Time {
	m := v.Mapper()
	// Nudge past float error so a day boundary resolves to the day it starts.
	return timeutil.AddDays(m.Start, int(math.Floor((v.scroll+x)/m.PixelsPerDay()+1e-9)))
}

// ScreenX returns the screen position of t's day start.
func (v *Viewport) ScreenX(t time.Time) float64 {
	return v.Mapper().DateToX(t) - v.scroll
}

// VisibleRange returns the first and last days intersecting the window.
func (v *Viewport) VisibleRange() (time.Time, time.Time) {
	from := v.DateAt(0)
	to := v.DateAt(math.Max(0, v.width-1))
	if to.After(timeutil.AddDays(v.end, -1)) {
		to = timeutil.AddDays(v.end, -1)
	}
	return from, to
}

// Preset is a named zoom/scroll shortcut.
type Preset struct {
	Name string
	// Days is the span shown in the window; zero fits the whole range.
	Days int
	// LeadIn moves today back to the date placed at the left edge.
	LeadIn func(today time.Time) time.Time
}

// Presets returns the built in views.
func Presets() []Preset {
	return []Preset{{
		Name: "all",
	}, {
		Name:   "2years",
		Days:   730,
		LeadIn: func(t time.Time) time.Time { return t.AddDate(0, -2, 0) },
	}, {
		Name:   "1year",
		Days:   365,
		LeadIn: func(t time.Time) time.Time { return t.AddDate(0, -1, 0) },
	}, {
		Name:   "3months",
		Days:   90,
		LeadIn: func(t time.Time) time.Time { return t.AddDate(0, 0, -14) },
	}}
}

// PresetNames lists the preset names in display order.
func PresetNames() []string {
	ps := Presets()
	names := make([]string, len(ps))
	for i, p := range ps {
		names[i] = p.Name
	}
	return names
}

// PresetByName finds a preset.
func PresetByName(name string) (Preset, error) {
	for _, p := range Presets() {
		if strings.EqualFold(p.Name, name) {
			return p, nil
		}
	}
	return Preset{}, fmt.Errorf("viewport: unknown view %q (want one of %s)", name, strings.Join(PresetNames(), ", "))
}

// Apply moves the viewport to the preset relative to today.
func (v *Viewport) Apply(p Preset, today time.Time) {
	if p.Days <= 0 {
		v.FitAll()
		return
	}
	anchor := timeutil.Midnight(today)
	if p.LeadIn != nil {
		anchor = p.LeadIn(anchor)
	}
	v.SetPresetSpan(p.Days, anchor)
}

// ApplyPreset looks up and applies a named preset.
func (v *Viewport) ApplyPreset(name string, today time.Time) error {
	p, err := PresetByName(name)
	if err != nil {
		return err
	}
	v.Apply(p, today)
	return nil
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
