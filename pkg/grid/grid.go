// Package grid partitions a timeline range into header buckets and grid lines
// whose granularity follows the current pixel density.
package grid

import (
	"fmt"
	"strconv"
	"time"

	"tableflip.dev/roadmap/pkg/timeutil"
)

// Tier is the granularity chosen for a pixel density.
type Tier int

const (
	// TierQuarter shows quarter headers and quarterly lines.
	TierQuarter Tier = iota
	// TierMonth shows month headers and monthly lines.
	TierMonth
	// TierWeek shows month headers with week sub-cells and weekly lines.
	TierWeek
	// TierDay shows month headers with day sub-cells and daily lines.
	TierDay
)

// Density thresholds in pixels per day.
const (
	DayThreshold   = 25
	WeekThreshold  = 8
	MonthThreshold = 1.5
)

// TierFor picks the granularity for ppd pixels per day.
func TierFor(ppd float64) Tier {
	switch {
	case ppd >= DayThreshold:
		return TierDay
	case ppd >= WeekThreshold:
		return TierWeek
	case ppd >= MonthThreshold:
		return TierMonth
	default:
		return TierQuarter
	}
}

func (t Tier) String() string {
	switch t {
	case TierDay:
		return "day"
	case TierWeek:
		return "week"
	case TierMonth:
		return "month"
	default:
		return "quarter"
	}
}

// Labeler supplies the display strings used in headers.
type Labeler interface {
	ShortMonth(m time.Month) string
	Get(key string) string
}

// WeekPrefixKey is the Labeler key for the week sub-cell prefix.
const WeekPrefixKey = "week.short"

// Cell is a sub-division of a header bucket (a day or part of a week).
type Cell struct {
	Label   string
	Start   time.Time
	Days    int
	Left    float64
	Width   float64
	Weekend bool
	Week    int
}

// Bucket is one header cell: a month or a quarter clipped to the range.
type Bucket struct {
	Year  int
	Label string
	Start time.Time
	Days  int
	Left  float64
	Width float64
	Cells []Cell
}

// Header is the ordered bucket sequence for a range.
type Header struct {
	Tier    Tier
	Buckets []Bucket
	Width   float64
}

// BuildHeader partitions [start, end) into buckets at the tier chosen by ppd.
// Bucket widths sum to the full range width.
func BuildHeader(start, end time.Time, ppd float64, labels Labeler) Header {
	start, end = timeutil.Midnight(start), timeutil.Midnight(end)
	tier := TierFor(ppd)
	h := Header{Tier: tier}
	if !start.Before(end) {
		return h
	}

	for _, span := range spans(start, end, tier) {
		b := Bucket{
			Year:  span.from.Year(),
			Start: span.from,
			Days:  span.days,
			Left:  float64(timeutil.DaysBetween(start, span.from)) * ppd,
			Width: float64(span.days) * ppd,
		}
		if tier == TierQuarter {
			b.Label = "Q" + strconv.Itoa(quarterOf(span.from.Month())+1)
		} else {
			b.Label = labels.ShortMonth(span.from.Month())
		}
		switch tier {
		case TierDay:
			b.Cells = dayCells(start, span, ppd)
		case TierWeek:
			b.Cells = weekCells(start, span, ppd, labels.Get(WeekPrefixKey))
		}
		h.Width += b.Width
		h.Buckets = append(h.Buckets, b)
	}
	return h
}

// LineKind classifies a grid line.
type LineKind int

const (
	LineQuarter LineKind = iota
	LineMonth
	LineWeek
	LineDay
)

func (k LineKind) String() string {
	switch k {
	case LineDay:
		return "day"
	case LineWeek:
		return "week"
	case LineMonth:
		return "month"
	default:
		return "quarter"
	}
}

// Line is one vertical grid segment. The line is drawn at its left edge.
type Line struct {
	Kind    LineKind
	Start   time.Time
	Left    float64
	Width   float64
	Weekend bool
	Monday  bool
}

// BuildGrid returns the grid segments covering [start, end) for ppd.
func BuildGrid(start, end time.Time, ppd float64) []Line {
	start, end = timeutil.Midnight(start), timeutil.Midnight(end)
	if !start.Before(end) {
		return nil
	}
	tier := TierFor(ppd)
	var lines []Line
	for _, span := range spans(start, end, tier) {
		switch tier {
		case TierDay:
			for _, c := range dayCells(start, span, ppd) {
				lines = append(lines, Line{Kind: LineDay, Start: c.Start, Left: c.Left, Width: c.Width, Weekend: c.Weekend, Monday: timeutil.IsMonday(c.Start)})
			}
		case TierWeek:
			for _, c := range weekCells(start, span, ppd, "") {
				lines = append(lines, Line{Kind: LineWeek, Start: c.Start, Left: c.Left, Width: c.Width, Monday: timeutil.IsMonday(c.Start)})
			}
		case TierMonth:
			lines = append(lines, Line{Kind: LineMonth, Start: span.from, Left: float64(timeutil.DaysBetween(start, span.from)) * ppd, Width: float64(span.days) * ppd})
		default:
			lines = append(lines, Line{Kind: LineQuarter, Start: span.from, Left: float64(timeutil.DaysBetween(start, span.from)) * ppd, Width: float64(span.days) * ppd})
		}
	}
	return lines
}

type span struct {
	from time.Time
	to   time.Time
	days int
}

// spans walks calendar months (or quarters) clipped to [start, end).
func spans(start, end time.Time, tier Tier) []span {
	step := 1
	first := timeutil.FirstOfMonth(start.Month(), start.Year())
	if tier == TierQuarter {
		step = 3
		first = timeutil.FirstOfMonth(time.Month(quarterOf(start.Month())*3+1), start.Year())
	}
	var out []span
	for b := first; b.Before(end); b = b.AddDate(0, step, 0) {
		from := timeutil.Max(b, start)
		to := timeutil.Min(b.AddDate(0, step, 0), end)
		days := timeutil.DaysBetween(from, to)
		if days <= 0 {
			continue
		}
		out = append(out, span{from: from, to: to, days: days})
	}
	return out
}

func dayCells(origin time.Time, s span, ppd float64) []Cell {
	cells := make([]Cell, 0, s.days)
	for i := 0; i < s.days; i++ {
		d := timeutil.AddDays(s.from, i)
		cells = append(cells, Cell{
			Label:   strconv.Itoa(d.Day()),
			Start:   d,
			Days:    1,
			Left:    float64(timeutil.DaysBetween(origin, d)) * ppd,
			Width:   ppd,
			Weekend: timeutil.IsWeekend(d),
			Week:    timeutil.ISOWeek(d),
		})
	}
	return cells
}

// weekCells splits a month span at week boundaries. A week crossing the month
// edge yields one cell per month; only the cell holding Monday, or the first
// day of the whole range, carries the week label.
func weekCells(origin time.Time, s span, ppd float64, prefix string) []Cell {
	var cells []Cell
	for d := s.from; d.Before(s.to); {
		n := timeutil.DaysLeftInWeek(d)
		if left := timeutil.DaysBetween(d, s.to); left < n {
			n = left
		}
		week := timeutil.ISOWeek(d)
		c := Cell{
			Start: d,
			Days:  n,
			Left:  float64(timeutil.DaysBetween(origin, d)) * ppd,
			Width: float64(n) * ppd,
			Week:  week,
		}
		if timeutil.IsMonday(d) || timeutil.SameDay(d, origin) {
			c.Label = fmt.Sprintf("%s%d", prefix, week)
		}
		cells = append(cells, c)
		d = timeutil.AddDays(d, n)
	}
	return cells
}

func quarterOf(m time.Month) int {
	return (int(m) - 1) / 3
}
