package printers

import (
	"math"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/termenv"

	"tableflip.dev/roadmap/pkg/glyph"
	"tableflip.dev/roadmap/pkg/layout"
	"tableflip.dev/roadmap/pkg/model"
)

const (
	// CellPixels is how many timeline pixels one terminal column covers.
	CellPixels = 8
	// DefaultGutter is the width of the project name column.
	DefaultGutter = 18
	// DefaultColumns is used when the terminal width is unknown.
	DefaultColumns = 100
)

// Canvas draws a layout frame as character cells. Each column covers
// CellWidth pixels starting at Scroll.
type Canvas struct {
	Scroll    float64
	CellWidth float64
	Columns   int
	Profile   termenv.Profile

	// Gutter is the width of the left name column; zero hides it.
	Gutter int

	// Selected marks the gutter of the project row with this id.
	Selected string
}

// NewCanvas fits a viewWidth pixel window into columns cells.
func NewCanvas(scroll, viewWidth float64, columns, gutter int) Canvas {
	if columns < 1 {
		columns = 1
	}
	return Canvas{
		Scroll:    scroll,
		CellWidth: viewWidth / float64(columns),
		Columns:   columns,
		Gutter:    gutter,
		Profile:   termenv.Ascii,
	}
}

const (
	barRune   = '█'
	todayRune = '│'
	linkRune  = '─'
)

type cell struct {
	r  rune
	bg string
}

type line []cell

func (c Canvas) newLine() line {
	l := make(line, c.Columns)
	for i := range l {
		l[i].r = ' '
	}
	return l
}

// col maps a content x position to a column; it may fall outside the line.
func (c Canvas) col(x float64) int {
	if c.CellWidth <= 0 {
		return 0
	}
	return int(math.Floor((x-c.Scroll)/c.CellWidth + 1e-9))
}

func (l line) put(i int, r rune, bg string) {
	if i >= 0 && i < len(l) {
		l[i] = cell{r: r, bg: bg}
	}
}

func (l line) text(i int, s, bg string) {
	for _, r := range s {
		if i >= len(l) {
			return
		}
		if i >= 0 {
			l[i].r = r
			if bg != "" {
				l[i].bg = bg
			}
		}
		i++
	}
}

// span returns the columns covered by [left, left+width), at least one.
func (c Canvas) span(left, width float64) (int, int) {
	from := c.col(left)
	to := c.col(left + width)
	if to <= from {
		to = from + 1
	}
	return from, to
}

// Render returns the frame as text: the header, one line per project row
// plus its event labels, then the standalone event lanes.
func (c Canvas) Render(f layout.Frame) string {
	var out []string
	emit := func(gutter string, l line) {
		out = append(out, c.gutter(gutter)+c.paint(l))
	}

	emit("", c.headerLine(f))
	today := -1
	if f.HasToday {
		today = c.col(f.TodayX)
	}

	for _, s := range f.Sections {
		if s.Label != "" {
			marker := "▾ "
			if s.Collapsed {
				marker = "▸ "
			}
			out = append(out, marker+s.Label+" ("+s.Count+")")
			if s.Collapsed {
				continue
			}
		}
		for _, r := range s.Rows {
			l := c.newLine()
			c.marker(l, today)
			c.bar(l, r)
			for _, e := range r.Events {
				c.event(l, e, r.Color)
			}
			name := r.Project.Name
			if c.Selected != "" && r.ID == c.Selected {
				name = "▶ " + name
			}
			emit(name, l)
			for row := 0; row <= r.MaxLabelRow; row++ {
				ll, found := c.newLine(), false
				for _, e := range r.Events {
					if e.ShowLabel && e.LabelRow == row {
						ll.text(c.col(e.Extent.Left), e.Label, "")
						found = true
					}
				}
				if found {
					emit("", ll)
				}
			}
		}
	}

	if len(f.Standalone.Events) > 0 {
		for lane := 0; lane <= f.Standalone.MaxLane; lane++ {
			l := c.newLine()
			c.marker(l, today)
			for _, e := range f.Standalone.Events {
				if e.Lane != lane {
					continue
				}
				c.event(l, e, "")
				l.text(c.col(e.Left)+2, e.Label, "")
			}
			name := ""
			if lane == 0 {
				name = "Events"
			}
			emit(name, l)
		}
	}
	return strings.Join(out, "\n") + "\n"
}

func (c Canvas) headerLine(f layout.Frame) line {
	l := c.newLine()
	for _, b := range f.Header.Buckets {
		from, to := c.span(b.Left, b.Width)
		if to <= 0 || from >= c.Columns {
			continue
		}
		label := b.Label
		if b.Start.Month() == 1 || from <= 0 {
			label += " " + strconv.Itoa(b.Year)
		}
		start := from
		if start < 0 {
			start = 0
		}
		l.text(start, truncate.String(label, uint(to-start)), "")
	}
	return l
}

func (c Canvas) marker(l line, today int) {
	if today >= 0 {
		l.put(today, todayRune, "")
	}
}

func (c Canvas) bar(l line, r layout.ProjectRow) {
	from, to := c.span(r.Left, r.Width)
	fill := barRune
	if c.Profile != termenv.Ascii {
		fill = ' '
	}
	for i := from; i < to; i++ {
		l.put(i, fill, r.Color)
	}
	if c.Profile == termenv.Ascii || !r.LabelVisible {
		return
	}
	start := c.col(r.Left + r.LabelOffset)
	if start < from {
		start = from
	}
	if start < 0 {
		start = 0
	}
	if to > start {
		l.text(start, truncate.String(r.Project.Name, uint(to-start)), r.Color)
	}
}

func (c Canvas) event(l line, e layout.EventItem, bg string) {
	start := c.col(e.Left)
	if e.Event.HasDuration() {
		_, to := c.span(e.Left, e.Width)
		for i := start + 1; i < to-1; i++ {
			l.put(i, linkRune, bg)
		}
		l.put(to-1, glyphRune(e.Glyph), bg)
	}
	l.put(start, glyphRune(e.Glyph), bg)
}

func (c Canvas) gutter(name string) string {
	if c.Gutter <= 0 {
		return ""
	}
	name = truncate.StringWithTail(name, uint(c.Gutter-1), "…")
	pad := c.Gutter - runewidth.StringWidth(name)
	if pad < 0 {
		pad = 0
	}
	return name + strings.Repeat(" ", pad)
}

// paint joins a line, colouring background runs when the profile allows.
func (c Canvas) paint(l line) string {
	var sb strings.Builder
	for i := 0; i < len(l); {
		j := i
		var run strings.Builder
		for j < len(l) && l[j].bg == l[i].bg {
			run.WriteRune(l[j].r)
			j++
		}
		text := run.String()
		if bg := l[i].bg; bg != "" && c.Profile != termenv.Ascii {
			text = c.Profile.String(text).
				Background(c.Profile.Color(bg)).
				Foreground(c.Profile.Color(TextColor(bg))).
				String()
		}
		sb.WriteString(text)
		i = j
	}
	return strings.TrimRight(sb.String(), " ")
}

func glyphFor(e model.Event) glyph.Glyph {
	return glyph.ForKey(e.Symbol)
}

func glyphRune(g glyph.Glyph) rune {
	for _, r := range g.Symbol {
		return r
	}
	return '●'
}
