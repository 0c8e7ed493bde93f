// Package layout turns mapped timeline items into non-overlapping geometry:
// lane packing for bars and markers, row stacking for event labels, and the
// full per-render frame.
package layout

import (
	"math"
	"sort"

	"github.com/mattn/go-runewidth"
)

// Extent is a horizontal pixel interval.
type Extent struct {
	Left  float64
	Right float64
}

// Width of the extent.
func (e Extent) Width() float64 {
	return e.Right - e.Left
}

// Overlaps reports whether e and o come within pad pixels of each other.
func (e Extent) Overlaps(o Extent, pad float64) bool {
	return e.Left < o.Right+pad && e.Right > o.Left-pad
}

// Packing is the result of a lane or row assignment. Lanes is indexed like the
// input slice.
type Packing struct {
	Lanes   []int
	MaxLane int
}

// AssignLanes places each extent in the lowest lane not blocked by an earlier
// extent, processing extents left to right. Ties on Left keep input order.
func AssignLanes(extents []Extent, pad float64) Packing {
	p := Packing{Lanes: make([]int, len(extents))}
	order := byLeft(len(extents), func(i int) float64 { return extents[i].Left })
	for n, i := range order {
		occupied := make(map[int]struct{})
		for _, j := range order[:n] {
			if extents[i].Overlaps(extents[j], pad) {
				occupied[p.Lanes[j]] = struct{}{}
			}
		}
		lane := 0
		for {
			if _, taken := occupied[lane]; !taken {
				break
			}
			lane++
		}
		p.Lanes[i] = lane
		if lane > p.MaxLane {
			p.MaxLane = lane
		}
	}
	return p
}

// Label is a text label centred on Anchor.
type Label struct {
	Anchor float64
	Width  float64
}

// Extent of the label around its anchor.
func (l Label) Extent() Extent {
	return Extent{Left: l.Anchor - l.Width/2, Right: l.Anchor + l.Width/2}
}

// StackLabels assigns each label the row below the deepest earlier label it
// collides with, or row 0 when it collides with none.
func StackLabels(labels []Label, pad float64) Packing {
	p := Packing{Lanes: make([]int, len(labels))}
	order := byLeft(len(labels), func(i int) float64 { return labels[i].Anchor })
	for n, i := range order {
		cur := labels[i].Extent()
		row := 0
		for _, j := range order[:n] {
			if cur.Overlaps(labels[j].Extent(), pad) && row <= p.Lanes[j] {
				row = p.Lanes[j] + 1
			}
		}
		p.Lanes[i] = row
		if row > p.MaxLane {
			p.MaxLane = row
		}
	}
	return p
}

// Label width estimate parameters, in pixels.
const (
	CharWidth     = 7
	LabelInset    = 12
	MinLabelWidth = 50
	MaxLabelWidth = 150
)

// EstimateLabelWidth approximates the rendered width of text from its display
// cell count.
func EstimateLabelWidth(text string) float64 {
	w := float64(runewidth.StringWidth(text)*CharWidth + LabelInset)
	return math.Min(MaxLabelWidth, math.Max(MinLabelWidth, w))
}

// Sticky label parameters, in pixels.
const (
	StickyPadding  = 8
	StickyMinWidth = 40
)

// StickyLabel positions a label of labelWidth inside a bar so it stays in the
// visible part of the bar. It returns the offset from the bar's left edge and
// whether the label should be shown at all.
func StickyLabel(barLeft, barWidth, labelWidth, scroll, viewWidth float64) (float64, bool) {
	if barWidth < StickyMinWidth {
		return StickyPadding, false
	}
	barRight := barLeft + barWidth
	visLeft := math.Max(barLeft, scroll)
	visRight := math.Min(barRight, scroll+viewWidth)
	if visRight <= visLeft {
		return StickyPadding, true
	}
	visWidth := visRight - visLeft

	var pos float64
	if labelWidth > visWidth-StickyPadding*2 {
		if barLeft < scroll {
			pos = scroll - barLeft + StickyPadding
		} else {
			pos = StickyPadding
		}
		pos = math.Max(StickyPadding, math.Min(pos, barWidth-labelWidth-StickyPadding))
	} else {
		centre := (visLeft + visRight) / 2
		pos = centre - barLeft - labelWidth/2
		maxOffset := math.Max(StickyPadding, barWidth-labelWidth-StickyPadding)
		pos = math.Max(StickyPadding, math.Min(pos, maxOffset))
	}
	return pos, true
}

func byLeft(n int, left func(int) float64) []int {
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return left(order[a]) < left(order[b])
	})
	return order
}
