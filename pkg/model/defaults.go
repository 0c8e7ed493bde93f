package model

import (
	"fmt"
	"time"
)

// DefaultAreas returns the starter area palette.
func DefaultAreas() []Area {
	return []Area{
		{Name: "Area A", Color: "#BA4A71"},
		{Name: "Area B", Color: "#31567D"},
		{Name: "Area C", Color: "#E8BC1C"},
		{Name: "Area D", Color: "#37B94B"},
		{Name: "Other", Color: "#FA4D2D"},
	}
}

// DefaultStatuses returns the starter status order.
func DefaultStatuses() []Status {
	return []Status{
		{ID: "early", Name: "Early stage"},
		{ID: "procurement", Name: "Procurement"},
		{ID: "implementation", Name: "Implementation"},
		{ID: "completion", Name: "Completion"},
	}
}

// Labels is an opaque lookup of display strings. Missing keys fall back to the
// English defaults and then to the key itself.
type Labels map[string]string

// Label keys used by the formatters.
const (
	LabelWeekPrefix      = "week.prefix"
	LabelWeekShort       = "week.short"
	LabelUnassigned      = "group.unassigned"
	LabelUnknownStatus   = "status.unknown"
	LabelOtherArea       = "area.other"
	LabelDefaultSymbol   = "symbol.default"
	LabelProjectsCounter = "group.count"
)

var englishMonths = [...]string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

var english = buildEnglish()

// DefaultLabels returns a copy of the English label table.
func DefaultLabels() Labels {
	return english.Merge(nil)
}

func buildEnglish() Labels {
	l := Labels{
		LabelWeekPrefix:      "Week",
		LabelWeekShort:       "W",
		LabelUnassigned:      "Unassigned",
		LabelUnknownStatus:   "Unknown",
		LabelOtherArea:       "Other",
		LabelDefaultSymbol:   "Default",
		LabelProjectsCounter: "%d projects",
		"symbol.star":        "Star",
		"symbol.diamond":     "Diamond",
		"symbol.flag":        "Flag",
		"symbol.warning":     "Warning",
		"symbol.check":       "Done",
	}
	for i, name := range englishMonths {
		l[monthKey(time.Month(i+1))] = name
		l[shortMonthKey(time.Month(i+1))] = name[:3]
	}
	return l
}

// Get returns the label for key.
func (l Labels) Get(key string) string {
	if v, ok := l[key]; ok && v != "" {
		return v
	}
	if v, ok := english[key]; ok {
		return v
	}
	return key
}

// Month returns the full month name.
func (l Labels) Month(m time.Month) string {
	return l.Get(monthKey(m))
}

// ShortMonth returns the abbreviated month name.
func (l Labels) ShortMonth(m time.Month) string {
	return l.Get(shortMonthKey(m))
}

// Merge overlays other onto a copy of l.
func (l Labels) Merge(other Labels) Labels {
	out := make(Labels, len(l)+len(other))
	for k, v := range l {
		out[k] = v
	}
	for k, v := range other {
		out[k] = v
	}
	return out
}

func monthKey(m time.Month) string {
	return fmt.Sprintf("month.%d", int(m))
}

func shortMonthKey(m time.Month) string {
	return fmt.Sprintf("month.short.%d", int(m))
}
