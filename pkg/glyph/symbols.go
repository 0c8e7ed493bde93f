package glyph

import (
	"fmt"
	"strings"
)

// Glyph is a marker drawn for an event on the timeline.
type Glyph struct {
	Key     string
	Symbol  string
	Meaning string
	Aliases []string
	Order   int
}

// Default is the key stored for events without an explicit symbol.
const Default = "default"

func DefaultGlyphs() []Glyph {
	return []Glyph{{
		Key:     Default,
		Symbol:  "●",
		Meaning: "milestone",
		Aliases: []string{"", "dot", "marker"},
		Order:   0,
	}, {
		Key:     "star",
		Symbol:  "★",
		Meaning: "highlight",
		Aliases: []string{"*"},
		Order:   1,
	}, {
		Key:     "diamond",
		Symbol:  "◆",
		Meaning: "decision point",
		Aliases: []string{"<>"},
		Order:   2,
	}, {
		Key:     "flag",
		Symbol:  "⚑",
		Meaning: "deadline",
		Aliases: []string{"deadline"},
		Order:   3,
	}, {
		Key:     "warning",
		Symbol:  "⚠",
		Meaning: "risk",
		Aliases: []string{"!", "warn", "risk"},
		Order:   4,
	}, {
		Key:     "check",
		Symbol:  "✓",
		Meaning: "done",
		Aliases: []string{"done", "ok"},
		Order:   5,
	}}
}

func (g Glyph) String() string {
	return g.Symbol
}

// ForKey returns the glyph stored under key, falling back to the default marker.
func ForKey(key string) Glyph {
	if g, err := Lookup(key); err == nil {
		return g
	}
	return DefaultGlyphs()[0]
}

// Lookup resolves a key or alias.
func Lookup(alias string) (Glyph, error) {
	alias = strings.ToLower(strings.TrimSpace(alias))
	for _, g := range DefaultGlyphs() {
		if g.Key == alias {
			return g, nil
		}
		for _, a := range g.Aliases {
			if a == alias {
				return g, nil
			}
		}
	}
	return Glyph{}, fmt.Errorf("glyph: unknown symbol %q", alias)
}

// Keys lists the stored symbol keys in display order.
func Keys() []string {
	gs := DefaultGlyphs()
	keys := make([]string, 0, len(gs))
	for _, g := range gs {
		keys = append(keys, g.Key)
	}
	return keys
}

type ByOrder []Glyph

func (a ByOrder) Len() int           { return len(a) }
func (a ByOrder) Swap(i, j int)      { a[i], a[j] = a[j], a[i] }
func (a ByOrder) Less(i, j int) bool { return a[i].Order < a[j].Order }
