package printers

import (
	"os"

	"github.com/fatih/color"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// ColorEnabled reports whether f is a terminal that should get colour.
func ColorEnabled(f *os.File) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// DisableColorUnlessTTY turns fatih/color off when stdout is redirected and
// returns the termenv profile matching the decision.
func DisableColorUnlessTTY() termenv.Profile {
	if !ColorEnabled(os.Stdout) {
		color.NoColor = true
		return termenv.Ascii
	}
	return termenv.ColorProfile()
}

// TextColor picks black or white, whichever reads better on bg.
func TextColor(bg string) string {
	c, err := colorful.Hex(bg)
	if err != nil {
		return "#FFFFFF"
	}
	l, _, _ := c.Lab()
	if l > 0.6 {
		return "#000000"
	}
	return "#FFFFFF"
}

// Swatch renders width blank cells on the colour hex.
func Swatch(p termenv.Profile, hex string, width int) string {
	if width <= 0 {
		width = 2
	}
	blank := make([]byte, width)
	for i := range blank {
		blank[i] = ' '
	}
	if p == termenv.Ascii {
		return "[" + hex + "]"
	}
	return p.String(string(blank)).Background(p.Color(hex)).String()
}
