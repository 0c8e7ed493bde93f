package options

import (
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/roadmap/pkg/viewport"
)

// ViewOptions
type ViewOptions struct {
	View    string
	Zoom    float64
	Scroll  float64
	Columns int
	Compact bool
	Today   string
	Focus   string

	cmd *cobra.Command
}

func AddViewArgs(cmd *cobra.Command, o *ViewOptions) {
	o.cmd = cmd
	cmd.Flags().StringVar(&o.View, "view", "",
		"Start from a preset view, one of: "+strings.Join(viewport.PresetNames(), ", ")+".")
	cmd.Flags().Float64Var(&o.Zoom, "zoom", 0,
		"Zoom level, applied after --view.")
	cmd.Flags().Float64Var(&o.Scroll, "scroll", 0,
		"Horizontal scroll offset in pixels, applied after --view and --zoom.")
	cmd.Flags().IntVar(&o.Columns, "width", 0,
		"Width of the rendering in terminal columns. Defaults to the terminal width.")
	cmd.Flags().BoolVar(&o.Compact, "compact", false,
		"Hide event label rows.")
	cmd.Flags().StringVar(&o.Focus, "focus", "",
		"Centre the window on the event with this id.")
	cmd.Flags().StringVar(&o.Today, "today", "",
		"Pretend today is this date (YYYY-MM-DD).")
}

// ScrollSet reports whether --scroll was given.
func (o *ViewOptions) ScrollSet() bool {
	return o.cmd != nil && o.cmd.Flags().Changed("scroll")
}

// CompactSet reports whether --compact was given.
func (o *ViewOptions) CompactSet() bool {
	return o.cmd != nil && o.cmd.Flags().Changed("compact")
}
