package commands

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/roadmap/pkg/printers"
	"tableflip.dev/roadmap/pkg/runner/ui"
	"tableflip.dev/roadmap/pkg/viewport"
)

func addUI(topLevel *cobra.Command) {
	var (
		view    string
		compact bool
	)

	cmd := &cobra.Command{
		Use:   "ui",
		Short: "open the interactive timeline",
		Example: `
roadmap ui
roadmap ui --view 3months
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			err := withSession(func(ctx context.Context, s *session) error {
				c := s.Settings.Compact
				if cmd.Flags().Changed("compact") {
					c = compact
				}
				i := ui.UI{
					View:        view,
					Compact:     c,
					Profile:     printers.DisableColorUnlessTTY(),
					Logger:      s.Log,
					Service:     s.Service,
					Persistence: s.Persistence,
				}
				return i.Do(ctx)
			})
			return output.HandleError(err)
		},
	}

	cmd.Flags().StringVar(&view, "view", "",
		"Start from a preset view, one of: "+strings.Join(viewport.PresetNames(), ", ")+".")
	cmd.Flags().BoolVar(&compact, "compact", false,
		"Hide event label rows.")

	topLevel.AddCommand(cmd)
}
