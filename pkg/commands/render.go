package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/roadmap/pkg/app"
	"tableflip.dev/roadmap/pkg/commands/options"
	"tableflip.dev/roadmap/pkg/gesture"
	"tableflip.dev/roadmap/pkg/printers"
	"tableflip.dev/roadmap/pkg/runner/render"
)

func window(vo *options.ViewOptions) render.Window {
	return render.Window{
		View:      vo.View,
		Zoom:      vo.Zoom,
		Scroll:    vo.Scroll,
		ScrollSet: vo.ScrollSet(),
		Focus:     vo.Focus,
		Columns:   vo.Columns,
	}
}

func addRender(topLevel *cobra.Command) {
	vo := &options.ViewOptions{}
	qo := &options.QueryOptions{}
	oo := &options.OutputOptions{}
	var (
		group bool
		pack  bool
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Draw the timeline in the terminal, or print its geometry.",
		Example: `
roadmap render
roadmap render --view 1year --sort status
roadmap render --zoom 2 --scroll 400 --width 120
roadmap render --view all -o json
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			format, _, err := oo.Structured()
			if err != nil {
				return output.HandleError(err)
			}
			q, err := qo.Query()
			if err != nil {
				return output.HandleError(err)
			}
			today, err := render.Today(vo.Today)
			if err != nil {
				return output.HandleError(err)
			}
			err = withSession(func(ctx context.Context, s *session) error {
				compact := s.Settings.Compact
				if vo.CompactSet() {
					compact = vo.Compact
				}
				r := render.Render{
					Window: window(vo),
					Options: app.RenderOptions{
						Query:        q,
						Compact:      compact,
						GroupByLead:  group,
						PackProjects: pack,
						Today:        today,
					},
					Format:  format,
					Profile: printers.DisableColorUnlessTTY(),
					Service: s.Service,
				}
				return r.Do(ctx)
			})
			return output.HandleError(err)
		},
	}

	options.AddViewArgs(cmd, vo)
	options.AddSortArg(cmd, qo)
	cmd.Flags().StringVar(&qo.Lead, "lead", "",
		"Only projects led by this person.")
	cmd.Flags().StringVar(&qo.Area, "area", "",
		"Only projects in this area, by name or colour.")
	cmd.Flags().BoolVar(&group, "group-by-lead", false,
		"Group rows under their lead.")
	cmd.Flags().BoolVar(&pack, "pack", false,
		"Share rows between projects that do not overlap.")
	options.AddFormatArg(cmd, oo)

	topLevel.AddCommand(cmd)
}

func addResize(topLevel *cobra.Command) {
	vo := &options.ViewOptions{}
	var (
		side    string
		dx      float64
		isEvent bool
	)

	cmd := &cobra.Command{
		Use:   "resize <id>",
		Short: "Drag a project or event edge by a number of pixels, as the timeline view would.",
		Long: `Resize replays a handle drag through the same gesture engine the interactive
view uses. The bar never shrinks below its minimum width, and the new dates snap
to whole days at the current zoom.`,
		Example: `
roadmap resize 7c9e6679 --side right --dx -190
roadmap resize 1b4e28ba --event --side left --dx 40 --zoom 2
`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: projectCompletions,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			s, err := gesture.ParseSide(side)
			if err != nil {
				return output.HandleError(err)
			}
			target := gesture.Target{Kind: gesture.KindProject, ID: args[0]}
			if isEvent {
				target.Kind = gesture.KindEvent
			}
			err = withSession(func(ctx context.Context, sess *session) error {
				r := render.Resize{
					Target:  target,
					Side:    s,
					DX:      dx,
					Window:  window(vo),
					Service: sess.Service,
				}
				return r.Do(ctx)
			})
			return output.HandleError(err)
		},
	}

	cmd.Flags().StringVar(&side, "side", "right",
		"Which edge to drag, left or right.")
	cmd.Flags().Float64Var(&dx, "dx", 0,
		"Pixels to move the edge; negative moves it left.")
	cmd.Flags().BoolVar(&isEvent, "event", false,
		"The id is an event with an end date, not a project.")
	options.AddViewArgs(cmd, vo)

	topLevel.AddCommand(cmd)
}
