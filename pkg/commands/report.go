package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/roadmap/pkg/commands/options"
	"tableflip.dev/roadmap/pkg/runner/report"
	"tableflip.dev/roadmap/pkg/timeutil"
)

func addReport(topLevel *cobra.Command) {
	var last string
	do := &options.DateOptions{}
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Show projects and events active in a window of days, grouped by status.",
		Long: `Report lists the projects that overlap the window, grouped by status, with
their events inside the window and the standalone events after them.

Examples:
  roadmap report
  roadmap report --last 6m
  roadmap report --start 2024-01 --end 2024-03-31`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			format, _, err := oo.Structured()
			if err != nil {
				return output.HandleError(err)
			}
			days, label, err := timeutil.ParseSpan(last)
			if err != nil {
				return output.HandleError(err)
			}
			err = withSession(func(ctx context.Context, s *session) error {
				until := timeutil.Midnight(s.Service.Now())
				since := timeutil.AddDays(until, -days)
				start, _, hasStart, err := do.GetStart()
				if err != nil {
					return err
				}
				end, _, hasEnd, err := do.GetEnd()
				if err != nil {
					return err
				}
				if hasStart || hasEnd {
					label = ""
				}
				if hasStart {
					since = start.Time
				}
				if hasEnd {
					until = end.Time
				}
				r := report.Report{
					Since:   since,
					Until:   until,
					Label:   label,
					Format:  format,
					Service: s.Service,
				}
				return r.Do(ctx)
			})
			return output.HandleError(err)
		},
	}

	cmd.Flags().StringVar(&last, "last", timeutil.DefaultSpan, "window ending today (for example 30d, 6w, 3m, 1y)")
	options.AddDateArgs(cmd, do)
	options.AddFormatArg(cmd, oo)
	topLevel.AddCommand(cmd)
}

