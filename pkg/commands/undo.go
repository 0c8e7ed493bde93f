package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/roadmap/pkg/runner/history"
)

func addUndo(topLevel *cobra.Command) {
	var steps int

	cmd := &cobra.Command{
		Use:   "undo",
		Short: "Undo the last change to projects and events.",
		Example: `
roadmap undo
roadmap undo -n 3
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			err := withSession(func(ctx context.Context, s *session) error {
				u := history.Undo{
					Steps:   steps,
					Service: s.Service,
				}
				return u.Do(ctx)
			})
			return output.HandleError(err)
		},
	}

	cmd.Flags().IntVarP(&steps, "steps", "n", 1,
		"How many changes to undo.")

	topLevel.AddCommand(cmd)
}
