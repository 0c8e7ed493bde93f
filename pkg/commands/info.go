package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/roadmap/pkg/runner/info"
	"tableflip.dev/roadmap/pkg/store"
)

func addInfo(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Details about the roadmap and where it is stored.",
		Example: `
roadmap info
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			err := withSession(func(ctx context.Context, s *session) error {
				i := info.Info{
					Config:     s.Settings,
					ConfigFile: store.ConfigFile(),
					Service:    s.Service,
				}
				return i.Do(ctx)
			})
			return output.HandleError(err)
		},
	}

	topLevel.AddCommand(cmd)
}
