package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/roadmap/pkg/runner/transfer"
	"tableflip.dev/roadmap/pkg/store"
)

func addExport(topLevel *cobra.Command) {
	var format string

	cmd := &cobra.Command{
		Use:   "export [file]",
		Short: "Write every project, event, area and status to a snapshot file.",
		Example: `
roadmap export roadmap.json
roadmap export -f yaml > roadmap.yaml
`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			e := transfer.Export{}
			if len(args) == 1 {
				e.Path = args[0]
			}
			if format != "" {
				f, err := store.ParseFormat(format)
				if err != nil {
					return output.HandleError(err)
				}
				e.Format = f
			}
			err := withSession(func(ctx context.Context, s *session) error {
				e.Service = s.Service
				return e.Do(ctx)
			})
			return output.HandleError(err)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "",
		"Snapshot format, json or yaml. Defaults to the file extension, else json.")

	topLevel.AddCommand(cmd)
}

func addImport(topLevel *cobra.Command) {
	var (
		format string
		merge  bool
	)

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Load a snapshot file, replacing or merging with the current roadmap.",
		Example: `
roadmap import roadmap.json
roadmap import --merge other-team.yaml
cat roadmap.json | roadmap import -
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			i := transfer.Import{
				Path:  args[0],
				Merge: merge,
				In:    cmd.InOrStdin(),
			}
			if format != "" {
				f, err := store.ParseFormat(format)
				if err != nil {
					return output.HandleError(err)
				}
				i.Format = f
			}
			err := withSession(func(ctx context.Context, s *session) error {
				i.Service = s.Service
				return i.Do(ctx)
			})
			return output.HandleError(err)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "",
		"Snapshot format, json or yaml. Defaults to the file extension, else json.")
	cmd.Flags().BoolVar(&merge, "merge", false,
		"Add the snapshot's projects and events under new ids instead of replacing.")

	topLevel.AddCommand(cmd)
}
