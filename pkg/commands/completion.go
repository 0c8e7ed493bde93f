package commands

import (
	"context"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/roadmap/pkg/app"
)

func addCompletions(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "completion",
		Short: "Generates bash completion scripts",
		Long: `To load completion run

. <(roadmap completion)

To configure your bash shell to load completions for each session add to your bashrc

# ~/.bashrc or ~/.profile
. <(roadmap completion)
`,
		Run: func(cmd *cobra.Command, args []string) {
			_ = topLevel.GenBashCompletion(os.Stdout)
		},
	}

	topLevel.AddCommand(cmd)
}

// projectCompletions offers project ids, described by name.
func projectCompletions(_ *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	var out []string
	_ = withSession(func(_ context.Context, s *session) error {
		for _, p := range s.Service.Projects(app.Query{Sort: app.SortName}) {
			if strings.HasPrefix(p.ID, toComplete) {
				out = append(out, p.ID+"\t"+p.Name)
			}
		}
		return nil
	})
	return out, cobra.ShellCompDirectiveNoFileComp
}

// eventCompletions offers event ids, described by name.
func eventCompletions(_ *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	var out []string
	_ = withSession(func(_ context.Context, s *session) error {
		for _, e := range s.Service.Events(nil) {
			if strings.HasPrefix(e.ID, toComplete) {
				out = append(out, e.ID+"\t"+e.Name)
			}
		}
		return nil
	})
	return out, cobra.ShellCompDirectiveNoFileComp
}
