package commands

import (
	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/roadmap/pkg/commands/options"
)

var (
	output = &options.OutputOptions{}
	debug  bool
)

func New() *cobra.Command {

	cmd := &cobra.Command{
		Use:   "roadmap",
		Short: base.Wrap80("Plan projects and milestones on a zoomable timeline from the command line."),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	cmd.PersistentFlags().BoolVar(&debug, "debug", false,
		"Log debug output to stderr.")

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addUI(topLevel)
	addRender(topLevel)
	addProject(topLevel)
	addEvent(topLevel)
	addArea(topLevel)
	addStatus(topLevel)
	addRange(topLevel)
	addResize(topLevel)
	addUndo(topLevel)
	addExport(topLevel)
	addImport(topLevel)
	addReport(topLevel)
	addMCP(topLevel)
	addKey(topLevel)
	addInfo(topLevel)
	addVersion(topLevel)
	addUpgrade(topLevel)
	addCompletions(topLevel)
}
