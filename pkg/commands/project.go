package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"tableflip.dev/roadmap/pkg/commands/options"
	"tableflip.dev/roadmap/pkg/model"
	"tableflip.dev/roadmap/pkg/printers"
	"tableflip.dev/roadmap/pkg/runner/project"
	"tableflip.dev/roadmap/pkg/snake"
)

func addProject(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "project",
		Aliases: []string{"projects", "p"},
		Short:   "Add, list, edit and remove projects.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	addProjectAdd(cmd)
	addProjectList(cmd)
	addProjectEdit(cmd)
	addProjectRemove(cmd)

	topLevel.AddCommand(cmd)
}

func addProjectAdd(parent *cobra.Command) {
	po := &options.ProjectOptions{}
	ido := &options.IDOptions{}
	var interactive bool

	cmd := &cobra.Command{
		Use:   "add [name]",
		Short: "Add a project.",
		Example: `
roadmap project add "Bridge works" --start 2024-03 --end 2024-W30 --lead Ada --area Infrastructure
roadmap project add -i
`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			if len(args) == 1 {
				if err := cmd.Flags().Set("name", args[0]); err != nil {
					return output.HandleError(err)
				}
			}
			err := withSession(func(ctx context.Context, s *session) error {
				if interactive {
					if err := snake.PromptFlags(cmd, projectFields(s)...); err != nil {
						return err
					}
				}
				p := model.Project{}
				if err := po.Apply(&p, s.Service.AreaColor); err != nil {
					return err
				}
				r := project.Add{
					Project: p,
					ShowID:  ido.ShowID,
					Profile: printers.DisableColorUnlessTTY(),
					Service: s.Service,
				}
				return r.Do(ctx)
			})
			return output.HandleError(err)
		},
	}

	options.AddProjectArgs(cmd, po)
	options.AddShowIDArgs(cmd, ido)
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false,
		"Ask for every value not given as a flag.")

	parent.AddCommand(cmd)
}

// projectFields describes the project flags for the interactive prompt.
func projectFields(s *session) []snake.Field {
	var statuses, areas []snake.Choice
	for _, st := range s.Service.Statuses() {
		statuses = append(statuses, snake.Choice{Value: st.ID, Label: st.Name})
	}
	for _, a := range s.Service.Areas() {
		areas = append(areas, snake.Choice{Value: a.Color, Label: a.Name})
	}
	date := func(in string) error {
		d := options.DateOptions{Start: in}
		_, _, _, err := d.GetStart()
		return err
	}
	return []snake.Field{
		{Flag: "name", Required: true},
		{Flag: "start", Required: true, Validate: date},
		{Flag: "end", Required: true, Validate: date},
		{Flag: "lead"},
		{Flag: "status", Choices: statuses},
		{Flag: "area", Choices: areas},
		{Flag: "comment"},
	}
}

func addProjectList(parent *cobra.Command) {
	qo := &options.QueryOptions{}
	ido := &options.IDOptions{}
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List projects, optionally filtered and sorted.",
		Example: `
roadmap project list
roadmap project list --lead Ada --sort start -k
roadmap project list --area Research -o yaml
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
			err = withSession(func(ctx context.Context, s *session) error {
				r := project.List{
					Query:   q,
					ShowID:  ido.ShowID,
					Format:  format,
					Profile: printers.DisableColorUnlessTTY(),
					Service: s.Service,
				}
				return r.Do(ctx)
			})
			return output.HandleError(err)
		},
	}

	options.AddQueryArgs(cmd, qo)
	options.AddShowIDArgs(cmd, ido)
	options.AddFormatArg(cmd, oo)

	parent.AddCommand(cmd)
}

func addProjectEdit(parent *cobra.Command) {
	po := &options.ProjectOptions{}
	ido := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change a project. Only the flags given are applied.",
		Example: `
roadmap project edit 7c9e6679 --end 2024-12 --status production
`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: projectCompletions,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			err := withSession(func(ctx context.Context, s *session) error {
				r := project.Edit{
					ID: args[0],
					Apply: func(p *model.Project) error {
						return po.Apply(p, s.Service.AreaColor)
					},
					ShowID:  ido.ShowID,
					Profile: printers.DisableColorUnlessTTY(),
					Service: s.Service,
				}
				return r.Do(ctx)
			})
			return output.HandleError(err)
		},
	}

	options.AddProjectArgs(cmd, po)
	options.AddShowIDArgs(cmd, ido)

	parent.AddCommand(cmd)
}

func addProjectRemove(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "rm <id>...",
		Aliases: []string{"remove", "delete"},
		Short:   "Remove projects. Their events become standalone.",
		Example: `
roadmap project rm 7c9e6679
`,
		Args:              cobra.MinimumNArgs(1),
		ValidArgsFunction: projectCompletions,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			err := withSession(func(ctx context.Context, s *session) error {
				r := project.Remove{
					IDs:     args,
					Profile: printers.DisableColorUnlessTTY(),
					Service: s.Service,
				}
				if err := r.Do(ctx); err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Removed %d project(s). `roadmap undo` brings them back.\n", len(args))
				return nil
			})
			return output.HandleError(err)
		},
	}

	parent.AddCommand(cmd)
}
