package commands

import (
	"context"
	"strconv"

	"github.com/spf13/cobra"

	"tableflip.dev/roadmap/pkg/commands/options"
	"tableflip.dev/roadmap/pkg/printers"
	"tableflip.dev/roadmap/pkg/runner/catalog"
)

func addArea(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "area",
		Aliases: []string{"areas"},
		Short:   "Manage the colour coded areas projects belong to.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	runArea := func(op catalog.AreaOp, nargs int, use, short, example string) *cobra.Command {
		var force bool
		oo := &options.OutputOptions{}
		c := &cobra.Command{
			Use:     use,
			Short:   short,
			Example: example,
			Args:    cobra.ExactArgs(nargs),
			RunE: func(cmd *cobra.Command, args []string) error {
				cmd.SilenceUsage = true
				format, _, err := oo.Structured()
				if err != nil {
					return output.HandleError(err)
				}
				r := catalog.Areas{Op: op, Force: force, Format: format, Profile: printers.DisableColorUnlessTTY()}
				if len(args) > 0 {
					r.Key = args[0]
				}
				if len(args) > 1 {
					r.Value = args[1]
				}
				err = withSession(func(ctx context.Context, s *session) error {
					r.Service = s.Service
					return r.Do(ctx)
				})
				return output.HandleError(err)
			},
		}
		options.AddFormatArg(c, oo)
		if op == catalog.AreaRemove {
			c.Flags().BoolVarP(&force, "force", "f", false,
				"Remove the area even if projects still use its colour.")
		}
		return c
	}

	list := runArea(catalog.AreaList, 0, "list", "List areas and how many projects use each.", `
roadmap area list
`)
	list.Aliases = []string{"ls"}
	cmd.AddCommand(list)
	cmd.AddCommand(runArea(catalog.AreaAdd, 2, "add <name> <colour>", "Add an area.", `
roadmap area add Research "#8E44AD"
`))
	cmd.AddCommand(runArea(catalog.AreaRename, 2, "rename <area> <name>", "Rename an area, given by name or colour.", `
roadmap area rename Research Discovery
`))
	cmd.AddCommand(runArea(catalog.AreaRecolor, 2, "color <area> <colour>", "Change an area's colour. Its projects follow.", `
roadmap area color Research "#3366FF"
`))
	rm := runArea(catalog.AreaRemove, 1, "rm <area>", "Remove an area.", `
roadmap area rm Research --force
`)
	rm.Aliases = []string{"remove", "delete"}
	cmd.AddCommand(rm)

	topLevel.AddCommand(cmd)
}

func addStatus(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "status",
		Aliases: []string{"statuses"},
		Short:   "Manage the ordered list of project statuses.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	runStatus := func(op catalog.StatusOp, argsFn cobra.PositionalArgs, use, short, example string, fill func(r *catalog.Statuses, args []string) error) *cobra.Command {
		var force bool
		var id string
		oo := &options.OutputOptions{}
		c := &cobra.Command{
			Use:     use,
			Short:   short,
			Example: example,
			Args:    argsFn,
			RunE: func(cmd *cobra.Command, args []string) error {
				cmd.SilenceUsage = true
				format, _, err := oo.Structured()
				if err != nil {
					return output.HandleError(err)
				}
				r := catalog.Statuses{Op: op, ID: id, Force: force, Format: format}
				if fill != nil {
					if err := fill(&r, args); err != nil {
						return output.HandleError(err)
					}
				}
				err = withSession(func(ctx context.Context, s *session) error {
					r.Service = s.Service
					return r.Do(ctx)
				})
				return output.HandleError(err)
			},
		}
		options.AddFormatArg(c, oo)
		switch op {
		case catalog.StatusAdd:
			c.Flags().StringVar(&id, "id", "",
				"Status id. Derived from the name when empty.")
		case catalog.StatusRemove:
			c.Flags().BoolVarP(&force, "force", "f", false,
				"Remove the status even if projects still have it.")
		}
		return c
	}

	list := runStatus(catalog.StatusList, cobra.NoArgs, "list", "List statuses in order.", `
roadmap status list
`, nil)
	list.Aliases = []string{"ls"}
	cmd.AddCommand(list)
	cmd.AddCommand(runStatus(catalog.StatusAdd, cobra.ExactArgs(1), "add <name>", "Append a status.", `
roadmap status add "On hold" --id on-hold
`, func(r *catalog.Statuses, args []string) error {
		r.Name = args[0]
		return nil
	}))
	cmd.AddCommand(runStatus(catalog.StatusRename, cobra.ExactArgs(2), "rename <id> <name>", "Rename a status.", `
roadmap status rename on-hold "Paused"
`, func(r *catalog.Statuses, args []string) error {
		r.ID, r.Name = args[0], args[1]
		return nil
	}))
	cmd.AddCommand(runStatus(catalog.StatusMove, cobra.ExactArgs(2), "move <id> <position>", "Move a status to a 1-based position.", `
roadmap status move on-hold 1
`, func(r *catalog.Statuses, args []string) error {
		pos, err := strconv.Atoi(args[1])
		if err != nil {
			return err
		}
		r.ID, r.Position = args[0], pos-1
		return nil
	}))
	rm := runStatus(catalog.StatusRemove, cobra.ExactArgs(1), "rm <id>", "Remove a status.", `
roadmap status rm on-hold
`, func(r *catalog.Statuses, args []string) error {
		r.ID = args[0]
		return nil
	})
	rm.Aliases = []string{"remove", "delete"}
	cmd.AddCommand(rm)

	topLevel.AddCommand(cmd)
}

func addRange(topLevel *cobra.Command) {
	var start, end int

	cmd := &cobra.Command{
		Use:   "range",
		Short: "Show or change the years the timeline covers.",
		Example: `
roadmap range
roadmap range --start 2023 --end 2026
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			err := withSession(func(ctx context.Context, s *session) error {
				r := catalog.Range{
					Start:   start,
					End:     end,
					Service: s.Service,
				}
				return r.Do(ctx)
			})
			return output.HandleError(err)
		},
	}

	cmd.Flags().IntVar(&start, "start", 0,
		"First year shown.")
	cmd.Flags().IntVar(&end, "end", 0,
		"Last year shown, inclusive.")

	topLevel.AddCommand(cmd)
}
