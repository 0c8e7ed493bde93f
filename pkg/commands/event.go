package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"tableflip.dev/roadmap/pkg/app"
	"tableflip.dev/roadmap/pkg/commands/options"
	"tableflip.dev/roadmap/pkg/glyph"
	"tableflip.dev/roadmap/pkg/model"
	"tableflip.dev/roadmap/pkg/runner/event"
	"tableflip.dev/roadmap/pkg/snake"
)

func addEvent(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "event",
		Aliases: []string{"events", "e"},
		Short:   "Add, list, edit and remove events and milestones.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	addEventAdd(cmd)
	addEventList(cmd)
	addEventEdit(cmd)
	addEventRemove(cmd)

	topLevel.AddCommand(cmd)
}

func addEventAdd(parent *cobra.Command) {
	eo := &options.EventOptions{}
	ido := &options.IDOptions{}
	var interactive bool

	cmd := &cobra.Command{
		Use:   "add [name]",
		Short: "Add an event. Without --project it is standalone; with --end it spans days.",
		Example: `
roadmap event add "Council vote" --start 2024-06-01 --symbol flag
roadmap event add "Survey" --project 7c9e6679 --start 2024-W10 --end 2024-W14
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
					if err := snake.PromptFlags(cmd, eventFields(s)...); err != nil {
						return err
					}
				}
				e := model.Event{}
				if err := eo.Apply(&e); err != nil {
					return err
				}
				r := event.Add{
					Event:   e,
					ShowID:  ido.ShowID,
					Service: s.Service,
				}
				return r.Do(ctx)
			})
			return output.HandleError(err)
		},
	}

	options.AddEventArgs(cmd, eo)
	options.AddShowIDArgs(cmd, ido)
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false,
		"Ask for every value not given as a flag.")

	parent.AddCommand(cmd)
}

func eventFields(s *session) []snake.Field {
	var projects, symbols []snake.Choice
	for _, p := range s.Service.Projects(app.Query{Sort: app.SortName}) {
		projects = append(projects, snake.Choice{Value: p.ID, Label: p.Name})
	}
	for _, g := range glyph.DefaultGlyphs() {
		symbols = append(symbols, snake.Choice{Value: g.Key, Label: fmt.Sprintf("%s %s", g.Symbol, g.Meaning)})
	}
	date := func(in string) error {
		d := options.DateOptions{Start: in}
		_, _, _, err := d.GetStart()
		return err
	}
	return []snake.Field{
		{Flag: "name", Required: true},
		{Flag: "start", Required: true, Validate: date},
		{Flag: "end", Validate: date},
		{Flag: "project", Choices: projects},
		{Flag: "symbol", Choices: symbols},
		{Flag: "comment"},
	}
}

func addEventList(parent *cobra.Command) {
	var (
		projectID  string
		standalone bool
	)
	ido := &options.IDOptions{}
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List events.",
		Example: `
roadmap event list
roadmap event list --project 7c9e6679
roadmap event list --standalone -o json
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			format, _, err := oo.Structured()
			if err != nil {
				return output.HandleError(err)
			}
			err = withSession(func(ctx context.Context, s *session) error {
				r := event.List{
					Project:    projectID,
					Standalone: standalone,
					ShowID:     ido.ShowID,
					Format:     format,
					Service:    s.Service,
				}
				return r.Do(ctx)
			})
			return output.HandleError(err)
		},
	}

	cmd.Flags().StringVarP(&projectID, "project", "p", "",
		"Only events of this project.")
	cmd.Flags().BoolVar(&standalone, "standalone", false,
		"Only events without a project.")
	options.AddShowIDArgs(cmd, ido)
	options.AddFormatArg(cmd, oo)

	parent.AddCommand(cmd)
}

func addEventEdit(parent *cobra.Command) {
	eo := &options.EventOptions{}
	ido := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change an event. Only the flags given are applied.",
		Example: `
roadmap event edit 1b4e28ba --start 2024-07-02 --symbol star
roadmap event edit 1b4e28ba --detach
`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: eventCompletions,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			err := withSession(func(ctx context.Context, s *session) error {
				r := event.Edit{
					ID:      args[0],
					Apply:   eo.Apply,
					ShowID:  ido.ShowID,
					Service: s.Service,
				}
				return r.Do(ctx)
			})
			return output.HandleError(err)
		},
	}

	options.AddEventArgs(cmd, eo)
	options.AddDetachArg(cmd, eo)
	options.AddShowIDArgs(cmd, ido)

	parent.AddCommand(cmd)
}

func addEventRemove(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "rm <id>...",
		Aliases: []string{"remove", "delete"},
		Short:   "Remove events.",
		Example: `
roadmap event rm 1b4e28ba
`,
		Args:              cobra.MinimumNArgs(1),
		ValidArgsFunction: eventCompletions,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			err := withSession(func(ctx context.Context, s *session) error {
				r := event.Remove{
					IDs:     args,
					Service: s.Service,
				}
				return r.Do(ctx)
			})
			return output.HandleError(err)
		},
	}

	parent.AddCommand(cmd)
}
