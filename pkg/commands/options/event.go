package options

import (
	"fmt"

	"github.com/spf13/cobra"

	"tableflip.dev/roadmap/pkg/glyph"
	"tableflip.dev/roadmap/pkg/model"
)

// EventOptions
type EventOptions struct {
	DateOptions

	Name    string
	Project string
	Symbol  string
	Comment string
	// Detach clears the project reference on edit.
	Detach bool

	cmd *cobra.Command
}

func AddEventArgs(cmd *cobra.Command, o *EventOptions) {
	o.cmd = cmd
	cmd.Flags().StringVar(&o.Name, "name", "",
		"Event name.")
	cmd.Flags().StringVarP(&o.Project, "project", "p", "",
		"Id of the project the event belongs to. Leave empty for a standalone event.")
	cmd.Flags().StringVar(&o.Symbol, "symbol", "",
		"Marker symbol, see `roadmap key`.")
	cmd.Flags().StringVar(&o.Comment, "comment", "",
		"Free text comment.")
	AddDateArgs(cmd, &o.DateOptions)
}

func AddDetachArg(cmd *cobra.Command, o *EventOptions) {
	cmd.Flags().BoolVar(&o.Detach, "detach", false,
		"Make the event standalone.")
}

func (o *EventOptions) changed(name string) bool {
	if o.cmd == nil {
		return false
	}
	return o.cmd.Flags().Changed(name)
}

// Apply copies every flag given on the command line onto e.
func (o *EventOptions) Apply(e *model.Event) error {
	if o.changed("name") {
		e.Name = o.Name
	}
	if o.changed("project") {
		e.ProjectID = o.Project
	}
	if o.Detach {
		e.ProjectID = ""
	}
	if o.changed("comment") {
		e.Comment = o.Comment
	}
	if o.changed("symbol") {
		g, err := glyph.Lookup(o.Symbol)
		if err != nil {
			return fmt.Errorf("%w (want one of %v)", err, glyph.Keys())
		}
		e.Symbol = g.Key
	}
	if d, typ, ok, err := o.GetStart(); err != nil {
		return err
	} else if ok {
		e.Start, e.StartType = d, typ
	}
	if d, typ, ok, err := o.GetEnd(); err != nil {
		return err
	} else if ok {
		e.End, e.EndType = &d, typ
	}
	return nil
}
