package options

import (
	"github.com/spf13/cobra"

	"tableflip.dev/roadmap/pkg/model"
)

// ProjectOptions
type ProjectOptions struct {
	DateOptions

	Name    string
	Lead    string
	Status  string
	Area    string
	Comment string

	cmd *cobra.Command
}

func AddProjectArgs(cmd *cobra.Command, o *ProjectOptions) {
	o.cmd = cmd
	cmd.Flags().StringVar(&o.Name, "name", "",
		"Project name.")
	cmd.Flags().StringVar(&o.Lead, "lead", "",
		"Who leads the project.")
	cmd.Flags().StringVar(&o.Status, "status", "",
		"Status id, see `roadmap status list`.")
	cmd.Flags().StringVar(&o.Area, "area", "",
		"Area name or colour, see `roadmap area list`.")
	cmd.Flags().StringVar(&o.Comment, "comment", "",
		"Free text comment.")
	AddDateArgs(cmd, &o.DateOptions)
}

func (o *ProjectOptions) changed(name string) bool {
	if o.cmd == nil {
		return false
	}
	return o.cmd.Flags().Changed(name)
}

// Apply copies every flag given on the command line onto p. area resolves
// --area to a colour.
func (o *ProjectOptions) Apply(p *model.Project, area func(string) (string, error)) error {
	if o.changed("name") {
		p.Name = o.Name
	}
	if o.changed("lead") {
		p.Lead = o.Lead
	}
	if o.changed("status") {
		p.Status = o.Status
	}
	if o.changed("comment") {
		p.Comment = o.Comment
	}
	if o.changed("area") {
		c, err := area(o.Area)
		if err != nil {
			return err
		}
		p.Color = c
	}
	if d, typ, ok, err := o.GetStart(); err != nil {
		return err
	} else if ok {
		p.Start, p.StartType = d, typ
	}
	if d, typ, ok, err := o.GetEnd(); err != nil {
		return err
	} else if ok {
		p.End, p.EndType = d, typ
	}
	return nil
}
