// Package project holds the runners behind `roadmap project`.
package project

import (
	"context"
	"io"

	"github.com/muesli/termenv"

	"tableflip.dev/roadmap/pkg/app"
	"tableflip.dev/roadmap/pkg/model"
	"tableflip.dev/roadmap/pkg/printers"
)

type Add struct {
	Project model.Project
	ShowID  bool
	Out     io.Writer
	Profile termenv.Profile

	Service *app.Service
}

func (n *Add) Do(ctx context.Context) error {
	p, err := n.Service.AddProject(n.Project)
	if err != nil {
		return err
	}
	pp := printers.PrettyPrint{ShowID: n.ShowID, Out: n.Out, Profile: n.Profile}
	pp.Projects(n.Service.State(), p)
	return nil
}

type List struct {
	Query   app.Query
	ShowID  bool
	// Format is "json" or "yaml" for structured output, empty for a table.
	Format  string
	Out     io.Writer
	Profile termenv.Profile

	Service *app.Service
}

func (n *List) Do(ctx context.Context) error {
	ps := n.Service.Projects(n.Query)
	if n.Format != "" {
		if ps == nil {
			ps = []model.Project{}
		}
		return printers.Structured(n.Out, n.Format, ps)
	}
	pp := printers.PrettyPrint{ShowID: n.ShowID, Out: n.Out, Profile: n.Profile}
	pp.Projects(n.Service.State(), ps...)
	return nil
}

// Edit loads the project, lets Apply change it and writes it back.
type Edit struct {
	ID      string
	Apply   func(p *model.Project) error
	ShowID  bool
	Out     io.Writer
	Profile termenv.Profile

	Service *app.Service
}

func (n *Edit) Do(ctx context.Context) error {
	p, err := n.Service.Project(n.ID)
	if err != nil {
		return err
	}
	if n.Apply != nil {
		if err := n.Apply(&p); err != nil {
			return err
		}
	}
	p, err = n.Service.UpdateProject(p)
	if err != nil {
		return err
	}
	pp := printers.PrettyPrint{ShowID: n.ShowID, Out: n.Out, Profile: n.Profile}
	pp.Projects(n.Service.State(), p)
	return nil
}

type Remove struct {
	IDs     []string
	Out     io.Writer
	Profile termenv.Profile

	Service *app.Service
}

func (n *Remove) Do(ctx context.Context) error {
	for _, id := range n.IDs {
		if err := n.Service.DeleteProject(id); err != nil {
			return err
		}
	}
	pp := printers.PrettyPrint{Out: n.Out, Profile: n.Profile}
	pp.Projects(n.Service.State(), n.Service.Projects(app.Query{})...)
	return nil
}
