// Package event holds the runners behind `roadmap event`.
package event

import (
	"context"
	"io"

	"tableflip.dev/roadmap/pkg/app"
	"tableflip.dev/roadmap/pkg/model"
	"tableflip.dev/roadmap/pkg/printers"
)

type Add struct {
	Event  model.Event
	ShowID bool
	Out    io.Writer

	Service *app.Service
}

func (n *Add) Do(ctx context.Context) error {
	e, err := n.Service.AddEvent(n.Event)
	if err != nil {
		return err
	}
	pp := printers.PrettyPrint{ShowID: n.ShowID, Out: n.Out}
	pp.Events(n.Service.State(), e)
	return nil
}

type List struct {
	// Project limits the listing to one project's events. Standalone lists
	// only events without a project.
	Project    string
	Standalone bool
	ShowID     bool
	Format     string
	Out        io.Writer

	Service *app.Service
}

func (n *List) Do(ctx context.Context) error {
	var filter *string
	switch {
	case n.Standalone:
		empty := ""
		filter = &empty
	case n.Project != "":
		if _, err := n.Service.Project(n.Project); err != nil {
			return err
		}
		filter = &n.Project
	}
	es := n.Service.Events(filter)
	if n.Format != "" {
		if es == nil {
			es = []model.Event{}
		}
		return printers.Structured(n.Out, n.Format, es)
	}
	pp := printers.PrettyPrint{ShowID: n.ShowID, Out: n.Out}
	pp.Events(n.Service.State(), es...)
	return nil
}

type Edit struct {
	ID     string
	Apply  func(e *model.Event) error
	ShowID bool
	Out    io.Writer

	Service *app.Service
}

func (n *Edit) Do(ctx context.Context) error {
	e, err := n.Service.Event(n.ID)
	if err != nil {
		return err
	}
	if n.Apply != nil {
		if err := n.Apply(&e); err != nil {
			return err
		}
	}
	e, err = n.Service.UpdateEvent(e)
	if err != nil {
		return err
	}
	pp := printers.PrettyPrint{ShowID: n.ShowID, Out: n.Out}
	pp.Events(n.Service.State(), e)
	return nil
}

type Remove struct {
	IDs []string
	Out io.Writer

	Service *app.Service
}

func (n *Remove) Do(ctx context.Context) error {
	for _, id := range n.IDs {
		if err := n.Service.DeleteEvent(id); err != nil {
			return err
		}
	}
	pp := printers.PrettyPrint{Out: n.Out}
	pp.Events(n.Service.State(), n.Service.Events(nil)...)
	return nil
}
