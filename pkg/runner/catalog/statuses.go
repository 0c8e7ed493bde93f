package catalog

import (
	"context"
	"fmt"
	"io"

	"tableflip.dev/roadmap/pkg/app"
	"tableflip.dev/roadmap/pkg/model"
	"tableflip.dev/roadmap/pkg/printers"
)

// StatusOp selects what Statuses does before listing.
type StatusOp int

const (
	StatusList StatusOp = iota
	StatusAdd
	StatusRename
	StatusMove
	StatusRemove
)

// Statuses changes the status order and prints it.
type Statuses struct {
	Op       StatusOp
	ID       string
	Name     string
	Position int
	Force    bool

	Format  string
	Out     io.Writer
	Service *app.Service
}

func (n *Statuses) Do(ctx context.Context) error {
	var err error
	switch n.Op {
	case StatusAdd:
		_, err = n.Service.AddStatus(n.ID, n.Name)
	case StatusRename:
		err = n.Service.RenameStatus(n.ID, n.Name)
	case StatusMove:
		err = n.Service.MoveStatus(n.ID, n.Position)
	case StatusRemove:
		err = n.Service.RemoveStatus(n.ID, n.Force)
	case StatusList:
	default:
		err = fmt.Errorf("catalog: unknown status operation %d", n.Op)
	}
	if err != nil {
		return err
	}
	statuses := n.Service.Statuses()
	if n.Format != "" {
		return printers.Structured(n.Out, n.Format, statuses)
	}
	pp := printers.PrettyPrint{Out: n.Out}
	pp.Statuses(statuses, statusUse(n.Service.State()))
	return nil
}

func statusUse(st model.State) map[string]int {
	used := make(map[string]int, len(st.Statuses))
	for _, p := range st.Projects {
		used[p.Status]++
	}
	return used
}
