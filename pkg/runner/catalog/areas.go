// Package catalog holds the runners that manage areas, statuses and the
// timeline range.
package catalog

import (
	"context"
	"fmt"
	"io"

	"github.com/muesli/termenv"

	"tableflip.dev/roadmap/pkg/app"
	"tableflip.dev/roadmap/pkg/model"
	"tableflip.dev/roadmap/pkg/printers"
)

// AreaOp selects what Areas does before listing.
type AreaOp int

const (
	AreaList AreaOp = iota
	AreaAdd
	AreaRename
	AreaRecolor
	AreaRemove
)

// Areas changes the area palette and prints it.
type Areas struct {
	Op AreaOp
	// Key names the area by colour or name; Value is the new name or colour.
	Key   string
	Value string
	Force bool

	Format  string
	Out     io.Writer
	Profile termenv.Profile
	Service *app.Service
}

func (n *Areas) Do(ctx context.Context) error {
	var err error
	switch n.Op {
	case AreaAdd:
		_, err = n.Service.AddArea(n.Key, n.Value)
	case AreaRename:
		err = n.Service.RenameArea(n.Key, n.Value)
	case AreaRecolor:
		err = n.Service.RecolorArea(n.Key, n.Value)
	case AreaRemove:
		err = n.Service.RemoveArea(n.Key, n.Force)
	case AreaList:
	default:
		err = fmt.Errorf("catalog: unknown area operation %d", n.Op)
	}
	if err != nil {
		return err
	}
	areas := n.Service.Areas()
	if n.Format != "" {
		return printers.Structured(n.Out, n.Format, areas)
	}
	pp := printers.PrettyPrint{Out: n.Out, Profile: n.Profile}
	pp.Areas(areas, areaUse(n.Service.State()))
	return nil
}

func areaUse(st model.State) map[string]int {
	used := make(map[string]int, len(st.Areas))
	for _, p := range st.Projects {
		used[p.Color]++
	}
	return used
}
