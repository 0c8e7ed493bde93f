package options

import (
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/roadmap/pkg/app"
)

// QueryOptions
type QueryOptions struct {
	Lead   string
	Status string
	Area   string
	Search string
	Sort   string
}

func AddQueryArgs(cmd *cobra.Command, o *QueryOptions) {
	cmd.Flags().StringVar(&o.Lead, "lead", "",
		"Only projects led by this person.")
	cmd.Flags().StringVar(&o.Status, "status", "",
		"Only projects with this status id.")
	cmd.Flags().StringVar(&o.Area, "area", "",
		"Only projects in this area, by name or colour.")
	cmd.Flags().StringVarP(&o.Search, "search", "q", "",
		"Case-insensitive text search over name, lead and comment.")
	AddSortArg(cmd, o)
}

func AddSortArg(cmd *cobra.Command, o *QueryOptions) {
	keys := make([]string, 0, len(app.SortKeys()))
	for _, k := range app.SortKeys() {
		keys = append(keys, string(k))
	}
	cmd.Flags().StringVar(&o.Sort, "sort", "",
		"Sort projects by one of: "+strings.Join(keys, ", ")+".")
}

// Query converts the flags into a service query.
func (o *QueryOptions) Query() (app.Query, error) {
	sort, err := app.ParseSortKey(o.Sort)
	if err != nil {
		return app.Query{}, err
	}
	return app.Query{
		Lead:   o.Lead,
		Status: o.Status,
		Area:   o.Area,
		Search: o.Search,
		Sort:   sort,
	}, nil
}
