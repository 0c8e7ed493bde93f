package options

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// OutputOptions
type OutputOptions struct {
	JSON   bool
	Format string
}

func AddOutputArg(cmd *cobra.Command, po *OutputOptions) {
	cmd.Flags().BoolVar(&po.JSON, "json", false,
		"Output as JSON.")
}

func AddFormatArg(cmd *cobra.Command, po *OutputOptions) {
	cmd.Flags().StringVarP(&po.Format, "output", "o", "text",
		"Output format. One of 'text', 'json' or 'yaml'.")
}

// Structured reports whether output should be machine readable, and in which
// encoding.
func (o *OutputOptions) Structured() (string, bool, error) {
	if o.JSON {
		return "json", true, nil
	}
	switch f := strings.ToLower(o.Format); f {
	case "", "text":
		return "", false, nil
	case "json", "yaml":
		return f, true, nil
	default:
		return "", false, fmt.Errorf("unknown output format %q", o.Format)
	}
}

func (o *OutputOptions) HandleError(err error) error {
	if o.JSON && err != nil {
		out := map[string]string{
			"error": err.Error(),
		}
		b, err := json.Marshal(out)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintln(color.Output, string(b))
		return nil
	}
	return err
}
