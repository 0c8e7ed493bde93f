package commands

import (
	"bytes"
	"fmt"
	"os/exec"

	"github.com/spf13/cobra"
)

func addUpgrade(topLevel *cobra.Command) {
	var ref string

	cmd := &cobra.Command{
		Use:   "upgrade",
		Short: "Upgrade roadmap cli.",
		Example: `
roadmap upgrade
roadmap upgrade --ref v0.2.0
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			ex := exec.Command("go", "install", "tableflip.dev/roadmap/cmd/roadmap@"+ref)
			var out bytes.Buffer
			ex.Stdout = &out
			ex.Stderr = &out
			if err := ex.Run(); err != nil {
				return output.HandleError(fmt.Errorf("%s: %w\n%s", ex.String(), err, out.String()))
			}
			fmt.Printf("%s\n", ex.String())
			return nil
		},
	}

	cmd.Flags().StringVar(&ref, "ref", "latest",
		"Version, tag or commit to install.")

	topLevel.AddCommand(cmd)
}
