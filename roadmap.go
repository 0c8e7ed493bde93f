// Command roadmap plans projects and milestones on a zoomable timeline.
//
//	go install tableflip.dev/roadmap@latest
package main

import (
	"os"

	"tableflip.dev/roadmap/pkg/commands"
)

func main() {
	if err := commands.New().Execute(); err != nil {
		os.Exit(1)
	}
}
