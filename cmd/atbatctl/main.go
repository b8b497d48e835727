// Command atbatctl is a terminal tool for running one-off at-bats and
// diagnostics against the core engine, grounded on
// stormlightlabs-baseball's cli/cmd split: a thin main that wires a root
// cobra.Command together from per-concern command groups.
package main

import (
	"os"

	"github.com/charmbracelet/log"

	"sim-engine/cmd/atbatctl/cmd"
)

func main() {
	if err := cmd.RootCmd().Execute(); err != nil {
		log.Fatal(err)
		os.Exit(1)
	}
}
