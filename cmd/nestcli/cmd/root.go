package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// RootCmd represents the base command when called without any subcommands.
var RootCmd = &cobra.Command{
	Use:   "nestcli",
	Short: "nest polygonal parts onto a sheet",
	Long: `nestcli lays out polygonal parts (rectangles, traced DXF outlines,
or hand-described polygons) into a single minimal-area sheet:

  - import parts from CSV, Excel, or DXF, or describe them in a YAML recipe
  - run the greedy hole pre-pass and simulated-annealing optimizer
  - validate the resulting placements for overlaps and kerf violations
  - export a printable cut report and part labels`,
}

// Execute adds all child commands to the root command and runs it. It is
// called by main.main() and only needs to happen once.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
