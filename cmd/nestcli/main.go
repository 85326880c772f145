// Command nestcli runs the nester from the command line: import or
// describe parts, lay them out, validate the result, and export
// labels and a cut report.
package main

import "github.com/piwi3910/SlabCut/cmd/nestcli/cmd"

func main() {
	cmd.Execute()
}
