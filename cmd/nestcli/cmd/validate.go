package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/piwi3910/SlabCut/internal/nester"
	"github.com/piwi3910/SlabCut/internal/project"
)

var validateJob string

// validateCmd represents the validate command
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "audit a saved job's placements for overlaps and kerf violations",
	Long: `Load a saved job's parts and placements and check that the placements
are a rigid-body transform of the original parts, that sheet-level parts
don't overlap or violate kerf, and that every hosted part stays inside
its host hole.`,
	Run: func(cmd *cobra.Command, args []string) {
		job, err := project.LoadJob(validateJob)
		check(err)
		if len(job.Placements) == 0 {
			check(fmt.Errorf("job %s has no placements; run it first", validateJob))
		}

		n := nester.New()
		for _, p := range job.Parts {
			n.AddPart(p)
		}
		n.SetKerf(job.Kerf)
		n.LoadPlacements(job.Placements)

		issues := n.Validate()
		if len(issues) == 0 {
			fmt.Println("OK: no issues found")
			return
		}
		fmt.Printf("%d issue(s) found:\n", len(issues))
		for _, msg := range issues {
			fmt.Println(" -", msg)
		}
	},
}

func init() {
	RootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringVar(&validateJob, "job", "nested.json", "saved job to validate")
}
