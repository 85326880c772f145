package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/piwi3910/SlabCut/internal/export"
	"github.com/piwi3910/SlabCut/internal/nester"
	"github.com/piwi3910/SlabCut/internal/project"
)

var (
	reportJob string
	reportOut string
)

// reportCmd represents the report command
var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "export a to-scale cut report PDF for a saved job",
	Long: `Export a two-page PDF: a to-scale layout page colored by cut order
and a summary page with sheet dimensions, material efficiency, and any
validation issues found in the saved placements.`,
	Run: func(cmd *cobra.Command, args []string) {
		job, err := project.LoadJob(reportJob)
		check(err)

		var issues []string
		if len(job.Placements) == len(job.Parts) {
			n := nester.New()
			for _, p := range job.Parts {
				n.AddPart(p)
			}
			n.SetKerf(job.Kerf)
			n.LoadPlacements(job.Placements)
			issues = n.Validate()
		}

		check(export.ExportReport(reportOut, job.Parts, job.Placements, job.Kerf, issues))
		fmt.Printf("wrote report to %s\n", reportOut)
	},
}

func init() {
	RootCmd.AddCommand(reportCmd)

	reportCmd.Flags().StringVar(&reportJob, "job", "nested.json", "saved job to report on")
	reportCmd.Flags().StringVar(&reportOut, "out", "report.pdf", "where to save the report PDF")
}
