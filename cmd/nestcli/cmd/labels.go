package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/piwi3910/SlabCut/internal/export"
	"github.com/piwi3910/SlabCut/internal/project"
)

var (
	labelsJob string
	labelsOut string
)

// labelsCmd represents the labels command
var labelsCmd = &cobra.Command{
	Use:   "labels",
	Short: "export a sheet of QR-coded part labels for a saved job",
	Run: func(cmd *cobra.Command, args []string) {
		job, err := project.LoadJob(labelsJob)
		check(err)
		check(export.ExportLabels(labelsOut, job.Parts, job.Placements))
		fmt.Printf("wrote labels to %s\n", labelsOut)
	},
}

func init() {
	RootCmd.AddCommand(labelsCmd)

	labelsCmd.Flags().StringVar(&labelsJob, "job", "nested.json", "saved job to label")
	labelsCmd.Flags().StringVar(&labelsOut, "out", "labels.pdf", "where to save the labels PDF")
}
