package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/piwi3910/SlabCut/internal/importer"
	"github.com/piwi3910/SlabCut/internal/model"
	"github.com/piwi3910/SlabCut/internal/nester"
	"github.com/piwi3910/SlabCut/internal/project"
	"github.com/piwi3910/SlabCut/internal/writer"
)

var (
	runRecipe  string
	runCSV     string
	runExcel   string
	runDXF     string
	runJob     string
	runKerf    float64
	runOut     string
	runPreview string
	runDXFOut  string
	runSVGOut  string
	runConfig  string
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "nest a set of parts and save the resulting job",
	Long: `Load parts from a YAML recipe, a CSV/Excel cutlist, a DXF drawing, or a
previously saved job, run the nester, and save the job (parts plus
placements) to --out.

Exactly one of --recipe, --csv, --excel, --dxf, --job must be given.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := project.LoadAppConfig(runConfig)
		check(err)

		kerfExplicit := cmd.Flags().Changed("kerf")
		if !kerfExplicit {
			runKerf = cfg.DefaultKerf
		}

		parts, err := loadParts(kerfExplicit)
		check(err)
		if len(parts) == 0 {
			check(fmt.Errorf("no parts to nest"))
		}

		n := nester.New()
		for _, p := range parts {
			n.AddPart(p)
		}
		n.SetKerf(runKerf)

		if runPreview != "" {
			n.SetProgressCallback(func(current, total int) bool {
				job := project.NewNestJob(n.Parts(), n.Kerf(), 0)
				job.Placements = n.GetPlacements()
				_ = project.SaveJobAtomic(runPreview, job)
				return true
			})
		}

		n.Run()

		if issues := n.Validate(); len(issues) > 0 {
			fmt.Println("validation issues:")
			for _, msg := range issues {
				fmt.Println(" -", msg)
			}
		}

		job := project.NewNestJob(n.Parts(), n.Kerf(), 0)
		job.Placements = n.GetPlacements()
		check(project.SaveJob(runOut, job))
		fmt.Printf("saved job to %s\n", runOut)

		cfg.DefaultKerf = n.Kerf()
		cfg.AddRecentJob(runOut)
		check(project.SaveAppConfig(runConfig, cfg))

		if runDXFOut != "" {
			dxfW := writer.NewDXFWriter(runDXFOut)
			n.Write(dxfW)
			check(dxfW.Save())
		}
		if runSVGOut != "" {
			svgW := writer.NewSVGWriter(runSVGOut)
			n.Write(svgW)
			check(svgW.Save())
		}
	},
}

func init() {
	RootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVar(&runRecipe, "recipe", "", "YAML recipe describing parts and kerf")
	runCmd.Flags().StringVar(&runCSV, "csv", "", "CSV cutlist to import")
	runCmd.Flags().StringVar(&runExcel, "excel", "", "Excel cutlist to import")
	runCmd.Flags().StringVar(&runDXF, "dxf", "", "DXF drawing to trace")
	runCmd.Flags().StringVar(&runJob, "job", "", "previously saved job to re-run")
	runCmd.Flags().Float64Var(&runKerf, "kerf", 0.3, "kerf separation, in centimeters (defaults to the app config's default_kerf when not set)")
	runCmd.Flags().StringVar(&runOut, "out", "nested.json", "where to save the resulting job")
	runCmd.Flags().StringVar(&runPreview, "preview", "", "path to atomically dump in-progress placements to")
	runCmd.Flags().StringVar(&runDXFOut, "dxf-out", "", "also write a DXF-like cut drawing here")
	runCmd.Flags().StringVar(&runSVGOut, "svg-out", "", "also write an SVG cut drawing here")
	runCmd.Flags().StringVar(&runConfig, "config", project.DefaultConfigPath(), "app config file (default kerf, recent jobs)")
}

// loadParts resolves parts from whichever of --recipe/--csv/--excel/--dxf/--job
// was given. kerfExplicit is true when the caller passed --kerf, in which
// case it takes precedence over a recipe's or job's own kerf value.
func loadParts(kerfExplicit bool) ([]model.Part, error) {
	sources := 0
	for _, s := range []string{runRecipe, runCSV, runExcel, runDXF, runJob} {
		if s != "" {
			sources++
		}
	}
	if sources != 1 {
		return nil, fmt.Errorf("exactly one of --recipe, --csv, --excel, --dxf, --job is required")
	}

	switch {
	case runRecipe != "":
		r, err := loadRecipe(runRecipe)
		if err != nil {
			return nil, err
		}
		if !kerfExplicit && r.Kerf != 0 {
			runKerf = r.Kerf
		}
		return r.parts()
	case runCSV != "":
		return partsFromImport(importer.ImportCSV(runCSV))
	case runExcel != "":
		return partsFromImport(importer.ImportExcel(runExcel))
	case runDXF != "":
		return partsFromImport(importer.ImportDXF(runDXF))
	default:
		job, err := project.LoadJob(runJob)
		if err != nil {
			return nil, err
		}
		if !kerfExplicit && job.Kerf != 0 {
			runKerf = job.Kerf
		}
		return job.Parts, nil
	}
}

func partsFromImport(res importer.ImportResult) ([]model.Part, error) {
	for _, w := range res.Warnings {
		fmt.Println("warning:", w)
	}
	if len(res.Errors) > 0 {
		for _, e := range res.Errors {
			fmt.Println("error:", e)
		}
		return nil, fmt.Errorf("%d row(s) failed to import", len(res.Errors))
	}
	return res.Parts, nil
}
