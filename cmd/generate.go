package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ealswell/fieldforge/internal/config"
	"github.com/ealswell/fieldforge/internal/dataset"
	"github.com/ealswell/fieldforge/internal/export"
	"github.com/ealswell/fieldforge/internal/gen"
	"github.com/ealswell/fieldforge/internal/vocab"
)

var (
	genSeed    int64
	genOut     string
	genCSV     bool
	genJSON    bool
	genSQLite  bool
	genNoCheck bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a synthetic market-sampling dataset and export it",
	Long: `
Generate all dimension tables, sampling events and respondents from the
configured seed, verify the result, and write the export artifact.

Examples:
  fieldforge generate
  fieldforge generate --seed 7 --sqlite
  fieldforge generate --json --out ./exports`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		if cmd.Flags().Changed("seed") {
			cfg.Seed = genSeed
		}
		if genOut != "" {
			cfg.ExportPath = genOut
		}
		if genCSV {
			cfg.ExportFormat = "csv"
		} else if genJSON {
			cfg.ExportFormat = "json"
		} else if genSQLite {
			cfg.ExportFormat = "sqlite"
		}

		if err := cfg.Validate(); err != nil {
			return err
		}

		ds, err := runPipeline(cfg)
		if err != nil {
			return err
		}

		if !genNoCheck {
			if errs := ds.Validate(); len(errs) > 0 {
				for _, e := range errs {
					color.Red("  ✗ %v", e)
				}
				return fmt.Errorf("generated dataset failed %d invariant check(s)", len(errs))
			}
			color.Green("✅ Invariant checks passed")
		}

		artifact, err := export.Write(ds, cfg.ExportPath, cfg.ExportFormat)
		if err != nil {
			return err
		}

		color.Green("✅ Export completed: %s", artifact)
		if quiet, _ := cmd.Flags().GetBool("quiet"); !quiet {
			fmt.Println()
			dataset.RenderReport(os.Stdout, ds.Report())
		}
		return nil
	},
}

// runPipeline resolves the vocabulary and executes one generation run.
func runPipeline(cfg *config.Config) (*dataset.Dataset, error) {
	v := vocab.Default()
	if cfg.VocabFile != "" {
		var err error
		v, err = vocab.LoadFile(cfg.VocabFile)
		if err != nil {
			return nil, err
		}
	}

	color.Cyan("🎲 Generating dataset %q (seed %d)...", cfg.DatasetName, cfg.Seed)
	return gen.NewPipeline(cfg, v).Run()
}

func init() {
	rootCmd.AddCommand(generateCmd)
	generateCmd.Flags().Int64Var(&genSeed, "seed", 0, "Override the configured random seed")
	generateCmd.Flags().StringVar(&genOut, "out", "", "Override the configured export path")
	generateCmd.Flags().BoolP("quiet", "q", false, "Suppress the run report")
	generateCmd.Flags().BoolVarP(&genCSV, "csv", "c", false, "Export as CSV (default)")
	generateCmd.Flags().BoolVarP(&genJSON, "json", "j", false, "Export as JSON")
	generateCmd.Flags().BoolVarP(&genSQLite, "sqlite", "s", false, "Export as SQLite")
	generateCmd.Flags().BoolVar(&genNoCheck, "no-verify", false, "Skip invariant checks before export")
}
