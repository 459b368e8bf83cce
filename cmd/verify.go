package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ealswell/fieldforge/internal/export"
)

var verifyCmd = &cobra.Command{
	Use:   "verify <artifact.json>",
	Short: "Re-check the invariants of a JSON export artifact",
	Long: `
Reconstruct a dataset from a JSON export artifact and re-run every structural
check: referential closure, dense ascending keys, conditional event fields,
sampling count bounds, submission dates and the one-respondent-per-event rule.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ds, err := export.ReadJSON(args[0])
		if err != nil {
			return err
		}

		errs := ds.Validate()
		if len(errs) > 0 {
			for _, e := range errs {
				color.Red("  ✗ %v", e)
			}
			return fmt.Errorf("artifact failed %d invariant check(s)", len(errs))
		}

		color.Green("✅ %s: all invariant checks passed", args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(verifyCmd)
}
