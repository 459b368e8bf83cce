package cmd

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"

	"github.com/ealswell/fieldforge/internal/config"
	"github.com/ealswell/fieldforge/internal/load"
)

var loadCmd = &cobra.Command{
	Use:   "load",
	Short: "Generate a dataset and load it into the configured database",
	Long: `
Generate the dataset from the configured seed and insert it into an existing
downstream schema (see db/schema/schema.sql) in foreign-key order, inside one
transaction. The target database URL is read from the configured environment
variable.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		ds, err := runPipeline(cfg)
		if err != nil {
			return err
		}
		if errs := ds.Validate(); len(errs) > 0 {
			return fmt.Errorf("generated dataset failed %d invariant check(s), refusing to load", len(errs))
		}

		dbURL, err := cfg.GetDatabaseURL()
		if err != nil {
			return err
		}

		db, err := load.OpenDB(cfg.Database.Provider, dbURL)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer db.Close()

		if err := load.Run(context.Background(), db, cfg.Database.Provider, ds); err != nil {
			return err
		}

		color.Green("✅ Dataset %q loaded into %s database", ds.Name, cfg.Database.Provider)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(loadCmd)
}
