package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ealswell/fieldforge/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a FieldForge project",
	Long:  `Create the default configuration file, the export directory and the reference DDL for the downstream store.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := os.Stat(config.FileName); err == nil {
			return fmt.Errorf("%s already exists, project is initialized", config.FileName)
		}

		cfg := config.Default()
		data, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal default config: %w", err)
		}
		if err := os.WriteFile(config.FileName, append(data, '\n'), 0644); err != nil {
			return fmt.Errorf("failed to create %s: %w", config.FileName, err)
		}

		for _, dir := range []string{cfg.ExportPath, "db/schema"} {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return fmt.Errorf("failed to create directory %s: %w", dir, err)
			}
		}

		if _, err := os.Stat("db/schema/schema.sql"); os.IsNotExist(err) {
			if err := os.WriteFile("db/schema/schema.sql", []byte(referenceSchema), 0644); err != nil {
				return fmt.Errorf("failed to create schema file: %w", err)
			}
		}

		fmt.Println("✅ FieldForge project initialized")
		fmt.Println()
		fmt.Println("📁 Created:")
		fmt.Printf("   %s\n", config.FileName)
		fmt.Printf("   %s/\n", cfg.ExportPath)
		fmt.Println("   db/schema/schema.sql")
		fmt.Println()
		fmt.Println("🚀 Next steps:")
		fmt.Println("   fieldforge generate          # Generate and export the dataset")
		fmt.Println("   fieldforge load              # Load it into your database")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
