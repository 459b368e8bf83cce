package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	Version = "1.2.0"
)

func showBanner() {
	color.New(color.FgGreen, color.Bold).Println(`
  ███████╗██╗███████╗██╗     ██████╗ ███████╗ ██████╗ ██████╗  ██████╗ ███████╗
  ██╔════╝██║██╔════╝██║     ██╔══██╗██╔════╝██╔═══██╗██╔══██╗██╔════╝ ██╔════╝
  █████╗  ██║█████╗  ██║     ██║  ██║█████╗  ██║   ██║██████╔╝██║  ███╗█████╗
  ██╔══╝  ██║██╔══╝  ██║     ██║  ██║██╔══╝  ██║   ██║██╔══██╗██║   ██║██╔══╝
  ██║     ██║███████╗███████╗██████╔╝██║     ╚██████╔╝██║  ██║╚██████╔╝███████╗
  ╚═╝     ╚═╝╚══════╝╚══════╝╚═════╝ ╚═╝      ╚═════╝ ╚═╝  ╚═╝ ╚═════╝ ╚══════╝`)
	fmt.Print("                        ")
	color.New(color.FgCyan, color.Bold).Print("Version: ")
	color.New(color.FgYellow, color.Bold).Printf("%s\n", Version)
}

var rootCmd = &cobra.Command{
	Use:   "fieldforge",
	Short: "Deterministic synthetic dataset generator for market-sampling campaigns",
	Long: `
FieldForge generates a reproducible relational dataset describing market-sampling
field campaigns: areas, promoters, sampling types, sampling events and their
respondents, plus a derived calendar dimension.

The same seed and configuration always produce byte-identical export artifacts,
and every foreign key in the output references an existing parent row, so the
dataset loads cleanly into a store enforcing the reference schema.

Export formats:
- CSV (one file per table)
- JSON (single document)
- SQLite (single database file)`,

	Run: func(cmd *cobra.Command, args []string) {
		showVersion, _ := cmd.Flags().GetBool("version")
		if showVersion {
			fmt.Printf("FieldForge CLI version %s\n", Version)
			os.Exit(0)
		}

		showBanner()
		fmt.Println()
		cmd.Help()
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./fieldforge.config.json)")
	rootCmd.Flags().BoolP("version", "v", false, "Show CLI version")
}

func initConfig() {
	if err := godotenv.Load(); err != nil {
		godotenv.Load(".env")
		godotenv.Load(".env.local")
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("json")
		viper.SetConfigName("fieldforge.config")
	}

	viper.AutomaticEnv()
	viper.ReadInConfig()
}
