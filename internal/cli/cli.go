// Package cli implements the command-line interface for salesdash.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/salesdash/salesdash/internal/config"
	"github.com/salesdash/salesdash/internal/logging"
	"github.com/salesdash/salesdash/pkg/version"
)

var (
	// Global flags
	cfgFile   string
	csvPath   string
	storePath string
	logLevel  string

	// Global config
	cfg *config.Config

	rootCmd = &cobra.Command{
		Use:   "salesdash",
		Short: "Synthetic sales data generator and analytics dashboard",
		Long: `salesdash generates synthetic customer purchase data, exports it to
CSV, builds an embedded analytical store with a star schema from the
export, and serves a browser dashboard over fixed aggregate queries.

The typical flow is generate -> build -> serve. Each step reads the
previous step's artifact from disk, so the steps can be re-run
independently.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default: ./salesdash.yaml)")
	rootCmd.PersistentFlags().StringVar(&csvPath, "csv", "",
		"path of the exported purchase-event CSV")
	rootCmd.PersistentFlags().StringVar(&storePath, "store", "",
		"path of the analytical store file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"log level (debug, info, warn, error)")

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(serveCmd)
}

func initConfig() error {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return err
	}

	// Override with CLI flags
	if csvPath != "" {
		cfg.CSVPath = csvPath
	}
	if storePath != "" {
		cfg.StorePath = storePath
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}

	// Reinitialize logger with config
	logging.Init(logging.Config{
		Level:  cfg.LogLevel,
		Pretty: true,
	})

	return nil
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Println(version.Info())
	},
}
