package cli

import (
	"github.com/spf13/cobra"

	"github.com/salesdash/salesdash/internal/logging"
	"github.com/salesdash/salesdash/internal/warehouse"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build the analytical store from the exported CSV",
	Long: `Build the star-schema analytical store from a previously exported CSV.
The build is idempotent: all tables are dropped and recreated from the
current CSV contents, so re-running it after a new export refreshes the
store completely.

Example:
  salesdash build
  salesdash build --csv data/orders.csv --store data/warehouse.duckdb`,
	RunE: runBuild,
}

func runBuild(cmd *cobra.Command, args []string) error {
	if err := cfg.ValidateBuild(); err != nil {
		return err
	}

	b, err := warehouse.NewBuilder(cfg.CSVPath, cfg.StorePath)
	if err != nil {
		return err
	}

	logging.Info().
		Str("csv", cfg.CSVPath).
		Str("store", cfg.StorePath).
		Msg("Building analytical store")

	if err := b.Build(cmd.Context()); err != nil {
		return err
	}

	logging.Info().Str("store", cfg.StorePath).Msg("Store built")
	return nil
}
