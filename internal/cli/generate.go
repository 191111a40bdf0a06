package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/salesdash/salesdash/internal/datagen"
	"github.com/salesdash/salesdash/internal/export"
	"github.com/salesdash/salesdash/internal/logging"
)

var (
	generateCustomers         int
	generateOrdersPerCustomer int
	generateSeed              uint64
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a synthetic purchase batch and export it to CSV",
	Long: `Generate a batch of synthetic customers and their purchase events, then
export the batch to a semicolon-delimited CSV. The export overwrites any
existing file at the target path.

A non-zero seed makes the batch reproducible; with seed 0 every run
produces a different batch.

Example:
  salesdash generate --customers 500 --orders-per-customer 30
  salesdash generate --seed 42 --csv data/orders.csv`,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().IntVar(&generateCustomers, "customers", 0,
		"number of synthetic customers")
	generateCmd.Flags().IntVar(&generateOrdersPerCustomer, "orders-per-customer", 0,
		"number of orders generated per customer")
	generateCmd.Flags().Uint64Var(&generateSeed, "seed", 0,
		"random seed for reproducible batches (0 = random)")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	// Override config with CLI flags
	if generateCustomers > 0 {
		cfg.Generate.Customers = generateCustomers
	}
	if generateOrdersPerCustomer > 0 {
		cfg.Generate.OrdersPerCustomer = generateOrdersPerCustomer
	}
	if generateSeed > 0 {
		cfg.Generate.Seed = generateSeed
	}

	if err := cfg.ValidateGenerate(); err != nil {
		return err
	}

	logging.Info().
		Int("customers", cfg.Generate.Customers).
		Int("orders_per_customer", cfg.Generate.OrdersPerCustomer).
		Uint64("seed", cfg.Generate.Seed).
		Msg("Generating batch")

	orders, err := datagen.Generate(cmd.Context(), datagen.BatchConfig{
		Customers:         cfg.Generate.Customers,
		OrdersPerCustomer: cfg.Generate.OrdersPerCustomer,
		Seed:              cfg.Generate.Seed,
	})
	if err != nil {
		return fmt.Errorf("failed to generate batch: %w", err)
	}

	if err := export.Export(orders, cfg.CSVPath); err != nil {
		return fmt.Errorf("failed to export batch: %w", err)
	}

	logging.Info().
		Str("path", cfg.CSVPath).
		Int("orders", len(orders)).
		Msg("Batch exported")
	return nil
}
