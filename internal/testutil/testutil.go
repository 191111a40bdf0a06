// Package testutil provides fixtures for tests that need a generated batch,
// an exported CSV, or a fully built warehouse in a temp directory.
package testutil

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/salesdash/salesdash/internal/datagen"
	"github.com/salesdash/salesdash/internal/export"
	"github.com/salesdash/salesdash/internal/warehouse"
)

// SeededOrders generates a deterministic batch or fails the test.
func SeededOrders(t *testing.T, customers, perCustomer int, seed uint64) []datagen.Order {
	t.Helper()

	orders, err := datagen.Generate(context.Background(), datagen.BatchConfig{
		Customers:         customers,
		OrdersPerCustomer: perCustomer,
		Seed:              seed,
	})
	if err != nil {
		t.Fatalf("Failed to generate batch: %v", err)
	}
	return orders
}

// ExportCSV writes the batch to a CSV in a fresh temp directory and returns
// its path.
func ExportCSV(t *testing.T, orders []datagen.Order) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "orders.csv")
	if err := export.Export(orders, path); err != nil {
		t.Fatalf("Failed to export CSV: %v", err)
	}
	return path
}

// BuildStore builds a warehouse from the CSV in a fresh temp directory and
// returns a query handle over it.
func BuildStore(t *testing.T, csvPath string) *warehouse.Warehouse {
	t.Helper()

	storePath := filepath.Join(t.TempDir(), "warehouse.duckdb")
	b, err := warehouse.NewBuilder(csvPath, storePath)
	if err != nil {
		t.Fatalf("Failed to create builder: %v", err)
	}
	if err := b.Build(context.Background()); err != nil {
		t.Fatalf("Failed to build warehouse: %v", err)
	}
	return warehouse.New(storePath)
}
