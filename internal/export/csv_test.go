package export

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/salesdash/salesdash/internal/datagen"
)

func readAll(t *testing.T, path string) [][]string {
	t.Helper()

	file, err := os.Open(path)
	if err != nil {
		t.Fatalf("Failed to open export: %v", err)
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.Comma = Delimiter
	rows, err := r.ReadAll()
	if err != nil {
		t.Fatalf("Failed to read export: %v", err)
	}
	return rows
}

func TestExportRoundTrip(t *testing.T) {
	orders, err := datagen.Generate(context.Background(), datagen.BatchConfig{
		Customers:         2,
		OrdersPerCustomer: 3,
		Seed:              21,
	})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	path := filepath.Join(t.TempDir(), "orders.csv")
	if err := Export(orders, path); err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	rows := readAll(t, path)
	if len(rows) != 7 {
		t.Fatalf("Expected header + 6 rows, got %d rows", len(rows))
	}

	for i, col := range Header {
		if rows[0][i] != col {
			t.Errorf("Header column %d: expected %q, got %q", i, col, rows[0][i])
		}
	}

	counts := make(map[string]int)
	for _, row := range rows[1:] {
		if len(row) != len(Header) {
			t.Fatalf("Row has %d fields, want %d", len(row), len(Header))
		}
		counts[row[1]]++

		svc, ok := datagen.ServiceByName(row[8])
		if !ok {
			t.Errorf("Servicename %q not in catalog", row[8])
			continue
		}
		wantCost := row[9]
		if wantCost == "" {
			t.Errorf("Empty Costs field for service %q", row[8])
		}
		gotSvc := datagen.Service{Name: row[8], MonthlyCost: svc.MonthlyCost}
		if gotSvc != svc {
			t.Errorf("Catalog mismatch for %q", row[8])
		}
	}

	if len(counts) != 2 {
		t.Fatalf("Expected 2 customer ids, got %d", len(counts))
	}
	for id, n := range counts {
		if n != 3 {
			t.Errorf("Customer %s has %d rows, want 3", id, n)
		}
	}
}

func TestExportEmptyBatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")

	if err := Export(nil, path); err != nil {
		t.Fatalf("Export of empty batch should not fail: %v", err)
	}

	rows := readAll(t, path)
	if len(rows) != 1 {
		t.Fatalf("Expected header-only file, got %d rows", len(rows))
	}
}

func TestExportSkipsMalformedRows(t *testing.T) {
	f := datagen.NewFakerWithSeed(31)
	now := time.Now().UTC()
	cust := datagen.NewCustomer(f, now)

	good := datagen.NewOrder(f, cust, now)
	missingID := datagen.NewOrder(f, datagen.Customer{}, now)
	unknownService := datagen.NewOrder(f, cust, now)
	unknownService.Service = datagen.Service{Name: "Quantum Computing", MonthlyCost: 1.0}
	badSatisfaction := datagen.NewOrder(f, cust, now)
	badSatisfaction.Satisfaction = 9

	path := filepath.Join(t.TempDir(), "partial.csv")
	orders := []datagen.Order{missingID, good, unknownService, badSatisfaction}
	if err := Export(orders, path); err != nil {
		t.Fatalf("Export should recover from malformed rows: %v", err)
	}

	rows := readAll(t, path)
	if len(rows) != 2 {
		t.Fatalf("Expected header + 1 valid row, got %d rows", len(rows))
	}
	if rows[1][1] != cust.ID {
		t.Errorf("Surviving row has customer id %q, want %q", rows[1][1], cust.ID)
	}
}

func TestExportOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orders.csv")
	if err := os.WriteFile(path, []byte("stale content\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := Export(nil, path); err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	rows := readAll(t, path)
	if len(rows) != 1 || rows[0][0] != Header[0] {
		t.Error("Export did not overwrite the destination file")
	}
}

func TestExportFieldFormats(t *testing.T) {
	f := datagen.NewFakerWithSeed(41)
	now := time.Now().UTC()
	o := datagen.NewOrder(f, datagen.NewCustomer(f, now), now)

	path := filepath.Join(t.TempDir(), "one.csv")
	if err := Export([]datagen.Order{o}, path); err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	rows := readAll(t, path)
	if len(rows) != 2 {
		t.Fatalf("Expected header + 1 row, got %d", len(rows))
	}
	row := rows[1]

	if _, err := time.Parse(PurchaseLayout, row[0]); err != nil {
		t.Errorf("Purchase date %q does not parse: %v", row[0], err)
	}
	if _, err := time.Parse(BirthdayLayout, row[5]); err != nil {
		t.Errorf("Birthday %q does not parse: %v", row[5], err)
	}
}
