package warehouse_test

import (
	"context"
	"testing"

	"github.com/salesdash/salesdash/internal/datagen"
	"github.com/salesdash/salesdash/internal/testutil"
	"github.com/salesdash/salesdash/internal/warehouse"
)

func builtWarehouse(t *testing.T) (*warehouse.Warehouse, []datagen.Order) {
	t.Helper()

	orders := testutil.SeededOrders(t, 8, 6, 91)
	csvPath := testutil.ExportCSV(t, orders)
	return testutil.BuildStore(t, csvPath), orders
}

func TestCities(t *testing.T) {
	wh, orders := builtWarehouse(t)

	cities, err := wh.Cities(context.Background())
	if err != nil {
		t.Fatalf("Cities failed: %v", err)
	}

	want := make(map[string]bool)
	for _, o := range orders {
		want[o.Customer.City] = true
	}
	if len(cities) != len(want) {
		t.Errorf("Expected %d cities, got %d", len(want), len(cities))
	}
	for i, c := range cities {
		if !want[c] {
			t.Errorf("Unexpected city %q", c)
		}
		if i > 0 && cities[i-1] > c {
			t.Errorf("Cities not sorted: %q before %q", cities[i-1], c)
		}
	}
}

func TestCityProfit(t *testing.T) {
	wh, orders := builtWarehouse(t)
	ctx := context.Background()

	city := orders[0].Customer.City

	rows, err := wh.CityProfit(ctx, city)
	if err != nil {
		t.Fatalf("CityProfit failed: %v", err)
	}
	if len(rows) == 0 {
		t.Fatalf("Expected rows for city %q", city)
	}

	// Expected per-service counts for the city, from the generated batch.
	wantOrders := make(map[string]int64)
	for _, o := range orders {
		if o.Customer.City == city {
			wantOrders[o.Service.Name]++
		}
	}

	var prev float64
	for i, row := range rows {
		svc, ok := datagen.ServiceByName(row.Service)
		if !ok {
			t.Errorf("Service %q not in catalog", row.Service)
			continue
		}
		if row.Orders != wantOrders[row.Service] {
			t.Errorf("Service %q: %d orders, want %d", row.Service, row.Orders, wantOrders[row.Service])
		}
		wantRevenue := float64(row.Orders) * svc.MonthlyCost
		if diff := row.Revenue - wantRevenue; diff > 0.01 || diff < -0.01 {
			t.Errorf("Service %q: revenue %f, want %f", row.Service, row.Revenue, wantRevenue)
		}
		if i > 0 && row.Revenue > prev {
			t.Errorf("Rows not ordered by revenue descending")
		}
		prev = row.Revenue
	}
}

func TestCityProfitPerYear(t *testing.T) {
	wh, orders := builtWarehouse(t)
	ctx := context.Background()

	city := orders[0].Customer.City

	rows, err := wh.CityProfitPerYear(ctx, city)
	if err != nil {
		t.Fatalf("CityProfitPerYear failed: %v", err)
	}

	wantTotal := int64(0)
	for _, o := range orders {
		if o.Customer.City == city {
			wantTotal++
		}
	}

	var gotTotal int64
	for _, row := range rows {
		if row.Year < 2010 {
			t.Errorf("Year %d precedes the purchase epoch", row.Year)
		}
		gotTotal += row.Sales
	}
	if gotTotal != wantTotal {
		t.Errorf("Yearly sales sum to %d, want %d", gotTotal, wantTotal)
	}
}

func TestPopularity(t *testing.T) {
	wh, orders := builtWarehouse(t)

	rows, err := wh.Popularity(context.Background())
	if err != nil {
		t.Fatalf("Popularity failed: %v", err)
	}
	if len(rows) == 0 {
		t.Fatal("Expected popularity rows")
	}

	var total int64
	var prev int64 = 1 << 62
	for _, row := range rows {
		if _, ok := datagen.ServiceByName(row.Service); !ok {
			t.Errorf("Service %q not in catalog", row.Service)
		}
		if row.Orders > prev {
			t.Error("Popularity not ordered descending")
		}
		prev = row.Orders
		total += row.Orders
	}
	if total != int64(len(orders)) {
		t.Errorf("Popularity counts sum to %d, want %d", total, len(orders))
	}
}

func TestUnknownCityYieldsEmptyResults(t *testing.T) {
	wh, _ := builtWarehouse(t)
	ctx := context.Background()

	// Exact, case-sensitive match: a city that cannot exist in the batch.
	const city = "Nowhere-on-Sea"

	profit, err := wh.CityProfit(ctx, city)
	if err != nil {
		t.Fatalf("CityProfit on unknown city should not error: %v", err)
	}
	if len(profit) != 0 {
		t.Errorf("Expected empty profit result, got %d rows", len(profit))
	}

	years, err := wh.CityProfitPerYear(ctx, city)
	if err != nil {
		t.Fatalf("CityProfitPerYear on unknown city should not error: %v", err)
	}
	if len(years) != 0 {
		t.Errorf("Expected empty yearly result, got %d rows", len(years))
	}
}
