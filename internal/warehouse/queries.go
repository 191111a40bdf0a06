package warehouse

import (
	"context"
	"fmt"
)

// ServiceRevenue is one row of the per-city profit query.
type ServiceRevenue struct {
	Service string  `db:"servicename" json:"service"`
	Orders  int64   `db:"counter" json:"orders"`
	Revenue float64 `db:"total_costs" json:"revenue"`
}

// YearlySales is one row of the per-city yearly sales query.
type YearlySales struct {
	Year  int64 `db:"year" json:"year"`
	Sales int64 `db:"sales" json:"sales"`
}

// ServicePopularity is one row of the global popularity ranking.
type ServicePopularity struct {
	Service string `db:"servicename" json:"service"`
	Orders  int64  `db:"in_total" json:"orders"`
}

const cityProfitSQL = `
SELECT
    s.Servicename AS servicename,
    count(*) AS counter,
    sum(s.Costs) AS total_costs
FROM tblOrders o
JOIN tblCustomers c ON o.customer_id = c.customer_id
JOIN tblServices s ON o.service_id = s.service_id
WHERE c.City = ?
GROUP BY s.Servicename
ORDER BY total_costs DESC;
`

const cityProfitPerYearSQL = `
SELECT
    EXTRACT(YEAR FROM o.purchase_date) AS year,
    COUNT(*) AS sales
FROM tblOrders o
JOIN tblCustomers c ON c.customer_id = o.customer_id
WHERE c.City = ?
GROUP BY year
ORDER BY year;
`

const popularitySQL = `
SELECT
    s.Servicename AS servicename,
    count(*) AS in_total
FROM tblOrders o
JOIN tblServices s ON o.service_id = s.service_id
GROUP BY s.Servicename
ORDER BY in_total DESC;
`

const citiesSQL = `SELECT DISTINCT City FROM tblCustomers ORDER BY City;`

// CityProfit returns per-service order counts and summed cost for one city,
// ordered by total cost descending. The city match is exact and
// case-sensitive; an unknown city yields an empty result, not an error.
func (w *Warehouse) CityProfit(ctx context.Context, city string) ([]ServiceRevenue, error) {
	db, err := w.openReadOnly(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	rows := []ServiceRevenue{}
	if err := db.SelectContext(ctx, &rows, cityProfitSQL, city); err != nil {
		return nil, fmt.Errorf("city profit query failed: %w", err)
	}
	return rows, nil
}

// CityProfitPerYear returns per-year order counts for one city.
func (w *Warehouse) CityProfitPerYear(ctx context.Context, city string) ([]YearlySales, error) {
	db, err := w.openReadOnly(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	rows := []YearlySales{}
	if err := db.SelectContext(ctx, &rows, cityProfitPerYearSQL, city); err != nil {
		return nil, fmt.Errorf("city yearly sales query failed: %w", err)
	}
	return rows, nil
}

// Popularity returns the global per-service order count, ordered descending.
func (w *Warehouse) Popularity(ctx context.Context) ([]ServicePopularity, error) {
	db, err := w.openReadOnly(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	rows := []ServicePopularity{}
	if err := db.SelectContext(ctx, &rows, popularitySQL); err != nil {
		return nil, fmt.Errorf("popularity query failed: %w", err)
	}
	return rows, nil
}

// Cities returns all distinct customer cities, sorted.
func (w *Warehouse) Cities(ctx context.Context) ([]string, error) {
	db, err := w.openReadOnly(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	cities := []string{}
	if err := db.SelectContext(ctx, &cities, citiesSQL); err != nil {
		return nil, fmt.Errorf("cities query failed: %w", err)
	}
	return cities, nil
}
