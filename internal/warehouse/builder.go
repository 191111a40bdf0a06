package warehouse

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"

	"github.com/salesdash/salesdash/internal/logging"
)

// Build step SQL. Every step is a full-table replace, so a rerun after a
// midway failure self-heals. The steps are not wrapped in one transaction;
// each statement is independently atomic at the engine level.

// The path is bound as a statement parameter, same as the query layer binds
// the city filter.
const createStagingSQL = `
CREATE OR REPLACE TABLE staging AS
SELECT * FROM read_csv_auto(?, delim=';', header=true);
`

const createServicesSQL = `
CREATE OR REPLACE TABLE tblServices AS
SELECT
    row_number() OVER (ORDER BY Costs) AS service_id,
    Servicename,
    Costs
FROM (SELECT DISTINCT Servicename, Costs FROM staging);
`

// Customers are deduplicated by full row. The raw 10-digit id is reused as
// the key, so two colliding synthetic customers both surface under one id.
const createCustomersSQL = `
CREATE OR REPLACE TABLE tblCustomers AS
SELECT DISTINCT
    "Customer ID" AS customer_id,
    First_Name,
    Last_Name,
    Gender,
    City,
    "Support Level" AS support_level,
    Birthday,
    date_diff('year', CAST(Birthday AS DATE), current_date) AS Age
FROM staging;
`

// order_id values are build-local: row numbering follows the engine's scan
// order and is not guaranteed stable across rebuilds.
const createOrdersSQL = `
CREATE OR REPLACE TABLE tblOrders AS
SELECT
    row_number() OVER () AS order_id,
    st."Purchase date" AS purchase_date,
    c.customer_id,
    s.service_id,
    st.payment_method,
    st."Sales Canal" AS sales_canal,
    st."Customer Satisfaction" AS satisfaction
FROM staging st
JOIN tblServices s ON st.Servicename = s.Servicename
JOIN tblCustomers c ON st."Customer ID" = c.customer_id;
`

// Builder materializes the star schema from an exported CSV.
//
// Services are deduplicated by the (name, cost) pair, not by name alone; two
// services sharing a name at different costs would produce two catalog rows.
// The static catalog keeps costs fixed, so this cannot currently happen.
type Builder struct {
	csvPath   string
	storePath string
}

// NewBuilder validates the source CSV and prepares the store location. A
// missing CSV is a fatal construction-time error, not a build-time one.
func NewBuilder(csvPath, storePath string) (*Builder, error) {
	if _, err := os.Stat(csvPath); err != nil {
		return nil, fmt.Errorf("source CSV not found: %w", err)
	}
	if dir := filepath.Dir(storePath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create store directory: %w", err)
		}
	}
	return &Builder{csvPath: csvPath, storePath: storePath}, nil
}

// Build loads the CSV into a staging table and replaces the services,
// customers and orders tables from it. Errors propagate to the caller; the
// build is all-or-nothing and idempotent given the same input CSV.
func (b *Builder) Build(ctx context.Context) error {
	db, err := sqlx.ConnectContext(ctx, "duckdb", b.storePath)
	if err != nil {
		return fmt.Errorf("failed to open store %s: %w", b.storePath, err)
	}
	defer db.Close()

	logging.Info().
		Str("csv", b.csvPath).
		Str("store", b.storePath).
		Msg("Building warehouse")

	steps := []struct {
		name string
		sql  string
		args []any
	}{
		{"staging", createStagingSQL, []any{b.csvPath}},
		{"tblServices", createServicesSQL, nil},
		{"tblCustomers", createCustomersSQL, nil},
		{"tblOrders", createOrdersSQL, nil},
	}

	for _, step := range steps {
		if _, err := db.ExecContext(ctx, step.sql, step.args...); err != nil {
			return fmt.Errorf("failed to build %s: %w", step.name, err)
		}
		logging.Debug().Str("table", step.name).Msg("Build step complete")
	}

	var orders int64
	if err := db.GetContext(ctx, &orders, "SELECT COUNT(*) FROM tblOrders"); err != nil {
		return fmt.Errorf("failed to count orders: %w", err)
	}

	logging.Info().
		Int64("orders", orders).
		Str("store", b.storePath).
		Msg("Warehouse build complete")

	return nil
}
