// Package warehouse manages the embedded DuckDB analytical store: the
// drop-and-recreate star-schema build from an exported CSV, and the fixed
// aggregate queries the dashboard runs over it.
//
// The store is derived state. It is rebuilt from the CSV on every build and
// never hand-edited; a failed build leaves a disposable file that the next
// build replaces wholesale.
package warehouse

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/marcboeker/go-duckdb/v2"
)

// Warehouse answers aggregate queries over a built store. Connections are
// opened and closed per query; results are always recomputed, never cached.
type Warehouse struct {
	path string
}

// New returns a Warehouse over the store file at path. The store must have
// been built before any query runs.
func New(path string) *Warehouse {
	return &Warehouse{path: path}
}

// Path returns the store file location.
func (w *Warehouse) Path() string {
	return w.path
}

func (w *Warehouse) openReadOnly(ctx context.Context) (*sqlx.DB, error) {
	db, err := sqlx.ConnectContext(ctx, "duckdb", w.path+"?access_mode=read_only")
	if err != nil {
		return nil, fmt.Errorf("failed to open store %s: %w", w.path, err)
	}
	return db, nil
}
