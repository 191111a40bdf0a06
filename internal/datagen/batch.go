package datagen

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/salesdash/salesdash/internal/logging"
)

// BatchConfig configures one generation run.
type BatchConfig struct {
	// Customers is the number of synthetic customers to create.
	Customers int

	// OrdersPerCustomer is the number of orders generated per customer.
	OrdersPerCustomer int

	// Seed seeds the batch. Zero picks a time-based seed. Worker fakers are
	// derived from it, so a fixed seed reproduces the whole batch.
	Seed uint64

	// Now anchors the birthday and purchase windows for the whole batch.
	// Zero means the start of the current UTC day. The random draws depend
	// on the window bounds, so a seed only reproduces a batch when Now
	// resolves to the same instant; the day-granular default keeps seeded
	// runs identical without the caller supplying a timestamp.
	Now time.Time
}

// Generate produces Customers × OrdersPerCustomer purchase events.
//
// Customers are built first, then every order is an independent task on a
// worker pool. Tasks share no mutable state: each owns a faker derived from
// the batch seed and writes to its own slice index. Completion order carries
// no meaning; a separate shuffle pass permutes the flat result so the export
// is neither chronological nor grouped by customer. Any task failure aborts
// the whole batch.
func Generate(ctx context.Context, cfg BatchConfig) ([]Order, error) {
	if cfg.Customers < 1 || cfg.OrdersPerCustomer < 1 {
		return nil, fmt.Errorf("invalid batch size: %d customers x %d orders",
			cfg.Customers, cfg.OrdersPerCustomer)
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	now := cfg.Now.UTC()
	if cfg.Now.IsZero() {
		now = time.Now().UTC().Truncate(24 * time.Hour)
	}
	root := NewFakerWithSeed(seed)

	customers := make([]Customer, cfg.Customers)
	for i := range customers {
		customers[i] = NewCustomer(root, now)
	}

	total := cfg.Customers * cfg.OrdersPerCustomer
	orders := make([]Order, total)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i := 0; i < total; i++ {
		idx := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			f := NewFakerWithSeed(seed + uint64(idx) + 1)
			orders[idx] = NewOrder(f, customers[idx/cfg.OrdersPerCustomer], now)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("batch generation failed: %w", err)
	}

	Shuffle(root, orders)

	logging.Debug().
		Int("customers", cfg.Customers).
		Int("orders", total).
		Uint64("seed", seed).
		Msg("Batch generated")

	return orders, nil
}
