// Package export serializes generated purchase events to the semicolon
// delimited CSV that the schema builder consumes. The CSV file is the single
// source of truth for a generation run; the warehouse is derived from it.
package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/salesdash/salesdash/internal/datagen"
	"github.com/salesdash/salesdash/internal/logging"
)

// Delimiter used for all exports.
const Delimiter = ';'

// Timestamp layouts used in the export.
const (
	PurchaseLayout = "2006-01-02 15:04:05"
	BirthdayLayout = "2006-01-02"
)

// Header is the canonical column set, held fixed across runs.
var Header = []string{
	"Purchase date",
	"Customer ID",
	"First_Name",
	"Last_Name",
	"Gender",
	"Birthday",
	"Support Level",
	"City",
	"Servicename",
	"Costs",
	"payment_method",
	"Sales Canal",
	"Customer Satisfaction",
}

// Export writes one row per order to path, preceded by the header row. The
// destination is overwritten unconditionally and its parent directory is
// created if absent.
//
// An empty batch produces a header-only file and a warning, not an error. A
// row that fails validation is logged with its index and skipped; the export
// continues with the remaining rows.
func Export(orders []datagen.Order, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	w.Comma = Delimiter

	if err := w.Write(Header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	if len(orders) == 0 {
		logging.Warn().Str("path", path).Msg("No records to export; writing header only")
		w.Flush()
		return w.Error()
	}

	written := 0
	for i, o := range orders {
		if err := validate(o); err != nil {
			logging.Warn().
				Int("row", i).
				Err(err).
				Msg("Skipping malformed record")
			continue
		}
		if err := w.Write(row(o)); err != nil {
			logging.Warn().
				Int("row", i).
				Err(err).
				Msg("Skipping unwritable record")
			continue
		}
		written++
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush export: %w", err)
	}

	logging.Info().
		Str("path", path).
		Int("rows", written).
		Int("skipped", len(orders)-written).
		Msg("Export complete")

	return nil
}

func validate(o datagen.Order) error {
	if o.Customer.ID == "" {
		return fmt.Errorf("missing customer id")
	}
	svc, ok := datagen.ServiceByName(o.Service.Name)
	if !ok {
		return fmt.Errorf("unknown service %q", o.Service.Name)
	}
	if svc.MonthlyCost != o.Service.MonthlyCost {
		return fmt.Errorf("service %q cost %.2f does not match catalog",
			o.Service.Name, o.Service.MonthlyCost)
	}
	if o.Satisfaction < 1 || o.Satisfaction > 5 {
		return fmt.Errorf("satisfaction %d out of range", o.Satisfaction)
	}
	if o.PurchasedAt.IsZero() {
		return fmt.Errorf("missing purchase timestamp")
	}
	return nil
}

func row(o datagen.Order) []string {
	return []string{
		o.PurchasedAt.Format(PurchaseLayout),
		o.Customer.ID,
		o.Customer.FirstName,
		o.Customer.LastName,
		o.Customer.Gender,
		o.Customer.Birthday.Format(BirthdayLayout),
		o.Customer.SupportLevel,
		o.Customer.City,
		o.Service.Name,
		strconv.FormatFloat(o.Service.MonthlyCost, 'f', 2, 64),
		o.PaymentMethod,
		o.SalesChannel,
		strconv.Itoa(o.Satisfaction),
	}
}
