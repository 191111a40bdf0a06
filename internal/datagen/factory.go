package datagen

import (
	"strconv"
	"strings"
	"time"
)

// Closed domains for order and customer attributes. All draws are uniform;
// no validation is needed at generation time.
var (
	Genders        = []string{"F", "M"}
	SupportLevels  = []string{"Standard", "Premium"}
	PaymentMethods = []string{"card", "direct-debit", "PayPal"}
	SalesChannels  = []string{"online", "phone", "in-person"}
)

// purchaseEpoch is the lower bound for purchase timestamps.
var purchaseEpoch = time.Date(2010, time.January, 1, 0, 0, 0, 0, time.UTC)

const customerIDDigits = 10

// Customer is a synthetic customer. Immutable once created; many orders
// reference one customer.
type Customer struct {
	ID           string
	FirstName    string
	LastName     string
	Gender       string
	Birthday     time.Time
	City         string
	SupportLevel string
}

// Order is a purchase event, the unit of analysis for all aggregate queries.
type Order struct {
	PurchasedAt   time.Time
	Customer      Customer
	Service       Service
	PaymentMethod string
	SalesChannel  string
	Satisfaction  int
}

// NewCustomer creates a synthetic customer. The id is 10 digits drawn
// independently from 1-9, so two customers can collide on the same id; that
// is a property of the export format and is deliberately left unhandled.
//
// now anchors the birthday window. The draw depends on the window bounds, so
// the caller must hold now fixed across a batch for a seed to reproduce it.
func NewCustomer(f *Faker, now time.Time) Customer {
	var id strings.Builder
	for i := 0; i < customerIDDigits; i++ {
		id.WriteString(strconv.Itoa(f.Int(1, 9)))
	}

	return Customer{
		ID:           id.String(),
		FirstName:    f.FirstName(),
		LastName:     f.LastName(),
		Gender:       Choose(f, Genders),
		Birthday:     f.DateRange(now.AddDate(-80, 0, 0), now.AddDate(-18, 0, 0)),
		City:         f.City(),
		SupportLevel: Choose(f, SupportLevels),
	}
}

// NewOrder creates one purchase event for an existing customer. Every field
// is drawn from a closed, pre-validated domain; the only side effect is
// consuming the passed random source. now anchors the purchase window the
// same way it anchors the birthday window in NewCustomer.
func NewOrder(f *Faker, c Customer, now time.Time) Order {
	return Order{
		PurchasedAt:   f.DateRange(purchaseEpoch, now),
		Customer:      c,
		Service:       Choose(f, Catalog),
		PaymentMethod: Choose(f, PaymentMethods),
		SalesChannel:  Choose(f, SalesChannels),
		Satisfaction:  f.Int(1, 5),
	}
}
