// pkg/model/record.go
package model

import (
	"strconv"
	"time"
)

// DateLayout is the canonical calendar-date representation used everywhere
// downstream of the pipeline.
const DateLayout = "2006-01-02"

// Field names shared by records, quality reports, and audit entries so that
// baseline and result reports are directly comparable.
const (
	FieldTransactionID   = "transaction_id"
	FieldCustomerID      = "customer_id"
	FieldProductName     = "product_name"
	FieldQuantity        = "quantity"
	FieldPricePerUnit    = "price_per_unit"
	FieldTotalPrice      = "total_price"
	FieldTransactionDate = "transaction_date"
)

// RawRecord is one purchase line as ingested. Every field is the raw text
// from the source; the empty string is the explicit missing-value sentinel.
// No invariants are guaranteed.
type RawRecord struct {
	TransactionID   string
	CustomerID      string
	ProductName     string
	Quantity        string
	PricePerUnit    string
	TotalPrice      string
	TransactionDate string
}

// CleanedRecord is the pipeline output. Invariants: the product name is
// canonical, quantity and unit price are within configured bounds, the total
// equals quantity times unit price within rounding tolerance, and the date is
// a valid calendar date within the configured range. A record violating any
// of these was dropped, never emitted.
type CleanedRecord struct {
	TransactionID   string
	CustomerID      string
	ProductName     string
	Quantity        int
	PricePerUnit    float64
	TotalPrice      float64
	TransactionDate time.Time
}

// DateString returns the transaction date in the canonical layout.
func (r CleanedRecord) DateString() string {
	return r.TransactionDate.Format(DateLayout)
}

// AsRaw renders the cleaned record back into raw-record shape using the
// canonical textual forms. Used to re-analyze the cleaned batch with the same
// counting semantics as the baseline, and by the CSV exporter.
func (r CleanedRecord) AsRaw() RawRecord {
	return RawRecord{
		TransactionID:   r.TransactionID,
		CustomerID:      r.CustomerID,
		ProductName:     r.ProductName,
		Quantity:        strconv.Itoa(r.Quantity),
		PricePerUnit:    FormatCurrency(r.PricePerUnit),
		TotalPrice:      FormatCurrency(r.TotalPrice),
		TransactionDate: r.DateString(),
	}
}

// FormatCurrency renders a currency value with two decimal places.
func FormatCurrency(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
