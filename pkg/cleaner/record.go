// pkg/cleaner/record.go
package cleaner

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/ecomdata/sales-ingress/pkg/model"
)

// workRecord is the mutable in-flight form of one record as it moves through
// the stages. It carries the parsed values, presence flags for the three
// numeric fields, and a count of fields that were recovered or corrected,
// which the deduplicator uses to pick survivors.
type workRecord struct {
	ordinal int
	raw     model.RawRecord

	transactionID string
	customerID    string
	productName   string

	quantity float64
	price    float64
	total    float64

	hasQuantity bool
	hasPrice    bool
	hasTotal    bool

	date time.Time

	// quantityRounded marks input whose quantity text carried a fraction
	// that the parse snapped away; the recovery stage audits it.
	quantityRounded bool

	// touched counts recovered and corrected fields on this record.
	touched int
}

// newWorkRecord parses the raw numeric fields. Text that fails to parse is
// treated the same as the empty sentinel: missing.
func newWorkRecord(ordinal int, raw model.RawRecord) workRecord {
	w := workRecord{
		ordinal:       ordinal,
		raw:           raw,
		transactionID: strings.TrimSpace(raw.TransactionID),
		customerID:    strings.TrimSpace(raw.CustomerID),
		productName:   raw.ProductName,
	}

	if v, ok := parseNumber(raw.Quantity); ok {
		// Quantities are whole units; fractional input is snapped to the
		// nearest integer before any identity checks run.
		w.quantity = math.Round(v)
		w.quantityRounded = w.quantity != v
		w.hasQuantity = true
	}
	if v, ok := parseNumber(raw.PricePerUnit); ok {
		w.price = v
		w.hasPrice = true
	}
	if v, ok := parseNumber(raw.TotalPrice); ok {
		w.total = v
		w.hasTotal = true
	}

	return w
}

// id returns a stable identifier for audit entries: the transaction id when
// present, otherwise the record's position in the input batch.
func (w workRecord) id() string {
	if w.transactionID != "" {
		return w.transactionID
	}
	return fmt.Sprintf("row-%d", w.ordinal)
}

// presentNumericFields counts how many of quantity, unit price, and total
// are present.
func (w workRecord) presentNumericFields() int {
	n := 0
	if w.hasQuantity {
		n++
	}
	if w.hasPrice {
		n++
	}
	if w.hasTotal {
		n++
	}
	return n
}

// finalize converts a fully cleaned work record into its canonical form.
func (w workRecord) finalize() model.CleanedRecord {
	return model.CleanedRecord{
		TransactionID:   w.transactionID,
		CustomerID:      w.customerID,
		ProductName:     w.productName,
		Quantity:        int(math.Round(w.quantity)),
		PricePerUnit:    roundCurrency(w.price),
		TotalPrice:      roundCurrency(w.total),
		TransactionDate: w.date,
	}
}

func parseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// roundCurrency rounds to two decimal places using banker's (half-to-even)
// rounding.
func roundCurrency(v float64) float64 {
	return math.RoundToEven(v*100) / 100
}

func formatCurrency(v float64) string {
	return model.FormatCurrency(roundCurrency(v))
}

func formatInt(v float64) string {
	return strconv.Itoa(int(math.Round(v)))
}
