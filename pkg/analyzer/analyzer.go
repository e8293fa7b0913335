// pkg/analyzer/analyzer.go
package analyzer

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ecomdata/sales-ingress/pkg/model"
	"github.com/ecomdata/sales-ingress/pkg/rules"
)

// Analyze inspects a raw batch and produces a quality report without
// mutating anything. It is run once on the raw batch (baseline) and once on
// the cleaned batch rendered back to raw shape (result); the delta between
// the two is the audit summary surfaced downstream.
//
// Counting semantics:
//   - missing values: the empty sentinel, or numeric text that fails to parse
//   - duplicates: records whose key tuple (customer, product, date, total)
//     repeats an earlier record
//   - outliers: parseable quantity/price outside the configured bounds, and
//     dates that parse but fall outside the configured range
//   - unparseable dates: date text that matches none of the known layouts
func Analyze(batch []model.RawRecord, r *rules.Rules) model.QualityReport {
	report := model.NewQualityReport(len(batch))

	seen := make(map[string]bool, len(batch))

	for _, rec := range batch {
		countMissing(&report, rec)

		key := duplicateKey(rec)
		if seen[key] {
			report.DuplicateRecords++
		}
		seen[key] = true

		if q, ok := parseNumber(rec.Quantity); ok {
			if q < float64(r.QuantityMin) || q > float64(r.QuantityMax) {
				report.Outliers[model.FieldQuantity]++
			}
		}
		if p, ok := parseNumber(rec.PricePerUnit); ok {
			if p < r.PriceMin || p > r.PriceMax {
				report.Outliers[model.FieldPricePerUnit]++
			}
		}

		if date := strings.TrimSpace(rec.TransactionDate); date != "" {
			if t, ok := r.ParseDate(date); !ok {
				report.UnparseableDates++
			} else if !r.InDateRange(t) {
				report.Outliers[model.FieldTransactionDate]++
			}
		}
	}

	return report
}

func countMissing(report *model.QualityReport, rec model.RawRecord) {
	if rec.TransactionID == "" {
		report.MissingValues[model.FieldTransactionID]++
	}
	if rec.CustomerID == "" {
		report.MissingValues[model.FieldCustomerID]++
	}
	if strings.TrimSpace(rec.ProductName) == "" {
		report.MissingValues[model.FieldProductName]++
	}
	if _, ok := parseNumber(rec.Quantity); !ok {
		report.MissingValues[model.FieldQuantity]++
	}
	if _, ok := parseNumber(rec.PricePerUnit); !ok {
		report.MissingValues[model.FieldPricePerUnit]++
	}
	if _, ok := parseNumber(rec.TotalPrice); !ok {
		report.MissingValues[model.FieldTotalPrice]++
	}
	if strings.TrimSpace(rec.TransactionDate) == "" {
		report.MissingValues[model.FieldTransactionDate]++
	}
}

// duplicateKey builds the candidate-duplicate tuple. The transaction id is
// deliberately excluded: re-submitted transactions carry fresh ids.
func duplicateKey(rec model.RawRecord) string {
	return fmt.Sprintf("%s|%s|%s|%s",
		rec.CustomerID,
		strings.ToLower(strings.TrimSpace(rec.ProductName)),
		rec.TransactionDate,
		rec.TotalPrice,
	)
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
