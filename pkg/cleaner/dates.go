// pkg/cleaner/dates.go
package cleaner

import (
	"strings"

	"github.com/ecomdata/sales-ingress/pkg/model"
)

// harmonizeDates parses heterogeneous date strings into canonical calendar
// dates. A date that matches no known layout, or that parses but falls
// outside the configured valid range, drops the record. A normalization
// audit entry is written only when the canonical form differs textually from
// the input, so already-canonical dates stay quiet.
func (r *run) harmonizeDates(items []workRecord) []workRecord {
	kept := items[:0]

	for _, item := range items {
		raw := strings.TrimSpace(item.raw.TransactionDate)

		parsed, ok := r.rules.ParseDate(raw)
		if !ok || !r.rules.InDateRange(parsed) {
			r.drop(item, StageDates, model.DropInvalidDate)
			continue
		}

		item.date = parsed

		if canonical := parsed.Format(model.DateLayout); canonical != raw {
			r.logChange(item, StageDates, model.FieldTransactionDate,
				raw, canonical, model.ReasonDateNormalized)
		}

		kept = append(kept, item)
	}

	return kept
}
