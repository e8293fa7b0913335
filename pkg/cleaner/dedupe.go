// pkg/cleaner/dedupe.go
package cleaner

import (
	"fmt"
	"strings"

	"github.com/ecomdata/sales-ingress/pkg/model"
)

// deduplicate collapses records that represent the same transaction. Records
// are grouped first by the content tuple (customer, product, date, total) —
// re-submitted transactions carry fresh transaction ids — and then records
// sharing a non-empty transaction id are collapsed as well. Within a group
// the survivor is the record with the most complete original field set
// (fewest recovered or corrected fields); ties go to the earliest position
// in the input batch. Grouping is insertion-ordered, never hash-ordered, so
// the outcome is deterministic.
func (r *run) deduplicate(items []workRecord) []workRecord {
	items = r.collapse(items, contentKey)
	return r.collapse(items, transactionKey)
}

func contentKey(item workRecord) string {
	return fmt.Sprintf("%s|%s|%s|%s",
		item.customerID,
		strings.ToLower(item.productName),
		item.date.Format(model.DateLayout),
		formatCurrency(item.total),
	)
}

// transactionKey groups by transaction id; records without one never group.
func transactionKey(item workRecord) string {
	return item.transactionID
}

// collapse groups items by key and keeps one survivor per group, preserving
// input order. Items whose key is empty are always kept.
func (r *run) collapse(items []workRecord, key func(workRecord) string) []workRecord {
	groups := make(map[string][]int, len(items))
	order := make([]string, 0, len(items))

	for i, item := range items {
		k := key(item)
		if k == "" {
			continue
		}
		if _, seen := groups[k]; !seen {
			order = append(order, k)
		}
		groups[k] = append(groups[k], i)
	}

	dropped := make(map[int]bool)
	for _, k := range order {
		indexes := groups[k]
		if len(indexes) < 2 {
			continue
		}

		survivor := indexes[0]
		for _, i := range indexes[1:] {
			if items[i].touched < items[survivor].touched {
				survivor = i
			}
		}

		reason := model.DuplicateOf(items[survivor].id())
		for _, i := range indexes {
			if i == survivor {
				continue
			}
			r.drop(items[i], StageDeduplication, reason)
			dropped[i] = true
		}
	}

	kept := items[:0]
	for i, item := range items {
		if !dropped[i] {
			kept = append(kept, item)
		}
	}
	return kept
}
