// pkg/loader/products.go
package loader

import (
	"fmt"
	"sort"

	"github.com/ecomdata/sales-ingress/pkg/model"
)

// AssignProductIDs maps every distinct canonical product name in the batch to
// a stable identifier (PROD001, PROD002, ...). Names are numbered in sorted
// order, so the same batch always yields the same assignment.
func AssignProductIDs(records []model.CleanedRecord) map[string]string {
	names := make([]string, 0)
	seen := make(map[string]bool)
	for _, rec := range records {
		if !seen[rec.ProductName] {
			seen[rec.ProductName] = true
			names = append(names, rec.ProductName)
		}
	}
	sort.Strings(names)

	ids := make(map[string]string, len(names))
	for i, name := range names {
		ids[name] = fmt.Sprintf("PROD%03d", i+1)
	}
	return ids
}
