// pkg/cleaner/product.go
package cleaner

import "github.com/ecomdata/sales-ingress/pkg/model"

// normalizeProducts maps raw product names to canonical names through the
// ordered rule table. Unmatched names fall back to a trimmed, title-cased
// form; normalization never drops a record. Applying the stage to already
// canonical names changes nothing and logs nothing, so the stage is
// idempotent.
func (r *run) normalizeProducts(items []workRecord) []workRecord {
	for i, item := range items {
		canonical, matched := r.rules.CanonicalName(item.productName)
		if canonical == item.productName {
			continue
		}

		reason := model.ReasonProductNameCanonicalized
		if !matched {
			reason = model.ReasonUncanonicalizedPassthru
		}
		r.logChange(item, StageNormalization, model.FieldProductName,
			item.productName, canonical, reason)

		items[i].productName = canonical
	}

	return items
}
