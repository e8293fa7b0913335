// pkg/cleaner/recover.go
package cleaner

import (
	"math"

	"github.com/ecomdata/sales-ingress/pkg/model"
)

// recoverMissing fills a single missing numeric field from the identity
// total = quantity x unit price. Records missing two or more of the three,
// and records whose recovery would yield a non-positive quantity or price,
// are unrecoverable and dropped.
func (r *run) recoverMissing(items []workRecord) []workRecord {
	kept := items[:0]

	for _, item := range items {
		switch item.presentNumericFields() {
		case 3:
			kept = append(kept, r.noteRoundedQuantity(item))

		case 2:
			recovered, ok := r.recoverOne(r.noteRoundedQuantity(item))
			if !ok {
				r.drop(item, StageRecovery, model.DropInsufficientData)
				continue
			}
			kept = append(kept, recovered)

		default:
			r.drop(item, StageRecovery, model.DropInsufficientData)
		}
	}

	return kept
}

// noteRoundedQuantity audits the integer snap applied to fractional
// quantity text at parse time, so the correction shows up in the record's
// lineage like any other.
func (r *run) noteRoundedQuantity(item workRecord) workRecord {
	if !item.quantityRounded {
		return item
	}
	r.logChange(item, StageRecovery, model.FieldQuantity,
		item.raw.Quantity, formatInt(item.quantity), model.ReasonQuantityRounded)
	item.quantityRounded = false
	item.touched++
	return item
}

// recoverOne computes the one absent field. Returns false when the result
// would not be a positive value.
func (r *run) recoverOne(item workRecord) (workRecord, bool) {
	switch {
	case !item.hasTotal:
		item.total = roundCurrency(item.quantity * item.price)
		if item.total <= 0 {
			return item, false
		}
		item.hasTotal = true
		r.logChange(item, StageRecovery, model.FieldTotalPrice,
			item.raw.TotalPrice, formatCurrency(item.total), model.ReasonRecoveredFromIdentity)

	case !item.hasPrice:
		if item.quantity <= 0 {
			return item, false
		}
		item.price = roundCurrency(item.total / item.quantity)
		if item.price <= 0 {
			return item, false
		}
		item.hasPrice = true
		r.logChange(item, StageRecovery, model.FieldPricePerUnit,
			item.raw.PricePerUnit, formatCurrency(item.price), model.ReasonRecoveredFromIdentity)

	case !item.hasQuantity:
		if item.price <= 0 {
			return item, false
		}
		item.quantity = math.Round(item.total / item.price)
		if item.quantity <= 0 {
			return item, false
		}
		item.hasQuantity = true
		r.logChange(item, StageRecovery, model.FieldQuantity,
			item.raw.Quantity, formatInt(item.quantity), model.ReasonRecoveredFromIdentity)
	}

	item.touched++
	return item, true
}
