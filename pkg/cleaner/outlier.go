// pkg/cleaner/outlier.go
package cleaner

import (
	"math"

	"github.com/ecomdata/sales-ingress/pkg/model"
)

// correctOutliers enforces the quantity and unit-price bounds. Values out of
// range by no more than the configured tolerance factor are clipped to the
// nearest bound; anything further out makes the record unrecoverable. After
// any clipping the total is recomputed to preserve the quantity x price
// identity, and a residual mismatch between the total and quantity x price
// is repaired the same way.
func (r *run) correctOutliers(items []workRecord) []workRecord {
	kept := items[:0]

	for _, item := range items {
		// Currency values settle to two decimals before bounds are applied.
		item.price = roundCurrency(item.price)
		item.total = roundCurrency(item.total)

		corrected, ok := r.correctRecord(item)
		if !ok {
			r.drop(item, StageOutliers, model.DropExtremeOutlier)
			continue
		}
		kept = append(kept, corrected)
	}

	return kept
}

func (r *run) correctRecord(item workRecord) (workRecord, bool) {
	qMin, qMax := float64(r.rules.QuantityMin), float64(r.rules.QuantityMax)
	tol := r.rules.OutlierTolerance

	clipped := false

	q, status := clipToBounds(item.quantity, qMin, qMax, tol)
	switch status {
	case clipExtreme:
		return item, false
	case clipApplied:
		r.logChange(item, StageOutliers, model.FieldQuantity,
			formatInt(item.quantity), formatInt(q), model.ReasonClippedToBound)
		item.quantity = q
		item.touched++
		clipped = true
	}

	p, status := clipToBounds(item.price, r.rules.PriceMin, r.rules.PriceMax, tol)
	switch status {
	case clipExtreme:
		return item, false
	case clipApplied:
		r.logChange(item, StageOutliers, model.FieldPricePerUnit,
			formatCurrency(item.price), formatCurrency(p), model.ReasonClippedToBound)
		item.price = p
		item.touched++
		clipped = true
	}

	expected := roundCurrency(item.quantity * item.price)
	if clipped || math.Abs(item.total-expected) > 0.01 {
		if item.total != expected {
			r.logChange(item, StageOutliers, model.FieldTotalPrice,
				formatCurrency(item.total), formatCurrency(expected), model.ReasonTotalRecomputed)
			item.total = expected
			if !clipped {
				item.touched++
			}
		}
	}

	return item, true
}

type clipStatus int

const (
	clipNone clipStatus = iota
	clipApplied
	clipExtreme
)

// clipToBounds applies the correction policy to one value: in range leaves
// it alone, within tolerance of a bound clips to that bound, beyond
// tolerance is extreme.
func clipToBounds(v, min, max, tolerance float64) (float64, clipStatus) {
	switch {
	case v >= min && v <= max:
		return v, clipNone
	case v > max && v <= max*tolerance:
		return max, clipApplied
	case v < min && v >= min/tolerance:
		return min, clipApplied
	default:
		return v, clipExtreme
	}
}
