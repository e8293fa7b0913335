// pkg/model/report.go
package model

// QualityReport is an immutable aggregate snapshot of data-quality problems
// in one batch. One report is produced before cleaning (baseline) and one
// after (result); both use identical field names and counting semantics so
// the delta is directly comparable.
type QualityReport struct {
	TotalRecords     int
	MissingValues    map[string]int
	DuplicateRecords int
	Outliers         map[string]int
	UnparseableDates int
	Dropped          map[DropReason]int
}

// NewQualityReport initializes an empty report for a batch of the given size.
func NewQualityReport(total int) QualityReport {
	return QualityReport{
		TotalRecords:  total,
		MissingValues: make(map[string]int),
		Outliers:      make(map[string]int),
		Dropped:       make(map[DropReason]int),
	}
}

// AddDrop tallies one dropped record under the given reason.
func (r *QualityReport) AddDrop(reason DropReason) {
	r.Dropped[reason]++
}

// RecordsDropped sums every drop-reason tally.
func (r QualityReport) RecordsDropped() int {
	n := 0
	for _, c := range r.Dropped {
		n += c
	}
	return n
}

// DuplicatesDropped sums the drops recorded as duplicate collapses.
func (r QualityReport) DuplicatesDropped() int {
	n := 0
	for reason, c := range r.Dropped {
		if reason.IsDuplicate() {
			n += c
		}
	}
	return n
}

// TotalMissing sums missing-value counts across fields.
func (r QualityReport) TotalMissing() int {
	n := 0
	for _, c := range r.MissingValues {
		n += c
	}
	return n
}

// TotalOutliers sums outlier counts across fields.
func (r QualityReport) TotalOutliers() int {
	n := 0
	for _, c := range r.Outliers {
		n += c
	}
	return n
}
