// pkg/model/audit.go
package model

import "strings"

// DropReason explains why a record was removed from the batch.
type DropReason string

const (
	DropInsufficientData DropReason = "insufficient_data"
	DropInvalidDate      DropReason = "invalid_date"
	DropExtremeOutlier   DropReason = "extreme_outlier"
	DropUnparseableInput DropReason = "unparseable_input"

	// duplicateOfPrefix tags duplicate drops with the survivor's identifier.
	duplicateOfPrefix = "duplicate_of:"
)

// DuplicateOf builds the drop reason for a record collapsed into a surviving
// duplicate.
func DuplicateOf(survivorID string) DropReason {
	return DropReason(duplicateOfPrefix + survivorID)
}

// IsDuplicate reports whether the reason records a duplicate collapse.
func (r DropReason) IsDuplicate() bool {
	return strings.HasPrefix(string(r), duplicateOfPrefix)
}

// Audit reasons for field-level changes.
const (
	ReasonRecoveredFromIdentity    = "recovered_from_identity"
	ReasonQuantityRounded          = "quantity_rounded"
	ReasonUncanonicalizedPassthru  = "uncanonicalized_passthrough"
	ReasonDateNormalized           = "date_normalized"
	ReasonClippedToBound           = "clipped_to_bound"
	ReasonTotalRecomputed          = "total_recomputed"
	ReasonProductNameCanonicalized = "canonicalized"
)

// AuditEntry records a single field-level change or record drop made during
// cleaning. The log is append-only and owned by one pipeline run.
type AuditEntry struct {
	RecordID      string // transaction id, or row-<ordinal> when absent
	Stage         string
	Field         string // empty for whole-record drops
	OriginalValue string
	NewValue      string // empty for drops
	Reason        string
}
