// pkg/cleaner/dedupe_test.go
package cleaner

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecomdata/sales-ingress/pkg/model"
)

func dedupeItem(t *testing.T, ordinal int, raw model.RawRecord, touched int) workRecord {
	t.Helper()
	w := newWorkRecord(ordinal, raw)
	if raw.TransactionDate != "" {
		parsed, err := time.Parse(model.DateLayout, raw.TransactionDate)
		require.NoError(t, err)
		w.date = parsed
	}
	w.touched = touched
	return w
}

func TestDeduplicateCollapsesContentDuplicates(t *testing.T) {
	r := newTestRun()
	items := []workRecord{
		dedupeItem(t, 0, model.RawRecord{
			TransactionID: "T1", CustomerID: "C3", ProductName: "Sprite",
			Quantity: "5", PricePerUnit: "1.00", TotalPrice: "5.00",
			TransactionDate: "2023-01-17",
		}, 0),
		dedupeItem(t, 1, model.RawRecord{
			TransactionID: "T2", CustomerID: "C3", ProductName: "sprite",
			Quantity: "5", PricePerUnit: "1.00", TotalPrice: "5.00",
			TransactionDate: "2023-01-17",
		}, 1),
	}

	kept := r.deduplicate(items)

	require.Len(t, kept, 1)
	assert.Equal(t, "T1", kept[0].transactionID)

	require.Len(t, r.audit, 1)
	assert.Equal(t, "T2", r.audit[0].RecordID)
	assert.Equal(t, string(model.DuplicateOf("T1")), r.audit[0].Reason)
	assert.True(t, model.DropReason(r.audit[0].Reason).IsDuplicate())
}

func TestDeduplicateSurvivorHasFewestTouchedFields(t *testing.T) {
	r := newTestRun()
	items := []workRecord{
		dedupeItem(t, 0, model.RawRecord{
			TransactionID: "T1", CustomerID: "C3", ProductName: "Sprite",
			Quantity: "5", PricePerUnit: "1.00", TotalPrice: "5.00",
			TransactionDate: "2023-01-17",
		}, 2),
		dedupeItem(t, 1, model.RawRecord{
			TransactionID: "T2", CustomerID: "C3", ProductName: "Sprite",
			Quantity: "5", PricePerUnit: "1.00", TotalPrice: "5.00",
			TransactionDate: "2023-01-17",
		}, 0),
	}

	kept := r.deduplicate(items)

	require.Len(t, kept, 1)
	assert.Equal(t, "T2", kept[0].transactionID)
	assert.Equal(t, string(model.DuplicateOf("T2")), r.audit[0].Reason)
}

func TestDeduplicateTieGoesToEarliestRecord(t *testing.T) {
	r := newTestRun()
	items := []workRecord{
		dedupeItem(t, 0, model.RawRecord{
			TransactionID: "T1", CustomerID: "C3", ProductName: "Sprite",
			Quantity: "5", PricePerUnit: "1.00", TotalPrice: "5.00",
			TransactionDate: "2023-01-17",
		}, 1),
		dedupeItem(t, 1, model.RawRecord{
			TransactionID: "T2", CustomerID: "C3", ProductName: "Sprite",
			Quantity: "5", PricePerUnit: "1.00", TotalPrice: "5.00",
			TransactionDate: "2023-01-17",
		}, 1),
	}

	kept := r.deduplicate(items)

	require.Len(t, kept, 1)
	assert.Equal(t, "T1", kept[0].transactionID)
}

func TestDeduplicateCollapsesSharedTransactionIDs(t *testing.T) {
	r := newTestRun()
	// Same transaction id with differing content: not a content duplicate,
	// collapsed by the id pass.
	items := []workRecord{
		dedupeItem(t, 0, model.RawRecord{
			TransactionID: "T1", CustomerID: "C1", ProductName: "Mouse",
			Quantity: "2", PricePerUnit: "10.00", TotalPrice: "20.00",
			TransactionDate: "2023-01-15",
		}, 0),
		dedupeItem(t, 1, model.RawRecord{
			TransactionID: "T1", CustomerID: "C1", ProductName: "Keyboard",
			Quantity: "1", PricePerUnit: "30.00", TotalPrice: "30.00",
			TransactionDate: "2023-01-16",
		}, 0),
	}

	kept := r.deduplicate(items)

	require.Len(t, kept, 1)
	assert.Equal(t, "Mouse", kept[0].productName)
}

func TestDeduplicateEmptyIDsNeverGroup(t *testing.T) {
	r := newTestRun()
	items := []workRecord{
		dedupeItem(t, 0, model.RawRecord{
			CustomerID: "C1", ProductName: "Mouse",
			Quantity: "2", PricePerUnit: "10.00", TotalPrice: "20.00",
			TransactionDate: "2023-01-15",
		}, 0),
		dedupeItem(t, 1, model.RawRecord{
			CustomerID: "C2", ProductName: "Keyboard",
			Quantity: "1", PricePerUnit: "30.00", TotalPrice: "30.00",
			TransactionDate: "2023-01-16",
		}, 0),
	}

	kept := r.deduplicate(items)

	assert.Len(t, kept, 2)
	assert.Empty(t, r.audit)
}

func TestDeduplicateDistinctRecordsSurvive(t *testing.T) {
	r := newTestRun()
	items := []workRecord{
		dedupeItem(t, 0, model.RawRecord{
			TransactionID: "T1", CustomerID: "C1", ProductName: "Mouse",
			Quantity: "2", PricePerUnit: "10.00", TotalPrice: "20.00",
			TransactionDate: "2023-01-15",
		}, 0),
		dedupeItem(t, 1, model.RawRecord{
			TransactionID: "T2", CustomerID: "C1", ProductName: "Mouse",
			Quantity: "3", PricePerUnit: "10.00", TotalPrice: "30.00",
			TransactionDate: "2023-01-15",
		}, 0),
	}

	kept := r.deduplicate(items)

	assert.Len(t, kept, 2)
}
