// pkg/cleaner/product_test.go
package cleaner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecomdata/sales-ingress/pkg/model"
)

func TestNormalizeProductsCanonicalizes(t *testing.T) {
	r := newTestRun()
	items := []workRecord{work(t, model.RawRecord{
		TransactionID: "T1", ProductName: "coke-cola 500ml",
	})}

	out := r.normalizeProducts(items)

	require.Len(t, out, 1)
	assert.Equal(t, "Coca-Cola 500ml", out[0].productName)

	require.Len(t, r.audit, 1)
	assert.Equal(t, StageNormalization, r.audit[0].Stage)
	assert.Equal(t, "coke-cola 500ml", r.audit[0].OriginalValue)
	assert.Equal(t, "Coca-Cola 500ml", r.audit[0].NewValue)
	assert.Equal(t, model.ReasonProductNameCanonicalized, r.audit[0].Reason)
}

func TestNormalizeProductsFallback(t *testing.T) {
	r := newTestRun()
	items := []workRecord{work(t, model.RawRecord{
		TransactionID: "T1", ProductName: "  mystery gadget ",
	})}

	out := r.normalizeProducts(items)

	assert.Equal(t, "Mystery Gadget", out[0].productName)
	require.Len(t, r.audit, 1)
	assert.Equal(t, model.ReasonUncanonicalizedPassthru, r.audit[0].Reason)
}

func TestNormalizeProductsQuietWhenAlreadyCanonical(t *testing.T) {
	r := newTestRun()
	items := []workRecord{
		work(t, model.RawRecord{TransactionID: "T1", ProductName: "Coca-Cola 500ml"}),
		work(t, model.RawRecord{TransactionID: "T2", ProductName: "Mystery Gadget"}),
	}

	out := r.normalizeProducts(items)

	assert.Equal(t, "Coca-Cola 500ml", out[0].productName)
	assert.Equal(t, "Mystery Gadget", out[1].productName)
	assert.Empty(t, r.audit)
}

func TestNormalizeProductsNeverDrops(t *testing.T) {
	r := newTestRun()
	items := []workRecord{
		work(t, model.RawRecord{TransactionID: "T1", ProductName: ""}),
		work(t, model.RawRecord{TransactionID: "T2", ProductName: "pepsi"}),
	}

	out := r.normalizeProducts(items)

	assert.Len(t, out, 2)
	assert.Empty(t, r.drops)
}
