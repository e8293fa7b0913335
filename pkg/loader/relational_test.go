// pkg/loader/relational_test.go
package loader

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecomdata/sales-ingress/pkg/model"
)

func TestTransformRelational(t *testing.T) {
	records := []model.CleanedRecord{
		cleaned("T1", "C1", "Mouse", 2, 10.00, 20.00, "2023-01-15"),
		cleaned("T1", "C1", "Keyboard", 1, 30.00, 30.00, "2023-01-15"),
		cleaned("T2", "C2", "Mouse", 1, 12.00, 12.00, "2023-01-16"),
	}
	ids := AssignProductIDs(records)

	customers, products, transactions, items := TransformRelational(records, ids)

	require.Len(t, customers, 2)
	assert.Equal(t, Customer{
		CustomerID:   "C1",
		CustomerName: "Customer C1",
		Email:        "c1@example.com",
		CreatedDate:  "2023-01-01",
	}, customers[0])
	assert.Equal(t, "C2", customers[1].CustomerID)

	require.Len(t, products, 2)
	assert.Equal(t, "Keyboard", products[0].ProductName)
	assert.Equal(t, 30.00, products[0].StandardPrice)
	// Mouse appears at 10.00 and 12.00; the standard price is the mean.
	assert.Equal(t, "Mouse", products[1].ProductName)
	assert.Equal(t, 11.00, products[1].StandardPrice)
	assert.Equal(t, "Electronics", products[1].Category)

	require.Len(t, transactions, 2)
	assert.Equal(t, "T1", transactions[0].TransactionID)
	assert.Equal(t, 50.00, transactions[0].TotalAmount)
	assert.Equal(t, "2023-01-15", transactions[0].TransactionDate)
	assert.Equal(t, 12.00, transactions[1].TotalAmount)

	require.Len(t, items, 3)
	assert.Equal(t, ids["Mouse"], items[0].ProductID)
	assert.Equal(t, 2, items[0].Quantity)
}

func TestTransformRelationalEmpty(t *testing.T) {
	customers, products, transactions, items := TransformRelational(nil, nil)
	assert.Empty(t, customers)
	assert.Empty(t, products)
	assert.Empty(t, transactions)
	assert.Empty(t, items)
}

func TestTransformRelationalDeterministicOrder(t *testing.T) {
	records := []model.CleanedRecord{
		cleaned("T9", "C9", "Webcam", 1, 50.00, 50.00, "2023-01-15"),
		cleaned("T1", "C1", "Mouse", 1, 10.00, 10.00, "2023-01-15"),
	}
	ids := AssignProductIDs(records)

	customers, products, transactions, _ := TransformRelational(records, ids)

	assert.Equal(t, "C1", customers[0].CustomerID)
	assert.Equal(t, "C9", customers[1].CustomerID)
	assert.Equal(t, "PROD001", products[0].ProductID)
	assert.Equal(t, "T1", transactions[0].TransactionID)
}
