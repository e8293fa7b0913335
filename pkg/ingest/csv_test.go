// pkg/ingest/csv_test.go
package ingest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ecomdata/sales-ingress/pkg/model"
)

func TestReadCSV(t *testing.T) {
	input := strings.Join([]string{
		"transaction_id,customer_id,product_name,quantity,price_per_unit,total_price,transaction_date",
		"T1,C1,Mouse,2,10.00,20.00,2023-01-15",
		"T2,C2,,5,1.00,,2023/01/16",
	}, "\n")

	records, skipped, err := ReadCSV(strings.NewReader(input), zap.NewNop())
	require.NoError(t, err)
	assert.Empty(t, skipped)

	require.Len(t, records, 2)
	assert.Equal(t, model.RawRecord{
		TransactionID: "T1", CustomerID: "C1", ProductName: "Mouse",
		Quantity: "2", PricePerUnit: "10.00", TotalPrice: "20.00",
		TransactionDate: "2023-01-15",
	}, records[0])
	assert.Equal(t, "", records[1].ProductName)
	assert.Equal(t, "", records[1].TotalPrice)
}

func TestReadCSVWithoutHeader(t *testing.T) {
	input := "T1,C1,Mouse,2,10.00,20.00,2023-01-15\n"

	records, skipped, err := ReadCSV(strings.NewReader(input), zap.NewNop())
	require.NoError(t, err)
	assert.Empty(t, skipped)
	require.Len(t, records, 1)
	assert.Equal(t, "T1", records[0].TransactionID)
}

func TestReadCSVIgnoresProductIDColumn(t *testing.T) {
	input := strings.Join([]string{
		"transaction_id,customer_id,product_id,product_name,quantity,price_per_unit,total_price,transaction_date",
		"T1,C1,PROD001,Mouse,2,10.00,20.00,2023-01-15",
	}, "\n")

	records, skipped, err := ReadCSV(strings.NewReader(input), zap.NewNop())
	require.NoError(t, err)
	assert.Empty(t, skipped)

	require.Len(t, records, 1)
	assert.Equal(t, "Mouse", records[0].ProductName)
	assert.Equal(t, "2023-01-15", records[0].TransactionDate)
}

func TestReadCSVSkipsMalformedRows(t *testing.T) {
	input := strings.Join([]string{
		"transaction_id,customer_id,product_name,quantity,price_per_unit,total_price,transaction_date",
		"T1,C1,Mouse,2,10.00,20.00,2023-01-15",
		"T2,C2,only,four,columns",
		"T3,C3,Keyboard,1,30.00,30.00,2023-01-16",
	}, "\n")

	records, skipped, err := ReadCSV(strings.NewReader(input), zap.NewNop())
	require.NoError(t, err)

	require.Len(t, records, 2)
	assert.Equal(t, "T1", records[0].TransactionID)
	assert.Equal(t, "T3", records[1].TransactionID)

	require.Len(t, skipped, 1)
	assert.Equal(t, "line-3", skipped[0].RecordID)
	assert.Equal(t, string(model.DropUnparseableInput), skipped[0].Reason)
}

func TestReadCSVEmptyInput(t *testing.T) {
	records, skipped, err := ReadCSV(strings.NewReader(""), zap.NewNop())
	require.NoError(t, err)
	assert.Empty(t, records)
	assert.Empty(t, skipped)
}

func TestReadCSVFileMissing(t *testing.T) {
	_, _, err := ReadCSVFile("/nonexistent/file.csv", zap.NewNop())
	assert.Error(t, err)
}
