// pkg/loader/export.go
package loader

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/ecomdata/sales-ingress/pkg/model"
)

// csvHeader is the column order of exported cleaned data. It matches the
// ingest layout with the assigned product_id inserted after customer_id.
var csvHeader = []string{
	model.FieldTransactionID,
	model.FieldCustomerID,
	"product_id",
	model.FieldProductName,
	model.FieldQuantity,
	model.FieldPricePerUnit,
	model.FieldTotalPrice,
	model.FieldTransactionDate,
}

// ExportCSV writes cleaned records to w in the canonical textual forms.
// productIDs maps canonical product names to assigned identifiers; a name
// with no assignment gets an empty product_id column.
func ExportCSV(w io.Writer, records []model.CleanedRecord, productIDs map[string]string) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, rec := range records {
		raw := rec.AsRaw()
		row := []string{
			raw.TransactionID,
			raw.CustomerID,
			productIDs[rec.ProductName],
			raw.ProductName,
			raw.Quantity,
			raw.PricePerUnit,
			raw.TotalPrice,
			raw.TransactionDate,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV output: %w", err)
	}
	return nil
}

// ExportCSVFile writes cleaned records to the given path, replacing any
// existing file.
func ExportCSVFile(path string, records []model.CleanedRecord, productIDs map[string]string, logger *zap.Logger) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create export file %s: %w", path, err)
	}
	defer f.Close()

	if err := ExportCSV(f, records, productIDs); err != nil {
		return err
	}

	logger.Info("Exported cleaned data",
		zap.String("path", path),
		zap.Int("rows", len(records)))
	return nil
}
