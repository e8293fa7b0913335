// pkg/ingest/csv.go
package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/ecomdata/sales-ingress/pkg/model"
)

const stageIngest = "ingest"

// expectedColumns is the raw input column order. A product_id column between
// customer_id and product_name is tolerated and ignored; assigning product
// ids is the loader's job, not the cleaning core's.
var expectedColumns = []string{
	model.FieldTransactionID,
	model.FieldCustomerID,
	model.FieldProductName,
	model.FieldQuantity,
	model.FieldPricePerUnit,
	model.FieldTotalPrice,
	model.FieldTransactionDate,
}

// ReadCSV parses raw transaction rows from CSV. Rows with the wrong column
// count are counted and skipped with reason unparseable_input — a malformed
// row never fails the batch. The returned audit entries describe every
// skipped row.
func ReadCSV(r io.Reader, logger *zap.Logger) ([]model.RawRecord, []model.AuditEntry, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var (
		records []model.RawRecord
		skipped []model.AuditEntry
		line    int
	)

	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			// A bare-quote or similar CSV-structure error is row-local.
			line++
			skipped = append(skipped, skipEntry(line, err.Error()))
			continue
		}
		line++

		if line == 1 && isHeader(row) {
			continue
		}

		rec, ok := rowToRecord(row)
		if !ok {
			logger.Debug("Skipping malformed row",
				zap.Int("line", line),
				zap.Int("columns", len(row)))
			skipped = append(skipped, skipEntry(line, fmt.Sprintf("%d columns", len(row))))
			continue
		}

		records = append(records, rec)
	}

	logger.Info("Raw data loaded",
		zap.Int("records", len(records)),
		zap.Int("malformedRows", len(skipped)))

	return records, skipped, nil
}

// ReadCSVFile is ReadCSV over a file path.
func ReadCSVFile(path string, logger *zap.Logger) ([]model.RawRecord, []model.AuditEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open raw data file: %w", err)
	}
	defer f.Close()

	return ReadCSV(f, logger)
}

func rowToRecord(row []string) (model.RawRecord, bool) {
	switch len(row) {
	case len(expectedColumns):
		// Expected shape.
	case len(expectedColumns) + 1:
		// Shape with a product_id column at index 2.
		row = append(append([]string{}, row[:2]...), row[3:]...)
	default:
		return model.RawRecord{}, false
	}

	return model.RawRecord{
		TransactionID:   row[0],
		CustomerID:      row[1],
		ProductName:     row[2],
		Quantity:        row[3],
		PricePerUnit:    row[4],
		TotalPrice:      row[5],
		TransactionDate: row[6],
	}, true
}

func isHeader(row []string) bool {
	if len(row) == 0 {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(row[0]), model.FieldTransactionID)
}

func skipEntry(line int, detail string) model.AuditEntry {
	return model.AuditEntry{
		RecordID:      "line-" + strconv.Itoa(line),
		Stage:         stageIngest,
		OriginalValue: detail,
		Reason:        string(model.DropUnparseableInput),
	}
}
