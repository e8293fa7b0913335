// pkg/ingest/warehouse.go
package ingest

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/ecomdata/sales-ingress/pkg/connector"
	"github.com/ecomdata/sales-ingress/pkg/model"
)

// FetchWarehouse extracts raw transaction rows from a database source. NULLs
// map to the empty missing-value sentinel, so warehouse and CSV extraction
// feed the pipeline identically.
func FetchWarehouse(
	ctx context.Context,
	conn connector.DatabaseConnector,
	table string,
	timeout time.Duration,
	logger *zap.Logger,
) ([]model.RawRecord, error) {
	query := fmt.Sprintf(`
		SELECT transaction_id, customer_id, product_name,
		       quantity, price_per_unit, total_price, transaction_date
		FROM %s
	`, table)

	rows, err := conn.QueryWithTimeout(ctx, query, timeout)
	if err != nil {
		return nil, fmt.Errorf("failed to query raw transactions from %s: %w", table, err)
	}
	defer rows.Close()

	var records []model.RawRecord
	for rows.Next() {
		var txn, cust, prod, qty, price, total, date sql.NullString
		if err := rows.Scan(&txn, &cust, &prod, &qty, &price, &total, &date); err != nil {
			return nil, fmt.Errorf("failed to scan raw transaction row: %w", err)
		}
		records = append(records, model.RawRecord{
			TransactionID:   txn.String,
			CustomerID:      cust.String,
			ProductName:     prod.String,
			Quantity:        qty.String,
			PricePerUnit:    price.String,
			TotalPrice:      total.String,
			TransactionDate: date.String,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating raw transactions: %w", err)
	}

	logger.Info("Raw data extracted from warehouse",
		zap.String("table", table),
		zap.Int("records", len(records)))

	return records, nil
}
