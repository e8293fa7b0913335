// pkg/loader/postgres.go
package loader

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/ecomdata/sales-ingress/pkg/connector"
	"github.com/ecomdata/sales-ingress/pkg/model"
)

// PostgresLoader writes cleaned batches into PostgreSQL.
type PostgresLoader struct {
	db        *sqlx.DB
	logger    *zap.Logger
	chunkSize int
}

// NewPostgresLoader wraps an established PostgreSQL connection.
func NewPostgresLoader(conn connector.DatabaseConnector, chunkSize int, logger *zap.Logger) *PostgresLoader {
	if chunkSize <= 0 {
		chunkSize = 1000
	}
	return &PostgresLoader{
		db:        sqlx.NewDb(conn.DB(), "postgres"),
		logger:    logger.Named("postgres-loader"),
		chunkSize: chunkSize,
	}
}

// flatRow is the database shape of one cleaned record.
type flatRow struct {
	TransactionID   string  `db:"transaction_id"`
	CustomerID      string  `db:"customer_id"`
	ProductID       string  `db:"product_id"`
	ProductName     string  `db:"product_name"`
	Quantity        int     `db:"quantity"`
	PricePerUnit    float64 `db:"price_per_unit"`
	TotalPrice      float64 `db:"total_price"`
	TransactionDate string  `db:"transaction_date"`
}

func newFlatRow(rec model.CleanedRecord, productIDs map[string]string) flatRow {
	return flatRow{
		TransactionID:   rec.TransactionID,
		CustomerID:      rec.CustomerID,
		ProductID:       productIDs[rec.ProductName],
		ProductName:     rec.ProductName,
		Quantity:        rec.Quantity,
		PricePerUnit:    rec.PricePerUnit,
		TotalPrice:      rec.TotalPrice,
		TransactionDate: rec.DateString(),
	}
}

// LoadFlat replaces the flat table with the given batch, inserting in chunks.
func (l *PostgresLoader) LoadFlat(
	ctx context.Context,
	table string,
	records []model.CleanedRecord,
	productIDs map[string]string,
) error {
	if err := l.recreateFlatTable(ctx, table); err != nil {
		return err
	}

	insert := fmt.Sprintf(`
		INSERT INTO %s
		(transaction_id, customer_id, product_id, product_name,
		 quantity, price_per_unit, total_price, transaction_date)
		VALUES (:transaction_id, :customer_id, :product_id, :product_name,
		        :quantity, :price_per_unit, :total_price, :transaction_date)
	`, table)

	for start := 0; start < len(records); start += l.chunkSize {
		end := start + l.chunkSize
		if end > len(records) {
			end = len(records)
		}

		rows := make([]flatRow, 0, end-start)
		for _, rec := range records[start:end] {
			rows = append(rows, newFlatRow(rec, productIDs))
		}

		if _, err := l.db.NamedExecContext(ctx, insert, rows); err != nil {
			return fmt.Errorf("failed to insert rows %d-%d into %s: %w", start, end, table, err)
		}
	}

	l.logger.Info("Loaded flat table",
		zap.String("table", table),
		zap.Int("rows", len(records)))
	return nil
}

func (l *PostgresLoader) recreateFlatTable(ctx context.Context, table string) error {
	if _, err := l.db.ExecContext(ctx, fmt.Sprintf("DROP TABLE IF EXISTS %s", table)); err != nil {
		return fmt.Errorf("failed to drop table %s: %w", table, err)
	}

	create := fmt.Sprintf(`
		CREATE TABLE %s (
			transaction_id VARCHAR(50),
			customer_id VARCHAR(50),
			product_id VARCHAR(50),
			product_name VARCHAR(100),
			quantity INTEGER,
			price_per_unit DECIMAL(10, 2),
			total_price DECIMAL(10, 2),
			transaction_date DATE
		)
	`, table)
	if _, err := l.db.ExecContext(ctx, create); err != nil {
		return fmt.Errorf("failed to create table %s: %w", table, err)
	}
	return nil
}
