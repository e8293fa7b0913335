// pkg/loader/relational.go
package loader

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/ecomdata/sales-ingress/pkg/model"
)

const relationalSchema = `
	CREATE TABLE IF NOT EXISTS customers (
		customer_id VARCHAR(50) PRIMARY KEY,
		customer_name VARCHAR(100),
		email VARCHAR(100),
		created_date DATE
	);

	CREATE TABLE IF NOT EXISTS products (
		product_id VARCHAR(50) PRIMARY KEY,
		product_name VARCHAR(100) NOT NULL,
		category VARCHAR(50),
		standard_price DECIMAL(10, 2)
	);

	CREATE TABLE IF NOT EXISTS transactions (
		transaction_id VARCHAR(50) PRIMARY KEY,
		customer_id VARCHAR(50) NOT NULL,
		transaction_date DATE NOT NULL,
		total_amount DECIMAL(10, 2),
		FOREIGN KEY (customer_id) REFERENCES customers(customer_id)
	);

	CREATE TABLE IF NOT EXISTS transaction_items (
		item_id SERIAL PRIMARY KEY,
		transaction_id VARCHAR(50) NOT NULL,
		product_id VARCHAR(50) NOT NULL,
		quantity INTEGER NOT NULL,
		price_per_unit DECIMAL(10, 2) NOT NULL,
		total_price DECIMAL(10, 2) NOT NULL,
		FOREIGN KEY (transaction_id) REFERENCES transactions(transaction_id),
		FOREIGN KEY (product_id) REFERENCES products(product_id)
	)
`

// customerCreatedDate is the synthetic onboarding date attached to every
// derived customer row; the source data carries no signup information.
const customerCreatedDate = "2023-01-01"

// Customer is a derived dimension row.
type Customer struct {
	CustomerID   string `db:"customer_id"`
	CustomerName string `db:"customer_name"`
	Email        string `db:"email"`
	CreatedDate  string `db:"created_date"`
}

// Product is a derived dimension row. StandardPrice is the mean observed
// unit price across the batch.
type Product struct {
	ProductID     string  `db:"product_id"`
	ProductName   string  `db:"product_name"`
	Category      string  `db:"category"`
	StandardPrice float64 `db:"standard_price"`
}

// Transaction is a derived header row. TotalAmount sums the line totals that
// share the transaction id.
type Transaction struct {
	TransactionID   string  `db:"transaction_id"`
	CustomerID      string  `db:"customer_id"`
	TransactionDate string  `db:"transaction_date"`
	TotalAmount     float64 `db:"total_amount"`
}

// TransactionItem is one purchase line.
type TransactionItem struct {
	TransactionID string  `db:"transaction_id"`
	ProductID     string  `db:"product_id"`
	Quantity      int     `db:"quantity"`
	PricePerUnit  float64 `db:"price_per_unit"`
	TotalPrice    float64 `db:"total_price"`
}

// TransformRelational derives the four relational table row sets from a flat
// cleaned batch. Dimension rows come out sorted by id so repeated runs
// produce the same load order.
func TransformRelational(
	records []model.CleanedRecord,
	productIDs map[string]string,
) ([]Customer, []Product, []Transaction, []TransactionItem) {
	customersByID := make(map[string]Customer)
	priceSums := make(map[string]float64)
	priceCounts := make(map[string]int)
	productNames := make(map[string]string)
	txByID := make(map[string]Transaction)
	items := make([]TransactionItem, 0, len(records))

	for _, rec := range records {
		pid := productIDs[rec.ProductName]

		if _, ok := customersByID[rec.CustomerID]; !ok {
			customersByID[rec.CustomerID] = Customer{
				CustomerID:   rec.CustomerID,
				CustomerName: "Customer " + rec.CustomerID,
				Email:        strings.ToLower(rec.CustomerID) + "@example.com",
				CreatedDate:  customerCreatedDate,
			}
		}

		priceSums[pid] += rec.PricePerUnit
		priceCounts[pid]++
		productNames[pid] = rec.ProductName

		tx, ok := txByID[rec.TransactionID]
		if !ok {
			tx = Transaction{
				TransactionID:   rec.TransactionID,
				CustomerID:      rec.CustomerID,
				TransactionDate: rec.DateString(),
			}
		}
		tx.TotalAmount += rec.TotalPrice
		txByID[rec.TransactionID] = tx

		items = append(items, TransactionItem{
			TransactionID: rec.TransactionID,
			ProductID:     pid,
			Quantity:      rec.Quantity,
			PricePerUnit:  rec.PricePerUnit,
			TotalPrice:    rec.TotalPrice,
		})
	}

	customers := make([]Customer, 0, len(customersByID))
	for _, c := range customersByID {
		customers = append(customers, c)
	}
	sort.Slice(customers, func(i, j int) bool { return customers[i].CustomerID < customers[j].CustomerID })

	products := make([]Product, 0, len(priceSums))
	for pid, sum := range priceSums {
		products = append(products, Product{
			ProductID:     pid,
			ProductName:   productNames[pid],
			Category:      "Electronics",
			StandardPrice: sum / float64(priceCounts[pid]),
		})
	}
	sort.Slice(products, func(i, j int) bool { return products[i].ProductID < products[j].ProductID })

	transactions := make([]Transaction, 0, len(txByID))
	for _, tx := range txByID {
		transactions = append(transactions, tx)
	}
	sort.Slice(transactions, func(i, j int) bool {
		return transactions[i].TransactionID < transactions[j].TransactionID
	})

	return customers, products, transactions, items
}

// LoadRelational creates the relational schema if needed and loads the
// derived rows. Rows are appended; reruns against a populated schema should
// use a fresh database.
func (l *PostgresLoader) LoadRelational(
	ctx context.Context,
	records []model.CleanedRecord,
	productIDs map[string]string,
) error {
	if _, err := l.db.ExecContext(ctx, relationalSchema); err != nil {
		return fmt.Errorf("failed to create relational schema: %w", err)
	}

	customers, products, transactions, items := TransformRelational(records, productIDs)

	if len(customers) > 0 {
		_, err := l.db.NamedExecContext(ctx, `
			INSERT INTO customers (customer_id, customer_name, email, created_date)
			VALUES (:customer_id, :customer_name, :email, :created_date)
		`, customers)
		if err != nil {
			return fmt.Errorf("failed to load customers: %w", err)
		}
	}

	if len(products) > 0 {
		_, err := l.db.NamedExecContext(ctx, `
			INSERT INTO products (product_id, product_name, category, standard_price)
			VALUES (:product_id, :product_name, :category, :standard_price)
		`, products)
		if err != nil {
			return fmt.Errorf("failed to load products: %w", err)
		}
	}

	if len(transactions) > 0 {
		_, err := l.db.NamedExecContext(ctx, `
			INSERT INTO transactions (transaction_id, customer_id, transaction_date, total_amount)
			VALUES (:transaction_id, :customer_id, :transaction_date, :total_amount)
		`, transactions)
		if err != nil {
			return fmt.Errorf("failed to load transactions: %w", err)
		}
	}

	if len(items) > 0 {
		_, err := l.db.NamedExecContext(ctx, `
			INSERT INTO transaction_items (transaction_id, product_id, quantity, price_per_unit, total_price)
			VALUES (:transaction_id, :product_id, :quantity, :price_per_unit, :total_price)
		`, items)
		if err != nil {
			return fmt.Errorf("failed to load transaction items: %w", err)
		}
	}

	l.logger.Info("Loaded relational schema",
		zap.Int("customers", len(customers)),
		zap.Int("products", len(products)),
		zap.Int("transactions", len(transactions)),
		zap.Int("items", len(items)))
	return nil
}
