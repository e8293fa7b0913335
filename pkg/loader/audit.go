// pkg/loader/audit.go
package loader

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/ecomdata/sales-ingress/pkg/model"
)

const auditTableSchema = `
	CREATE TABLE IF NOT EXISTS cleaning_audit (
		id SERIAL PRIMARY KEY,
		run_id VARCHAR(36) NOT NULL,
		record_id VARCHAR(50) NOT NULL,
		stage VARCHAR(50) NOT NULL,
		field VARCHAR(50),
		original_value TEXT,
		new_value TEXT,
		reason VARCHAR(100) NOT NULL,
		recorded_at TIMESTAMP DEFAULT NOW()
	)
`

// RecordAuditEntries batch inserts the audit log of one cleaning run into
// the tracking table.
func (l *PostgresLoader) RecordAuditEntries(
	ctx context.Context,
	runID string,
	entries []model.AuditEntry,
) (err error) {
	if len(entries) == 0 {
		return nil
	}

	if _, err := l.db.ExecContext(ctx, auditTableSchema); err != nil {
		return fmt.Errorf("failed to create audit table: %w", err)
	}

	tx, err := l.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				l.logger.Error("Failed to rollback transaction",
					zap.Error(rbErr),
					zap.Error(err))
			}
		}
	}()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO cleaning_audit
		(run_id, record_id, stage, field, original_value, new_value, reason)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, entry := range entries {
		_, err = stmt.ExecContext(ctx,
			runID,
			entry.RecordID,
			entry.Stage,
			toNullableString(entry.Field),
			toNullableString(entry.OriginalValue),
			toNullableString(entry.NewValue),
			entry.Reason,
		)
		if err != nil {
			return fmt.Errorf("failed to insert audit entry: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	l.logger.Info("Recorded audit entries",
		zap.String("runID", runID),
		zap.Int("count", len(entries)))
	return nil
}

// toNullableString converts the empty string to a SQL NULL.
func toNullableString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
