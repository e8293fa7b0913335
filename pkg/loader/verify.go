// pkg/loader/verify.go
package loader

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// VerifyRowCount checks that a loaded table holds exactly the expected
// number of rows. A mismatch is reported, not treated as an error; the load
// itself already succeeded.
func (l *PostgresLoader) VerifyRowCount(ctx context.Context, table string, expected int) (bool, error) {
	var actual int64
	query := fmt.Sprintf("SELECT COUNT(*) FROM %s", table)
	if err := l.db.QueryRowContext(ctx, query).Scan(&actual); err != nil {
		return false, fmt.Errorf("failed to count rows in %s: %w", table, err)
	}

	matches := actual == int64(expected)
	if matches {
		l.logger.Info("Row count verification successful",
			zap.String("table", table),
			zap.Int64("count", actual))
	} else {
		l.logger.Warn("Row count mismatch",
			zap.String("table", table),
			zap.Int("expected", expected),
			zap.Int64("actual", actual),
			zap.Int64("difference", int64(expected)-actual))
	}

	return matches, nil
}
