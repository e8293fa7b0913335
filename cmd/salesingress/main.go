// cmd/salesingress/main.go
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/ecomdata/sales-ingress/pkg/cleaner"
	"github.com/ecomdata/sales-ingress/pkg/config"
	"github.com/ecomdata/sales-ingress/pkg/connector"
	"github.com/ecomdata/sales-ingress/pkg/ingest"
	"github.com/ecomdata/sales-ingress/pkg/loader"
	"github.com/ecomdata/sales-ingress/pkg/logging"
	"github.com/ecomdata/sales-ingress/pkg/model"
	"github.com/ecomdata/sales-ingress/pkg/rules"
)

func main() {
	// Optional .env for local runs; real deployments set the environment.
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		zap.NewExample().Fatal("Failed to load configuration", zap.Error(err))
	}

	logger, err := logging.Init(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		zap.NewExample().Fatal("Failed to initialize logging", zap.Error(err))
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal("Pipeline failed", zap.Error(err))
	}
}

func run(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	logger.Info("Starting sales ingress pipeline", zap.String("source", cfg.Source))

	r, err := loadRules(cfg, logger)
	if err != nil {
		return err
	}

	factory := connector.NewConnectorFactory(cfg, logger.Named("connector"))

	batch, skipped, err := extract(ctx, cfg, factory, logger)
	if err != nil {
		return err
	}

	pipeline, err := cleaner.New(r, logger.Named("cleaner"))
	if err != nil {
		return err
	}

	result, err := pipeline.Run(ctx, batch)
	if err != nil {
		return err
	}

	// Malformed source rows never reached the pipeline; fold them into the
	// run's audit log and drop tally so the report covers the whole extract.
	result.Audit = append(result.Audit, skipped...)
	for range skipped {
		result.Report.AddDrop(model.DropUnparseableInput)
	}

	logQualityDelta(logger, result)

	return load(ctx, cfg, factory, result, logger)
}

func loadRules(cfg *config.Config, logger *zap.Logger) (*rules.Rules, error) {
	if cfg.RulesPath == "" {
		return rules.Default(), nil
	}
	logger.Info("Loading cleaning rules", zap.String("path", cfg.RulesPath))
	return rules.LoadFile(cfg.RulesPath)
}

func extract(ctx context.Context, cfg *config.Config, factory *connector.ConnectorFactory, logger *zap.Logger) ([]model.RawRecord, []model.AuditEntry, error) {
	switch cfg.Source {
	case config.SourceWarehouse:
		snowConn, err := factory.CreateSnowflakeConnector(ctx)
		if err != nil {
			return nil, nil, err
		}
		defer snowConn.Close()

		if err := snowConn.Validate(); err != nil {
			return nil, nil, err
		}
		if ok, err := snowConn.TableExists(ctx, cfg.WarehouseTable); err != nil {
			return nil, nil, err
		} else if !ok {
			return nil, nil, fmt.Errorf("source table %s not found", cfg.WarehouseTable)
		}

		records, err := ingest.FetchWarehouse(ctx, snowConn, cfg.WarehouseTable,
			cfg.Snowflake.QueryTimeout, logger.Named("ingest"))
		return records, nil, err

	default:
		return ingest.ReadCSVFile(cfg.RawDataPath, logger.Named("ingest"))
	}
}

func load(ctx context.Context, cfg *config.Config, factory *connector.ConnectorFactory, result *cleaner.Result, logger *zap.Logger) error {
	productIDs := loader.AssignProductIDs(result.Records)

	if err := loader.ExportCSVFile(cfg.CleanedDataPath, result.Records, productIDs, logger); err != nil {
		return err
	}

	pgConn, err := factory.CreatePostgresConnector(ctx)
	if err != nil {
		return err
	}
	defer pgConn.Close()

	if err := pgConn.Validate(); err != nil {
		return err
	}

	pg := loader.NewPostgresLoader(pgConn, cfg.ChunkSize, logger)

	if err := pg.LoadFlat(ctx, cfg.FlatTable, result.Records, productIDs); err != nil {
		return err
	}
	if _, err := pg.VerifyRowCount(ctx, cfg.FlatTable, len(result.Records)); err != nil {
		return err
	}

	if cfg.LoadRelational {
		if err := pg.LoadRelational(ctx, result.Records, productIDs); err != nil {
			return err
		}
	}

	if err := pg.RecordAuditEntries(ctx, result.RunID, result.Audit); err != nil {
		return err
	}

	logger.Info("Pipeline execution completed",
		zap.String("runID", result.RunID),
		zap.Int("records", len(result.Records)))
	return nil
}

func logQualityDelta(logger *zap.Logger, result *cleaner.Result) {
	logger.Info("Data quality before cleaning",
		zap.Int("records", result.Baseline.TotalRecords),
		zap.Int("missingValues", result.Baseline.TotalMissing()),
		zap.Int("duplicates", result.Baseline.DuplicateRecords),
		zap.Int("outliers", result.Baseline.TotalOutliers()),
		zap.Int("unparseableDates", result.Baseline.UnparseableDates))

	logger.Info("Data quality after cleaning",
		zap.Int("records", result.Report.TotalRecords),
		zap.Int("missingValues", result.Report.TotalMissing()),
		zap.Int("duplicates", result.Report.DuplicateRecords),
		zap.Int("outliers", result.Report.TotalOutliers()),
		zap.Int("unparseableDates", result.Report.UnparseableDates),
		zap.Int("dropped", result.Report.RecordsDropped()),
		zap.Int("duplicatesCollapsed", result.Report.DuplicatesDropped()))
}
