// pkg/cleaner/pipeline.go
package cleaner

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ecomdata/sales-ingress/pkg/analyzer"
	"github.com/ecomdata/sales-ingress/pkg/model"
	"github.com/ecomdata/sales-ingress/pkg/rules"
)

// Stage names as they appear in audit entries and logs.
const (
	StageRecovery      = "missing_value_recovery"
	StageNormalization = "product_normalization"
	StageDates         = "date_harmonization"
	StageOutliers      = "outlier_correction"
	StageDeduplication = "deduplication"
)

// Pipeline runs the cleaning stages in fixed order over one in-memory batch.
// It holds no state across runs; rules are read-only configuration.
type Pipeline struct {
	rules  *rules.Rules
	logger *zap.Logger
}

// New creates a cleaning pipeline.
func New(r *rules.Rules, logger *zap.Logger) (*Pipeline, error) {
	if r == nil {
		return nil, errors.New("rules cannot be nil")
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	return &Pipeline{rules: r, logger: logger}, nil
}

// Result is everything one pipeline run hands back to the caller: the
// cleaned batch, the append-only audit log, and the before/after quality
// reports. Ownership transfers to the caller on return.
type Result struct {
	RunID    string
	Records  []model.CleanedRecord
	Audit    []model.AuditEntry
	Baseline model.QualityReport
	Report   model.QualityReport

	StageDurations map[string]time.Duration
}

// run accumulates the audit log and drop tally threaded through the stages.
type run struct {
	rules *rules.Rules
	audit []model.AuditEntry
	drops map[model.DropReason]int
}

func (r *run) logChange(rec workRecord, stage, field, original, newValue, reason string) {
	r.audit = append(r.audit, model.AuditEntry{
		RecordID:      rec.id(),
		Stage:         stage,
		Field:         field,
		OriginalValue: original,
		NewValue:      newValue,
		Reason:        reason,
	})
}

func (r *run) drop(rec workRecord, stage string, reason model.DropReason) {
	r.audit = append(r.audit, model.AuditEntry{
		RecordID: rec.id(),
		Stage:    stage,
		Reason:   string(reason),
	})
	r.drops[reason]++
}

// Run executes the full cleaning sequence on one batch. It never fails for
// data reasons: an empty-but-valid result is a valid outcome. The only error
// returned is the caller's cancellation, checked between stages; a cancelled
// run still carries consistent audit data up to the last completed stage.
func (p *Pipeline) Run(ctx context.Context, batch []model.RawRecord) (*Result, error) {
	runID := uuid.New().String()
	logger := p.logger.With(zap.String("runID", runID))

	logger.Info("Starting cleaning run", zap.Int("records", len(batch)))

	result := &Result{
		RunID:          runID,
		Baseline:       analyzer.Analyze(batch, p.rules),
		StageDurations: make(map[string]time.Duration),
	}

	items := make([]workRecord, len(batch))
	for i, raw := range batch {
		items[i] = newWorkRecord(i, raw)
	}

	r := &run{
		rules: p.rules,
		drops: make(map[model.DropReason]int),
	}

	stages := []struct {
		name string
		fn   func(*run, []workRecord) []workRecord
	}{
		{StageRecovery, (*run).recoverMissing},
		{StageNormalization, (*run).normalizeProducts},
		{StageDates, (*run).harmonizeDates},
		{StageOutliers, (*run).correctOutliers},
		{StageDeduplication, (*run).deduplicate},
	}

	for _, stage := range stages {
		if err := ctx.Err(); err != nil {
			logger.Warn("Cleaning run cancelled",
				zap.String("beforeStage", stage.name))
			result.Audit = r.audit
			result.Report = reportWithDrops(model.NewQualityReport(0), r.drops)
			return result, err
		}

		before := len(items)
		start := time.Now()
		items = stage.fn(r, items)
		result.StageDurations[stage.name] = time.Since(start)

		logger.Debug("Stage completed",
			zap.String("stage", stage.name),
			zap.Int("in", before),
			zap.Int("out", len(items)))
	}

	result.Records = make([]model.CleanedRecord, len(items))
	cleanedRaw := make([]model.RawRecord, len(items))
	for i, item := range items {
		result.Records[i] = item.finalize()
		cleanedRaw[i] = result.Records[i].AsRaw()
	}
	result.Audit = r.audit

	result.Report = reportWithDrops(analyzer.Analyze(cleanedRaw, p.rules), r.drops)

	logger.Info("Cleaning run completed",
		zap.Int("cleaned", len(result.Records)),
		zap.Int("dropped", result.Report.RecordsDropped()),
		zap.Int("auditEntries", len(result.Audit)))

	return result, nil
}

func reportWithDrops(report model.QualityReport, drops map[model.DropReason]int) model.QualityReport {
	for reason, count := range drops {
		report.Dropped[reason] += count
	}
	return report
}
