package ingestion

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/go-kit/kit/metrics"
	kitprometheus "github.com/go-kit/kit/metrics/prometheus"
	"github.com/google/uuid"
	config "github.com/objectflow/ingester/internals/configuration"
	"github.com/objectflow/ingester/internals/fetcher"
	"github.com/objectflow/ingester/internals/models"
	"github.com/objectflow/ingester/internals/parser"
	"github.com/objectflow/ingester/internals/storage"
	stdprometheus "github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// State is the position of an ingestion attempt in its lifecycle.
type State int

const (
	StateStart State = iota
	StateRuleResolved
	StateFetched
	StateParsed
	StateStored
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateStart:
		return "Start"
	case StateRuleResolved:
		return "RuleResolved"
	case StateFetched:
		return "Fetched"
	case StateParsed:
		return "Parsed"
	case StateStored:
		return "Stored"
	case StateFailed:
		return "Failed"
	default:
		return "Unknown"
	}
}

// Result is the terminal outcome of one ingestion attempt. It is ephemeral:
// only the stored documents persist.
type Result struct {
	AttemptID string
	State     State
	Rule      *models.Rule
	Documents int
}

var (
	_metricAttemptCounter = kitprometheus.NewCounterFrom(stdprometheus.CounterOpts{
		Namespace:   config.MetricNamespace,
		ConstLabels: config.MetricPrometheusLabels,
		Name:        "ingestion_attempts_total",
		Help:        "Terminal ingestion attempt outcomes",
	}, []string{"outcome"})
	_metricAttemptDuration = kitprometheus.NewHistogramFrom(stdprometheus.HistogramOpts{
		Namespace:   config.MetricNamespace,
		ConstLabels: config.MetricPrometheusLabels,
		Name:        "ingestion_attempt_duration_seconds",
		Help:        "End-to-end ingestion attempt duration",
	}, []string{"outcome"})
	_metricDocumentCounter = kitprometheus.NewCounterFrom(stdprometheus.CounterOpts{
		Namespace:   config.MetricNamespace,
		ConstLabels: config.MetricPrometheusLabels,
		Name:        "ingestion_documents_total",
		Help:        "Documents persisted per target table",
	}, []string{"target_table"})
)

// Orchestrator sequences one ingestion attempt: resolve, fetch, parse, store.
// It owns ordering and failure tagging only; format- and backend-specific work
// stays behind the parser registry and the gateway ports. Attempts are
// independent, so one Orchestrator serves any number of concurrent callers.
type Orchestrator struct {
	resolver       *RuleResolver
	fileFetcher    fetcher.FileFetcher
	dataRepository storage.DataRepository

	metricAttemptCounter  metrics.Counter
	metricAttemptDuration metrics.Histogram
	metricDocumentCounter metrics.Counter
}

// NewOrchestrator wires the four capabilities into a pipeline.
func NewOrchestrator(configRepository storage.ConfigRepository, fileFetcher fetcher.FileFetcher, dataRepository storage.DataRepository) *Orchestrator {
	return &Orchestrator{
		resolver:              NewRuleResolver(configRepository),
		fileFetcher:           fileFetcher,
		dataRepository:        dataRepository,
		metricAttemptCounter:  _metricAttemptCounter,
		metricAttemptDuration: _metricAttemptDuration,
		metricDocumentCounter: _metricDocumentCounter,
	}
}

// ProcessFile runs one ingestion attempt for a file reference. Each stage is
// attempted exactly once; the first failing stage terminates the attempt with
// an error marked by its failure kind. Safe to invoke again with the same
// reference (at-least-once semantics, no dedup here).
func (o *Orchestrator) ProcessFile(ctx context.Context, file models.FileRef) (*Result, error) {
	result := &Result{AttemptID: uuid.New().String(), State: StateStart}
	start := time.Now()

	zap.L().Info("Starting file processing",
		zap.String("attemptId", result.AttemptID),
		zap.String("bucket", file.Bucket),
		zap.String("key", file.Key))

	rule, err := o.resolver.Resolve(ctx, file.Key)
	if err != nil {
		return o.fail(result, start, err)
	}
	result.Rule = rule
	result.State = StateRuleResolved
	zap.L().Debug("Rule resolved",
		zap.String("attemptId", result.AttemptID),
		zap.String("pattern", rule.Pattern),
		zap.String("targetTable", rule.TargetTable))

	data, err := o.fileFetcher.FetchFile(ctx, file.Bucket, file.Key)
	if err != nil {
		return o.fail(result, start, errors.Mark(errors.Wrapf(err, "fetch %s/%s", file.Bucket, file.Key), ErrFetchFailed))
	}
	result.State = StateFetched
	zap.L().Debug("File fetched", zap.String("attemptId", result.AttemptID), zap.Int("size", len(data)))

	formatTag := parser.DetectFormat(file.Key)
	documents, err := parser.Parse(data, formatTag, rule.ParserConfig)
	if err != nil {
		return o.fail(result, start, errors.Mark(errors.Wrapf(err, "parse %s", file.Key), ErrParseFailed))
	}
	result.State = StateParsed
	zap.L().Debug("File parsed",
		zap.String("attemptId", result.AttemptID),
		zap.String("format", formatTag),
		zap.Int("documents", len(documents)))

	if err := o.dataRepository.InsertDocuments(ctx, rule.TargetTable, documents); err != nil {
		return o.fail(result, start, errors.Mark(errors.Wrapf(err, "store into %s", rule.TargetTable), ErrStoreFailed))
	}
	result.State = StateStored
	result.Documents = len(documents)

	o.metricAttemptCounter.With("outcome", "stored").Add(1)
	o.metricAttemptDuration.With("outcome", "stored").Observe(time.Since(start).Seconds())
	o.metricDocumentCounter.With("target_table", rule.TargetTable).Add(float64(len(documents)))

	zap.L().Info("File processed",
		zap.String("attemptId", result.AttemptID),
		zap.String("bucket", file.Bucket),
		zap.String("key", file.Key),
		zap.Int("documents", result.Documents),
		zap.String("targetTable", rule.TargetTable))
	return result, nil
}

func (o *Orchestrator) fail(result *Result, start time.Time, err error) (*Result, error) {
	kind := FailureKind(err)
	result.State = StateFailed

	o.metricAttemptCounter.With("outcome", kind).Add(1)
	o.metricAttemptDuration.With("outcome", kind).Observe(time.Since(start).Seconds())

	zap.L().Error("File processing failed",
		zap.String("attemptId", result.AttemptID),
		zap.String("kind", kind),
		zap.Error(err))
	return result, err
}
