package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/gotostcroix/geodir-migrate/internal/domain"
	"github.com/gotostcroix/geodir-migrate/internal/observability"
)

// ErrBadRow wraps recoverable per-row read failures. The pipeline logs and
// skips such rows instead of aborting the run.
var ErrBadRow = errors.New("malformed row")

// Extractor yields ACF records one at a time, returning io.EOF when the
// input is exhausted.
type Extractor interface {
	Next(ctx context.Context) (domain.Record, error)
}

// Transformer converts an ACF record into a GeoDirectory listing.
type Transformer interface {
	Transform(ctx context.Context, rec domain.Record) (domain.Listing, error)
}

// Loader writes a transformed listing to a destination.
type Loader interface {
	Load(ctx context.Context, listing domain.Listing) error
}

// Report summarizes one migration pass.
type Report struct {
	RowsRead    int
	RowsWritten int
	RowsSkipped int // rows excluded by filters
	RowErrors   int // rows dropped because read or transform failed
	GeneratedAt time.Time
}

// Pipeline orchestrates the extract-transform-load pass over the export.
type Pipeline struct {
	extractor   Extractor
	transformer Transformer
	loaders     []Loader
	filter      *RowFilter
	limit       int // stop after this many written rows; 0 means no limit
	logger      *slog.Logger
	metrics     *observability.Metrics
	clock       clockwork.Clock
	ready       atomic.Bool
}

// New creates a Pipeline. filter may be nil; limit 0 processes every row.
// All loaders receive every transformed listing.
func New(e Extractor, t Transformer, loaders []Loader, filter *RowFilter, limit int, logger *slog.Logger, metrics *observability.Metrics) *Pipeline {
	return &Pipeline{
		extractor:   e,
		transformer: t,
		loaders:     loaders,
		filter:      filter,
		limit:       limit,
		logger:      logger,
		metrics:     metrics,
		clock:       clockwork.NewRealClock(),
	}
}

// SetClock swaps the time source used for report timestamps. Tests inject a
// fake for deterministic output.
func (p *Pipeline) SetClock(c clockwork.Clock) {
	p.clock = c
}

// CheckReadiness returns nil once the pipeline has written at least one
// listing, for the optional /readyz endpoint during long migrations.
func (p *Pipeline) CheckReadiness(_ context.Context) error {
	if !p.ready.Load() {
		return errors.New("pipeline has not written any listings yet")
	}
	return nil
}

// Run executes one full pass over the input. It returns the report for the
// rows processed so far even when the run ends early.
func (p *Pipeline) Run(ctx context.Context) (report Report, err error) {
	p.logger.Info("migration started", "limit", p.limit)
	p.metrics.PipelineRunning.Set(1)
	defer p.metrics.PipelineRunning.Set(0)

	defer func() {
		report.GeneratedAt = p.clock.Now().UTC()
	}()

	for {
		if err := ctx.Err(); err != nil {
			p.logger.Warn("migration interrupted", "reason", err)
			return report, err
		}
		if p.limit > 0 && report.RowsWritten >= p.limit {
			p.logger.Info("row limit reached", "limit", p.limit)
			return report, nil
		}

		rec, err := p.extractor.Next(ctx)
		if errors.Is(err, io.EOF) {
			return report, nil
		}
		if errors.Is(err, ErrBadRow) {
			p.logger.Warn("skipping malformed row", "error", err)
			p.metrics.TransformErrors.Inc()
			report.RowErrors++
			continue
		}
		if err != nil {
			return report, fmt.Errorf("read row: %w", err)
		}

		report.RowsRead++
		p.metrics.RowsRead.Inc()

		if p.filter != nil && !p.filter.Matches(rec) {
			report.RowsSkipped++
			p.metrics.RowsFiltered.Inc()
			continue
		}

		listing, err := p.transformer.Transform(ctx, rec)
		if err != nil {
			p.logger.Warn("transform failed, skipping row",
				"error", err,
				"row", report.RowsRead,
				"title", rec.Get("Title"),
			)
			p.metrics.TransformErrors.Inc()
			report.RowErrors++
			continue
		}

		for _, loader := range p.loaders {
			if err := loader.Load(ctx, listing); err != nil {
				return report, fmt.Errorf("load listing %q: %w", listing.ID, err)
			}
		}

		report.RowsWritten++
		p.metrics.RowsWritten.Inc()
		p.ready.Store(true)
	}
}
