package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gotostcroix/geodir-migrate/internal/domain"
	"github.com/gotostcroix/geodir-migrate/internal/observability"
)

// mockExtractor replays a fixed slice of records, optionally interleaving
// errors at given positions.
type mockExtractor struct {
	records []domain.Record
	errs    map[int]error // position → error returned instead of a record
	pos     int
}

func (m *mockExtractor) Next(_ context.Context) (domain.Record, error) {
	if err, ok := m.errs[m.pos]; ok {
		m.pos++
		return nil, err
	}
	if m.pos >= len(m.records)+len(m.errs) {
		return nil, io.EOF
	}
	idx := m.pos - countErrsBefore(m.errs, m.pos)
	if idx >= len(m.records) {
		m.pos++
		return nil, io.EOF
	}
	m.pos++
	return m.records[idx], nil
}

func countErrsBefore(errs map[int]error, pos int) int {
	n := 0
	for p := range errs {
		if p < pos {
			n++
		}
	}
	return n
}

// mockLoader records every listing it receives.
type mockLoader struct {
	listings []domain.Listing
	err      error
}

func (m *mockLoader) Load(_ context.Context, l domain.Listing) error {
	if m.err != nil {
		return m.err
	}
	m.listings = append(m.listings, l)
	return nil
}

func testRecord(id, title, categories string) domain.Record {
	return domain.Record{
		"id":         id,
		"Title":      title,
		"Categories": categories,
	}
}

func newTestPipeline(e Extractor, loaders []Loader, filter *RowFilter, limit int) *Pipeline {
	metrics := observability.NewMetricsForTesting()
	transformer := NewListingTransformer(
		&domain.TaxonomyMap{Categories: map[string]int{"Play": 2041}},
		nil, domain.DefaultFallbackTermID, Options{}, metrics,
	)
	return New(e, transformer, loaders, filter, limit, slog.Default(), metrics)
}

func TestPipelineRun(t *testing.T) {
	t.Run("transforms every row", func(t *testing.T) {
		extractor := &mockExtractor{records: []domain.Record{
			testRecord("1", "First", "Play"),
			testRecord("2", "Second", "Play"),
		}}
		loader := &mockLoader{}
		p := newTestPipeline(extractor, []Loader{loader}, nil, 0)

		report, err := p.Run(context.Background())

		require.NoError(t, err)
		assert.Equal(t, 2, report.RowsRead)
		assert.Equal(t, 2, report.RowsWritten)
		require.Len(t, loader.listings, 2)
		assert.Equal(t, "1", loader.listings[0].ID)
		assert.Equal(t, "gd_listing_new", loader.listings[0].PostType)
		assert.False(t, report.GeneratedAt.IsZero())
	})

	t.Run("report timestamp comes from the injected clock", func(t *testing.T) {
		at := time.Date(2025, time.March, 1, 12, 0, 0, 0, time.UTC)
		extractor := &mockExtractor{records: []domain.Record{testRecord("1", "First", "Play")}}
		p := newTestPipeline(extractor, []Loader{&mockLoader{}}, nil, 0)
		p.SetClock(clockwork.NewFakeClockAt(at))

		report, err := p.Run(context.Background())

		require.NoError(t, err)
		assert.Equal(t, at, report.GeneratedAt)
	})

	t.Run("filter skips non-matching rows", func(t *testing.T) {
		extractor := &mockExtractor{records: []domain.Record{
			testRecord("1", "First", "Play"),
			testRecord("2", "Second", "Eat"),
		}}
		loader := &mockLoader{}
		filter := NewRowFilter("play", "", "")
		p := newTestPipeline(extractor, []Loader{loader}, filter, 0)

		report, err := p.Run(context.Background())

		require.NoError(t, err)
		assert.Equal(t, 2, report.RowsRead)
		assert.Equal(t, 1, report.RowsWritten)
		assert.Equal(t, 1, report.RowsSkipped)
		require.Len(t, loader.listings, 1)
		assert.Equal(t, "1", loader.listings[0].ID)
	})

	t.Run("limit stops after N written rows", func(t *testing.T) {
		var records []domain.Record
		for i := 0; i < 10; i++ {
			records = append(records, testRecord(fmt.Sprint(i), "Listing", "Play"))
		}
		extractor := &mockExtractor{records: records}
		loader := &mockLoader{}
		p := newTestPipeline(extractor, []Loader{loader}, nil, 5)

		report, err := p.Run(context.Background())

		require.NoError(t, err)
		assert.Equal(t, 5, report.RowsWritten)
		assert.Len(t, loader.listings, 5)
	})

	t.Run("malformed rows are skipped", func(t *testing.T) {
		extractor := &mockExtractor{
			records: []domain.Record{
				testRecord("1", "First", "Play"),
				testRecord("2", "Second", "Play"),
			},
			errs: map[int]error{1: fmt.Errorf("%w: line 3", ErrBadRow)},
		}
		loader := &mockLoader{}
		p := newTestPipeline(extractor, []Loader{loader}, nil, 0)

		report, err := p.Run(context.Background())

		require.NoError(t, err)
		assert.Equal(t, 2, report.RowsWritten)
		assert.Equal(t, 1, report.RowErrors)
	})

	t.Run("read failure aborts the run", func(t *testing.T) {
		extractor := &mockExtractor{
			records: []domain.Record{testRecord("1", "First", "Play")},
			errs:    map[int]error{1: errors.New("disk gone")},
		}
		p := newTestPipeline(extractor, []Loader{&mockLoader{}}, nil, 0)

		report, err := p.Run(context.Background())

		require.Error(t, err)
		assert.Contains(t, err.Error(), "read row")
		assert.Equal(t, 1, report.RowsWritten)
	})

	t.Run("loader failure aborts the run", func(t *testing.T) {
		extractor := &mockExtractor{records: []domain.Record{testRecord("1", "First", "Play")}}
		loader := &mockLoader{err: errors.New("sink down")}
		p := newTestPipeline(extractor, []Loader{loader}, nil, 0)

		_, err := p.Run(context.Background())

		require.Error(t, err)
		assert.Contains(t, err.Error(), "load listing")
	})

	t.Run("all loaders receive every listing", func(t *testing.T) {
		extractor := &mockExtractor{records: []domain.Record{testRecord("1", "First", "Play")}}
		first := &mockLoader{}
		second := &mockLoader{}
		p := newTestPipeline(extractor, []Loader{first, second}, nil, 0)

		_, err := p.Run(context.Background())

		require.NoError(t, err)
		assert.Len(t, first.listings, 1)
		assert.Len(t, second.listings, 1)
	})

	t.Run("cancellation stops the run", func(t *testing.T) {
		extractor := &mockExtractor{records: []domain.Record{testRecord("1", "First", "Play")}}
		p := newTestPipeline(extractor, []Loader{&mockLoader{}}, nil, 0)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := p.Run(ctx)
		require.ErrorIs(t, err, context.Canceled)
	})
}

func TestCheckReadiness(t *testing.T) {
	extractor := &mockExtractor{records: []domain.Record{testRecord("1", "First", "Play")}}
	p := newTestPipeline(extractor, []Loader{&mockLoader{}}, nil, 0)

	require.Error(t, p.CheckReadiness(context.Background()))

	_, err := p.Run(context.Background())
	require.NoError(t, err)

	assert.NoError(t, p.CheckReadiness(context.Background()))
}

func TestRowFilter(t *testing.T) {
	t.Run("all lists empty returns nil", func(t *testing.T) {
		assert.Nil(t, NewRowFilter("", "", ""))
	})

	rec := domain.Record{
		"Categories":          "Play | Water Sports",
		"Tags":                "Beach|Family",
		"acf_template_layout": "Standard Layout",
	}

	t.Run("category substring match", func(t *testing.T) {
		assert.True(t, NewRowFilter("water", "", "").Matches(rec))
		assert.False(t, NewRowFilter("eat", "", "").Matches(rec))
	})

	t.Run("any term in a list may match", func(t *testing.T) {
		assert.True(t, NewRowFilter("eat,play", "", "").Matches(rec))
	})

	t.Run("lists combine conjunctively", func(t *testing.T) {
		assert.True(t, NewRowFilter("play", "beach", "standard").Matches(rec))
		assert.False(t, NewRowFilter("play", "spa", "").Matches(rec))
	})

	t.Run("layout filter", func(t *testing.T) {
		assert.True(t, NewRowFilter("", "", "standard").Matches(rec))
		assert.False(t, NewRowFilter("", "", "compact").Matches(rec))
	})
}
