// Package csvfile reads ACF export rows and writes GeoDirectory import rows.
package csvfile

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/gotostcroix/geodir-migrate/internal/domain"
	"github.com/gotostcroix/geodir-migrate/internal/pipeline"
)

// Reader streams an ACF export CSV as header-keyed records.
type Reader struct {
	f      *os.File // nil when reading stdin
	csv    *csv.Reader
	header []string
}

// NewReader opens the export at path. "-" or "" reads stdin. The first row
// is consumed as the header.
func NewReader(path string) (*Reader, error) {
	var f *os.File
	src := os.Stdin
	if path != "" && path != "-" {
		var err error
		f, err = os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open export: %w", err)
		}
		src = f
	}

	cr := csv.NewReader(src)
	cr.FieldsPerRecord = -1 // exports carry ragged rows; pad or truncate per row

	header, err := cr.Read()
	if err != nil {
		if f != nil {
			f.Close()
		}
		if errors.Is(err, io.EOF) {
			return nil, errors.New("export is empty")
		}
		return nil, fmt.Errorf("read export header: %w", err)
	}

	return &Reader{f: f, csv: cr, header: header}, nil
}

// Header returns the export's column names in file order.
func (r *Reader) Header() []string {
	return r.header
}

// Next returns the next row keyed by header name. Rows shorter than the
// header leave trailing columns absent; extra fields are dropped. Returns
// io.EOF at end of input and wraps per-row parse failures in ErrBadRow.
func (r *Reader) Next(ctx context.Context) (domain.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	fields, err := r.csv.Read()
	if errors.Is(err, io.EOF) {
		return nil, io.EOF
	}
	if err != nil {
		var pe *csv.ParseError
		if errors.As(err, &pe) {
			return nil, fmt.Errorf("%w: %v", pipeline.ErrBadRow, err)
		}
		return nil, err
	}

	rec := make(domain.Record, len(r.header))
	for i, name := range r.header {
		if i < len(fields) {
			rec[name] = fields[i]
		}
	}
	return rec, nil
}

// Close releases the underlying file. Safe to call on a stdin reader.
func (r *Reader) Close() error {
	if r.f == nil {
		return nil
	}
	return r.f.Close()
}
