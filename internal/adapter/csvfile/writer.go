package csvfile

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"

	"github.com/gotostcroix/geodir-migrate/internal/domain"
)

// Writer emits GeoDirectory import rows with the fixed importer column order.
type Writer struct {
	f   *os.File // nil when writing stdout
	csv *csv.Writer
}

// NewWriter creates the output file at path and writes the header row.
// "-" or "" writes to stdout.
func NewWriter(path string) (*Writer, error) {
	var f *os.File
	dst := os.Stdout
	if path != "" && path != "-" {
		var err error
		f, err = os.Create(path)
		if err != nil {
			return nil, fmt.Errorf("create output: %w", err)
		}
		dst = f
	}

	cw := csv.NewWriter(dst)
	if err := cw.Write(domain.Columns); err != nil {
		if f != nil {
			f.Close()
		}
		return nil, fmt.Errorf("write output header: %w", err)
	}

	return &Writer{f: f, csv: cw}, nil
}

// Load writes one listing row.
func (w *Writer) Load(ctx context.Context, listing domain.Listing) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := w.csv.Write(listing.Row()); err != nil {
		return fmt.Errorf("write listing %s: %w", listing.ID, err)
	}
	return nil
}

// Close flushes buffered rows and closes the output file.
func (w *Writer) Close() error {
	w.csv.Flush()
	if err := w.csv.Error(); err != nil {
		return fmt.Errorf("flush output: %w", err)
	}
	if w.f == nil {
		return nil
	}
	return w.f.Close()
}
