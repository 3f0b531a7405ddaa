package csvfile

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gotostcroix/geodir-migrate/internal/domain"
	"github.com/gotostcroix/geodir-migrate/internal/pipeline"
)

func writeTempCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "export.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestReader(t *testing.T) {
	ctx := context.Background()

	t.Run("streams rows keyed by header", func(t *testing.T) {
		path := writeTempCSV(t, "id,Title,Categories\n1,First,Play\n2,Second,Eat\n")
		r, err := NewReader(path)
		require.NoError(t, err)
		defer r.Close()

		assert.Equal(t, []string{"id", "Title", "Categories"}, r.Header())

		rec, err := r.Next(ctx)
		require.NoError(t, err)
		assert.Equal(t, "1", rec.Get("id"))
		assert.Equal(t, "First", rec.Get("Title"))

		rec, err = r.Next(ctx)
		require.NoError(t, err)
		assert.Equal(t, "Second", rec.Get("Title"))

		_, err = r.Next(ctx)
		assert.ErrorIs(t, err, io.EOF)
	})

	t.Run("short rows leave trailing columns absent", func(t *testing.T) {
		path := writeTempCSV(t, "id,Title,Status\n1,First\n")
		r, err := NewReader(path)
		require.NoError(t, err)
		defer r.Close()

		rec, err := r.Next(ctx)
		require.NoError(t, err)
		assert.Equal(t, "First", rec.Get("Title"))

		// Absent column falls back; a present empty one would not.
		assert.Equal(t, "publish", rec.GetOr("Status", "publish"))
	})

	t.Run("quoted fields with embedded separators", func(t *testing.T) {
		path := writeTempCSV(t, "id,Title\n1,\"Rum, Beach & Co\"\n")
		r, err := NewReader(path)
		require.NoError(t, err)
		defer r.Close()

		rec, err := r.Next(ctx)
		require.NoError(t, err)
		assert.Equal(t, "Rum, Beach & Co", rec.Get("Title"))
	})

	t.Run("bare quote row is reported as a bad row", func(t *testing.T) {
		path := writeTempCSV(t, "id,Title\n1,ok\n2,bad\"quote\n3,fine\n")
		r, err := NewReader(path)
		require.NoError(t, err)
		defer r.Close()

		_, err = r.Next(ctx)
		require.NoError(t, err)

		_, err = r.Next(ctx)
		assert.ErrorIs(t, err, pipeline.ErrBadRow)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := NewReader(filepath.Join(t.TempDir(), "nope.csv"))
		require.Error(t, err)
	})

	t.Run("empty file", func(t *testing.T) {
		path := writeTempCSV(t, "")
		_, err := NewReader(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "empty")
	})

	t.Run("cancelled context", func(t *testing.T) {
		path := writeTempCSV(t, "id\n1\n")
		r, err := NewReader(path)
		require.NoError(t, err)
		defer r.Close()

		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		_, err = r.Next(cancelled)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestWriter(t *testing.T) {
	ctx := context.Background()

	t.Run("writes header and rows in importer order", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "import.csv")
		w, err := NewWriter(path)
		require.NoError(t, err)

		require.NoError(t, w.Load(ctx, domain.Listing{
			ID:       "1",
			Title:    "First",
			Status:   "publish",
			PostType: "gd_listing_new",
		}))
		require.NoError(t, w.Close())

		r, err := NewReader(path)
		require.NoError(t, err)
		defer r.Close()

		assert.Equal(t, domain.Columns, r.Header())

		rec, err := r.Next(ctx)
		require.NoError(t, err)
		assert.Equal(t, "1", rec.Get("ID"))
		assert.Equal(t, "First", rec.Get("post_title"))
		assert.Equal(t, "gd_listing_new", rec.Get("post_type"))
	})

	t.Run("create failure", func(t *testing.T) {
		_, err := NewWriter(filepath.Join(t.TempDir(), "missing", "import.csv"))
		require.Error(t, err)
	})
}
