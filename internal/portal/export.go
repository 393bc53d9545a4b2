package portal

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/oklog/ulid/v2"

	"github.com/paydesk/paydesk/internal/grid"
	"github.com/paydesk/paydesk/internal/logging"
)

// WriteCSV writes a header of column titles followed by one record per row.
// Cells are rendered without width truncation.
func WriteCSV[R any](w io.Writer, columns []grid.Column[R], rows []R) error {
	cw := csv.NewWriter(w)
	header := make([]string, len(columns))
	for i, col := range columns {
		header[i] = col.Title()
	}
	if err := cw.Write(header); err != nil {
		return err
	}
	record := make([]string, len(columns))
	for _, row := range rows {
		for i, col := range columns {
			col.Width = 0
			record[i] = grid.RenderCell(col, row).Text
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// Exporter writes CSV exports into a directory.
type Exporter struct {
	Dir string
}

// NewExporter returns an Exporter writing into dir.
func NewExporter(dir string) *Exporter {
	return &Exporter{Dir: dir}
}

// Export writes rows to a new file named after entity and returns its path.
func Export[R any](ctx context.Context, e *Exporter, entity Entity, columns []grid.Column[R], rows []R) (string, error) {
	if err := os.MkdirAll(e.Dir, 0o750); err != nil {
		return "", fmt.Errorf("creating export directory: %w", err)
	}
	path := filepath.Join(e.Dir, fmt.Sprintf("%s-%s.csv", entity, ulid.Make()))
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o600)
	if err != nil {
		return "", fmt.Errorf("creating export file: %w", err)
	}
	if err := WriteCSV(f, columns, rows); err != nil {
		_ = f.Close()
		return "", fmt.Errorf("writing export: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("closing export: %w", err)
	}
	logging.FromContext(ctx).Info().
		Str("entity", string(entity)).
		Int("rows", len(rows)).
		Str("path", path).
		Msg("exported rows")
	return path, nil
}
