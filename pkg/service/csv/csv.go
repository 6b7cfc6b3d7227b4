// Package csv writes reports as CSV files
package csv

import (
	"bytes"
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/odkpulse/pkg/domain/model"
	"github.com/secmon-lab/odkpulse/pkg/service/tabular"
)

// Sink writes the daily summary table to a CSV file. With companions enabled
// the weekly and totals tables go to sibling files named after the table.
type Sink struct {
	path       string
	companions bool
}

// Option configures the Sink
type Option func(*Sink)

// WithCompanions also writes the weekly and totals tables
func WithCompanions(enabled bool) Option {
	return func(s *Sink) {
		s.companions = enabled
	}
}

// New creates a CSV sink writing to path
func New(path string, opts ...Option) *Sink {
	s := &Sink{path: path}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name implements interfaces.TableSink
func (s *Sink) Name() string {
	return "csv"
}

// Location implements interfaces.TableSink
func (s *Sink) Location() string {
	return s.path
}

// Write implements interfaces.TableSink. Every file is rendered before the
// first one is written, and each file is replaced atomically.
func (s *Sink) Write(ctx context.Context, report *model.Report) error {
	grids := report.Grids()
	if !s.companions {
		grids = grids[:1]
	}

	type output struct {
		path string
		data []byte
	}
	outputs := make([]output, 0, len(grids))
	for i, grid := range grids {
		data, err := Encode(grid)
		if err != nil {
			return err
		}
		path := s.path
		if i > 0 {
			path = CompanionPath(s.path, grid.Name)
		}
		outputs = append(outputs, output{path: path, data: data})
	}

	for _, out := range outputs {
		if err := writeFile(out.path, out.data); err != nil {
			return err
		}
		ctxlog.From(ctx).Info("CSV written", "path", out.path, "bytes", len(out.data))
	}
	return nil
}

// Encode renders a grid as CSV: the header row, then one line per row
func Encode(grid *model.Grid) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(grid.Header); err != nil {
		return nil, goerr.Wrap(err, "failed to write CSV header", goerr.V("table", grid.Name))
	}
	record := make([]string, 0, grid.Width())
	for _, row := range grid.Rows {
		record = record[:0]
		for _, v := range row {
			record = append(record, tabular.CellString(v))
		}
		if err := w.Write(record); err != nil {
			return nil, goerr.Wrap(err, "failed to write CSV row", goerr.V("table", grid.Name))
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, goerr.Wrap(err, "failed to flush CSV", goerr.V("table", grid.Name))
	}
	return buf.Bytes(), nil
}

// CompanionPath derives the file name of a companion table, e.g.
// "out/summary.csv" and "weekly_total" give "out/summary_weekly_total.csv".
func CompanionPath(path, table string) string {
	ext := filepath.Ext(path)
	if ext == "" {
		ext = ".csv"
	}
	return strings.TrimSuffix(path, filepath.Ext(path)) + "_" + table + ext
}

func writeFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return goerr.Wrap(err, "failed to create output directory", goerr.V("dir", dir))
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return goerr.Wrap(err, "failed to create temp file", goerr.V("path", path))
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return goerr.Wrap(err, "failed to write CSV", goerr.V("path", path))
	}
	if err := tmp.Close(); err != nil {
		return goerr.Wrap(err, "failed to close CSV", goerr.V("path", path))
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return goerr.Wrap(err, "failed to replace CSV", goerr.V("path", path))
	}
	return nil
}
