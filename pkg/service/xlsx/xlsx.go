// Package xlsx writes reports as Excel workbooks
package xlsx

import (
	"context"
	"os"
	"path/filepath"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/odkpulse/pkg/domain/model"
	"github.com/secmon-lab/odkpulse/pkg/service/tabular"
	"github.com/xuri/excelize/v2"
)

// DefaultSheet is the worksheet holding the summary tables
const DefaultSheet = "Summary"

// Sink writes every report table to one worksheet of a new workbook
type Sink struct {
	path      string
	sheet     string
	startCell string
}

// Option configures the Sink
type Option func(*Sink)

// WithSheet sets the worksheet name
func WithSheet(name string) Option {
	return func(s *Sink) {
		s.sheet = name
	}
}

// WithStartCell sets the top-left cell of the first table
func WithStartCell(cell string) Option {
	return func(s *Sink) {
		s.startCell = cell
	}
}

// New creates a workbook sink writing to path
func New(path string, opts ...Option) *Sink {
	s := &Sink{
		path:      path,
		sheet:     DefaultSheet,
		startCell: tabular.DefaultStartCell,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name implements interfaces.TableSink
func (s *Sink) Name() string {
	return "xlsx"
}

// Location implements interfaces.TableSink
func (s *Sink) Location() string {
	return s.path
}

// Write implements interfaces.TableSink
func (s *Sink) Write(ctx context.Context, report *model.Report) error {
	regions, err := tabular.Layout(report.Grids(), s.startCell)
	if err != nil {
		return err
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(0), s.sheet); err != nil {
		return goerr.Wrap(err, "failed to name worksheet", goerr.V("sheet", s.sheet))
	}
	for _, region := range regions {
		if err := writeRegion(f, s.sheet, region); err != nil {
			return err
		}
	}

	if err := save(f, s.path); err != nil {
		return err
	}
	ctxlog.From(ctx).Info("Workbook written", "path", s.path, "sheet", s.sheet)
	return nil
}

func writeRegion(f *excelize.File, sheet string, region *tabular.Region) error {
	for i, row := range region.Values() {
		cell, err := excelize.CoordinatesToCellName(region.Col, region.Row+i)
		if err != nil {
			return goerr.Wrap(err, "invalid cell", goerr.V("table", region.Grid.Name))
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return goerr.Wrap(err, "failed to write row",
				goerr.V("table", region.Grid.Name),
				goerr.V("cell", cell))
		}
	}
	return nil
}

func save(f *excelize.File, path string) error {
	buf, err := f.WriteToBuffer()
	if err != nil {
		return goerr.Wrap(err, "failed to render workbook", goerr.V("path", path))
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return goerr.Wrap(err, "failed to create output directory", goerr.V("dir", dir))
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return goerr.Wrap(err, "failed to create temp file", goerr.V("path", path))
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := buf.WriteTo(tmp); err != nil {
		_ = tmp.Close()
		return goerr.Wrap(err, "failed to write workbook", goerr.V("path", path))
	}
	if err := tmp.Close(); err != nil {
		return goerr.Wrap(err, "failed to close workbook", goerr.V("path", path))
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return goerr.Wrap(err, "failed to replace workbook", goerr.V("path", path))
	}
	return nil
}
