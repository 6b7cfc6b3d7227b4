package xlsx

import (
	"context"
	"fmt"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/odkpulse/pkg/domain/model"
	"github.com/xuri/excelize/v2"
)

// OverviewSheet holds the statistics across all submitters of a plot report
const OverviewSheet = "Overview"

// WritePlotReport writes a plot report workbook: an overview sheet followed
// by one sheet per submitter with the plot table at A1 and the submitter's
// statistics at D1.
func WritePlotReport(ctx context.Context, path string, report *model.PlotReport) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(0), OverviewSheet); err != nil {
		return goerr.Wrap(err, "failed to name worksheet", goerr.V("sheet", OverviewSheet))
	}
	if err := writeTable(f, OverviewSheet, "A1", []string{"Metric", "Value"}, overviewRows(report)); err != nil {
		return err
	}

	used := map[string]bool{OverviewSheet: true}
	for _, sp := range report.Submitters {
		sheet := uniqueSheetName(model.SheetName(sp.Submitter), used)
		if _, err := f.NewSheet(sheet); err != nil {
			return goerr.Wrap(err, "failed to create worksheet",
				goerr.V("sheet", sheet),
				goerr.V("submitter", sp.Submitter))
		}

		plots := make([][]any, 0, len(sp.Plots))
		for _, p := range sp.Plots {
			plots = append(plots, []any{p.PlotID, p.Count})
		}
		if err := writeTable(f, sheet, "A1", []string{"plot_id", "submission_count"}, plots); err != nil {
			return err
		}
		if err := writeTable(f, sheet, "D1", []string{"Metric", "Value"}, sp.Stats.Rows()); err != nil {
			return err
		}

		if err := f.SetColWidth(sheet, "A", "B", 22); err != nil {
			return goerr.Wrap(err, "failed to set column width", goerr.V("sheet", sheet))
		}
		if err := f.SetColWidth(sheet, "D", "E", 28); err != nil {
			return goerr.Wrap(err, "failed to set column width", goerr.V("sheet", sheet))
		}
		if err := f.SetPanes(sheet, &excelize.Panes{
			Freeze:      true,
			YSplit:      1,
			TopLeftCell: "A2",
			ActivePane:  "bottomLeft",
		}); err != nil {
			return goerr.Wrap(err, "failed to freeze header", goerr.V("sheet", sheet))
		}
	}

	if err := save(f, path); err != nil {
		return err
	}
	ctxlog.From(ctx).Info("Plot report written",
		"path", path,
		"submitters", len(report.Submitters))
	return nil
}

func overviewRows(report *model.PlotReport) [][]any {
	return [][]any{
		{"Submitters", len(report.Submitters)},
		{"Most Repeated Plot ID", report.MostRepeated.PlotID},
		{"Most Repeated Count", report.MostRepeated.Count},
		{"Least Repeated Plot ID", report.LeastRepeated.PlotID},
		{"Least Repeated Count", report.LeastRepeated.Count},
		{"Average Repetitions", report.AverageRepetitions},
	}
}

func writeTable(f *excelize.File, sheet, topLeft string, header []string, rows [][]any) error {
	col, row, err := excelize.CellNameToCoordinates(topLeft)
	if err != nil {
		return goerr.Wrap(err, "invalid cell", goerr.V("cell", topLeft))
	}

	headerRow := make([]any, len(header))
	for i, h := range header {
		headerRow[i] = h
	}
	all := append([][]any{headerRow}, rows...)

	for i, values := range all {
		cell, err := excelize.CoordinatesToCellName(col, row+i)
		if err != nil {
			return goerr.Wrap(err, "invalid cell", goerr.V("sheet", sheet))
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return goerr.Wrap(err, "failed to write row",
				goerr.V("sheet", sheet),
				goerr.V("cell", cell))
		}
	}
	return nil
}

// uniqueSheetName resolves clashes between submitter names that collapse to
// the same sheet name.
func uniqueSheetName(name string, used map[string]bool) string {
	candidate := name
	for n := 2; used[candidate]; n++ {
		suffix := fmt.Sprintf("_%d", n)
		base := []rune(name)
		if len(base)+len(suffix) > 31 {
			base = base[:31-len(suffix)]
		}
		candidate = string(base) + suffix
	}
	used[candidate] = true
	return candidate
}
