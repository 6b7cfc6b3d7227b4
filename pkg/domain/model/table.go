package model

import (
	"strings"
	"time"
)

// Column suffixes of the daily summary table
const (
	CountSuffix    = "_count"
	DurationSuffix = "_duration"
)

// Grid is a sink-neutral rendering of a table: a header row followed by data
// rows. Cell values are string, int or float64.
type Grid struct {
	Name   string
	Header []string
	Rows   [][]any
}

// Width returns the number of columns including the index column
func (g *Grid) Width() int {
	return len(g.Header)
}

// Height returns the number of rows including the header row
func (g *Grid) Height() int {
	return len(g.Rows) + 1
}

// DailySummaryTable holds photo counts and session durations per date and
// submitter. Values in each row align with Columns: count columns hold int
// and duration columns hold H:MM:SS strings.
type DailySummaryTable struct {
	Columns []string   `json:"columns"`
	Rows    []DailyRow `json:"rows"`
}

// DailyRow is one date of the daily summary
type DailyRow struct {
	Date   time.Time `json:"date"`
	Values []any     `json:"values"`
}

// ColumnIndex returns the position of a column or -1
func (t *DailySummaryTable) ColumnIndex(column string) int {
	for i, c := range t.Columns {
		if c == column {
			return i
		}
	}
	return -1
}

// Submitters returns the submitter names present in the table, in column order
func (t *DailySummaryTable) Submitters() []string {
	var names []string
	for _, c := range t.Columns {
		if name, ok := strings.CutSuffix(c, CountSuffix); ok {
			names = append(names, name)
		}
	}
	return names
}

// Count returns the count cell for date and submitter
func (t *DailySummaryTable) Count(date time.Time, submitter string) (int, bool) {
	v, ok := t.cell(date, submitter+CountSuffix)
	if !ok {
		return 0, false
	}
	n, ok := v.(int)
	return n, ok
}

// Duration returns the duration cell for date and submitter
func (t *DailySummaryTable) Duration(date time.Time, submitter string) (string, bool) {
	v, ok := t.cell(date, submitter+DurationSuffix)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

func (t *DailySummaryTable) cell(date time.Time, column string) (any, bool) {
	idx := t.ColumnIndex(column)
	if idx < 0 {
		return nil, false
	}
	for _, row := range t.Rows {
		if row.Date.Equal(date) {
			return row.Values[idx], true
		}
	}
	return nil, false
}

// Grid renders the table with a leading date column
func (t *DailySummaryTable) Grid() *Grid {
	grid := &Grid{
		Name:   "daily_summary",
		Header: append([]string{"date"}, t.Columns...),
		Rows:   make([][]any, 0, len(t.Rows)),
	}
	for _, row := range t.Rows {
		cells := make([]any, 0, len(row.Values)+1)
		cells = append(cells, FormatDate(row.Date))
		cells = append(cells, row.Values...)
		grid.Rows = append(grid.Rows, cells)
	}
	return grid
}

// WeeklyTable holds one value per week start and submitter
type WeeklyTable[T int | float64] struct {
	Submitters []string       `json:"submitters"`
	Rows       []WeeklyRow[T] `json:"rows"`
}

// WeeklyRow is one week of a weekly table; Values align with Submitters
type WeeklyRow[T int | float64] struct {
	WeekStart time.Time `json:"week_start"`
	Values    []T       `json:"values"`
}

// WeeklyAverageTable holds the mean daily photo count per week
type WeeklyAverageTable = WeeklyTable[float64]

// WeeklyTotalTable holds the total photo count per week
type WeeklyTotalTable = WeeklyTable[int]

// Value returns the cell for week start and submitter
func (t *WeeklyTable[T]) Value(weekStart time.Time, submitter string) (T, bool) {
	var zero T
	idx := -1
	for i, s := range t.Submitters {
		if s == submitter {
			idx = i
			break
		}
	}
	if idx < 0 {
		return zero, false
	}
	for _, row := range t.Rows {
		if row.WeekStart.Equal(weekStart) {
			return row.Values[idx], true
		}
	}
	return zero, false
}

// Grid renders the table with a leading week_start column
func (t *WeeklyTable[T]) Grid(name string) *Grid {
	grid := &Grid{
		Name:   name,
		Header: append([]string{"week_start"}, t.Submitters...),
		Rows:   make([][]any, 0, len(t.Rows)),
	}
	for _, row := range t.Rows {
		cells := make([]any, 0, len(row.Values)+1)
		cells = append(cells, FormatDate(row.WeekStart))
		for _, v := range row.Values {
			cells = append(cells, v)
		}
		grid.Rows = append(grid.Rows, cells)
	}
	return grid
}

// SubmitterTotalsTable is a single row holding each submitter's total count
type SubmitterTotalsTable struct {
	Submitters []string `json:"submitters"`
	Totals     []int    `json:"totals"`
}

// Total returns the total of a submitter
func (t *SubmitterTotalsTable) Total(submitter string) (int, bool) {
	for i, s := range t.Submitters {
		if s == submitter {
			return t.Totals[i], true
		}
	}
	return 0, false
}

// Grid renders the totals. An empty table has no data row.
func (t *SubmitterTotalsTable) Grid() *Grid {
	grid := &Grid{
		Name:   "submitter_totals",
		Header: append([]string{"total"}, t.Submitters...),
		Rows:   [][]any{},
	}
	if len(t.Submitters) == 0 {
		return grid
	}
	cells := make([]any, 0, len(t.Totals)+1)
	cells = append(cells, "total")
	for _, v := range t.Totals {
		cells = append(cells, v)
	}
	grid.Rows = append(grid.Rows, cells)
	return grid
}
