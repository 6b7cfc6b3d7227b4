// Package aggregate turns raw ODK submissions into the daily and weekly
// summary tables. Aggregate is a pure function: it performs no I/O and keeps
// no state between calls.
package aggregate

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/secmon-lab/odkpulse/pkg/domain/model"
	"github.com/secmon-lab/odkpulse/pkg/domain/types"
)

type options struct {
	order types.SortOrder
}

// Option configures Aggregate
type Option func(*options)

// WithSortOrder sets the row order of the daily table. Unknown orders fall
// back to descending.
func WithSortOrder(order types.SortOrder) Option {
	return func(o *options) {
		if order.IsValid() {
			o.order = order
		}
	}
}

// groupKey identifies one (date, submitter) group
type groupKey struct {
	date      time.Time
	submitter string
}

// group holds the sums of one (date, submitter) group
type group struct {
	groupKey
	photoCount      int
	durationSeconds int
}

// Aggregate normalizes records, keeps the ones whose submitter is in allow
// and builds the report tables. A malformed record fails the whole call with
// an error tagged model.ErrTagDataFormat.
func Aggregate(records []model.RawSubmission, allow model.AllowList, opts ...Option) (*model.Report, error) {
	cfg := options{order: types.SortDescending}
	for _, opt := range opts {
		opt(&cfg)
	}

	normalized, err := model.NormalizeSubmissions(records)
	if err != nil {
		return nil, err
	}

	filtered := Filter(normalized, allow)
	groups := groupRecords(filtered)
	daily := pivotDaily(groups, cfg.order)
	average, total := pivotWeekly(groups)

	return &model.Report{
		Daily:         daily,
		WeeklyAverage: average,
		WeeklyTotal:   total,
		Totals:        submitterTotals(daily),
		Included:      len(filtered),
	}, nil
}

// Filter returns the records whose submitter is in allow
func Filter(records []model.SubmissionRecord, allow model.AllowList) []model.SubmissionRecord {
	filtered := make([]model.SubmissionRecord, 0, len(records))
	for _, r := range records {
		if allow.Contains(r.Submitter) {
			filtered = append(filtered, r)
		}
	}
	return filtered
}

// groupRecords sums records per (date, submitter). The result is ordered by
// date ascending, then submitter.
func groupRecords(records []model.SubmissionRecord) []*group {
	index := make(map[groupKey]*group)
	groups := make([]*group, 0)
	for _, r := range records {
		key := groupKey{date: r.Date, submitter: r.Submitter}
		g, ok := index[key]
		if !ok {
			g = &group{groupKey: key}
			index[key] = g
			groups = append(groups, g)
		}
		g.photoCount += r.PhotoCount
		g.durationSeconds += r.DurationSeconds
	}

	sort.Slice(groups, func(i, j int) bool {
		return lessKey(groups[i].groupKey, groups[j].groupKey)
	})
	return groups
}

func lessKey(a, b groupKey) bool {
	if !a.date.Equal(b.date) {
		return a.date.Before(b.date)
	}
	return a.submitter < b.submitter
}

// columnRef points a daily column back to its submitter and measure
type columnRef struct {
	submitter string
	duration  bool
}

func pivotDaily(groups []*group, order types.SortOrder) *model.DailySummaryTable {
	dates := uniqueDates(groups, func(g *group) time.Time { return g.date })
	submitters := uniqueSubmitters(groups)

	refs := make(map[string]columnRef, len(submitters)*2)
	columns := make([]string, 0, len(submitters)*2)
	for _, s := range submitters {
		countCol := s + model.CountSuffix
		durationCol := s + model.DurationSuffix
		refs[countCol] = columnRef{submitter: s}
		refs[durationCol] = columnRef{submitter: s, duration: true}
		columns = append(columns, countCol, durationCol)
	}
	sort.Strings(columns)

	cells := make(map[groupKey]*group, len(groups))
	for _, g := range groups {
		cells[g.groupKey] = g
	}

	rows := make([]model.DailyRow, 0, len(dates))
	for _, d := range dates {
		values := make([]any, len(columns))
		for i, col := range columns {
			ref := refs[col]
			g := cells[groupKey{date: d, submitter: ref.submitter}]
			switch {
			case ref.duration && g == nil:
				values[i] = model.FormatDuration(0)
			case ref.duration:
				values[i] = model.FormatDuration(g.durationSeconds)
			case g == nil:
				values[i] = 0
			default:
				values[i] = g.photoCount
			}
		}
		rows = append(rows, model.DailyRow{Date: d, Values: values})
	}

	if order == types.SortDescending {
		for i, j := 0, len(rows)-1; i < j; i, j = i+1, j-1 {
			rows[i], rows[j] = rows[j], rows[i]
		}
	}

	return &model.DailySummaryTable{Columns: columns, Rows: rows}
}

// pivotWeekly groups the daily groups by (week start, submitter) and pivots
// the mean and the sum of photo counts. groups must be in ascending order.
func pivotWeekly(groups []*group) (*model.WeeklyAverageTable, *model.WeeklyTotalTable) {
	type weekly struct {
		sum  int
		days int
	}

	weeks := uniqueDates(groups, func(g *group) time.Time { return model.WeekStart(g.date) })
	submitters := uniqueSubmitters(groups)

	cells := make(map[groupKey]*weekly)
	for _, g := range groups {
		key := groupKey{date: model.WeekStart(g.date), submitter: g.submitter}
		w, ok := cells[key]
		if !ok {
			w = &weekly{}
			cells[key] = w
		}
		w.sum += g.photoCount
		w.days++
	}

	average := &model.WeeklyAverageTable{
		Submitters: submitters,
		Rows:       make([]model.WeeklyRow[float64], 0, len(weeks)),
	}
	total := &model.WeeklyTotalTable{
		Submitters: append([]string{}, submitters...),
		Rows:       make([]model.WeeklyRow[int], 0, len(weeks)),
	}

	for _, week := range weeks {
		means := make([]float64, len(submitters))
		sums := make([]int, len(submitters))
		for i, s := range submitters {
			w, ok := cells[groupKey{date: week, submitter: s}]
			if !ok {
				continue
			}
			sums[i] = w.sum
			means[i] = round2(float64(w.sum) / float64(w.days))
		}
		average.Rows = append(average.Rows, model.WeeklyRow[float64]{WeekStart: week, Values: means})
		total.Rows = append(total.Rows, model.WeeklyRow[int]{WeekStart: week, Values: sums})
	}

	return average, total
}

// submitterTotals sums every count column of the final daily table
func submitterTotals(daily *model.DailySummaryTable) *model.SubmitterTotalsTable {
	totals := &model.SubmitterTotalsTable{
		Submitters: make([]string, 0),
		Totals:     make([]int, 0),
	}
	for i, col := range daily.Columns {
		name, ok := strings.CutSuffix(col, model.CountSuffix)
		if !ok {
			continue
		}
		sum := 0
		for _, row := range daily.Rows {
			if n, ok := row.Values[i].(int); ok {
				sum += n
			}
		}
		totals.Submitters = append(totals.Submitters, name)
		totals.Totals = append(totals.Totals, sum)
	}
	return totals
}

func uniqueDates(groups []*group, key func(*group) time.Time) []time.Time {
	seen := make(map[time.Time]bool)
	dates := make([]time.Time, 0)
	for _, g := range groups {
		d := key(g)
		if seen[d] {
			continue
		}
		seen[d] = true
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	return dates
}

func uniqueSubmitters(groups []*group) []string {
	seen := make(map[string]bool)
	names := make([]string, 0)
	for _, g := range groups {
		if seen[g.submitter] {
			continue
		}
		seen[g.submitter] = true
		names = append(names, g.submitter)
	}
	sort.Strings(names)
	return names
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
