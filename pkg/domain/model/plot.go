package model

import (
	"strings"
)

// PlotCount is how many submissions reference one plot
type PlotCount struct {
	PlotID string
	Count  int
}

// PlotStats summarizes the plot counts of one submitter
type PlotStats struct {
	TotalSubmissions   int
	UniquePlots        int
	MostFrequentPlot   string
	MostFrequentCount  int
	LeastFrequentCount int
	AveragePerPlot     float64
}

// Rows renders the stats as Metric/Value pairs
func (s PlotStats) Rows() [][]any {
	return [][]any{
		{"Total Submissions", s.TotalSubmissions},
		{"Unique Plot IDs", s.UniquePlots},
		{"Most Frequent Plot ID", s.MostFrequentPlot},
		{"Most Frequent Count", s.MostFrequentCount},
		{"Least Frequent Count", s.LeastFrequentCount},
		{"Average Submissions per Plot", s.AveragePerPlot},
	}
}

// SubmitterPlots holds the plot counts of one submitter, most frequent first
type SubmitterPlots struct {
	Submitter string
	Plots     []PlotCount
	Stats     PlotStats
}

// PlotReport is the per-submitter plot ID breakdown of a form
type PlotReport struct {
	Submitters         []SubmitterPlots
	MostRepeated       PlotCount
	LeastRepeated      PlotCount
	AverageRepetitions float64
}

// SheetName turns a submitter name into a valid worksheet name: at most 31
// characters, with path separators and other characters Excel rejects
// replaced.
func SheetName(submitter string) string {
	name := submitter
	if r := []rune(name); len(r) > 31 {
		name = string(r[:31])
	}
	return strings.NewReplacer("/", "_", `\`, "_", ":", "_", "?", "_", "*", "_", "[", "_", "]", "_").Replace(name)
}
