package model

import (
	"fmt"
	"strings"
)

// Report is the output of one aggregation: the four summary tables and the
// number of records that passed the allow-list
type Report struct {
	Daily         *DailySummaryTable    `json:"daily"`
	WeeklyAverage *WeeklyAverageTable   `json:"weekly_average"`
	WeeklyTotal   *WeeklyTotalTable     `json:"weekly_total"`
	Totals        *SubmitterTotalsTable `json:"totals"`
	Included      int                   `json:"included"`
}

// Grids renders the tables in their layout order: daily summary, weekly
// average, weekly total, submitter totals.
func (r *Report) Grids() []*Grid {
	return []*Grid{
		r.Daily.Grid(),
		r.WeeklyAverage.Grid("weekly_average"),
		r.WeeklyTotal.Grid("weekly_total"),
		r.Totals.Grid(),
	}
}

// IsEmpty reports whether no submitter qualified for aggregation
func (r *Report) IsEmpty() bool {
	return len(r.Daily.Rows) == 0
}

// Summary renders the submitter totals as the plain-text notification body.
// Each non-empty link, such as a sheet URL or an output path, is appended
// after the totals.
func (r *Report) Summary(links ...string) string {
	var b strings.Builder
	b.WriteString("📸 Total Image Count Summary:\n")
	if r.Totals == nil || len(r.Totals.Submitters) == 0 {
		b.WriteString("No submissions from allowed submitters.\n")
	} else {
		for i, name := range r.Totals.Submitters {
			fmt.Fprintf(&b, "• %s: %d images\n", name, r.Totals.Totals[i])
		}
	}

	first := true
	for _, link := range links {
		if link == "" {
			continue
		}
		if first {
			b.WriteString("\n")
			first = false
		}
		fmt.Fprintf(&b, "✅ Summary updated and saved at: 🔗 %s\n", link)
	}
	return b.String()
}
