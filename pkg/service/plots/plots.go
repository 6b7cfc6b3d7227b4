// Package plots counts how often each plot ID was surveyed, per submitter
// and across the whole form.
package plots

import (
	"encoding/json"
	"math"
	"sort"
	"strconv"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/odkpulse/pkg/domain/model"
)

// plotView is the part of a submission the plot report reads
type plotView struct {
	PlotID any `json:"plot_id"`
	System *struct {
		SubmitterName *string `json:"submitterName"`
	} `json:"__system"`
}

// Analyze builds the plot report of a form's submissions. Submissions
// without a submitter are left out; submissions without a plot ID count
// towards their submitter's total only.
func Analyze(records []model.RawSubmission) (*model.PlotReport, error) {
	type submitterData struct {
		total  int
		counts map[string]int
	}

	perSubmitter := make(map[string]*submitterData)
	global := make(map[string]int)

	for i, raw := range records {
		var v plotView
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, goerr.Wrap(err, "malformed submission",
				goerr.T(model.ErrTagDataFormat),
				goerr.V("index", i),
				goerr.V("instance_id", model.InstanceIDOf(raw)))
		}
		if v.System == nil || v.System.SubmitterName == nil {
			continue
		}

		name := *v.System.SubmitterName
		data, ok := perSubmitter[name]
		if !ok {
			data = &submitterData{counts: make(map[string]int)}
			perSubmitter[name] = data
		}
		data.total++

		plotID, ok := plotIDString(v.PlotID)
		if !ok {
			continue
		}
		data.counts[plotID]++
		global[plotID]++
	}

	report := &model.PlotReport{
		Submitters: make([]model.SubmitterPlots, 0, len(perSubmitter)),
	}

	names := make([]string, 0, len(perSubmitter))
	for name := range perSubmitter {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		data := perSubmitter[name]
		plots := sortedCounts(data.counts)
		report.Submitters = append(report.Submitters, model.SubmitterPlots{
			Submitter: name,
			Plots:     plots,
			Stats:     stats(data.total, plots),
		})
	}

	all := sortedCounts(global)
	if len(all) > 0 {
		report.MostRepeated = all[0]
		report.LeastRepeated = leastFrequent(all)
		report.AverageRepetitions = average(all)
	}

	return report, nil
}

// plotIDString renders a plot ID. Strings are used as-is and numbers are
// formatted without a trailing fraction; anything else counts as missing.
func plotIDString(v any) (string, bool) {
	switch x := v.(type) {
	case string:
		if x == "" {
			return "", false
		}
		return x, true
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64), true
	default:
		return "", false
	}
}

// sortedCounts orders plot counts by count descending, then plot ID
func sortedCounts(counts map[string]int) []model.PlotCount {
	result := make([]model.PlotCount, 0, len(counts))
	for id, n := range counts {
		result = append(result, model.PlotCount{PlotID: id, Count: n})
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Count != result[j].Count {
			return result[i].Count > result[j].Count
		}
		return result[i].PlotID < result[j].PlotID
	})
	return result
}

// leastFrequent returns the plot with the lowest count, the smallest ID on ties
func leastFrequent(sorted []model.PlotCount) model.PlotCount {
	minCount := sorted[len(sorted)-1].Count
	for _, p := range sorted {
		if p.Count == minCount {
			return p
		}
	}
	return sorted[len(sorted)-1]
}

func average(plots []model.PlotCount) float64 {
	if len(plots) == 0 {
		return 0
	}
	sum := 0
	for _, p := range plots {
		sum += p.Count
	}
	return math.Round(float64(sum)/float64(len(plots))*100) / 100
}

func stats(total int, plots []model.PlotCount) model.PlotStats {
	s := model.PlotStats{
		TotalSubmissions: total,
		UniquePlots:      len(plots),
	}
	if len(plots) == 0 {
		return s
	}
	s.MostFrequentPlot = plots[0].PlotID
	s.MostFrequentCount = plots[0].Count
	s.LeastFrequentCount = plots[len(plots)-1].Count
	s.AveragePerPlot = average(plots)
	return s
}
