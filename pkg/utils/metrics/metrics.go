// Package metrics exposes Prometheus metrics of report runs.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/secmon-lab/odkpulse/pkg/domain/types"
)

var (
	RunsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "odkpulse_runs_total",
		Help: "Number of finished report runs",
	}, []string{"status"})

	RunDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "odkpulse_run_duration_seconds",
		Help:    "Duration of report runs",
		Buckets: prometheus.DefBuckets,
	})

	SubmissionsFetchedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "odkpulse_submissions_fetched_total",
		Help: "Number of submissions fetched from ODK Central",
	})

	RecordsFilteredTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "odkpulse_records_filtered_total",
		Help: "Number of submissions excluded by the submitter allow-list",
	})

	SinkErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "odkpulse_sink_errors_total",
		Help: "Number of failed report writes",
	}, []string{"sink"})

	NotifyErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "odkpulse_notify_errors_total",
		Help: "Number of failed notifications",
	}, []string{"notifier"})
)

// ObserveRun records a finished run
func ObserveRun(status types.RunStatus, elapsed time.Duration) {
	RunsTotal.WithLabelValues(status.String()).Inc()
	RunDuration.Observe(elapsed.Seconds())
}

// ObserveFetch records how many submissions were fetched and how many of them
// made it through the allow-list
func ObserveFetch(fetched, included int) {
	SubmissionsFetchedTotal.Add(float64(fetched))
	if fetched > included {
		RecordsFilteredTotal.Add(float64(fetched - included))
	}
}

// Handler serves the default registry in the Prometheus text format
func Handler() http.Handler {
	return promhttp.Handler()
}
