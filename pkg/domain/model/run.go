package model

import (
	"time"

	"github.com/secmon-lab/odkpulse/pkg/domain/types"
)

// RunRecord is the history entry of one pipeline run
type RunRecord struct {
	ID           types.RunID     `json:"id" firestore:"id"`
	FormID       types.FormID    `json:"form_id" firestore:"form_id"`
	Status       types.RunStatus `json:"status" firestore:"status"`
	StartedAt    time.Time       `json:"started_at" firestore:"started_at"`
	FinishedAt   time.Time       `json:"finished_at,omitzero" firestore:"finished_at"`
	Fetched      int             `json:"fetched" firestore:"fetched"`
	Submitters   []string        `json:"submitters" firestore:"submitters"`
	Totals       map[string]int  `json:"totals,omitempty" firestore:"totals"`
	Sinks        []string        `json:"sinks,omitempty" firestore:"sinks"`
	Notified     []string        `json:"notified,omitempty" firestore:"notified"`
	Error        string          `json:"error,omitempty" firestore:"error"`
	NotifyErrors []string        `json:"notify_errors,omitempty" firestore:"notify_errors"`
}

// NewRunRecord creates a running record for formID
func NewRunRecord(id types.RunID, formID types.FormID, now time.Time) *RunRecord {
	return &RunRecord{
		ID:        id,
		FormID:    formID,
		Status:    types.RunStatusRunning,
		StartedAt: now,
	}
}

// Succeed marks the run as succeeded and captures the report summary
func (r *RunRecord) Succeed(report *Report, now time.Time) {
	r.Status = types.RunStatusSucceeded
	r.FinishedAt = now
	r.Submitters = append([]string{}, report.Totals.Submitters...)
	r.Totals = make(map[string]int, len(report.Totals.Submitters))
	for i, name := range report.Totals.Submitters {
		r.Totals[name] = report.Totals.Totals[i]
	}
}

// Fail marks the run as failed
func (r *RunRecord) Fail(err error, now time.Time) {
	r.Status = types.RunStatusFailed
	r.FinishedAt = now
	if err != nil {
		r.Error = err.Error()
	}
}

// Duration returns the elapsed time of a finished run
func (r *RunRecord) Duration() time.Duration {
	if r.FinishedAt.IsZero() {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}
