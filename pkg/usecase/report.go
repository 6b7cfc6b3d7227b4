package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/odkpulse/pkg/domain/interfaces"
	"github.com/secmon-lab/odkpulse/pkg/domain/model"
	"github.com/secmon-lab/odkpulse/pkg/domain/types"
	"github.com/secmon-lab/odkpulse/pkg/service/aggregate"
	"github.com/secmon-lab/odkpulse/pkg/utils/async"
	"github.com/secmon-lab/odkpulse/pkg/utils/metrics"
)

// ReportUseCase runs the fetch, aggregate, export and notify sequence for
// one form. Only one run executes at a time.
type ReportUseCase struct {
	source     interfaces.SubmissionSource
	repo       interfaces.Repository
	config     *model.ReportConfig
	sinks      []interfaces.TableSink
	notifiers  []interfaces.Notifier
	recipients []string
	now        func() time.Time

	running sync.Mutex

	mu       sync.RWMutex
	last     *model.Report
	inflight <-chan struct{}
}

var _ interfaces.ReportRunner = (*ReportUseCase)(nil)

// ReportOption configures a ReportUseCase
type ReportOption func(*ReportUseCase)

// WithSinks sets the outputs written on every run, in order
func WithSinks(sinks ...interfaces.TableSink) ReportOption {
	return func(uc *ReportUseCase) {
		uc.sinks = append(uc.sinks, sinks...)
	}
}

// WithNotifiers sets the notifiers called after all sinks succeeded
func WithNotifiers(notifiers ...interfaces.Notifier) ReportOption {
	return func(uc *ReportUseCase) {
		uc.notifiers = append(uc.notifiers, notifiers...)
	}
}

// WithRecipients sets the email recipients of the summary
func WithRecipients(recipients ...string) ReportOption {
	return func(uc *ReportUseCase) {
		uc.recipients = append(uc.recipients, recipients...)
	}
}

// WithClock replaces time.Now
func WithClock(now func() time.Time) ReportOption {
	return func(uc *ReportUseCase) {
		uc.now = now
	}
}

// NewReportUseCase creates a new ReportUseCase instance
func NewReportUseCase(source interfaces.SubmissionSource, repo interfaces.Repository, config *model.ReportConfig, opts ...ReportOption) (*ReportUseCase, error) {
	if source == nil {
		return nil, goerr.New("submission source is required", goerr.T(model.ErrTagConfig))
	}
	if repo == nil {
		return nil, goerr.New("repository is required", goerr.T(model.ErrTagConfig))
	}
	if config == nil {
		return nil, goerr.New("report config is required", goerr.T(model.ErrTagConfig))
	}
	if err := config.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid report config")
	}

	uc := &ReportUseCase{
		source: source,
		repo:   repo,
		config: config,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc, nil
}

// Run executes a run synchronously and returns its record. The record is
// returned with the error when the run fails.
func (uc *ReportUseCase) Run(ctx context.Context) (*model.RunRecord, error) {
	if !uc.running.TryLock() {
		return nil, goerr.Wrap(model.ErrRunInProgress, "cannot start run", goerr.V("form_id", uc.config.FormID))
	}
	defer uc.running.Unlock()

	run := model.NewRunRecord(types.NewRunID(), uc.config.FormID, uc.now())
	uc.save(ctx, run)
	err := uc.execute(ctx, run)
	return run, err
}

// Start begins a run in the background and returns its ID. The run outlives
// ctx cancellation.
func (uc *ReportUseCase) Start(ctx context.Context) (types.RunID, error) {
	if !uc.running.TryLock() {
		return "", goerr.Wrap(model.ErrRunInProgress, "cannot start run", goerr.V("form_id", uc.config.FormID))
	}

	run := model.NewRunRecord(types.NewRunID(), uc.config.FormID, uc.now())
	uc.save(ctx, run)

	uc.mu.Lock()
	defer uc.mu.Unlock()
	uc.inflight = async.Dispatch(ctx, func(ctx context.Context) error {
		defer uc.running.Unlock()
		return uc.execute(ctx, run)
	})

	return run.ID, nil
}

// LastReport returns the report of the last successful run, or nil
func (uc *ReportUseCase) LastReport() *model.Report {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	return uc.last
}

func (uc *ReportUseCase) execute(ctx context.Context, run *model.RunRecord) error {
	logger := ctxlog.From(ctx).With("run_id", run.ID, "form_id", run.FormID)
	ctx = ctxlog.With(ctx, logger)
	logger.Info("Report run started")

	report, err := uc.build(ctx, run)
	if err != nil {
		run.Fail(err, uc.now())
		uc.finish(ctx, run)
		return err
	}

	uc.notify(ctx, run, report)
	run.Succeed(report, uc.now())
	uc.finish(ctx, run)

	logger.Info("Report run finished",
		"fetched", run.Fetched,
		"submitters", len(run.Submitters),
		"notified", run.Notified,
		"elapsed", run.Duration())
	return nil
}

// build fetches, aggregates and exports. Sinks run in order and the first
// failure aborts the run before any notification is sent.
func (uc *ReportUseCase) build(ctx context.Context, run *model.RunRecord) (*model.Report, error) {
	records, err := uc.source.FetchSubmissions(ctx, uc.config.FormID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to fetch submissions", goerr.V("form_id", uc.config.FormID))
	}
	run.Fetched = len(records)

	report, err := aggregate.Aggregate(records, uc.config.AllowList(),
		aggregate.WithSortOrder(uc.config.SortOrder()))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to aggregate submissions", goerr.V("form_id", uc.config.FormID))
	}
	metrics.ObserveFetch(len(records), report.Included)

	if report.IsEmpty() {
		ctxlog.From(ctx).Warn("No submissions from allowed submitters",
			"fetched", len(records),
			"allowed", uc.config.AllowList().Names())
	}

	for _, sink := range uc.sinks {
		if err := sink.Write(ctx, report); err != nil {
			metrics.SinkErrorsTotal.WithLabelValues(sink.Name()).Inc()
			return nil, goerr.Wrap(err, "failed to write report",
				goerr.V("sink", sink.Name()),
				goerr.V("location", sink.Location()))
		}
		run.Sinks = append(run.Sinks, sink.Name())
		ctxlog.From(ctx).Info("Report written", "sink", sink.Name(), "location", sink.Location())
	}

	uc.mu.Lock()
	uc.last = report
	uc.mu.Unlock()

	return report, nil
}

// notify sends the summary through every notifier. A failing notifier is
// recorded on the run and does not fail it.
func (uc *ReportUseCase) notify(ctx context.Context, run *model.RunRecord, report *model.Report) {
	if len(uc.notifiers) == 0 {
		return
	}

	n := &model.Notification{
		Subject:    uc.subject(),
		Body:       report.Summary(uc.links()...),
		Recipients: uc.recipients,
	}

	for _, notifier := range uc.notifiers {
		if err := notifier.Notify(ctx, n); err != nil {
			metrics.NotifyErrorsTotal.WithLabelValues(notifier.Name()).Inc()
			run.NotifyErrors = append(run.NotifyErrors, fmt.Sprintf("%s: %s", notifier.Name(), err.Error()))
			ctxlog.From(ctx).Warn("Failed to send notification",
				"notifier", notifier.Name(),
				"error", err)
			continue
		}
		run.Notified = append(run.Notified, notifier.Name())
	}
}

func (uc *ReportUseCase) subject() string {
	if uc.config.Subject != "" {
		return uc.config.Subject
	}
	return model.DefaultSubject
}

// links returns the locations quoted in the summary: the spreadsheet URL
// when a Google Sheet is written, every sink location otherwise.
func (uc *ReportUseCase) links() []string {
	for _, sink := range uc.sinks {
		if sink.Name() == "sheets" {
			return []string{sink.Location()}
		}
	}

	links := make([]string, 0, len(uc.sinks))
	for _, sink := range uc.sinks {
		links = append(links, sink.Location())
	}
	return links
}

func (uc *ReportUseCase) finish(ctx context.Context, run *model.RunRecord) {
	metrics.ObserveRun(run.Status, run.Duration())
	uc.save(ctx, run)
}

// save persists the run record. History is best effort and never fails a run.
func (uc *ReportUseCase) save(ctx context.Context, run *model.RunRecord) {
	if err := uc.repo.PutRun(ctx, run); err != nil {
		ctxlog.From(ctx).Warn("Failed to save run record",
			"run_id", run.ID,
			"error", err)
	}
}
