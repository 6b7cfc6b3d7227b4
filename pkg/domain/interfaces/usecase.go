package interfaces

//go:generate moq -out mocks/usecase_mock.go -pkg mocks . ReportRunner

import (
	"context"

	"github.com/secmon-lab/odkpulse/pkg/domain/model"
	"github.com/secmon-lab/odkpulse/pkg/domain/types"
)

// ReportRunner runs the fetch, aggregate, export and notify sequence
type ReportRunner interface {
	// Run executes a run synchronously. It returns model.ErrRunInProgress if
	// another run holds the runner.
	Run(ctx context.Context) (*model.RunRecord, error)
	// Start begins a run in the background and returns its ID.
	Start(ctx context.Context) (types.RunID, error)
	// LastReport returns the report of the last successful run, or nil
	LastReport() *model.Report
}
