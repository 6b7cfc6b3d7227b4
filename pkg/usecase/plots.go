package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/odkpulse/pkg/domain/interfaces"
	"github.com/secmon-lab/odkpulse/pkg/domain/model"
	"github.com/secmon-lab/odkpulse/pkg/domain/types"
	"github.com/secmon-lab/odkpulse/pkg/service/plots"
	"github.com/secmon-lab/odkpulse/pkg/service/xlsx"
)

// PlotsUseCase builds the per-submitter plot ID workbook
type PlotsUseCase struct {
	source interfaces.SubmissionSource
}

// NewPlotsUseCase creates a new PlotsUseCase instance
func NewPlotsUseCase(source interfaces.SubmissionSource) *PlotsUseCase {
	return &PlotsUseCase{source: source}
}

// Export analyzes the plot IDs of formID and writes the workbook to path
func (uc *PlotsUseCase) Export(ctx context.Context, formID types.FormID, path string) (*model.PlotReport, error) {
	records, err := uc.source.FetchSubmissions(ctx, formID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to fetch submissions", goerr.V("form_id", formID))
	}

	report, err := plots.Analyze(records)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to analyze plot IDs", goerr.V("form_id", formID))
	}

	if err := xlsx.WritePlotReport(ctx, path, report); err != nil {
		return nil, goerr.Wrap(err, "failed to write plot report", goerr.V("path", path))
	}
	return report, nil
}
