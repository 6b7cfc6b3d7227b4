package usecase

import (
	"context"
	"encoding/json"
	"io"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/odkpulse/pkg/domain/interfaces"
	"github.com/secmon-lab/odkpulse/pkg/domain/model"
	"github.com/secmon-lab/odkpulse/pkg/domain/types"
)

// DumpUseCase exports the raw submissions of a form
type DumpUseCase struct {
	source interfaces.SubmissionSource
}

// NewDumpUseCase creates a new DumpUseCase instance
func NewDumpUseCase(source interfaces.SubmissionSource) *DumpUseCase {
	return &DumpUseCase{source: source}
}

// Dump writes every submission of formID to w as an indented JSON array and
// returns the number of submissions written
func (uc *DumpUseCase) Dump(ctx context.Context, formID types.FormID, w io.Writer) (int, error) {
	records, err := uc.source.FetchSubmissions(ctx, formID)
	if err != nil {
		return 0, goerr.Wrap(err, "failed to fetch submissions", goerr.V("form_id", formID))
	}

	if records == nil {
		records = []model.RawSubmission{}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(records); err != nil {
		return 0, goerr.Wrap(err, "failed to write submissions", goerr.V("form_id", formID))
	}

	return len(records), nil
}
