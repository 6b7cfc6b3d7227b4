package usecase

import (
	"context"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/odkpulse/pkg/domain/interfaces"
	"github.com/secmon-lab/odkpulse/pkg/domain/model"
)

// FormsUseCase lists the forms of a project with their submission counts
type FormsUseCase struct {
	catalog interfaces.FormCatalog
}

// NewFormsUseCase creates a new FormsUseCase instance
func NewFormsUseCase(catalog interfaces.FormCatalog) *FormsUseCase {
	return &FormsUseCase{catalog: catalog}
}

// ListForms returns every form with its submission count. A form whose
// submissions cannot be counted carries the error and the listing goes on.
func (uc *FormsUseCase) ListForms(ctx context.Context) ([]*model.FormSummary, error) {
	forms, err := uc.catalog.ListForms(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list forms")
	}

	summaries := make([]*model.FormSummary, 0, len(forms))
	for _, form := range forms {
		summary := &model.FormSummary{Form: form}
		count, err := uc.catalog.CountSubmissions(ctx, form.ID)
		if err != nil {
			ctxlog.From(ctx).Warn("Failed to count submissions",
				"form_id", form.ID,
				"error", err)
			summary.Err = err
		} else {
			summary.Submissions = count
		}
		summaries = append(summaries, summary)
	}

	return summaries, nil
}
