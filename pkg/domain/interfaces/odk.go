package interfaces

//go:generate moq -out mocks/odk_mock.go -pkg mocks . SubmissionSource FormCatalog AttachmentSource

import (
	"context"

	"github.com/secmon-lab/odkpulse/pkg/domain/model"
	"github.com/secmon-lab/odkpulse/pkg/domain/types"
)

// SubmissionSource fetches the full submission list of a form
type SubmissionSource interface {
	FetchSubmissions(ctx context.Context, formID types.FormID) ([]model.RawSubmission, error)
}

// FormCatalog lists forms and counts their submissions
type FormCatalog interface {
	ListForms(ctx context.Context) ([]*model.Form, error)
	CountSubmissions(ctx context.Context, formID types.FormID) (int, error)
}

// AttachmentSource downloads submission attachments
type AttachmentSource interface {
	DownloadAttachment(ctx context.Context, formID types.FormID, instanceID types.InstanceID, filename string) ([]byte, error)
}
