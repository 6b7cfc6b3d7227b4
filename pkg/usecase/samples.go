package usecase

import (
	"context"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/odkpulse/pkg/domain/interfaces"
	"github.com/secmon-lab/odkpulse/pkg/domain/model"
	"github.com/secmon-lab/odkpulse/pkg/domain/types"
)

// SamplesUseCase downloads the photo archives of randomly picked submissions
// for manual review
type SamplesUseCase struct {
	source      interfaces.SubmissionSource
	attachments interfaces.AttachmentSource
	rand        *rand.Rand
}

// SamplesOption configures a SamplesUseCase
type SamplesOption func(*SamplesUseCase)

// WithSeed makes the sampling reproducible
func WithSeed(seed uint64) SamplesOption {
	return func(uc *SamplesUseCase) {
		uc.rand = rand.New(rand.NewPCG(seed, seed))
	}
}

// NewSamplesUseCase creates a new SamplesUseCase instance
func NewSamplesUseCase(source interfaces.SubmissionSource, attachments interfaces.AttachmentSource, opts ...SamplesOption) *SamplesUseCase {
	seed := uint64(time.Now().UnixNano())
	uc := &SamplesUseCase{
		source:      source,
		attachments: attachments,
		rand:        rand.New(rand.NewPCG(seed, seed>>1)),
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Download picks n submissions of formID at random and saves their .zip
// attachments under dir/<instance ID>/. A failed download is logged and
// skipped.
func (uc *SamplesUseCase) Download(ctx context.Context, formID types.FormID, n int, dir string) (*model.SampleResult, error) {
	if n <= 0 {
		return nil, goerr.New("sample size must be positive", goerr.T(model.ErrTagConfig), goerr.V("n", n))
	}

	records, err := uc.source.FetchSubmissions(ctx, formID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to fetch submissions", goerr.V("form_id", formID))
	}

	logger := ctxlog.From(ctx)
	result := &model.SampleResult{}
	if len(records) == 0 {
		logger.Warn("No submissions to sample", "form_id", formID)
		return result, nil
	}

	n = min(n, len(records))
	picked := uc.rand.Perm(len(records))[:n]

	for _, idx := range picked {
		raw := records[idx]
		instanceID := model.InstanceIDOf(raw)
		result.Sampled = append(result.Sampled, instanceID)

		files := model.ZipAttachments(raw)
		if len(files) == 0 {
			logger.Info("Submission has no zip attachments", "instance_id", instanceID)
			continue
		}

		for _, name := range files {
			path, err := uc.save(ctx, formID, instanceID, name, dir)
			if err != nil {
				result.Failed++
				logger.Warn("Failed to download attachment",
					"instance_id", instanceID,
					"filename", name,
					"error", err)
				continue
			}
			result.Saved = append(result.Saved, model.SampledFile{
				InstanceID: instanceID,
				Filename:   name,
				Path:       path,
			})
		}
	}

	return result, nil
}

func (uc *SamplesUseCase) save(ctx context.Context, formID types.FormID, instanceID types.InstanceID, name, dir string) (string, error) {
	data, err := uc.attachments.DownloadAttachment(ctx, formID, instanceID, name)
	if err != nil {
		return "", err
	}

	subdir := filepath.Join(dir, safeName(instanceID.String()))
	if err := os.MkdirAll(subdir, 0o755); err != nil {
		return "", goerr.Wrap(err, "failed to create sample directory", goerr.V("dir", subdir))
	}

	path := filepath.Join(subdir, safeName(filepath.Base(name)))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", goerr.Wrap(err, "failed to write attachment", goerr.V("path", path))
	}
	return path, nil
}

// safeName turns an instance ID such as "uuid:1b2c" into a portable file name
func safeName(s string) string {
	return strings.NewReplacer(":", "_", "/", "_", "\\", "_").Replace(s)
}
