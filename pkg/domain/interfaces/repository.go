package interfaces

//go:generate moq -out mocks/repository_mock.go -pkg mocks . Repository

import (
	"context"

	"github.com/secmon-lab/odkpulse/pkg/domain/model"
	"github.com/secmon-lab/odkpulse/pkg/domain/types"
)

// Repository defines the interface for run history persistence
type Repository interface {
	// PutRun creates or replaces a run record
	PutRun(ctx context.Context, run *model.RunRecord) error
	// GetRun retrieves a run record by ID
	GetRun(ctx context.Context, id types.RunID) (*model.RunRecord, error)
	// ListRuns lists run records, newest first
	ListRuns(ctx context.Context, limit int) ([]*model.RunRecord, error)

	// Close closes the repository connection
	Close() error
}
