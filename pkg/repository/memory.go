package repository

import (
	"context"
	"maps"
	"slices"
	"sort"
	"sync"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/odkpulse/pkg/domain/interfaces"
	"github.com/secmon-lab/odkpulse/pkg/domain/model"
	"github.com/secmon-lab/odkpulse/pkg/domain/types"
)

// Memory keeps run records in process memory. It is used when no Firestore
// project is configured.
type Memory struct {
	mu   sync.RWMutex
	runs map[types.RunID]*model.RunRecord
}

// NewMemory creates a new memory repository
func NewMemory() interfaces.Repository {
	return &Memory{
		runs: make(map[types.RunID]*model.RunRecord),
	}
}

// PutRun creates or replaces a run record
func (m *Memory) PutRun(ctx context.Context, run *model.RunRecord) error {
	if err := validateRun(run); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.runs[run.ID] = copyRun(run)
	return nil
}

// GetRun retrieves a run record by ID
func (m *Memory) GetRun(ctx context.Context, id types.RunID) (*model.RunRecord, error) {
	if id == "" {
		return nil, goerr.New("run ID is empty")
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	run, ok := m.runs[id]
	if !ok {
		return nil, goerr.Wrap(model.ErrRunNotFound, "run not found in memory", goerr.V("run_id", id))
	}
	return copyRun(run), nil
}

// ListRuns lists run records, newest first. A non-positive limit lists all.
func (m *Memory) ListRuns(ctx context.Context, limit int) ([]*model.RunRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	runs := make([]*model.RunRecord, 0, len(m.runs))
	for _, run := range m.runs {
		runs = append(runs, copyRun(run))
	}

	sort.Slice(runs, func(i, j int) bool {
		if !runs[i].StartedAt.Equal(runs[j].StartedAt) {
			return runs[i].StartedAt.After(runs[j].StartedAt)
		}
		return runs[i].ID > runs[j].ID
	})

	if limit > 0 && len(runs) > limit {
		runs = runs[:limit]
	}
	return runs, nil
}

// Close is a no-op for memory repository
func (m *Memory) Close() error {
	return nil
}

// copyRun detaches stored records from callers that keep mutating theirs
func copyRun(run *model.RunRecord) *model.RunRecord {
	c := *run
	c.Submitters = slices.Clone(run.Submitters)
	c.Sinks = slices.Clone(run.Sinks)
	c.Notified = slices.Clone(run.Notified)
	c.NotifyErrors = slices.Clone(run.NotifyErrors)
	c.Totals = maps.Clone(run.Totals)
	return &c
}
