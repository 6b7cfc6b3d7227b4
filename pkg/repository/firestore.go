package repository

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/odkpulse/pkg/domain/interfaces"
	"github.com/secmon-lab/odkpulse/pkg/domain/model"
	"github.com/secmon-lab/odkpulse/pkg/domain/types"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	runsCollection = "runs"

	fieldStartedAt = "started_at"
)

// Firestore stores run records in a Firestore collection
type Firestore struct {
	client *firestore.Client
}

// NewFirestore creates a new Firestore repository
func NewFirestore(ctx context.Context, projectID, databaseID string) (interfaces.Repository, error) {
	logger := ctxlog.From(ctx)

	client, err := firestore.NewClientWithDatabase(ctx, projectID, databaseID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create firestore client",
			goerr.V("project_id", projectID),
			goerr.V("database_id", databaseID))
	}

	// Fail fast on bad credentials; an empty collection is fine
	_, err = client.Collection(runsCollection).Limit(1).Documents(ctx).Next()
	if err != nil && err != iterator.Done {
		code := status.Code(err)
		if code == codes.PermissionDenied || code == codes.Unauthenticated {
			_ = client.Close()
			return nil, goerr.Wrap(err, "failed to connect to firestore project",
				goerr.V("firestore error code", code.String()))
		}
		logger.Debug("Firestore connection test returned error",
			"error", err,
			"errorCode", code.String(),
		)
	}

	logger.Info("Firestore repository initialized",
		"projectID", projectID,
		"databaseID", databaseID,
	)

	return &Firestore{client: client}, nil
}

// PutRun creates or replaces a run record
func (f *Firestore) PutRun(ctx context.Context, run *model.RunRecord) error {
	if err := validateRun(run); err != nil {
		return err
	}

	if _, err := f.client.Collection(runsCollection).Doc(run.ID.String()).Set(ctx, run); err != nil {
		return goerr.Wrap(err, "failed to save run to firestore", goerr.V("run_id", run.ID))
	}
	return nil
}

// GetRun retrieves a run record by ID
func (f *Firestore) GetRun(ctx context.Context, id types.RunID) (*model.RunRecord, error) {
	if id == "" {
		return nil, goerr.New("run ID is empty")
	}

	doc, err := f.client.Collection(runsCollection).Doc(id.String()).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(model.ErrRunNotFound, "run not found in firestore", goerr.V("run_id", id))
		}
		return nil, goerr.Wrap(err, "failed to get run from firestore", goerr.V("run_id", id))
	}

	var run model.RunRecord
	if err := doc.DataTo(&run); err != nil {
		return nil, goerr.Wrap(err, "failed to decode run", goerr.V("run_id", id))
	}
	return &run, nil
}

// ListRuns lists run records, newest first. A non-positive limit lists all.
func (f *Firestore) ListRuns(ctx context.Context, limit int) ([]*model.RunRecord, error) {
	query := f.client.Collection(runsCollection).OrderBy(fieldStartedAt, firestore.Desc)
	if limit > 0 {
		query = query.Limit(limit)
	}

	iter := query.Documents(ctx)
	defer iter.Stop()

	runs := []*model.RunRecord{}
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate runs")
		}

		var run model.RunRecord
		if err := doc.DataTo(&run); err != nil {
			return nil, goerr.Wrap(err, "failed to decode run", goerr.V("doc_id", doc.Ref.ID))
		}
		runs = append(runs, &run)
	}

	return runs, nil
}

// Close closes the Firestore client
func (f *Firestore) Close() error {
	return f.client.Close()
}

func validateRun(run *model.RunRecord) error {
	if run == nil {
		return goerr.New("run is nil")
	}
	if run.ID == "" {
		return goerr.New("run ID is empty")
	}
	return nil
}
