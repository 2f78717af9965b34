package cron

import (
	"context"
	"errors"
	"testing"

	"horizon/models"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type stubPendingRepo struct {
	records []models.PendingSyncRecord
	listErr error
}

func (r *stubPendingRepo) Create(ctx context.Context, rec models.PendingSyncRecord) (string, error) {
	return rec.ID, nil
}

func (r *stubPendingRepo) GetByID(ctx context.Context, id string) (*models.PendingSyncRecord, error) {
	return nil, errors.New("not implemented")
}

func (r *stubPendingRepo) ListByState(ctx context.Context, state models.SyncState) ([]models.PendingSyncRecord, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	var out []models.PendingSyncRecord
	for _, rec := range r.records {
		if rec.State == state {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (r *stubPendingRepo) MarkState(ctx context.Context, id string, state models.SyncState, attempts int, lastError string) error {
	return nil
}

type recordingEnqueuer struct {
	ids []string
	err error
}

func (e *recordingEnqueuer) EnqueueReplay(recordID string) error {
	if e.err != nil {
		return e.err
	}
	e.ids = append(e.ids, recordID)
	return nil
}

func TestSweepReEnqueuesStrandedCaptures(t *testing.T) {
	repo := &stubPendingRepo{records: []models.PendingSyncRecord{
		{ID: "pending-1", State: models.SyncStatePendingSync},
		{ID: "pending-2", State: models.SyncStateCommitted},
		{ID: "pending-3", State: models.SyncStatePendingSync},
		{ID: "pending-4", State: models.SyncStateFailed},
	}}
	enq := &recordingEnqueuer{}

	sweepPending(context.Background(), repo, enq, zap.NewNop())

	assert.ElementsMatch(t, []string{"pending-1", "pending-3"}, enq.ids)
}

func TestSweepToleratesListFailure(t *testing.T) {
	repo := &stubPendingRepo{listErr: errors.New("mongo down")}
	enq := &recordingEnqueuer{}

	sweepPending(context.Background(), repo, enq, zap.NewNop())

	assert.Empty(t, enq.ids)
}

func TestSweepContinuesPastEnqueueFailure(t *testing.T) {
	repo := &stubPendingRepo{records: []models.PendingSyncRecord{
		{ID: "pending-1", State: models.SyncStatePendingSync},
	}}
	enq := &recordingEnqueuer{err: errors.New("broker unreachable")}

	sweepPending(context.Background(), repo, enq, zap.NewNop())

	assert.Empty(t, enq.ids)
}
