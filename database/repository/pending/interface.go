package pendingRepo

import (
	"context"

	"horizon/models"
)

// PendingRepository stores degraded-mode booking captures awaiting replay.
type PendingRepository interface {
	Create(ctx context.Context, rec models.PendingSyncRecord) (string, error)
	GetByID(ctx context.Context, id string) (*models.PendingSyncRecord, error)
	ListByState(ctx context.Context, state models.SyncState) ([]models.PendingSyncRecord, error)
	MarkState(ctx context.Context, id string, state models.SyncState, attempts int, lastError string) error
}
