package cron

import (
	"context"
	"time"

	pendingRepo "horizon/database/repository/pending"
	"horizon/models"
	"horizon/services/booking"
	"horizon/utils"

	"go.uber.org/zap"
)

const pendingSweepInterval = 5 * time.Minute

// StartPendingSweep re-enqueues stranded PendingSync captures: records whose
// enqueue failed at capture time, or whose queued task was lost to a process
// crash. Runs once at startup and then periodically. Replay is idempotent, so
// re-enqueueing a record that is already queued is harmless.
func StartPendingSweep(repo pendingRepo.PendingRepository, enq booking.PendingEnqueuer) {
	go func() {
		logger := utils.GetLogger().With(zap.String("component", "pendingSweep"))

		sweepPending(context.Background(), repo, enq, logger)

		ticker := time.NewTicker(pendingSweepInterval)
		defer ticker.Stop()
		for range ticker.C {
			sweepPending(context.Background(), repo, enq, logger)
		}
	}()
}

func sweepPending(ctx context.Context, repo pendingRepo.PendingRepository, enq booking.PendingEnqueuer, logger *zap.Logger) {
	sctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	records, err := repo.ListByState(sctx, models.SyncStatePendingSync)
	if err != nil {
		logger.Error("pending sweep list failed", zap.Error(err))
		return
	}

	for _, rec := range records {
		if err := enq.EnqueueReplay(rec.ID); err != nil {
			logger.Error("pending sweep enqueue failed",
				zap.String("pendingId", rec.ID), zap.Error(err))
		}
	}

	if len(records) > 0 {
		logger.Info("re-enqueued stranded pending bookings", zap.Int("count", len(records)))
	}
}
