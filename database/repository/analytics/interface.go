package analyticsRepo

import (
	"context"

	"horizon/models"
)

// AnalyticsRepository reads the shared aggregate counters. All increments happen
// inside the booking commit transaction; this repository only initializes and
// reads the document.
type AnalyticsRepository interface {
	// EnsureTotals upserts a zeroed counters document so the commit path can
	// rely on a plain atomic increment with no read.
	EnsureTotals(ctx context.Context) error

	GetTotals(ctx context.Context) (*models.AnalyticsTotals, error)
}
