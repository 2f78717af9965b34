package handlers

import (
	"net/http"

	analyticsRepo "horizon/database/repository/analytics"
	"horizon/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AnalyticsHandler struct {
	Repo   analyticsRepo.AnalyticsRepository
	Logger *zap.Logger
}

func NewAnalyticsHandler(repo analyticsRepo.AnalyticsRepository, logger *zap.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{Repo: repo, Logger: logger}
}

// GetTotals returns the running aggregate counters. Admin only.
func (h *AnalyticsHandler) GetTotals(c *gin.Context) {
	totals, err := h.Repo.GetTotals(c.Request.Context())
	if err != nil {
		h.Logger.Error("analytics read failed", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to read analytics", "Please try again later.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"totals": totals})
}
