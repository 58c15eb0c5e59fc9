package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/orris-inc/helpdesk/internal/interfaces/http/middleware"
	"github.com/orris-inc/helpdesk/internal/shared/logger"
	"github.com/orris-inc/helpdesk/internal/shared/utils"
)

// AnalyticsHandler serves the dashboard statistics.
type AnalyticsHandler struct {
	stats  QuickStatsProvider
	logger logger.Interface
}

func NewAnalyticsHandler(stats QuickStatsProvider, logger logger.Interface) *AnalyticsHandler {
	return &AnalyticsHandler{stats: stats, logger: logger}
}

// GetQuickStats handles GET /analytics/quickstats
func (h *AnalyticsHandler) GetQuickStats(c *gin.Context) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		return
	}

	result, err := h.stats.Get(c.Request.Context(), actor)
	if err != nil {
		h.logger.Errorw("failed to get quick stats", "user_id", actor.ID, "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", result)
}
