package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Shadowina/ecole-portal-api/internal/service"
	"github.com/Shadowina/ecole-portal-api/pkg/response"
)

// StatsHandler exposes the dashboard overview and runtime metrics snapshot.
type StatsHandler struct {
	stats   *service.StatsService
	metrics *service.MetricsService
}

// NewStatsHandler constructs StatsHandler.
func NewStatsHandler(stats *service.StatsService, metrics *service.MetricsService) *StatsHandler {
	return &StatsHandler{stats: stats, metrics: metrics}
}

// Overview godoc
// @Summary Dashboard entity totals with department breakdown
// @Tags Stats
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /stats/overview [get]
func (h *StatsHandler) Overview(c *gin.Context) {
	overview, err := h.stats.Overview(c.Request.Context(), actorFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, overview, nil)
}

// System godoc
// @Summary Runtime metrics snapshot
// @Tags Stats
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /stats/system [get]
func (h *StatsHandler) System(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.metrics.Snapshot(), nil)
}
