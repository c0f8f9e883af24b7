package handler

import (
	"time"

	"shiftboard/internal/auth"
	cErr "shiftboard/internal/pkg/error"
	"shiftboard/internal/pkg/response"
	"shiftboard/internal/service"
	"shiftboard/internal/telemetry"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	trace            *telemetry.Trace
	dashboardService *service.DashboardService
}

func NewDashboardHandler(trace *telemetry.Trace, dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{trace: trace, dashboardService: dashboardService}
}

// Stats
// @Summary 儀表板統計
// @Tags Dashboard
// @Security BearerAuth
// @Produce json
// @Success 200 {object} dto.DashboardStatsDto
// @Failure 401 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /api/dashboard/stats [get]
func (h *DashboardHandler) Stats(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	defer end(nil)

	caller, ok := auth.CallerFrom(c)
	if !ok {
		response.AbortWithError(c, cErr.Unauthorized("Unauthorized"))
		return
	}
	stats, err := h.dashboardService.Stats(ctx, caller, time.Now().UTC())
	if err != nil {
		end(err)
		response.AbortWithError(c, err)
		return
	}
	response.Success(c, stats)
}
