package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"tidyhive/services/analytics"
	"tidyhive/utils"
)

// AnalyticsHandler serves the admin dashboard charts.
type AnalyticsHandler struct {
	Svc    analytics.AnalyticsService
	Logger *zap.Logger
}

func NewAnalyticsHandler(svc analytics.AnalyticsService, logger *zap.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{Svc: svc, Logger: logger}
}

func dateRange(c *gin.Context) (string, string, bool) {
	start := c.Query("startDate")
	end := c.Query("endDate")
	if start == "" || end == "" {
		utils.JSONError(c, http.StatusBadRequest, "startDate and endDate are required", "Use YYYY-MM-DD")
		return "", "", false
	}
	return start, end, true
}

// Revenue returns per-day booked revenue for the range.
func (h *AnalyticsHandler) Revenue(c *gin.Context) {
	start, end, ok := dateRange(c)
	if !ok {
		return
	}
	points, err := h.Svc.Revenue(c.Request.Context(), start, end)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "could not compute revenue", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "revenue": points})
}

// Satisfaction returns the overall and per-crew rating averages.
func (h *AnalyticsHandler) Satisfaction(c *gin.Context) {
	summary, err := h.Svc.Satisfaction(c.Request.Context())
	if err != nil {
		h.Logger.Error("satisfaction query failed", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "could not compute satisfaction", "Please try again later")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "satisfaction": summary})
}

// CrewUtilization returns clocked hours per crew member for the range.
func (h *AnalyticsHandler) CrewUtilization(c *gin.Context) {
	start, end, ok := dateRange(c)
	if !ok {
		return
	}
	util, err := h.Svc.CrewUtilization(c.Request.Context(), start, end)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "could not compute utilization", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "utilization": util})
}
