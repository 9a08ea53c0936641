package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"tidyhive/services/payroll"
	"tidyhive/utils"
)

// PayrollHandler exposes the admin payroll surface.
type PayrollHandler struct {
	Svc    payroll.PayrollService
	Logger *zap.Logger
}

func NewPayrollHandler(svc payroll.PayrollService, logger *zap.Logger) *PayrollHandler {
	return &PayrollHandler{Svc: svc, Logger: logger}
}

// RunPayroll tallies hours for the period and pays each crew member out.
func (h *PayrollHandler) RunPayroll(c *gin.Context) {
	var input struct {
		PeriodStart string `json:"period_start" binding:"required"`
		PeriodEnd   string `json:"period_end" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	run, err := h.Svc.Run(c.Request.Context(), input.PeriodStart, input.PeriodEnd)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "payroll run failed", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "run": run})
}

// ListRuns returns recent payroll runs, newest first.
func (h *PayrollHandler) ListRuns(c *gin.Context) {
	runs, err := h.Svc.ListRuns(c.Request.Context(), 50)
	if err != nil {
		h.Logger.Error("payroll list failed", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "could not list payroll runs", "Please try again later")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "runs": runs})
}

// ListRunsForCrew returns the runs that include the given crew member.
func (h *PayrollHandler) ListRunsForCrew(c *gin.Context) {
	runs, err := h.Svc.ListRunsForCrew(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.Logger.Error("payroll crew list failed", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "could not list payroll runs", "Please try again later")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "runs": runs})
}
