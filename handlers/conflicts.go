package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"tidyhive/services/scheduling"
	"tidyhive/utils"
)

// ConflictHandler exposes the scheduling conflict dashboard endpoints.
type ConflictHandler struct {
	Svc    scheduling.ConflictService
	Logger *zap.Logger
}

func NewConflictHandler(svc scheduling.ConflictService, logger *zap.Logger) *ConflictHandler {
	return &ConflictHandler{Svc: svc, Logger: logger}
}

// GetConflicts handles GET /api/conflicts.
// Exactly one of bookingId or the startDate+endDate pair selects the mode;
// with neither, all active conflicts are computed.
func (h *ConflictHandler) GetConflicts(c *gin.Context) {
	query := scheduling.ConflictQuery{
		BookingID:       c.Query("bookingId"),
		StartDate:       c.Query("startDate"),
		EndDate:         c.Query("endDate"),
		IncludeResolved: c.Query("includeResolved") == "true",
	}

	if errs := validateConflictQuery(query); len(errs) > 0 {
		utils.JSONValidationError(c, errs)
		return
	}

	conflicts, summary, err := h.Svc.Detect(c.Request.Context(), query)
	if err != nil {
		h.Logger.Error("conflict detection failed", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Conflict detection failed", "Please try again later")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"conflicts": conflicts,
		"summary":   summary,
		"query": gin.H{
			"bookingId":       query.BookingID,
			"startDate":       query.StartDate,
			"endDate":         query.EndDate,
			"includeResolved": query.IncludeResolved,
		},
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func validateConflictQuery(q scheduling.ConflictQuery) []utils.FieldError {
	var errs []utils.FieldError

	hasRange := q.StartDate != "" || q.EndDate != ""
	if q.StartDate != "" && q.EndDate == "" {
		errs = append(errs, utils.FieldError{Field: "endDate", Message: "endDate is required when startDate is given"})
	}
	if q.EndDate != "" && q.StartDate == "" {
		errs = append(errs, utils.FieldError{Field: "startDate", Message: "startDate is required when endDate is given"})
	}
	if q.BookingID != "" && hasRange {
		errs = append(errs, utils.FieldError{Field: "bookingId", Message: "bookingId cannot be combined with a date range"})
	}
	for field, value := range map[string]string{"startDate": q.StartDate, "endDate": q.EndDate} {
		if value == "" {
			continue
		}
		if _, err := time.Parse("2006-01-02", value); err != nil {
			errs = append(errs, utils.FieldError{Field: field, Message: "must be formatted YYYY-MM-DD"})
		}
	}
	return errs
}

type conflictActionInput struct {
	Action     string `json:"action" binding:"required"`
	ConflictID string `json:"conflictId" binding:"required"`
	Parameters struct {
		SuggestionID string `json:"suggestionId"`
	} `json:"parameters"`
}

// ResolveConflict handles POST /api/conflicts.
func (h *ConflictHandler) ResolveConflict(c *gin.Context) {
	var input conflictActionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONValidationError(c, []utils.FieldError{
			{Field: "body", Message: "action and conflictId are required"},
		})
		return
	}

	ctx := c.Request.Context()
	switch input.Action {
	case "resolve", "dismiss":
		if err := h.Svc.Acknowledge(ctx, input.ConflictID, input.Action); err != nil {
			utils.JSONError(c, http.StatusInternalServerError, "Failed to record resolution", "Please try again later")
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "conflict " + input.ConflictID + " " + input.Action + "d",
		})
	case "apply_suggestion":
		if input.Parameters.SuggestionID == "" {
			utils.JSONValidationError(c, []utils.FieldError{
				{Field: "parameters.suggestionId", Message: "suggestionId is required for apply_suggestion"},
			})
			return
		}
		message, err := h.Svc.ApplySuggestion(ctx, input.ConflictID, input.Parameters.SuggestionID)
		if err != nil {
			if strings.Contains(err.Error(), "unknown suggestion") || strings.Contains(err.Error(), "malformed conflict id") {
				utils.JSONError(c, http.StatusBadRequest, "Invalid suggestion", err.Error())
				return
			}
			h.Logger.Error("apply suggestion failed",
				zap.String("conflict", input.ConflictID),
				zap.String("suggestion", input.Parameters.SuggestionID),
				zap.Error(err))
			utils.JSONError(c, http.StatusInternalServerError, "Failed to apply suggestion", "Please try again later")
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": message,
			"data": gin.H{
				"conflictId":   input.ConflictID,
				"suggestionId": input.Parameters.SuggestionID,
			},
		})
	default:
		utils.JSONError(c, http.StatusBadRequest, "Unknown action", "unrecognized action: "+input.Action)
	}
}
