package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	ai "tidyhive/services/intelligence"
	"tidyhive/utils"
)

// AIHandler exposes the customer chat assistant.
type AIHandler struct {
	Svc    ai.AssistantService
	Logger *zap.Logger
}

func NewAIHandler(svc ai.AssistantService, logger *zap.Logger) *AIHandler {
	return &AIHandler{Svc: svc, Logger: logger}
}

// Chat sends a customer message through the assistant and returns the reply.
func (h *AIHandler) Chat(c *gin.Context) {
	var input struct {
		CustomerID string `json:"customer_id" binding:"required"`
		Message    string `json:"message" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	reply, err := h.Svc.Chat(c.Request.Context(), input.CustomerID, input.Message)
	if err != nil {
		h.Logger.Error("assistant chat failed", zap.String("customer", input.CustomerID), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "assistant unavailable", "Please try again later")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "reply": reply})
}

// ClearContext drops the customer's rolling conversation context.
func (h *AIHandler) ClearContext(c *gin.Context) {
	if err := h.Svc.ClearContext(c.Request.Context(), c.Param("customerId")); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "could not clear context", "Please try again later")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
