package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	customerRepo "tidyhive/database/repository/customer"
	"tidyhive/models"
	"tidyhive/utils"
)

// CustomerHandler exposes customer profiles and their preference sheet.
type CustomerHandler struct {
	Repo   customerRepo.CustomerRepository
	Logger *zap.Logger
}

func NewCustomerHandler(repo customerRepo.CustomerRepository, logger *zap.Logger) *CustomerHandler {
	return &CustomerHandler{Repo: repo, Logger: logger}
}

// CreateCustomer registers a new customer profile.
func (h *CustomerHandler) CreateCustomer(c *gin.Context) {
	var input struct {
		Name    string `json:"name" binding:"required"`
		Email   string `json:"email" binding:"required,email"`
		Phone   string `json:"phone" binding:"required"`
		Address string `json:"address" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	now := time.Now().UTC()
	customer := &models.Customer{
		ID:        uuid.NewString(),
		Name:      input.Name,
		Email:     input.Email,
		Phone:     input.Phone,
		Address:   input.Address,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := h.Repo.Create(c.Request.Context(), customer); err != nil {
		h.Logger.Error("customer create failed", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "could not create customer", "Please try again later")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "customer": customer})
}

// GetCustomer returns one customer with their preference sheet.
func (h *CustomerHandler) GetCustomer(c *gin.Context) {
	customer, err := h.Repo.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.JSONError(c, http.StatusNotFound, "customer not found", "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "customer": customer})
}

// GetPreferences returns just the preference sheet.
func (h *CustomerHandler) GetPreferences(c *gin.Context) {
	customer, err := h.Repo.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.JSONError(c, http.StatusNotFound, "customer not found", "")
		return
	}
	prefs := customer.Preferences
	if prefs == nil {
		prefs = []models.Preference{}
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "preferences": prefs})
}

// UpdatePreferences replaces the customer's manually managed preferences.
// Extracted preferences arrive separately via the booking notes pipeline.
func (h *CustomerHandler) UpdatePreferences(c *gin.Context) {
	var input struct {
		Preferences []struct {
			Key   string `json:"key" binding:"required"`
			Value string `json:"value" binding:"required"`
		} `json:"preferences" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	customerID := c.Param("id")
	if _, err := h.Repo.GetByID(c.Request.Context(), customerID); err != nil {
		utils.JSONError(c, http.StatusNotFound, "customer not found", "")
		return
	}
	now := time.Now().UTC()
	prefs := make([]models.Preference, 0, len(input.Preferences))
	for _, p := range input.Preferences {
		prefs = append(prefs, models.Preference{
			Key:       p.Key,
			Value:     p.Value,
			Source:    models.PreferenceSourceManual,
			UpdatedAt: now,
		})
	}
	if err := h.Repo.SetPreferences(c.Request.Context(), customerID, prefs); err != nil {
		h.Logger.Error("preference update failed", zap.String("customer", customerID), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "could not update preferences", "Please try again later")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "preferences": prefs})
}
