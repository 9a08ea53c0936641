package handlers

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	bookingRepo "tidyhive/database/repository/booking"
	"tidyhive/models"
	"tidyhive/services/crew"
	"tidyhive/services/storage"
	"tidyhive/utils"
)

// CrewHandler exposes the crew mobile dashboard endpoints.
type CrewHandler struct {
	Svc         crew.CrewService
	BookingRepo bookingRepo.BookingRepository
	Storage     storage.StorageService
	Logger      *zap.Logger
}

func NewCrewHandler(svc crew.CrewService, bookings bookingRepo.BookingRepository, storageSvc storage.StorageService, logger *zap.Logger) *CrewHandler {
	return &CrewHandler{Svc: svc, BookingRepo: bookings, Storage: storageSvc, Logger: logger}
}

func crewID(c *gin.Context) string {
	return c.GetString("crewID")
}

// RegisterCrew creates a crew member (admin only).
func (h *CrewHandler) RegisterCrew(c *gin.Context) {
	var input struct {
		Name            string  `json:"name" binding:"required"`
		Email           string  `json:"email" binding:"required,email"`
		Phone           string  `json:"phone" binding:"required"`
		Password        string  `json:"password" binding:"required"`
		HourlyRate      float64 `json:"hourly_rate" binding:"required"`
		StripeAccountID string  `json:"stripe_account_id"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	member := &models.CrewMember{
		Name:            input.Name,
		Email:           input.Email,
		Phone:           input.Phone,
		HourlyRate:      input.HourlyRate,
		StripeAccountID: input.StripeAccountID,
	}
	member, err := h.Svc.Register(c.Request.Context(), member, input.Password)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "could not register crew member", err.Error())
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "crew_member": member})
}

// LoginCrew authenticates a crew member and returns a JWT.
func (h *CrewHandler) LoginCrew(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	member, token, err := h.Svc.Authenticate(c.Request.Context(), input.Email, input.Password)
	if err != nil {
		utils.JSONError(c, http.StatusUnauthorized, "invalid credentials", "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "token": token, "crew_member": member})
}

// MyJobs returns the authenticated member's bookings for today.
func (h *CrewHandler) MyJobs(c *gin.Context) {
	jobs, err := h.Svc.JobsForToday(c.Request.Context(), crewID(c))
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "could not load jobs", "Please try again later")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "jobs": jobs})
}

// CheckIn starts a time entry against a booking with an optional GPS fix.
func (h *CrewHandler) CheckIn(c *gin.Context) {
	var input crew.CheckInInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	entry, err := h.Svc.CheckIn(c.Request.Context(), crewID(c), input)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "could not check in", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "time_entry": entry})
}

// CheckOut closes the member's active time entry.
func (h *CrewHandler) CheckOut(c *gin.Context) {
	entry, err := h.Svc.CheckOut(c.Request.Context(), crewID(c))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "could not check out", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "time_entry": entry})
}

// UpdateStatus flips the member's dispatch-board status.
func (h *CrewHandler) UpdateStatus(c *gin.Context) {
	var input struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	if err := h.Svc.SetStatus(c.Request.Context(), crewID(c), input.Status); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "could not update status", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// ReportLocation stores the latest GPS fix from the mobile app.
func (h *CrewHandler) ReportLocation(c *gin.Context) {
	var loc models.GeoLocation
	if err := c.ShouldBindJSON(&loc); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	if err := h.Svc.ReportLocation(c.Request.Context(), crewID(c), loc); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "could not store location", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// UpdateFCMToken stores the member's push token.
func (h *CrewHandler) UpdateFCMToken(c *gin.Context) {
	var input struct {
		Token string `json:"token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	if err := h.Svc.SetFCMToken(c.Request.Context(), crewID(c), input.Token); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "could not store token", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// UploadJobPhoto stores a before/after photo against a booking.
func (h *CrewHandler) UploadJobPhoto(c *gin.Context) {
	bookingID := c.Param("id")
	fileHeader, err := c.FormFile("photo")
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "photo not provided", err.Error())
		return
	}

	tempFilePath := filepath.Join(os.TempDir(), fileHeader.Filename)
	if err := c.SaveUploadedFile(fileHeader, tempFilePath); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "could not store upload", "Please try again later")
		return
	}
	defer os.Remove(tempFilePath)

	publicID, err := h.Storage.UploadFile(c.Request.Context(), tempFilePath, "job-photos/"+bookingID)
	if err != nil {
		h.Logger.Error("photo upload failed", zap.String("booking", bookingID), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "photo upload failed", "Please try again later")
		return
	}
	if err := h.BookingRepo.AddPhoto(c.Request.Context(), bookingID, publicID); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "could not attach photo to booking", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "photo_id": publicID})
}
