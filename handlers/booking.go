package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"tidyhive/models"
	"tidyhive/services/booking"
	"tidyhive/utils"
)

// BookingHandler exposes the customer booking flow.
type BookingHandler struct {
	Svc    booking.BookingService
	Logger *zap.Logger
}

func NewBookingHandler(svc booking.BookingService, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{Svc: svc, Logger: logger}
}

// QuoteBooking prices a request without persisting anything.
func (h *BookingHandler) QuoteBooking(c *gin.Context) {
	var req models.QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	quote, err := h.Svc.Quote(req)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "could not price request", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "quote": quote})
}

// CreateBooking handles the public booking submission.
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var input booking.CreateBookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	b, err := h.Svc.Create(c.Request.Context(), input)
	if err != nil {
		h.Logger.Warn("booking creation failed", zap.Error(err))
		utils.JSONError(c, http.StatusBadRequest, "could not create booking", err.Error())
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "booking": b})
}

func (h *BookingHandler) GetBooking(c *gin.Context) {
	b, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.JSONError(c, http.StatusNotFound, "booking not found", "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "booking": b})
}

// ListBookings returns active bookings for a date.
func (h *BookingHandler) ListBookings(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		utils.JSONValidationError(c, []utils.FieldError{{Field: "date", Message: "date query parameter is required"}})
		return
	}
	bookings, err := h.Svc.ListByDate(c.Request.Context(), date)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "could not list bookings", "Please try again later")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "bookings": bookings})
}

// RescheduleBooking moves a booking to a new date/time.
func (h *BookingHandler) RescheduleBooking(c *gin.Context) {
	var input struct {
		Date      string `json:"date" binding:"required"`
		StartTime string `json:"start_time" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	b, err := h.Svc.Reschedule(c.Request.Context(), c.Param("id"), input.Date, input.StartTime)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "could not reschedule booking", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "booking": b})
}

// ReassignBooking assigns a crew member to a booking.
func (h *BookingHandler) ReassignBooking(c *gin.Context) {
	var input struct {
		CrewID string `json:"crew_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	b, err := h.Svc.ReassignCrew(c.Request.Context(), c.Param("id"), input.CrewID)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "could not reassign booking", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "booking": b})
}

func (h *BookingHandler) CancelBooking(c *gin.Context) {
	if err := h.Svc.Cancel(c.Request.Context(), c.Param("id")); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "could not cancel booking", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "booking cancelled"})
}

// RateBooking records the customer satisfaction score.
func (h *BookingHandler) RateBooking(c *gin.Context) {
	var input struct {
		Rating int `json:"rating" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	if err := h.Svc.Rate(c.Request.Context(), c.Param("id"), input.Rating); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "could not rate booking", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "thanks for the feedback"})
}
