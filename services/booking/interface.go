package booking

import (
	"context"

	"tidyhive/models"
)

// CreateBookingInput is the validated booking submission from the public flow.
type CreateBookingInput struct {
	CustomerID string              `json:"customer_id" binding:"required"`
	Date       string              `json:"date" binding:"required"`       // "YYYY-MM-DD"
	StartTime  string              `json:"start_time" binding:"required"` // "HH:MM"
	Address    string              `json:"address" binding:"required"`
	Notes      string              `json:"notes"`
	SMSOptIn   bool                `json:"sms_opt_in"`
	Quote      models.QuoteRequest `json:"quote" binding:"required"`
}

// BookingService owns the booking lifecycle: quoting, creation and the
// mutations conflict resolutions dispatch to.
type BookingService interface {
	Quote(req models.QuoteRequest) (*models.Quote, error)
	Create(ctx context.Context, input CreateBookingInput) (*models.Booking, error)
	Get(ctx context.Context, bookingID string) (*models.Booking, error)
	ListByDate(ctx context.Context, date string) ([]models.Booking, error)
	Reschedule(ctx context.Context, bookingID, newDate, newStartTime string) (*models.Booking, error)
	RescheduleToNextFreeSlot(ctx context.Context, bookingID string) (*models.Booking, error)
	ReassignCrew(ctx context.Context, bookingID, crewID string) (*models.Booking, error)
	ReassignToAvailableCrew(ctx context.Context, bookingID string) (*models.Booking, error)
	ExtendDuration(ctx context.Context, bookingID string, extraMinutes int) (*models.Booking, error)
	Cancel(ctx context.Context, bookingID string) error
	Rate(ctx context.Context, bookingID string, rating int) error
}
