package bookingRepo

import (
	"context"

	"tidyhive/models"
)

// BookingRepository abstracts booking persistence.
type BookingRepository interface {
	Create(ctx context.Context, booking *models.Booking) error
	GetByID(ctx context.Context, bookingID string) (*models.Booking, error)
	Update(ctx context.Context, bookingID string, booking *models.Booking) error
	SetStatus(ctx context.Context, bookingID, status string) error
	SetRating(ctx context.Context, bookingID string, rating int) error
	AddPhoto(ctx context.Context, bookingID, photoID string) error
	ListActive(ctx context.Context) ([]models.Booking, error)
	ListByDate(ctx context.Context, date string) ([]models.Booking, error)
	ListByDateRange(ctx context.Context, startDate, endDate string) ([]models.Booking, error)
	ListByCrewAndDate(ctx context.Context, crewID, date string) ([]models.Booking, error)
	RevenueByDay(ctx context.Context, startDate, endDate string) ([]models.RevenuePoint, error)
	RatingsByCrew(ctx context.Context) ([]models.CrewRating, error)
}
