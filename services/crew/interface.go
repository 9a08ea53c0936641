package crew

import (
	"context"

	"tidyhive/models"
)

// CheckInInput is a crew member's GPS check-in against a booking.
type CheckInInput struct {
	BookingID string              `json:"booking_id" binding:"required"`
	Location  *models.GeoLocation `json:"location"`
}

// CrewService owns crew authentication and the mobile dashboard operations.
type CrewService interface {
	Register(ctx context.Context, member *models.CrewMember, password string) (*models.CrewMember, error)
	Authenticate(ctx context.Context, email, password string) (*models.CrewMember, string, error)
	GetByID(ctx context.Context, crewID string) (*models.CrewMember, error)
	List(ctx context.Context) ([]models.CrewMember, error)
	JobsForToday(ctx context.Context, crewID string) ([]models.Booking, error)
	CheckIn(ctx context.Context, crewID string, input CheckInInput) (*models.TimeEntry, error)
	CheckOut(ctx context.Context, crewID string) (*models.TimeEntry, error)
	SetStatus(ctx context.Context, crewID, status string) error
	ReportLocation(ctx context.Context, crewID string, loc models.GeoLocation) error
	SetFCMToken(ctx context.Context, crewID, token string) error
}
