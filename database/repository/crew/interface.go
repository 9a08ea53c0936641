package crewRepo

import (
	"context"

	"tidyhive/models"
)

// CrewRepository abstracts crew member persistence.
type CrewRepository interface {
	Create(ctx context.Context, member *models.CrewMember) error
	GetByID(ctx context.Context, crewID string) (*models.CrewMember, error)
	GetByEmail(ctx context.Context, email string) (*models.CrewMember, error)
	List(ctx context.Context) ([]models.CrewMember, error)
	SetStatus(ctx context.Context, crewID, status string) error
	SetLocation(ctx context.Context, crewID string, loc *models.GeoLocation) error
	SetFCMToken(ctx context.Context, crewID, token string) error
	Update(ctx context.Context, crewID string, member *models.CrewMember) error
}
