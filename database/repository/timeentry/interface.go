package timeentryRepo

import (
	"context"
	"time"

	"tidyhive/models"
)

// TimeEntryRepository abstracts clock-in/clock-out persistence.
type TimeEntryRepository interface {
	Create(ctx context.Context, entry *models.TimeEntry) error
	GetActiveByCrew(ctx context.Context, crewID string) (*models.TimeEntry, error)
	Close(ctx context.Context, entryID string, clockOut time.Time) error
	ListActive(ctx context.Context) ([]models.TimeEntry, error)
	ListCompletedInRange(ctx context.Context, from, to time.Time) ([]models.TimeEntry, error)
	UtilizationByCrew(ctx context.Context, from, to time.Time) ([]models.CrewUtilization, error)
}
