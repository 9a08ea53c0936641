package analytics

import (
	"context"
	"fmt"
	"time"

	bookingRepo "tidyhive/database/repository/booking"
	crewRepo "tidyhive/database/repository/crew"
	timeentryRepo "tidyhive/database/repository/timeentry"
	"tidyhive/models"
)

// AnalyticsService feeds the admin dashboard.
type AnalyticsService interface {
	Revenue(ctx context.Context, startDate, endDate string) ([]models.RevenuePoint, error)
	Satisfaction(ctx context.Context) (*models.SatisfactionSummary, error)
	CrewUtilization(ctx context.Context, startDate, endDate string) ([]models.CrewUtilization, error)
}

// DefaultAnalyticsService is the production implementation, built on the
// repositories' Mongo aggregation pipelines.
type DefaultAnalyticsService struct {
	BookingRepo bookingRepo.BookingRepository
	CrewRepo    crewRepo.CrewRepository
	EntryRepo   timeentryRepo.TimeEntryRepository
}

func (s *DefaultAnalyticsService) Revenue(ctx context.Context, startDate, endDate string) ([]models.RevenuePoint, error) {
	if startDate > endDate {
		return nil, fmt.Errorf("start date %s is after end date %s", startDate, endDate)
	}
	return s.BookingRepo.RevenueByDay(ctx, startDate, endDate)
}

func (s *DefaultAnalyticsService) Satisfaction(ctx context.Context) (*models.SatisfactionSummary, error) {
	byCrew, err := s.BookingRepo.RatingsByCrew(ctx)
	if err != nil {
		return nil, err
	}

	summary := &models.SatisfactionSummary{ByCrew: byCrew}
	var weighted float64
	for _, r := range byCrew {
		weighted += r.AverageRating * float64(r.Ratings)
		summary.Ratings += r.Ratings
	}
	if summary.Ratings > 0 {
		summary.AverageRating = weighted / float64(summary.Ratings)
	}
	return summary, nil
}

func (s *DefaultAnalyticsService) CrewUtilization(ctx context.Context, startDate, endDate string) ([]models.CrewUtilization, error) {
	from, err := time.Parse("2006-01-02", startDate)
	if err != nil {
		return nil, fmt.Errorf("invalid start date %q: %w", startDate, err)
	}
	endDay, err := time.Parse("2006-01-02", endDate)
	if err != nil {
		return nil, fmt.Errorf("invalid end date %q: %w", endDate, err)
	}
	rows, err := s.EntryRepo.UtilizationByCrew(ctx, from, endDay.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}

	// The aggregation groups by crew ID only; names come from the roster.
	members, err := s.CrewRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(members))
	for i := range members {
		names[members[i].ID] = members[i].Name
	}
	for i := range rows {
		rows[i].Name = names[rows[i].CrewID]
	}
	return rows, nil
}
