package crew

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	bookingRepo "tidyhive/database/repository/booking"
	crewRepo "tidyhive/database/repository/crew"
	timeentryRepo "tidyhive/database/repository/timeentry"
	"tidyhive/models"
	"tidyhive/utils"
)

const crewTokenTTL = 12 * time.Hour

var allowedStatuses = map[string]bool{
	models.CrewStatusAvailable:   true,
	models.CrewStatusOnJob:       true,
	models.CrewStatusBreak:       true,
	models.CrewStatusOffDuty:     true,
	models.CrewStatusUnavailable: true,
}

// DefaultCrewService is the production implementation of CrewService.
type DefaultCrewService struct {
	Repo        crewRepo.CrewRepository
	BookingRepo bookingRepo.BookingRepository
	EntryRepo   timeentryRepo.TimeEntryRepository
	Logger      *zap.Logger
}

// Register creates a crew member with a bcrypt password hash.
func (s *DefaultCrewService) Register(ctx context.Context, member *models.CrewMember, password string) (*models.CrewMember, error) {
	if len(password) < 8 {
		return nil, fmt.Errorf("password must be at least 8 characters")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	member.ID = uuid.New().String()
	member.PasswordHash = string(hash)
	member.Status = models.CrewStatusOffDuty
	member.CreatedAt = now
	member.UpdatedAt = now
	if err := s.Repo.Create(ctx, member); err != nil {
		return nil, err
	}
	return member, nil
}

// Authenticate verifies credentials and issues a crew JWT.
func (s *DefaultCrewService) Authenticate(ctx context.Context, email, password string) (*models.CrewMember, string, error) {
	member, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, "", fmt.Errorf("invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(member.PasswordHash), []byte(password)); err != nil {
		return nil, "", fmt.Errorf("invalid credentials")
	}
	token, err := utils.GenerateToken(member.ID, "crew", crewTokenTTL)
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue token: %w", err)
	}
	return member, token, nil
}

func (s *DefaultCrewService) GetByID(ctx context.Context, crewID string) (*models.CrewMember, error) {
	return s.Repo.GetByID(ctx, crewID)
}

func (s *DefaultCrewService) List(ctx context.Context) ([]models.CrewMember, error) {
	return s.Repo.List(ctx)
}

// JobsForToday returns the member's active bookings for the current date.
func (s *DefaultCrewService) JobsForToday(ctx context.Context, crewID string) ([]models.Booking, error) {
	today := time.Now().Format("2006-01-02")
	return s.BookingRepo.ListByCrewAndDate(ctx, crewID, today)
}

// CheckIn opens a time entry against the booking, moves the booking to
// in_progress and the crew member to on_job, and stores the GPS fix.
func (s *DefaultCrewService) CheckIn(ctx context.Context, crewID string, input CheckInInput) (*models.TimeEntry, error) {
	booking, err := s.BookingRepo.GetByID(ctx, input.BookingID)
	if err != nil {
		return nil, err
	}
	if booking.CrewID != crewID {
		return nil, fmt.Errorf("booking %s is not assigned to crew member %s", input.BookingID, crewID)
	}
	if !booking.IsActive() || booking.Status == models.BookingStatusInProgress {
		return nil, fmt.Errorf("booking %s is %s and cannot be checked into", input.BookingID, booking.Status)
	}
	if active, err := s.EntryRepo.GetActiveByCrew(ctx, crewID); err != nil {
		return nil, err
	} else if active != nil {
		return nil, fmt.Errorf("crew member %s already has an active time entry", crewID)
	}

	entry := &models.TimeEntry{
		ID:        uuid.New().String(),
		CrewID:    crewID,
		BookingID: input.BookingID,
		ClockIn:   time.Now(),
		Status:    models.TimeEntryStatusActive,
	}
	if err := s.EntryRepo.Create(ctx, entry); err != nil {
		return nil, err
	}
	if err := s.BookingRepo.SetStatus(ctx, input.BookingID, models.BookingStatusInProgress); err != nil {
		return nil, err
	}
	if err := s.Repo.SetStatus(ctx, crewID, models.CrewStatusOnJob); err != nil {
		s.Logger.Warn("failed to flip crew status on check-in", zap.String("crew", crewID), zap.Error(err))
	}
	if input.Location != nil {
		if err := s.Repo.SetLocation(ctx, crewID, input.Location); err != nil {
			s.Logger.Warn("failed to store check-in location", zap.String("crew", crewID), zap.Error(err))
		}
	}
	return entry, nil
}

// CheckOut closes the active time entry, completes its booking and returns the
// member to available.
func (s *DefaultCrewService) CheckOut(ctx context.Context, crewID string) (*models.TimeEntry, error) {
	entry, err := s.EntryRepo.GetActiveByCrew(ctx, crewID)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, fmt.Errorf("crew member %s has no active time entry", crewID)
	}

	now := time.Now()
	if err := s.EntryRepo.Close(ctx, entry.ID, now); err != nil {
		return nil, err
	}
	entry.ClockOut = &now
	entry.Status = models.TimeEntryStatusCompleted

	if entry.BookingID != "" {
		if err := s.BookingRepo.SetStatus(ctx, entry.BookingID, models.BookingStatusCompleted); err != nil {
			s.Logger.Warn("failed to complete booking on check-out",
				zap.String("booking", entry.BookingID), zap.Error(err))
		}
	}
	if err := s.Repo.SetStatus(ctx, crewID, models.CrewStatusAvailable); err != nil {
		s.Logger.Warn("failed to flip crew status on check-out", zap.String("crew", crewID), zap.Error(err))
	}
	return entry, nil
}

func (s *DefaultCrewService) SetStatus(ctx context.Context, crewID, status string) error {
	if !allowedStatuses[status] {
		return fmt.Errorf("unknown crew status %q", status)
	}
	return s.Repo.SetStatus(ctx, crewID, status)
}

func (s *DefaultCrewService) ReportLocation(ctx context.Context, crewID string, loc models.GeoLocation) error {
	if loc.Timestamp.IsZero() {
		loc.Timestamp = time.Now()
	}
	return s.Repo.SetLocation(ctx, crewID, &loc)
}

func (s *DefaultCrewService) SetFCMToken(ctx context.Context, crewID, token string) error {
	return s.Repo.SetFCMToken(ctx, crewID, token)
}
