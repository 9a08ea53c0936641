package scheduling

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	bookingRepo "tidyhive/database/repository/booking"
	crewRepo "tidyhive/database/repository/crew"
	timeentryRepo "tidyhive/database/repository/timeentry"
	"tidyhive/models"
	"tidyhive/services/booking"
)

const (
	ackKeyPrefix = "conflict:ack:"
	ackTTL       = 7 * 24 * time.Hour
)

// ConflictQuery selects the detection scope. Exactly one of BookingID or the
// StartDate/EndDate pair is set; neither means "all active bookings".
type ConflictQuery struct {
	BookingID       string
	StartDate       string
	EndDate         string
	IncludeResolved bool
}

// ConflictService runs detection over fresh snapshots and applies resolutions.
type ConflictService interface {
	Detect(ctx context.Context, q ConflictQuery) ([]models.Conflict, models.ConflictSummary, error)
	Acknowledge(ctx context.Context, conflictID, action string) error
	ApplySuggestion(ctx context.Context, conflictID, suggestionID string) (string, error)
}

// DefaultConflictService is the production implementation.
type DefaultConflictService struct {
	BookingRepo bookingRepo.BookingRepository
	CrewRepo    crewRepo.CrewRepository
	EntryRepo   timeentryRepo.TimeEntryRepository
	BookingSvc  booking.BookingService
	Cache       *redis.Client
	TravelTimes TravelTimeMatrix
	Opts        Options
	Logger      *zap.Logger
}

// Detect loads a fresh snapshot and runs the detector over it. The three
// fetches are independent, so they run concurrently and are joined before
// detection starts.
func (s *DefaultConflictService) Detect(ctx context.Context, q ConflictQuery) ([]models.Conflict, models.ConflictSummary, error) {
	snapshot, err := s.loadSnapshot(ctx, q)
	if err != nil {
		return nil, models.ConflictSummary{}, err
	}

	var conflicts []models.Conflict
	switch {
	case q.BookingID != "":
		conflicts = NewDetector(snapshot, s.Opts).DetectForBooking(q.BookingID)
	case q.StartDate != "" && q.EndDate != "":
		conflicts = DetectForDateRange(q.StartDate, q.EndDate, snapshot, s.Opts)
	default:
		conflicts = NewDetector(snapshot, s.Opts).DetectAll()
	}

	if !q.IncludeResolved {
		conflicts, err = s.dropAcknowledged(ctx, conflicts)
		if err != nil {
			// Acknowledgements are a convenience; never fail detection over them.
			s.Logger.Warn("failed to filter acknowledged conflicts", zap.Error(err))
		}
	}
	return conflicts, Summarize(conflicts), nil
}

func (s *DefaultConflictService) loadSnapshot(ctx context.Context, q ConflictQuery) (Context, error) {
	snapshot := Context{TravelTimes: s.TravelTimes}

	var wg sync.WaitGroup
	var bookingsErr, crewErr, entriesErr error

	wg.Add(3)
	go func() {
		defer wg.Done()
		if q.StartDate != "" && q.EndDate != "" && q.StartDate <= q.EndDate {
			snapshot.Bookings, bookingsErr = s.BookingRepo.ListByDateRange(ctx, q.StartDate, q.EndDate)
		} else {
			snapshot.Bookings, bookingsErr = s.BookingRepo.ListActive(ctx)
		}
	}()
	go func() {
		defer wg.Done()
		snapshot.CrewMembers, crewErr = s.CrewRepo.List(ctx)
	}()
	go func() {
		defer wg.Done()
		snapshot.TimeEntries, entriesErr = s.EntryRepo.ListActive(ctx)
	}()
	wg.Wait()

	for _, err := range []error{bookingsErr, crewErr, entriesErr} {
		if err != nil {
			return Context{}, fmt.Errorf("failed to load conflict snapshot: %w", err)
		}
	}
	return snapshot, nil
}

func (s *DefaultConflictService) dropAcknowledged(ctx context.Context, conflicts []models.Conflict) ([]models.Conflict, error) {
	if len(conflicts) == 0 || s.Cache == nil {
		return conflicts, nil
	}
	keys := make([]string, len(conflicts))
	for i, c := range conflicts {
		keys[i] = ackKeyPrefix + c.ID
	}
	acked, err := s.Cache.MGet(ctx, keys...).Result()
	if err != nil {
		return conflicts, err
	}
	kept := conflicts[:0]
	for i, c := range conflicts {
		if acked[i] == nil {
			kept = append(kept, c)
		}
	}
	return kept, nil
}

// Acknowledge records a resolve or dismiss action against a conflict ID.
// Conflicts are never persisted, so the acknowledgement lives in Redis and
// simply hides the conflict from subsequent polls.
func (s *DefaultConflictService) Acknowledge(ctx context.Context, conflictID, action string) error {
	if action != "resolve" && action != "dismiss" {
		return fmt.Errorf("unknown action %q", action)
	}
	if conflictID == "" {
		return fmt.Errorf("conflictId is required")
	}
	if err := s.Cache.Set(ctx, ackKeyPrefix+conflictID, action, ackTTL).Err(); err != nil {
		return fmt.Errorf("failed to record acknowledgement: %w", err)
	}
	return nil
}

// ApplySuggestion dispatches a suggestion from the fixed vocabulary to the
// matching booking mutation. The conflict ID encodes the bookings involved.
func (s *DefaultConflictService) ApplySuggestion(ctx context.Context, conflictID, suggestionID string) (string, error) {
	if !KnownSuggestionIDs[suggestionID] {
		return "", fmt.Errorf("unknown suggestion %q", suggestionID)
	}
	first, second, err := bookingsFromConflictID(conflictID)
	if err != nil {
		return "", err
	}

	switch suggestionID {
	case SuggestReschedule1:
		b, err := s.BookingSvc.RescheduleToNextFreeSlot(ctx, first)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("booking %s rescheduled to %s %s", b.ID, b.Date, b.StartTime), nil
	case SuggestReschedule2:
		if second == "" {
			return "", fmt.Errorf("conflict %s involves a single booking", conflictID)
		}
		b, err := s.BookingSvc.RescheduleToNextFreeSlot(ctx, second)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("booking %s rescheduled to %s %s", b.ID, b.Date, b.StartTime), nil
	case SuggestReassign1:
		b, err := s.BookingSvc.ReassignToAvailableCrew(ctx, first)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("booking %s reassigned to crew %s", b.ID, b.CrewID), nil
	case SuggestReassign2:
		if second == "" {
			return "", fmt.Errorf("conflict %s involves a single booking", conflictID)
		}
		b, err := s.BookingSvc.ReassignToAvailableCrew(ctx, second)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("booking %s reassigned to crew %s", b.ID, b.CrewID), nil
	case SuggestExtendSlot:
		b, err := s.BookingSvc.ExtendDuration(ctx, first, 30)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("booking %s extended to %d minutes", b.ID, b.DurationMin), nil
	case SuggestAddCrew:
		// Advisory only: bringing someone on shift is a dispatcher phone call,
		// not a data mutation.
		return "contact an off-duty crew member to come on shift, then reassign the booking", nil
	}
	return "", fmt.Errorf("unknown suggestion %q", suggestionID)
}

// bookingsFromConflictID recovers the booking IDs a conflict references.
// IDs look like "<type>:<booking>[:<booking-or-marker>]".
func bookingsFromConflictID(conflictID string) (first, second string, err error) {
	parts := strings.Split(conflictID, ":")
	if len(parts) < 2 || parts[1] == "" {
		return "", "", fmt.Errorf("malformed conflict id %q", conflictID)
	}
	first = parts[1]
	if len(parts) > 2 && parts[2] != "no_active_entry" {
		second = parts[2]
	}
	return first, second, nil
}
