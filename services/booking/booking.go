package booking

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	bookingRepo "tidyhive/database/repository/booking"
	crewRepo "tidyhive/database/repository/crew"
	customerRepo "tidyhive/database/repository/customer"
	"tidyhive/models"
	ai "tidyhive/services/intelligence"
)

// ReminderScheduler queues a reminder message ahead of the booking start.
type ReminderScheduler interface {
	ScheduleBookingReminder(ctx context.Context, booking *models.Booking, phone string) error
}

// CrewNotifier pushes schedule changes to a crew member's device.
type CrewNotifier interface {
	SendCrewPush(ctx context.Context, crewID, title, body string, data map[string]string) error
}

// DefaultBookingService is the production implementation of BookingService.
type DefaultBookingService struct {
	Repo         bookingRepo.BookingRepository
	CrewRepo     crewRepo.CrewRepository
	CustomerRepo customerRepo.CustomerRepository
	Reminders    ReminderScheduler
	Notifier     CrewNotifier
	Logger       *zap.Logger
}

// notifyCrew is best-effort; a push failure never fails the mutation.
func (s *DefaultBookingService) notifyCrew(ctx context.Context, b *models.Booking, title, body string) {
	if s.Notifier == nil || b.CrewID == "" {
		return
	}
	data := map[string]string{"booking_id": b.ID, "date": b.Date, "start_time": b.StartTime}
	if err := s.Notifier.SendCrewPush(ctx, b.CrewID, title, body, data); err != nil {
		s.Logger.Warn("failed to push schedule change",
			zap.String("booking", b.ID), zap.String("crew", b.CrewID), zap.Error(err))
	}
}

// Business hours bound slot search when rescheduling.
const (
	dayStartMinutes = 8 * 60
	dayEndMinutes   = 20 * 60
	slotStepMinutes = 30
	slotBufferMin   = 15
)

// Quote prices a request without persisting anything.
func (s *DefaultBookingService) Quote(req models.QuoteRequest) (*models.Quote, error) {
	return BuildQuote(req)
}

// Create quotes and persists a new booking, mines the notes for customer
// preferences, and queues an SMS reminder when the customer opted in.
func (s *DefaultBookingService) Create(ctx context.Context, input CreateBookingInput) (*models.Booking, error) {
	customer, err := s.CustomerRepo.GetByID(ctx, input.CustomerID)
	if err != nil {
		return nil, fmt.Errorf("unknown customer %s: %w", input.CustomerID, err)
	}

	quote, err := BuildQuote(input.Quote)
	if err != nil {
		return nil, fmt.Errorf("could not price booking: %w", err)
	}

	now := time.Now()
	b := &models.Booking{
		ID:          uuid.New().String(),
		CustomerID:  input.CustomerID,
		Date:        input.Date,
		StartTime:   input.StartTime,
		DurationMin: quote.DurationMin,
		Status:      models.BookingStatusScheduled,
		Address:     input.Address,
		ServiceType: input.Quote.ServiceType,
		Bedrooms:    input.Quote.Bedrooms,
		Bathrooms:   input.Quote.Bathrooms,
		Frequency:   input.Quote.Frequency,
		AddOns:      input.Quote.AddOns,
		Notes:       input.Notes,
		TotalPrice:  quote.Total,
		SMSOptIn:    input.SMSOptIn,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if _, err := b.StartMinutes(); err != nil {
		return nil, err
	}
	if err := s.Repo.Create(ctx, b); err != nil {
		return nil, err
	}

	// Preference mining and reminder scheduling are best-effort.
	for _, pref := range ai.ExtractPreferences(input.Notes) {
		if err := s.CustomerRepo.UpsertPreference(ctx, customer.ID, pref); err != nil {
			s.Logger.Warn("failed to store extracted preference",
				zap.String("customer", customer.ID), zap.String("key", pref.Key), zap.Error(err))
		}
	}
	if input.SMSOptIn && s.Reminders != nil && customer.Phone != "" {
		if err := s.Reminders.ScheduleBookingReminder(ctx, b, customer.Phone); err != nil {
			s.Logger.Warn("failed to schedule booking reminder",
				zap.String("booking", b.ID), zap.Error(err))
		}
	}
	return b, nil
}

func (s *DefaultBookingService) Get(ctx context.Context, bookingID string) (*models.Booking, error) {
	return s.Repo.GetByID(ctx, bookingID)
}

func (s *DefaultBookingService) ListByDate(ctx context.Context, date string) ([]models.Booking, error) {
	return s.Repo.ListByDate(ctx, date)
}

// Reschedule moves a booking to an explicit new date and start time.
func (s *DefaultBookingService) Reschedule(ctx context.Context, bookingID, newDate, newStartTime string) (*models.Booking, error) {
	b, err := s.Repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !b.IsActive() {
		return nil, fmt.Errorf("booking %s is %s and cannot be rescheduled", bookingID, b.Status)
	}
	b.Date = newDate
	b.StartTime = newStartTime
	if _, err := b.StartMinutes(); err != nil {
		return nil, err
	}
	if err := s.Repo.Update(ctx, bookingID, b); err != nil {
		return nil, err
	}
	s.notifyCrew(ctx, b, "Job rescheduled",
		fmt.Sprintf("Your job on %s now starts at %s.", b.Date, b.StartTime))
	return b, nil
}

// RescheduleToNextFreeSlot shifts the booking to the first slot on the same
// day that clears its crew's other jobs, falling back to the same time next
// day when the day is full.
func (s *DefaultBookingService) RescheduleToNextFreeSlot(ctx context.Context, bookingID string) (*models.Booking, error) {
	b, err := s.Repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !b.IsActive() {
		return nil, fmt.Errorf("booking %s is %s and cannot be rescheduled", bookingID, b.Status)
	}

	others, err := s.Repo.ListByDate(ctx, b.Date)
	if err != nil {
		return nil, err
	}
	start, err := b.StartMinutes()
	if err != nil {
		return nil, err
	}

	for candidate := start + slotStepMinutes; candidate+b.DurationMin <= dayEndMinutes; candidate += slotStepMinutes {
		if s.slotClear(b, others, candidate) {
			return s.Reschedule(ctx, bookingID, b.Date, minutesToClock(candidate))
		}
	}

	nextDay, err := time.Parse("2006-01-02", b.Date)
	if err != nil {
		return nil, fmt.Errorf("invalid booking date %q: %w", b.Date, err)
	}
	return s.Reschedule(ctx, bookingID, nextDay.AddDate(0, 0, 1).Format("2006-01-02"), b.StartTime)
}

// slotClear checks a candidate start against the crew's other jobs that day.
func (s *DefaultBookingService) slotClear(b *models.Booking, others []models.Booking, candidate int) bool {
	end := candidate + b.DurationMin
	for i := range others {
		o := &others[i]
		if o.ID == b.ID || !o.IsActive() {
			continue
		}
		sameCrew := b.CrewID != "" && o.CrewID == b.CrewID
		bothUnassigned := b.CrewID == "" && o.CrewID == ""
		if !sameCrew && !bothUnassigned {
			continue
		}
		oStart, err := o.StartMinutes()
		if err != nil {
			continue
		}
		oEnd := oStart + o.DurationMin
		if candidate < oEnd+slotBufferMin && oStart < end+slotBufferMin {
			return false
		}
	}
	return true
}

// ReassignCrew assigns a specific crew member to the booking.
func (s *DefaultBookingService) ReassignCrew(ctx context.Context, bookingID, crewID string) (*models.Booking, error) {
	b, err := s.Repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if _, err := s.CrewRepo.GetByID(ctx, crewID); err != nil {
		return nil, fmt.Errorf("unknown crew member %s: %w", crewID, err)
	}
	b.CrewID = crewID
	if err := s.Repo.Update(ctx, bookingID, b); err != nil {
		return nil, err
	}
	s.notifyCrew(ctx, b, "New job assigned",
		fmt.Sprintf("You have a job at %s on %s, %s.", b.Address, b.Date, b.StartTime))
	return b, nil
}

// ReassignToAvailableCrew picks the first crew member who is on shift and has
// no overlapping job that day.
func (s *DefaultBookingService) ReassignToAvailableCrew(ctx context.Context, bookingID string) (*models.Booking, error) {
	b, err := s.Repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	start, err := b.StartMinutes()
	if err != nil {
		return nil, err
	}
	end := start + b.DurationMin

	members, err := s.CrewRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range members {
		m := &members[i]
		if m.ID == b.CrewID || m.Off() {
			continue
		}
		jobs, err := s.Repo.ListByCrewAndDate(ctx, m.ID, b.Date)
		if err != nil {
			return nil, err
		}
		if crewFree(jobs, b.ID, start, end) {
			return s.ReassignCrew(ctx, bookingID, m.ID)
		}
	}
	return nil, fmt.Errorf("no available crew member for booking %s on %s", bookingID, b.Date)
}

func crewFree(jobs []models.Booking, skipID string, start, end int) bool {
	for i := range jobs {
		j := &jobs[i]
		if j.ID == skipID || !j.IsActive() {
			continue
		}
		jStart, err := j.StartMinutes()
		if err != nil {
			continue
		}
		if start < jStart+j.DurationMin && jStart < end {
			return false
		}
	}
	return true
}

// ExtendDuration lengthens the booked slot.
func (s *DefaultBookingService) ExtendDuration(ctx context.Context, bookingID string, extraMinutes int) (*models.Booking, error) {
	if extraMinutes <= 0 {
		return nil, fmt.Errorf("extension must be positive, got %d", extraMinutes)
	}
	b, err := s.Repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	b.DurationMin += extraMinutes
	if err := s.Repo.Update(ctx, bookingID, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *DefaultBookingService) Cancel(ctx context.Context, bookingID string) error {
	return s.Repo.SetStatus(ctx, bookingID, models.BookingStatusCancelled)
}

// Rate records the customer satisfaction score for a completed job.
func (s *DefaultBookingService) Rate(ctx context.Context, bookingID string, rating int) error {
	if rating < 1 || rating > 5 {
		return fmt.Errorf("rating must be between 1 and 5, got %d", rating)
	}
	return s.Repo.SetRating(ctx, bookingID, rating)
}

func minutesToClock(m int) string {
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}
