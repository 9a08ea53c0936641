package booking

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"tidyhive/models"
)

// memBookingRepo is an in-memory BookingRepository.
type memBookingRepo struct {
	bookings map[string]*models.Booking
}

func newMemBookingRepo(bookings ...models.Booking) *memBookingRepo {
	repo := &memBookingRepo{bookings: map[string]*models.Booking{}}
	for i := range bookings {
		b := bookings[i]
		repo.bookings[b.ID] = &b
	}
	return repo
}

func (r *memBookingRepo) Create(ctx context.Context, b *models.Booking) error {
	copied := *b
	r.bookings[b.ID] = &copied
	return nil
}

func (r *memBookingRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	b, ok := r.bookings[id]
	if !ok {
		return nil, errors.New("booking not found")
	}
	copied := *b
	return &copied, nil
}

func (r *memBookingRepo) Update(ctx context.Context, id string, b *models.Booking) error {
	if _, ok := r.bookings[id]; !ok {
		return errors.New("booking not found")
	}
	copied := *b
	r.bookings[id] = &copied
	return nil
}

func (r *memBookingRepo) SetStatus(ctx context.Context, id, status string) error {
	b, ok := r.bookings[id]
	if !ok {
		return errors.New("booking not found")
	}
	b.Status = status
	return nil
}

func (r *memBookingRepo) SetRating(ctx context.Context, id string, rating int) error {
	b, ok := r.bookings[id]
	if !ok {
		return errors.New("booking not found")
	}
	b.Rating = rating
	return nil
}

func (r *memBookingRepo) AddPhoto(ctx context.Context, id, photoID string) error {
	b, ok := r.bookings[id]
	if !ok {
		return errors.New("booking not found")
	}
	b.PhotoIDs = append(b.PhotoIDs, photoID)
	return nil
}

func (r *memBookingRepo) ListActive(ctx context.Context) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range r.bookings {
		if b.IsActive() {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *memBookingRepo) ListByDate(ctx context.Context, date string) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range r.bookings {
		if b.Date == date {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *memBookingRepo) ListByDateRange(ctx context.Context, startDate, endDate string) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range r.bookings {
		if b.Date >= startDate && b.Date <= endDate {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *memBookingRepo) ListByCrewAndDate(ctx context.Context, crewID, date string) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range r.bookings {
		if b.CrewID == crewID && b.Date == date {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *memBookingRepo) RevenueByDay(ctx context.Context, startDate, endDate string) ([]models.RevenuePoint, error) {
	return nil, nil
}

func (r *memBookingRepo) RatingsByCrew(ctx context.Context) ([]models.CrewRating, error) {
	return nil, nil
}

// memCrewRepo is an in-memory CrewRepository.
type memCrewRepo struct {
	members []models.CrewMember
}

func (r *memCrewRepo) Create(ctx context.Context, m *models.CrewMember) error { return nil }
func (r *memCrewRepo) GetByID(ctx context.Context, id string) (*models.CrewMember, error) {
	for i := range r.members {
		if r.members[i].ID == id {
			return &r.members[i], nil
		}
	}
	return nil, errors.New("crew member not found")
}
func (r *memCrewRepo) GetByEmail(ctx context.Context, email string) (*models.CrewMember, error) {
	return nil, errors.New("not implemented")
}
func (r *memCrewRepo) List(ctx context.Context) ([]models.CrewMember, error) {
	return r.members, nil
}
func (r *memCrewRepo) SetStatus(ctx context.Context, id, status string) error { return nil }
func (r *memCrewRepo) SetLocation(ctx context.Context, id string, loc *models.GeoLocation) error {
	return nil
}
func (r *memCrewRepo) SetFCMToken(ctx context.Context, id, token string) error { return nil }
func (r *memCrewRepo) Update(ctx context.Context, id string, m *models.CrewMember) error {
	return nil
}

func scheduled(id, crewID, date, start string, durationMin int) models.Booking {
	return models.Booking{
		ID:          id,
		CrewID:      crewID,
		Date:        date,
		StartTime:   start,
		DurationMin: durationMin,
		Status:      models.BookingStatusScheduled,
	}
}

// memCustomerRepo is an in-memory CustomerRepository.
type memCustomerRepo struct {
	customers map[string]*models.Customer
	upserted  []models.Preference
}

func (r *memCustomerRepo) Create(ctx context.Context, c *models.Customer) error { return nil }
func (r *memCustomerRepo) GetByID(ctx context.Context, id string) (*models.Customer, error) {
	c, ok := r.customers[id]
	if !ok {
		return nil, errors.New("customer not found")
	}
	return c, nil
}
func (r *memCustomerRepo) GetByPhone(ctx context.Context, phone string) (*models.Customer, error) {
	return nil, errors.New("not implemented")
}
func (r *memCustomerRepo) SetPreferences(ctx context.Context, id string, prefs []models.Preference) error {
	return nil
}
func (r *memCustomerRepo) UpsertPreference(ctx context.Context, id string, pref models.Preference) error {
	r.upserted = append(r.upserted, pref)
	return nil
}

type recordingScheduler struct {
	phones []string
}

func (r *recordingScheduler) ScheduleBookingReminder(ctx context.Context, b *models.Booking, phone string) error {
	r.phones = append(r.phones, phone)
	return nil
}

type pushRecord struct {
	crewID string
	data   map[string]string
}

type recordingNotifier struct {
	pushes []pushRecord
}

func (r *recordingNotifier) SendCrewPush(ctx context.Context, crewID, title, body string, data map[string]string) error {
	r.pushes = append(r.pushes, pushRecord{crewID: crewID, data: data})
	return nil
}

func TestCreate(t *testing.T) {
	newService := func() (*DefaultBookingService, *memCustomerRepo, *recordingScheduler) {
		customers := &memCustomerRepo{customers: map[string]*models.Customer{
			"cust-1": {ID: "cust-1", Name: "Pat", Phone: "+15550100"},
		}}
		reminders := &recordingScheduler{}
		return &DefaultBookingService{
			Repo:         newMemBookingRepo(),
			CustomerRepo: customers,
			Reminders:    reminders,
			Logger:       zap.NewNop(),
		}, customers, reminders
	}
	input := CreateBookingInput{
		CustomerID: "cust-1",
		Date:       "2024-01-15",
		StartTime:  "09:00",
		Address:    "12 Main St",
		Quote:      models.QuoteRequest{ServiceType: "standard", Bedrooms: 2, Bathrooms: 1},
	}

	t.Run("prices and persists the booking", func(t *testing.T) {
		svc, _, _ := newService()
		b, err := svc.Create(context.Background(), input)
		require.NoError(t, err)
		assert.NotEmpty(t, b.ID)
		assert.Equal(t, models.BookingStatusScheduled, b.Status)
		assert.Equal(t, 156.0, b.TotalPrice)
		assert.Equal(t, 170, b.DurationMin)

		stored, err := svc.Repo.GetByID(context.Background(), b.ID)
		require.NoError(t, err)
		assert.Equal(t, b.ID, stored.ID)
	})

	t.Run("mines notes into preferences", func(t *testing.T) {
		svc, customers, _ := newService()
		withNotes := input
		withNotes.Notes = "we have a dog, key under the mat"
		_, err := svc.Create(context.Background(), withNotes)
		require.NoError(t, err)

		keys := map[string]bool{}
		for _, p := range customers.upserted {
			keys[p.Key] = true
		}
		assert.True(t, keys["has_pets"])
		assert.True(t, keys["access"])
	})

	t.Run("schedules a reminder on opt-in", func(t *testing.T) {
		svc, _, reminders := newService()
		optedIn := input
		optedIn.SMSOptIn = true
		_, err := svc.Create(context.Background(), optedIn)
		require.NoError(t, err)
		assert.Equal(t, []string{"+15550100"}, reminders.phones)
	})

	t.Run("no reminder without opt-in", func(t *testing.T) {
		svc, _, reminders := newService()
		_, err := svc.Create(context.Background(), input)
		require.NoError(t, err)
		assert.Empty(t, reminders.phones)
	})

	t.Run("unknown customer fails", func(t *testing.T) {
		svc, _, _ := newService()
		bad := input
		bad.CustomerID = "nope"
		_, err := svc.Create(context.Background(), bad)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown customer")
	})
}

func TestReschedule(t *testing.T) {
	t.Run("moves the booking", func(t *testing.T) {
		repo := newMemBookingRepo(scheduled("a", "crew-1", "2024-01-15", "09:00", 60))
		svc := &DefaultBookingService{Repo: repo, Logger: zap.NewNop()}

		b, err := svc.Reschedule(context.Background(), "a", "2024-01-16", "14:00")
		require.NoError(t, err)
		assert.Equal(t, "2024-01-16", b.Date)
		assert.Equal(t, "14:00", b.StartTime)
	})

	t.Run("rejects cancelled bookings", func(t *testing.T) {
		b := scheduled("a", "crew-1", "2024-01-15", "09:00", 60)
		b.Status = models.BookingStatusCancelled
		svc := &DefaultBookingService{Repo: newMemBookingRepo(b), Logger: zap.NewNop()}

		_, err := svc.Reschedule(context.Background(), "a", "2024-01-16", "14:00")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cancelled")
	})

	t.Run("rejects malformed start times", func(t *testing.T) {
		repo := newMemBookingRepo(scheduled("a", "crew-1", "2024-01-15", "09:00", 60))
		svc := &DefaultBookingService{Repo: repo, Logger: zap.NewNop()}

		_, err := svc.Reschedule(context.Background(), "a", "2024-01-16", "2pm")
		assert.Error(t, err)
	})
}

func TestRescheduleToNextFreeSlot(t *testing.T) {
	t.Run("skips past the blocking job", func(t *testing.T) {
		repo := newMemBookingRepo(
			scheduled("a", "crew-1", "2024-01-15", "09:00", 60),
			scheduled("b", "crew-1", "2024-01-15", "09:30", 60), // blocks until 10:30 + buffer
		)
		svc := &DefaultBookingService{Repo: repo, Logger: zap.NewNop()}

		b, err := svc.RescheduleToNextFreeSlot(context.Background(), "a")
		require.NoError(t, err)
		assert.Equal(t, "2024-01-15", b.Date)
		// First half-hour step clearing 10:30 end plus the 15-minute buffer.
		assert.Equal(t, "11:00", b.StartTime)
	})

	t.Run("falls to the next day when the day is full", func(t *testing.T) {
		// Crew booked solid until close.
		repo := newMemBookingRepo(
			scheduled("a", "crew-1", "2024-01-15", "09:00", 60),
			scheduled("b", "crew-1", "2024-01-15", "09:00", 11*60),
		)
		svc := &DefaultBookingService{Repo: repo, Logger: zap.NewNop()}

		b, err := svc.RescheduleToNextFreeSlot(context.Background(), "a")
		require.NoError(t, err)
		assert.Equal(t, "2024-01-16", b.Date)
		assert.Equal(t, "09:00", b.StartTime)
	})
}

func TestReassign(t *testing.T) {
	t.Run("reassign to a specific crew member", func(t *testing.T) {
		repo := newMemBookingRepo(scheduled("a", "crew-1", "2024-01-15", "09:00", 60))
		crews := &memCrewRepo{members: []models.CrewMember{{ID: "crew-2", Status: models.CrewStatusAvailable}}}
		svc := &DefaultBookingService{Repo: repo, CrewRepo: crews, Logger: zap.NewNop()}

		b, err := svc.ReassignCrew(context.Background(), "a", "crew-2")
		require.NoError(t, err)
		assert.Equal(t, "crew-2", b.CrewID)
	})

	t.Run("reassignment pushes to the new crew member", func(t *testing.T) {
		repo := newMemBookingRepo(scheduled("a", "crew-1", "2024-01-15", "09:00", 60))
		crews := &memCrewRepo{members: []models.CrewMember{{ID: "crew-2", Status: models.CrewStatusAvailable}}}
		notifier := &recordingNotifier{}
		svc := &DefaultBookingService{Repo: repo, CrewRepo: crews, Notifier: notifier, Logger: zap.NewNop()}

		_, err := svc.ReassignCrew(context.Background(), "a", "crew-2")
		require.NoError(t, err)
		require.Len(t, notifier.pushes, 1)
		assert.Equal(t, "crew-2", notifier.pushes[0].crewID)
		assert.Equal(t, "a", notifier.pushes[0].data["booking_id"])
	})

	t.Run("reassign to unknown crew fails", func(t *testing.T) {
		repo := newMemBookingRepo(scheduled("a", "crew-1", "2024-01-15", "09:00", 60))
		svc := &DefaultBookingService{Repo: repo, CrewRepo: &memCrewRepo{}, Logger: zap.NewNop()}

		_, err := svc.ReassignCrew(context.Background(), "a", "crew-9")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown crew member")
	})

	t.Run("reassign to first free crew member", func(t *testing.T) {
		repo := newMemBookingRepo(
			scheduled("a", "crew-1", "2024-01-15", "09:00", 60),
			scheduled("busy", "crew-2", "2024-01-15", "09:00", 120),
		)
		crews := &memCrewRepo{members: []models.CrewMember{
			{ID: "crew-2", Status: models.CrewStatusAvailable}, // overlapping job
			{ID: "crew-3", Status: models.CrewStatusOffDuty},   // off shift
			{ID: "crew-4", Status: models.CrewStatusAvailable}, // free
		}}
		svc := &DefaultBookingService{Repo: repo, CrewRepo: crews, Logger: zap.NewNop()}

		b, err := svc.ReassignToAvailableCrew(context.Background(), "a")
		require.NoError(t, err)
		assert.Equal(t, "crew-4", b.CrewID)
	})

	t.Run("no crew available", func(t *testing.T) {
		repo := newMemBookingRepo(scheduled("a", "crew-1", "2024-01-15", "09:00", 60))
		crews := &memCrewRepo{members: []models.CrewMember{
			{ID: "crew-2", Status: models.CrewStatusOffDuty},
		}}
		svc := &DefaultBookingService{Repo: repo, CrewRepo: crews, Logger: zap.NewNop()}

		_, err := svc.ReassignToAvailableCrew(context.Background(), "a")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no available crew")
	})
}

func TestExtendDuration(t *testing.T) {
	repo := newMemBookingRepo(scheduled("a", "crew-1", "2024-01-15", "09:00", 90))
	svc := &DefaultBookingService{Repo: repo, Logger: zap.NewNop()}

	b, err := svc.ExtendDuration(context.Background(), "a", 30)
	require.NoError(t, err)
	assert.Equal(t, 120, b.DurationMin)

	_, err = svc.ExtendDuration(context.Background(), "a", 0)
	assert.Error(t, err)
}

func TestRate(t *testing.T) {
	repo := newMemBookingRepo(scheduled("a", "crew-1", "2024-01-15", "09:00", 90))
	svc := &DefaultBookingService{Repo: repo, Logger: zap.NewNop()}

	require.NoError(t, svc.Rate(context.Background(), "a", 5))
	b, err := repo.GetByID(context.Background(), "a")
	require.NoError(t, err)
	assert.Equal(t, 5, b.Rating)

	assert.Error(t, svc.Rate(context.Background(), "a", 0))
	assert.Error(t, svc.Rate(context.Background(), "a", 6))
}

func TestMinutesToClock(t *testing.T) {
	assert.Equal(t, "09:00", minutesToClock(540))
	assert.Equal(t, "11:30", minutesToClock(690))
	assert.Equal(t, "00:05", minutesToClock(5))
}
