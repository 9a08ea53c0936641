package scheduling

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tidyhive/models"
)

func mkBooking(id, crewID, date, start string, durationMin int) models.Booking {
	return models.Booking{
		ID:          id,
		CrewID:      crewID,
		Date:        date,
		StartTime:   start,
		DurationMin: durationMin,
		Status:      models.BookingStatusScheduled,
		Address:     "12 Main St",
	}
}

func conflictIDs(conflicts []models.Conflict) []string {
	ids := make([]string, 0, len(conflicts))
	for _, c := range conflicts {
		ids = append(ids, c.ID)
	}
	sort.Strings(ids)
	return ids
}

func typesOf(conflicts []models.Conflict) map[string]int {
	out := map[string]int{}
	for _, c := range conflicts {
		out[c.Type]++
	}
	return out
}

func TestDetectForBookingOverlap(t *testing.T) {
	t.Run("same crew overlapping intervals conflict", func(t *testing.T) {
		ctx := Context{Bookings: []models.Booking{
			mkBooking("a", "crew-1", "2024-01-15", "09:00", 120),
			mkBooking("b", "crew-1", "2024-01-15", "10:00", 90),
		}}
		conflicts := NewDetector(ctx, DefaultOptions()).DetectForBooking("a")

		types := typesOf(conflicts)
		assert.Equal(t, 1, types[models.ConflictTimeOverlap])
		assert.Equal(t, 1, types[models.ConflictCrewDoubleBooking])
	})

	t.Run("same crew touching intervals do not overlap", func(t *testing.T) {
		// a ends exactly when b starts; half-open intervals do not intersect.
		ctx := Context{Bookings: []models.Booking{
			mkBooking("a", "crew-1", "2024-01-15", "09:00", 60),
			mkBooking("b", "crew-1", "2024-01-15", "10:00", 60),
		}}
		conflicts := NewDetector(ctx, DefaultOptions()).DetectForBooking("a")
		assert.Zero(t, typesOf(conflicts)[models.ConflictTimeOverlap])
		assert.Zero(t, typesOf(conflicts)[models.ConflictCrewDoubleBooking])
	})

	t.Run("different crews overlapping is fine", func(t *testing.T) {
		ctx := Context{Bookings: []models.Booking{
			mkBooking("a", "crew-1", "2024-01-15", "09:00", 120),
			mkBooking("b", "crew-2", "2024-01-15", "09:30", 120),
		}}
		conflicts := NewDetector(ctx, DefaultOptions()).DetectForBooking("a")
		assert.Empty(t, conflicts)
	})

	t.Run("different dates never conflict", func(t *testing.T) {
		ctx := Context{Bookings: []models.Booking{
			mkBooking("a", "crew-1", "2024-01-15", "09:00", 120),
			mkBooking("b", "crew-1", "2024-01-16", "09:00", 120),
		}}
		conflicts := NewDetector(ctx, DefaultOptions()).DetectForBooking("a")
		assert.Empty(t, conflicts)
	})

	t.Run("cancelled bookings are ignored", func(t *testing.T) {
		cancelled := mkBooking("b", "crew-1", "2024-01-15", "09:30", 120)
		cancelled.Status = models.BookingStatusCancelled
		ctx := Context{Bookings: []models.Booking{
			mkBooking("a", "crew-1", "2024-01-15", "09:00", 120),
			cancelled,
		}}
		conflicts := NewDetector(ctx, DefaultOptions()).DetectForBooking("a")
		assert.Empty(t, conflicts)
	})

	t.Run("unknown booking id yields empty list", func(t *testing.T) {
		ctx := Context{Bookings: []models.Booking{
			mkBooking("a", "crew-1", "2024-01-15", "09:00", 120),
		}}
		conflicts := NewDetector(ctx, DefaultOptions()).DetectForBooking("nope")
		require.NotNil(t, conflicts)
		assert.Empty(t, conflicts)
	})

	t.Run("unassigned bookings compete for the same slot", func(t *testing.T) {
		ctx := Context{Bookings: []models.Booking{
			mkBooking("a", "", "2024-01-15", "09:00", 120),
			mkBooking("b", "", "2024-01-15", "10:00", 90),
		}}
		conflicts := NewDetector(ctx, DefaultOptions()).DetectForBooking("a")
		types := typesOf(conflicts)
		assert.Equal(t, 1, types[models.ConflictTimeOverlap])
		// No crew to double-book.
		assert.Zero(t, types[models.ConflictCrewDoubleBooking])
	})
}

func TestOverlapScenario(t *testing.T) {
	// Two-hour job at 09:00 against a 90-minute job at 10:00: a 60-minute
	// overlap that does not dominate either duration.
	ctx := Context{Bookings: []models.Booking{
		mkBooking("a", "crew-1", "2024-01-15", "09:00", 120),
		mkBooking("b", "crew-1", "2024-01-15", "10:00", 90),
	}}
	conflicts := NewDetector(ctx, DefaultOptions()).DetectForBooking("a")

	var overlap *models.Conflict
	for i := range conflicts {
		if conflicts[i].Type == models.ConflictTimeOverlap {
			overlap = &conflicts[i]
		}
	}
	require.NotNil(t, overlap)
	assert.Equal(t, models.SeverityHigh, overlap.Severity)
	assert.ElementsMatch(t, []string{"a", "b"}, overlap.AffectedBookings)
	assert.Contains(t, overlap.AffectedCrewMembers, "crew-1")
	assert.NotEmpty(t, overlap.Suggestions)
}

func TestOverlapSeverityCritical(t *testing.T) {
	// The overlap covers more than half of both bookings.
	ctx := Context{Bookings: []models.Booking{
		mkBooking("a", "crew-1", "2024-01-15", "09:00", 60),
		mkBooking("b", "crew-1", "2024-01-15", "09:15", 60),
	}}
	conflicts := NewDetector(ctx, DefaultOptions()).DetectAll()

	for _, c := range conflicts {
		if c.Type == models.ConflictTimeOverlap {
			assert.Equal(t, models.SeverityCritical, c.Severity)
			return
		}
	}
	t.Fatal("expected a time_overlap conflict")
}

func TestTravelTimeScenario(t *testing.T) {
	first := mkBooking("c", "crew-2", "2024-01-15", "10:00", 60) // ends 11:00
	first.Address = "address X"
	second := mkBooking("d", "crew-2", "2024-01-15", "11:10", 60)
	second.Address = "address Y"

	t.Run("gap below default buffer", func(t *testing.T) {
		ctx := Context{Bookings: []models.Booking{first, second}}
		conflicts := NewDetector(ctx, DefaultOptions()).DetectAll()

		require.Len(t, conflicts, 1)
		c := conflicts[0]
		assert.Equal(t, models.ConflictTravelTime, c.Type)
		assert.Equal(t, models.SeverityMedium, c.Severity)
		// Directional: first booking, then second.
		assert.Equal(t, []string{"c", "d"}, c.AffectedBookings)
		assert.Equal(t, []string{"crew-2"}, c.AffectedCrewMembers)
	})

	t.Run("matrix entry below the gap clears it", func(t *testing.T) {
		ctx := Context{
			Bookings:    []models.Booking{first, second},
			TravelTimes: TravelTimeMatrix{TravelKey("address X", "address Y"): 5},
		}
		conflicts := NewDetector(ctx, DefaultOptions()).DetectAll()
		assert.Empty(t, conflicts)
	})

	t.Run("matrix entry above the gap flags it", func(t *testing.T) {
		ctx := Context{
			Bookings:    []models.Booking{first, second},
			TravelTimes: TravelTimeMatrix{TravelKey("address X", "address Y"): 40},
		}
		conflicts := NewDetector(ctx, DefaultOptions()).DetectAll()
		require.Len(t, conflicts, 1)
		assert.Equal(t, models.ConflictTravelTime, conflicts[0].Type)
	})

	t.Run("same address needs no buffer", func(t *testing.T) {
		sameAddr := second
		sameAddr.Address = first.Address
		ctx := Context{Bookings: []models.Booking{first, sameAddr}}
		conflicts := NewDetector(ctx, DefaultOptions()).DetectAll()
		assert.Empty(t, conflicts)
	})
}

func TestCrewUnavailable(t *testing.T) {
	t.Run("assigned crew on break", func(t *testing.T) {
		ctx := Context{
			Bookings: []models.Booking{mkBooking("a", "crew-1", "2024-01-15", "09:00", 60)},
			CrewMembers: []models.CrewMember{
				{ID: "crew-1", Name: "Ana", Status: models.CrewStatusBreak},
			},
		}
		conflicts := NewDetector(ctx, DefaultOptions()).DetectAll()

		require.Len(t, conflicts, 1)
		c := conflicts[0]
		assert.Equal(t, models.ConflictCrewUnavailable, c.Type)
		assert.Equal(t, models.SeverityHigh, c.Severity)
		assert.Equal(t, []string{"a"}, c.AffectedBookings)
		assert.Equal(t, []string{"crew-1"}, c.AffectedCrewMembers)
	})

	t.Run("available crew is fine", func(t *testing.T) {
		ctx := Context{
			Bookings: []models.Booking{mkBooking("a", "crew-1", "2024-01-15", "09:00", 60)},
			CrewMembers: []models.CrewMember{
				{ID: "crew-1", Status: models.CrewStatusAvailable},
			},
		}
		assert.Empty(t, NewDetector(ctx, DefaultOptions()).DetectAll())
	})

	t.Run("in progress without an active time entry", func(t *testing.T) {
		b := mkBooking("a", "crew-1", "2024-01-15", "09:00", 60)
		b.Status = models.BookingStatusInProgress
		ctx := Context{
			Bookings: []models.Booking{b},
			CrewMembers: []models.CrewMember{
				{ID: "crew-1", Status: models.CrewStatusOnJob},
			},
		}
		conflicts := NewDetector(ctx, DefaultOptions()).DetectAll()

		require.Len(t, conflicts, 1)
		assert.Equal(t, models.ConflictCrewUnavailable, conflicts[0].Type)
		assert.Equal(t, models.SeverityMedium, conflicts[0].Severity)
	})

	t.Run("in progress with a matching active entry", func(t *testing.T) {
		b := mkBooking("a", "crew-1", "2024-01-15", "09:00", 60)
		b.Status = models.BookingStatusInProgress
		ctx := Context{
			Bookings: []models.Booking{b},
			CrewMembers: []models.CrewMember{
				{ID: "crew-1", Status: models.CrewStatusOnJob},
			},
			TimeEntries: []models.TimeEntry{
				{ID: "e1", CrewID: "crew-1", BookingID: "a", Status: models.TimeEntryStatusActive},
			},
		}
		assert.Empty(t, NewDetector(ctx, DefaultOptions()).DetectAll())
	})
}

func TestSymmetry(t *testing.T) {
	ctx := Context{Bookings: []models.Booking{
		mkBooking("a", "crew-1", "2024-01-15", "09:00", 120),
		mkBooking("b", "crew-1", "2024-01-15", "10:00", 90),
	}}
	d := NewDetector(ctx, DefaultOptions())

	forA := d.DetectForBooking("a")
	forB := d.DetectForBooking("b")

	// Deterministic IDs make the symmetric conflicts literally identical.
	assert.Equal(t, conflictIDs(forA), conflictIDs(forB))
}

func TestNoSelfConflicts(t *testing.T) {
	ctx := Context{Bookings: []models.Booking{
		mkBooking("a", "crew-1", "2024-01-15", "09:00", 120),
	}}
	conflicts := NewDetector(ctx, DefaultOptions()).DetectForBooking("a")
	assert.Empty(t, conflicts)
}

func TestDetectAllDeduplicates(t *testing.T) {
	ctx := Context{Bookings: []models.Booking{
		mkBooking("a", "crew-1", "2024-01-15", "09:00", 120),
		mkBooking("b", "crew-1", "2024-01-15", "10:00", 90),
	}}
	conflicts := NewDetector(ctx, DefaultOptions()).DetectAll()

	seen := map[string]int{}
	for _, c := range conflicts {
		seen[c.ID]++
	}
	for id, n := range seen {
		assert.Equal(t, 1, n, "conflict %s reported more than once", id)
	}
	types := typesOf(conflicts)
	assert.Equal(t, 1, types[models.ConflictTimeOverlap])
	assert.Equal(t, 1, types[models.ConflictCrewDoubleBooking])
}

func TestIdempotence(t *testing.T) {
	ctx := Context{
		Bookings: []models.Booking{
			mkBooking("a", "crew-1", "2024-01-15", "09:00", 120),
			mkBooking("b", "crew-1", "2024-01-15", "10:00", 90),
			mkBooking("c", "crew-2", "2024-01-15", "10:00", 60),
		},
		CrewMembers: []models.CrewMember{
			{ID: "crew-1", Status: models.CrewStatusAvailable},
			{ID: "crew-2", Status: models.CrewStatusOffDuty},
		},
	}
	first := NewDetector(ctx, DefaultOptions()).DetectAll()
	second := NewDetector(ctx, DefaultOptions()).DetectAll()
	assert.Equal(t, conflictIDs(first), conflictIDs(second))
}

func TestEmptyInput(t *testing.T) {
	conflicts := NewDetector(Context{}, DefaultOptions()).DetectAll()
	require.NotNil(t, conflicts)
	assert.Empty(t, conflicts)

	summary := Summarize(conflicts)
	assert.Zero(t, summary.Total)
	assert.Zero(t, summary.AffectedBookings)
	assert.Zero(t, summary.AffectedCrewMembers)
	for sev, n := range summary.BySeverity {
		assert.Zero(t, n, "severity %s", sev)
	}
	for typ, n := range summary.ByType {
		assert.Zero(t, n, "type %s", typ)
	}
}

func TestDetectForDateRange(t *testing.T) {
	ctx := Context{Bookings: []models.Booking{
		mkBooking("a", "crew-1", "2024-01-10", "09:00", 120),
		mkBooking("b", "crew-1", "2024-01-10", "10:00", 90),
		// Would conflict with each other, but outside the range.
		mkBooking("c", "crew-1", "2024-01-11", "09:00", 120),
		mkBooking("d", "crew-1", "2024-01-11", "09:30", 120),
	}}

	t.Run("single day range", func(t *testing.T) {
		conflicts := DetectForDateRange("2024-01-10", "2024-01-10", ctx, DefaultOptions())
		for _, c := range conflicts {
			assert.NotContains(t, c.AffectedBookings, "c")
			assert.NotContains(t, c.AffectedBookings, "d")
		}
		assert.Equal(t, 1, typesOf(conflicts)[models.ConflictTimeOverlap])
	})

	t.Run("inclusive end date", func(t *testing.T) {
		conflicts := DetectForDateRange("2024-01-10", "2024-01-11", ctx, DefaultOptions())
		assert.Equal(t, 2, typesOf(conflicts)[models.ConflictTimeOverlap])
	})

	t.Run("inverted range yields empty list", func(t *testing.T) {
		conflicts := DetectForDateRange("2024-01-11", "2024-01-10", ctx, DefaultOptions())
		require.NotNil(t, conflicts)
		assert.Empty(t, conflicts)
	})
}

func TestConflictIDDeterminism(t *testing.T) {
	assert.Equal(t, conflictID(models.ConflictTimeOverlap, "b", "a"), conflictID(models.ConflictTimeOverlap, "a", "b"))
	// Travel-time IDs keep first-to-second direction.
	assert.NotEqual(t, conflictID(models.ConflictTravelTime, "b", "a"), conflictID(models.ConflictTravelTime, "a", "b"))
	assert.Equal(t, "crew_unavailable:a", conflictID(models.ConflictCrewUnavailable, "a", ""))
}
