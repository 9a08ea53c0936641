package scheduling

import (
	"fmt"

	"tidyhive/models"
)

// Detector scans a booking snapshot for scheduling conflicts. It is a pure
// computation: it reads booking, crew and time-entry state and writes nothing.
type Detector struct {
	ctx  Context
	opts Options

	crewByID          map[string]*models.CrewMember
	activeEntryByCrew map[string]map[string]bool // crewID -> set of bookingIDs with an active entry
}

// NewDetector builds a detector over the given snapshot.
func NewDetector(ctx Context, opts Options) *Detector {
	if opts.DefaultTravelBufferMin <= 0 {
		opts.DefaultTravelBufferMin = DefaultOptions().DefaultTravelBufferMin
	}
	d := &Detector{
		ctx:               ctx,
		opts:              opts,
		crewByID:          make(map[string]*models.CrewMember, len(ctx.CrewMembers)),
		activeEntryByCrew: make(map[string]map[string]bool),
	}
	for i := range ctx.CrewMembers {
		m := &ctx.CrewMembers[i]
		d.crewByID[m.ID] = m
	}
	for i := range ctx.TimeEntries {
		e := &ctx.TimeEntries[i]
		if e.Status != models.TimeEntryStatusActive {
			continue
		}
		set := d.activeEntryByCrew[e.CrewID]
		if set == nil {
			set = make(map[string]bool)
			d.activeEntryByCrew[e.CrewID] = set
		}
		set[e.BookingID] = true
	}
	return d
}

// DetectForBooking compares one booking against every other active booking in
// the snapshot. An unknown or inactive booking ID degrades to "no conflicts
// found" rather than failing the caller.
func (d *Detector) DetectForBooking(bookingID string) []models.Conflict {
	conflicts := []models.Conflict{}

	var target *models.Booking
	for i := range d.ctx.Bookings {
		if d.ctx.Bookings[i].ID == bookingID {
			target = &d.ctx.Bookings[i]
			break
		}
	}
	if target == nil || !target.IsActive() {
		return conflicts
	}

	conflicts = append(conflicts, d.bookingConflicts(target)...)
	for i := range d.ctx.Bookings {
		other := &d.ctx.Bookings[i]
		if other.ID == target.ID || !other.IsActive() {
			continue
		}
		conflicts = append(conflicts, d.pairConflicts(target, other)...)
	}
	return conflicts
}

// DetectAll runs the pairwise scan over every active booking in the snapshot.
// Each unordered pair is examined once, so symmetric conflicts are reported
// once per category. Quadratic over the active booking count, which is dozens
// per day at the intended scale.
func (d *Detector) DetectAll() []models.Conflict {
	conflicts := []models.Conflict{}

	for i := range d.ctx.Bookings {
		a := &d.ctx.Bookings[i]
		if !a.IsActive() {
			continue
		}
		conflicts = append(conflicts, d.bookingConflicts(a)...)
		for j := i + 1; j < len(d.ctx.Bookings); j++ {
			b := &d.ctx.Bookings[j]
			if !b.IsActive() {
				continue
			}
			conflicts = append(conflicts, d.pairConflicts(a, b)...)
		}
	}
	return conflicts
}

// DetectForDateRange filters the snapshot to bookings scheduled within
// [startDate, endDate] inclusive and scans the filtered set. An inverted range
// yields an empty list; callers validate upstream.
func DetectForDateRange(startDate, endDate string, ctx Context, opts Options) []models.Conflict {
	if startDate > endDate {
		return []models.Conflict{}
	}
	filtered := Context{
		CrewMembers: ctx.CrewMembers,
		TimeEntries: ctx.TimeEntries,
		TravelTimes: ctx.TravelTimes,
	}
	for _, b := range ctx.Bookings {
		if b.Date >= startDate && b.Date <= endDate {
			filtered.Bookings = append(filtered.Bookings, b)
		}
	}
	return NewDetector(filtered, opts).DetectAll()
}

// bookingConflicts runs the single-booking checks (crew availability).
func (d *Detector) bookingConflicts(b *models.Booking) []models.Conflict {
	var conflicts []models.Conflict
	if b.CrewID == "" {
		return conflicts
	}

	crew, ok := d.crewByID[b.CrewID]
	if ok && crew.Off() {
		conflicts = append(conflicts, models.Conflict{
			ID:                  conflictID(models.ConflictCrewUnavailable, b.ID, ""),
			Type:                models.ConflictCrewUnavailable,
			Severity:            models.SeverityHigh,
			Description:         fmt.Sprintf("%s is %s but assigned to booking %s at %s %s", crew.Name, crew.Status, b.ID, b.Date, b.StartTime),
			AffectedBookings:    []string{b.ID},
			AffectedCrewMembers: []string{b.CrewID},
			Suggestions:         suggestionsFor(models.ConflictCrewUnavailable),
		})
	}

	// An in-progress job should have its crew clocked in against it.
	if b.Status == models.BookingStatusInProgress && !d.activeEntryByCrew[b.CrewID][b.ID] {
		conflicts = append(conflicts, models.Conflict{
			ID:                  models.ConflictCrewUnavailable + ":" + b.ID + ":no_active_entry",
			Type:                models.ConflictCrewUnavailable,
			Severity:            models.SeverityMedium,
			Description:         fmt.Sprintf("booking %s is in progress but crew %s has no active time entry for it", b.ID, b.CrewID),
			AffectedBookings:    []string{b.ID},
			AffectedCrewMembers: []string{b.CrewID},
			Suggestions:         suggestionsFor(models.ConflictCrewUnavailable),
		})
	}
	return conflicts
}

// pairConflicts compares two active bookings. The result is symmetric in a, b.
func (d *Detector) pairConflicts(a, b *models.Booking) []models.Conflict {
	if a.Date != b.Date {
		return nil
	}

	s1, err1 := a.StartMinutes()
	s2, err2 := b.StartMinutes()
	if err1 != nil || err2 != nil {
		// Malformed times never fail the caller; the pair just reports nothing.
		return nil
	}
	e1 := s1 + a.DurationMin
	e2 := s2 + b.DurationMin

	sameCrew := a.CrewID != "" && a.CrewID == b.CrewID
	// Bookings with no crew assigned yet are treated conservatively as
	// competing for the same (unassigned) crew.
	bothUnassigned := a.CrewID == "" && b.CrewID == ""

	overlap := minInt(e1, e2) - maxInt(s1, s2)
	var conflicts []models.Conflict

	if overlap > 0 && (sameCrew || bothUnassigned) {
		severity := models.SeverityHigh
		if 2*overlap > a.DurationMin && 2*overlap > b.DurationMin {
			severity = models.SeverityCritical
		}
		c := models.Conflict{
			ID:               conflictID(models.ConflictTimeOverlap, a.ID, b.ID),
			Type:             models.ConflictTimeOverlap,
			Severity:         severity,
			Description:      fmt.Sprintf("bookings %s and %s overlap by %d minutes on %s", a.ID, b.ID, overlap, a.Date),
			AffectedBookings: []string{a.ID, b.ID},
			Suggestions:      suggestionsFor(models.ConflictTimeOverlap),
		}
		if sameCrew {
			c.AffectedCrewMembers = []string{a.CrewID}
		}
		conflicts = append(conflicts, c)

		if sameCrew {
			conflicts = append(conflicts, models.Conflict{
				ID:                  conflictID(models.ConflictCrewDoubleBooking, a.ID, b.ID),
				Type:                models.ConflictCrewDoubleBooking,
				Severity:            models.SeverityCritical,
				Description:         fmt.Sprintf("crew %s is booked for both %s and %s at the same time on %s", a.CrewID, a.ID, b.ID, a.Date),
				AffectedBookings:    []string{a.ID, b.ID},
				AffectedCrewMembers: []string{a.CrewID},
				Suggestions:         suggestionsFor(models.ConflictCrewDoubleBooking),
			})
		}
		return conflicts
	}

	// No overlap: check the travel buffer for back-to-back jobs of one crew
	// at different addresses.
	if sameCrew && a.Address != b.Address {
		first, second := a, b
		gap := s2 - e1
		if s1 > s2 {
			first, second = b, a
			gap = s1 - e2
		}
		required, ok := d.ctx.TravelTimes.Minutes(first.Address, second.Address)
		if !ok {
			required = d.opts.DefaultTravelBufferMin
		}
		if gap >= 0 && gap < required {
			conflicts = append(conflicts, models.Conflict{
				ID:                  conflictID(models.ConflictTravelTime, first.ID, second.ID),
				Type:                models.ConflictTravelTime,
				Severity:            models.SeverityMedium,
				Description:         fmt.Sprintf("crew %s has %d minutes between %s and %s but needs %d to travel", a.CrewID, gap, first.ID, second.ID, required),
				AffectedBookings:    []string{first.ID, second.ID},
				AffectedCrewMembers: []string{a.CrewID},
				Suggestions:         suggestionsFor(models.ConflictTravelTime),
			})
		}
	}
	return conflicts
}

// conflictID is deterministic so repeated detection over the same snapshot
// yields identical output and acknowledgements can reference a conflict.
func conflictID(conflictType, a, b string) string {
	if b == "" {
		return conflictType + ":" + a
	}
	if b < a && conflictType != models.ConflictTravelTime {
		a, b = b, a
	}
	return conflictType + ":" + a + ":" + b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
