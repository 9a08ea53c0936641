package scheduling

import (
	"tidyhive/models"
)

// Context is the in-memory snapshot conflict detection runs over. The detector
// never mutates it; every request builds a fresh one from the repositories.
type Context struct {
	Bookings    []models.Booking
	CrewMembers []models.CrewMember
	TimeEntries []models.TimeEntry
	TravelTimes TravelTimeMatrix
}

// TravelTimeMatrix maps an address pair to expected travel minutes.
// It may be empty; lookups then fall back to the default buffer.
type TravelTimeMatrix map[string]int

// TravelKey builds the lookup key for a directed address pair.
func TravelKey(from, to string) string {
	return from + "|" + to
}

// Minutes returns the expected travel minutes between two addresses.
func (m TravelTimeMatrix) Minutes(from, to string) (int, bool) {
	if m == nil {
		return 0, false
	}
	v, ok := m[TravelKey(from, to)]
	return v, ok
}

// Options carries the tunable detection knobs. Passed in explicitly so the
// detector stays testable without process-level configuration.
type Options struct {
	// DefaultTravelBufferMin is the minimum gap required between consecutive
	// jobs at different addresses when the travel matrix has no entry.
	DefaultTravelBufferMin int
}

// DefaultOptions returns the production defaults.
func DefaultOptions() Options {
	return Options{DefaultTravelBufferMin: 15}
}
