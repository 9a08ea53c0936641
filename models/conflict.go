package models

// Conflict categories.
const (
	ConflictTimeOverlap         = "time_overlap"
	ConflictCrewDoubleBooking   = "crew_double_booking"
	ConflictCrewUnavailable     = "crew_unavailable"
	ConflictTravelTime          = "travel_time"
	ConflictResourceUnavailable = "resource_unavailable"
)

// Conflict severities.
const (
	SeverityCritical = "critical"
	SeverityHigh     = "high"
	SeverityMedium   = "medium"
	SeverityLow      = "low"
)

// Suggestion action kinds.
const (
	ActionReschedule   = "reschedule"
	ActionReassignCrew = "reassign_crew"
	ActionExtendTime   = "extend_time"
	ActionAddCrew      = "add_crew"
)

// Suggestion is an advisory resolution attached to a conflict. Applying one is a
// separate booking mutation; the suggestion itself carries no state.
type Suggestion struct {
	ID     string `json:"id"`     // e.g. "reschedule_booking_1"
	Label  string `json:"label"`  // human-readable action description
	Action string `json:"action"` // reschedule, reassign_crew, extend_time, add_crew
}

// Conflict is a derived scheduling problem. Conflicts are recomputed on every
// request and never persisted.
type Conflict struct {
	ID                  string       `json:"id"`
	Type                string       `json:"type"`
	Severity            string       `json:"severity"`
	Description         string       `json:"description"`
	AffectedBookings    []string     `json:"affected_bookings"`
	AffectedCrewMembers []string     `json:"affected_crew_members,omitempty"`
	Suggestions         []Suggestion `json:"suggestions,omitempty"`
}

// ConflictSummary aggregates a conflict list for the dashboard.
type ConflictSummary struct {
	Total               int            `json:"total"`
	BySeverity          map[string]int `json:"by_severity"`
	ByType              map[string]int `json:"by_type"`
	AffectedBookings    int            `json:"affected_bookings"`
	AffectedCrewMembers int            `json:"affected_crew_members"`
}
