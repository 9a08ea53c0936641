package models

import "time"

// Time entry status values.
const (
	TimeEntryStatusActive    = "active"
	TimeEntryStatusCompleted = "completed"
)

// TimeEntry ties a crew member to a work session via clock-in/clock-out.
type TimeEntry struct {
	ID        string     `bson:"id" json:"id"`
	CrewID    string     `bson:"crew_id" json:"crew_id"`
	BookingID string     `bson:"booking_id,omitempty" json:"booking_id,omitempty"` // optional link to a booking
	ClockIn   time.Time  `bson:"clock_in" json:"clock_in"`
	ClockOut  *time.Time `bson:"clock_out,omitempty" json:"clock_out,omitempty"` // nil while the entry is active
	Status    string     `bson:"status" json:"status"`                           // active, completed
}

// Minutes returns the worked duration; active entries count up to now.
func (e *TimeEntry) Minutes() int {
	end := time.Now()
	if e.ClockOut != nil {
		end = *e.ClockOut
	}
	d := end.Sub(e.ClockIn)
	if d < 0 {
		return 0
	}
	return int(d.Minutes())
}
