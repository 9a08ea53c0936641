package models

import (
	"fmt"
	"time"
)

// Booking status values.
const (
	BookingStatusScheduled  = "scheduled"
	BookingStatusConfirmed  = "confirmed"
	BookingStatusInProgress = "in_progress"
	BookingStatusCompleted  = "completed"
	BookingStatusCancelled  = "cancelled"
)

// Booking represents a scheduled cleaning job.
type Booking struct {
	ID          string    `bson:"id" json:"id"`                                     // Unique booking identifier (UUID)
	CustomerID  string    `bson:"customer_id" json:"customer_id"`                   // Customer who booked
	Date        string    `bson:"date" json:"date"`                                 // Booking date in "YYYY-MM-DD" format
	StartTime   string    `bson:"start_time" json:"start_time"`                     // Start time in "HH:MM" format
	DurationMin int       `bson:"duration_min" json:"duration_min"`                 // Job duration in minutes
	Status      string    `bson:"status" json:"status"`                             // scheduled, confirmed, in_progress, completed, cancelled
	Address     string    `bson:"address" json:"address"`                           // Service address
	CrewID      string    `bson:"crew_id,omitempty" json:"crew_id,omitempty"`       // Assigned crew member, empty until assignment
	ServiceType string    `bson:"service_type" json:"service_type"`                 // standard, deep, move_out
	Bedrooms    int       `bson:"bedrooms" json:"bedrooms"`                         // Bedroom count for pricing
	Bathrooms   int       `bson:"bathrooms" json:"bathrooms"`                       // Bathroom count for pricing
	Frequency   string    `bson:"frequency" json:"frequency"`                       // one_time, weekly, biweekly, monthly
	AddOns      []string  `bson:"add_ons,omitempty" json:"add_ons,omitempty"`       // Extra services (oven, fridge, windows, laundry)
	Notes       string    `bson:"notes,omitempty" json:"notes,omitempty"`           // Free-text customer notes
	TotalPrice  float64   `bson:"total_price" json:"total_price"`                   // Quoted price at booking time
	Rating      int       `bson:"rating,omitempty" json:"rating,omitempty"`         // Customer satisfaction 1..5, set after completion
	PhotoIDs    []string  `bson:"photo_ids,omitempty" json:"photo_ids,omitempty"`   // Before/after photo public IDs
	SMSOptIn    bool      `bson:"sms_opt_in,omitempty" json:"sms_opt_in,omitempty"` // Customer agreed to reminder texts
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time `bson:"updated_at" json:"updated_at"`
}

// IsActive reports whether the booking still occupies its time slot.
func (b *Booking) IsActive() bool {
	switch b.Status {
	case BookingStatusScheduled, BookingStatusConfirmed, BookingStatusInProgress:
		return true
	}
	return false
}

// StartMinutes converts the "HH:MM" start time to minutes from midnight.
func (b *Booking) StartMinutes() (int, error) {
	var h, m int
	if _, err := fmt.Sscanf(b.StartTime, "%d:%d", &h, &m); err != nil {
		return 0, fmt.Errorf("invalid start time %q: %w", b.StartTime, err)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid start time %q", b.StartTime)
	}
	return h*60 + m, nil
}

// EndMinutes returns the end of the booked interval in minutes from midnight.
func (b *Booking) EndMinutes() (int, error) {
	start, err := b.StartMinutes()
	if err != nil {
		return 0, err
	}
	return start + b.DurationMin, nil
}
