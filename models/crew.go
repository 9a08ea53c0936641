package models

import "time"

// Crew member status values.
const (
	CrewStatusAvailable   = "available"
	CrewStatusOnJob       = "on_job"
	CrewStatusBreak       = "break"
	CrewStatusOffDuty     = "off_duty"
	CrewStatusUnavailable = "unavailable"
)

// GeoLocation is a GPS fix reported by the crew mobile app.
type GeoLocation struct {
	Latitude  float64   `bson:"latitude" json:"latitude"`
	Longitude float64   `bson:"longitude" json:"longitude"`
	Accuracy  float64   `bson:"accuracy,omitempty" json:"accuracy,omitempty"` // meters
	Timestamp time.Time `bson:"timestamp" json:"timestamp"`
}

// CrewMember is a field cleaner assignable to bookings.
type CrewMember struct {
	ID              string       `bson:"id" json:"id"`
	Name            string       `bson:"name" json:"name"`
	Phone           string       `bson:"phone" json:"phone"`
	Email           string       `bson:"email" json:"email"`
	PasswordHash    string       `bson:"password_hash" json:"-"`
	Status          string       `bson:"status" json:"status"` // available, on_job, break, off_duty, unavailable
	HourlyRate      float64      `bson:"hourly_rate" json:"hourly_rate"`
	StripeAccountID string       `bson:"stripe_account_id,omitempty" json:"stripe_account_id,omitempty"` // Connect account for payroll transfers
	FCMToken        string       `bson:"fcm_token,omitempty" json:"-"`
	Location        *GeoLocation `bson:"location,omitempty" json:"location,omitempty"`
	CreatedAt       time.Time    `bson:"created_at" json:"created_at"`
	UpdatedAt       time.Time    `bson:"updated_at" json:"updated_at"`
}

// Off reports whether the member cannot take a job right now.
func (c *CrewMember) Off() bool {
	switch c.Status {
	case CrewStatusBreak, CrewStatusOffDuty, CrewStatusUnavailable:
		return true
	}
	return false
}
