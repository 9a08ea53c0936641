package models

import "time"

// Preference sources.
const (
	PreferenceSourceManual    = "manual"
	PreferenceSourceExtracted = "extracted"
)

// Preference is a single customer preference, either set explicitly or mined
// from free-text booking notes.
type Preference struct {
	Key       string    `bson:"key" json:"key"`       // e.g. "eco_products", "has_pets", "access"
	Value     string    `bson:"value" json:"value"`   // free-form value, e.g. "key under mat"
	Source    string    `bson:"source" json:"source"` // manual, extracted
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// Customer is a booking customer.
type Customer struct {
	ID          string       `bson:"id" json:"id"`
	Name        string       `bson:"name" json:"name"`
	Email       string       `bson:"email" json:"email"`
	Phone       string       `bson:"phone" json:"phone"`
	Address     string       `bson:"address" json:"address"`
	Preferences []Preference `bson:"preferences,omitempty" json:"preferences,omitempty"`
	CreatedAt   time.Time    `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time    `bson:"updated_at" json:"updated_at"`
}
