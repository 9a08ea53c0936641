package customerRepo

import (
	"context"

	"tidyhive/models"
)

// CustomerRepository abstracts customer persistence.
type CustomerRepository interface {
	Create(ctx context.Context, customer *models.Customer) error
	GetByID(ctx context.Context, customerID string) (*models.Customer, error)
	GetByPhone(ctx context.Context, phone string) (*models.Customer, error)
	SetPreferences(ctx context.Context, customerID string, prefs []models.Preference) error
	UpsertPreference(ctx context.Context, customerID string, pref models.Preference) error
}
