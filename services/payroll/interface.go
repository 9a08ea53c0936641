package payroll

import (
	"context"

	"github.com/stripe/stripe-go/v76"

	"tidyhive/models"
)

// TransferClient issues payout transfers. Satisfied by the Stripe API client;
// faked in tests.
type TransferClient interface {
	NewTransfer(params *stripe.TransferParams) (*stripe.Transfer, error)
}

// PayrollService computes and pays crew wages from completed time entries.
type PayrollService interface {
	Run(ctx context.Context, periodStart, periodEnd string) (*models.PayrollRun, error)
	ListRuns(ctx context.Context, limit int64) ([]models.PayrollRun, error)
	ListRunsForCrew(ctx context.Context, crewID string) ([]models.PayrollRun, error)
}
