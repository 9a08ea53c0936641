package payroll

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/transfer"
	"go.uber.org/zap"

	crewRepo "tidyhive/database/repository/crew"
	payrollRepo "tidyhive/database/repository/payroll"
	timeentryRepo "tidyhive/database/repository/timeentry"
	"tidyhive/models"
)

// StripeTransferClient is the production TransferClient.
type StripeTransferClient struct{}

func (StripeTransferClient) NewTransfer(params *stripe.TransferParams) (*stripe.Transfer, error) {
	return transfer.New(params)
}

// DefaultPayrollService is the production implementation of PayrollService.
type DefaultPayrollService struct {
	CrewRepo  crewRepo.CrewRepository
	EntryRepo timeentryRepo.TimeEntryRepository
	RunRepo   payrollRepo.PayrollRepository
	Transfers TransferClient
	Logger    *zap.Logger
}

// Run tallies completed time entries over [periodStart, periodEnd], pays each
// crew member via a Stripe Connect transfer, and persists the run. Members
// without a Connect account are recorded as no_account and skipped; a failed
// transfer marks only that item as failed.
func (s *DefaultPayrollService) Run(ctx context.Context, periodStart, periodEnd string) (*models.PayrollRun, error) {
	from, err := time.Parse("2006-01-02", periodStart)
	if err != nil {
		return nil, fmt.Errorf("invalid period start %q: %w", periodStart, err)
	}
	endDay, err := time.Parse("2006-01-02", periodEnd)
	if err != nil {
		return nil, fmt.Errorf("invalid period end %q: %w", periodEnd, err)
	}
	if endDay.Before(from) {
		return nil, fmt.Errorf("period end %s precedes start %s", periodEnd, periodStart)
	}
	to := endDay.AddDate(0, 0, 1) // end date is inclusive

	entries, err := s.EntryRepo.ListCompletedInRange(ctx, from, to)
	if err != nil {
		return nil, err
	}

	minutesByCrew := make(map[string]int)
	for i := range entries {
		e := &entries[i]
		minutesByCrew[e.CrewID] += e.Minutes()
	}

	crewIDs := make([]string, 0, len(minutesByCrew))
	for id := range minutesByCrew {
		crewIDs = append(crewIDs, id)
	}
	sort.Strings(crewIDs)

	run := &models.PayrollRun{
		ID:          uuid.New().String(),
		PeriodStart: periodStart,
		PeriodEnd:   periodEnd,
		Currency:    "usd",
		CreatedAt:   time.Now(),
	}

	for _, crewID := range crewIDs {
		minutes := minutesByCrew[crewID]
		item := models.PayrollItem{
			CrewID:        crewID,
			MinutesWorked: minutes,
			Status:        models.PayrollStatusPending,
		}

		member, err := s.CrewRepo.GetByID(ctx, crewID)
		if err != nil {
			item.Status = models.PayrollStatusFailed
			item.Error = fmt.Sprintf("crew lookup failed: %v", err)
			run.Items = append(run.Items, item)
			continue
		}
		item.CrewName = member.Name
		item.HourlyRate = member.HourlyRate
		item.Amount = roundCents(float64(minutes) / 60 * member.HourlyRate)
		run.TotalAmount = roundCents(run.TotalAmount + item.Amount)

		if member.StripeAccountID == "" {
			item.Status = models.PayrollStatusNoAccount
			run.Items = append(run.Items, item)
			continue
		}

		t, err := s.Transfers.NewTransfer(&stripe.TransferParams{
			Amount:      stripe.Int64(int64(math.Round(item.Amount * 100))),
			Currency:    stripe.String(string(stripe.CurrencyUSD)),
			Destination: stripe.String(member.StripeAccountID),
			Description: stripe.String(fmt.Sprintf("TidyHive payroll %s to %s", periodStart, periodEnd)),
		})
		if err != nil {
			s.Logger.Error("payroll transfer failed",
				zap.String("crew", crewID), zap.Float64("amount", item.Amount), zap.Error(err))
			item.Status = models.PayrollStatusFailed
			item.Error = err.Error()
		} else {
			item.Status = models.PayrollStatusPaid
			item.TransferID = t.ID
		}
		run.Items = append(run.Items, item)
	}

	if err := s.RunRepo.Create(ctx, run); err != nil {
		return nil, fmt.Errorf("failed to save payroll run: %w", err)
	}
	s.Logger.Info("payroll run complete",
		zap.String("run", run.ID), zap.Int("items", len(run.Items)), zap.Float64("total", run.TotalAmount))
	return run, nil
}

func (s *DefaultPayrollService) ListRuns(ctx context.Context, limit int64) ([]models.PayrollRun, error) {
	return s.RunRepo.List(ctx, limit)
}

func (s *DefaultPayrollService) ListRunsForCrew(ctx context.Context, crewID string) ([]models.PayrollRun, error) {
	return s.RunRepo.ListByCrew(ctx, crewID)
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
