package payroll

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v76"
	"go.uber.org/zap"

	crewRepo "tidyhive/database/repository/crew"
	"tidyhive/models"
)

type fakeCrewRepo struct {
	crewRepo.CrewRepository
	members map[string]*models.CrewMember
}

func (f *fakeCrewRepo) GetByID(ctx context.Context, crewID string) (*models.CrewMember, error) {
	m, ok := f.members[crewID]
	if !ok {
		return nil, errors.New("not found")
	}
	return m, nil
}

type fakeEntryRepo struct {
	entries []models.TimeEntry
}

func (f *fakeEntryRepo) Create(ctx context.Context, entry *models.TimeEntry) error { return nil }
func (f *fakeEntryRepo) GetActiveByCrew(ctx context.Context, crewID string) (*models.TimeEntry, error) {
	return nil, nil
}
func (f *fakeEntryRepo) Close(ctx context.Context, entryID string, clockOut time.Time) error {
	return nil
}
func (f *fakeEntryRepo) ListActive(ctx context.Context) ([]models.TimeEntry, error) {
	return nil, nil
}
func (f *fakeEntryRepo) ListCompletedInRange(ctx context.Context, from, to time.Time) ([]models.TimeEntry, error) {
	return f.entries, nil
}
func (f *fakeEntryRepo) UtilizationByCrew(ctx context.Context, from, to time.Time) ([]models.CrewUtilization, error) {
	return nil, nil
}

type fakeRunRepo struct {
	saved *models.PayrollRun
}

func (f *fakeRunRepo) Create(ctx context.Context, run *models.PayrollRun) error {
	f.saved = run
	return nil
}
func (f *fakeRunRepo) List(ctx context.Context, limit int64) ([]models.PayrollRun, error) {
	return nil, nil
}
func (f *fakeRunRepo) ListByCrew(ctx context.Context, crewID string) ([]models.PayrollRun, error) {
	return nil, nil
}

type fakeTransfers struct {
	calls  []*stripe.TransferParams
	failOn string
}

func (f *fakeTransfers) NewTransfer(params *stripe.TransferParams) (*stripe.Transfer, error) {
	f.calls = append(f.calls, params)
	if f.failOn != "" && params.Destination != nil && *params.Destination == f.failOn {
		return nil, errors.New("insufficient funds")
	}
	return &stripe.Transfer{ID: "tr_" + *params.Destination}, nil
}

func completedEntry(crewID string, day string, hours float64) models.TimeEntry {
	in, _ := time.Parse("2006-01-02 15:04", day+" 09:00")
	out := in.Add(time.Duration(hours * float64(time.Hour)))
	return models.TimeEntry{
		CrewID:   crewID,
		ClockIn:  in,
		ClockOut: &out,
		Status:   models.TimeEntryStatusCompleted,
	}
}

func newTestService(entries []models.TimeEntry, members map[string]*models.CrewMember, transfers TransferClient) (*DefaultPayrollService, *fakeRunRepo) {
	runs := &fakeRunRepo{}
	return &DefaultPayrollService{
		CrewRepo:  &fakeCrewRepo{members: members},
		EntryRepo: &fakeEntryRepo{entries: entries},
		RunRepo:   runs,
		Transfers: transfers,
		Logger:    zap.NewNop(),
	}, runs
}

func TestPayrollRun(t *testing.T) {
	members := map[string]*models.CrewMember{
		"crew-1": {ID: "crew-1", Name: "Ana", HourlyRate: 24, StripeAccountID: "acct_ana"},
		"crew-2": {ID: "crew-2", Name: "Bo", HourlyRate: 30},
	}
	entries := []models.TimeEntry{
		completedEntry("crew-1", "2024-01-01", 4),
		completedEntry("crew-1", "2024-01-02", 2),
		completedEntry("crew-2", "2024-01-01", 3),
	}

	t.Run("tallies hours and pays connected accounts", func(t *testing.T) {
		transfers := &fakeTransfers{}
		svc, runs := newTestService(entries, members, transfers)

		run, err := svc.Run(context.Background(), "2024-01-01", "2024-01-07")
		require.NoError(t, err)
		require.Len(t, run.Items, 2)

		ana := run.Items[0]
		assert.Equal(t, "crew-1", ana.CrewID)
		assert.Equal(t, 360, ana.MinutesWorked)
		assert.Equal(t, 144.0, ana.Amount) // 6h * $24
		assert.Equal(t, models.PayrollStatusPaid, ana.Status)
		assert.Equal(t, "tr_acct_ana", ana.TransferID)

		bo := run.Items[1]
		assert.Equal(t, 90.0, bo.Amount) // 3h * $30
		assert.Equal(t, models.PayrollStatusNoAccount, bo.Status)
		assert.Empty(t, bo.TransferID)

		assert.Equal(t, 234.0, run.TotalAmount)
		// Only the connected account got a transfer.
		require.Len(t, transfers.calls, 1)
		assert.Equal(t, int64(14400), *transfers.calls[0].Amount)
		// The run was persisted.
		assert.Equal(t, run, runs.saved)
	})

	t.Run("failed transfer isolates one item", func(t *testing.T) {
		both := map[string]*models.CrewMember{
			"crew-1": {ID: "crew-1", Name: "Ana", HourlyRate: 24, StripeAccountID: "acct_ana"},
			"crew-2": {ID: "crew-2", Name: "Bo", HourlyRate: 30, StripeAccountID: "acct_bo"},
		}
		transfers := &fakeTransfers{failOn: "acct_ana"}
		svc, _ := newTestService(entries, both, transfers)

		run, err := svc.Run(context.Background(), "2024-01-01", "2024-01-07")
		require.NoError(t, err)
		require.Len(t, run.Items, 2)
		assert.Equal(t, models.PayrollStatusFailed, run.Items[0].Status)
		assert.Contains(t, run.Items[0].Error, "insufficient funds")
		assert.Equal(t, models.PayrollStatusPaid, run.Items[1].Status)
	})

	t.Run("unknown crew member is recorded as failed", func(t *testing.T) {
		svc, _ := newTestService(entries, map[string]*models.CrewMember{}, &fakeTransfers{})

		run, err := svc.Run(context.Background(), "2024-01-01", "2024-01-07")
		require.NoError(t, err)
		for _, item := range run.Items {
			assert.Equal(t, models.PayrollStatusFailed, item.Status)
			assert.Contains(t, item.Error, "crew lookup failed")
		}
	})

	t.Run("empty period produces an empty run", func(t *testing.T) {
		svc, runs := newTestService(nil, members, &fakeTransfers{})

		run, err := svc.Run(context.Background(), "2024-01-01", "2024-01-07")
		require.NoError(t, err)
		assert.Empty(t, run.Items)
		assert.Zero(t, run.TotalAmount)
		assert.NotNil(t, runs.saved)
	})

	t.Run("rejects inverted periods", func(t *testing.T) {
		svc, _ := newTestService(entries, members, &fakeTransfers{})
		_, err := svc.Run(context.Background(), "2024-01-07", "2024-01-01")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "precedes")
	})

	t.Run("rejects malformed dates", func(t *testing.T) {
		svc, _ := newTestService(entries, members, &fakeTransfers{})
		_, err := svc.Run(context.Background(), "01/01/2024", "2024-01-07")
		assert.Error(t, err)
	})
}
