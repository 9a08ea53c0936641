package models

import "time"

// Payroll statuses.
const (
	PayrollStatusPending   = "pending"
	PayrollStatusPaid      = "paid"
	PayrollStatusFailed    = "failed"
	PayrollStatusNoAccount = "no_account"
)

// PayrollItem is one crew member's pay within a run.
type PayrollItem struct {
	CrewID        string  `bson:"crew_id" json:"crew_id"`
	CrewName      string  `bson:"crew_name" json:"crew_name"`
	MinutesWorked int     `bson:"minutes_worked" json:"minutes_worked"`
	HourlyRate    float64 `bson:"hourly_rate" json:"hourly_rate"`
	Amount        float64 `bson:"amount" json:"amount"` // MinutesWorked/60 * HourlyRate, rounded to cents
	TransferID    string  `bson:"transfer_id,omitempty" json:"transfer_id,omitempty"`
	Status        string  `bson:"status" json:"status"` // pending, paid, failed, no_account
	Error         string  `bson:"error,omitempty" json:"error,omitempty"`
}

// PayrollRun records one payroll execution over a pay period.
type PayrollRun struct {
	ID          string        `bson:"id" json:"id"`
	PeriodStart string        `bson:"period_start" json:"period_start"` // "YYYY-MM-DD" inclusive
	PeriodEnd   string        `bson:"period_end" json:"period_end"`     // "YYYY-MM-DD" inclusive
	Items       []PayrollItem `bson:"items" json:"items"`
	TotalAmount float64       `bson:"total_amount" json:"total_amount"`
	Currency    string        `bson:"currency" json:"currency"`
	CreatedAt   time.Time     `bson:"created_at" json:"created_at"`
}
