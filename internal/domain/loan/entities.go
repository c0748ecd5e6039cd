package loan

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrNotFound          = errors.New("loan not found")
	ErrInvalidTransition = errors.New("invalid loan state transition")
	ErrInvalidStatus     = errors.New("status must be approved or rejected")
	ErrRateLimited       = errors.New("cannot request another loan within 24 hours")
)

// RequestWindow is how long a borrower waits between loan requests.
const RequestWindow = 24 * time.Hour

type Status string

const (
	StatusRequested Status = "requested"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
	StatusPaid      Status = "paid"
)

var transitions = map[Status][]Status{
	StatusRequested: {StatusApproved, StatusRejected},
	StatusApproved:  {StatusPaid},
}

// CanTransition reports whether from -> to is an edge of the lifecycle.
// rejected and paid are terminal.
func CanTransition(from, to Status) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

func (s Status) Terminal() bool { return len(transitions[s]) == 0 }

type Loan struct {
	ID           uint64           `gorm:"primaryKey;column:id" json:"id"`
	UniqueDataID string           `gorm:"column:unique_data_id;size:100;not null;uniqueIndex:ux_loans_unique_data_id" json:"unique_data_id"`
	BorrowerID   uint64           `gorm:"column:borrower_id;not null;index:idx_loans_borrower" json:"borrower_id"`
	LenderID     *uint64          `gorm:"column:lender_id;index:idx_loans_lender" json:"lender_id"`
	Amount       decimal.Decimal  `gorm:"column:amount;type:decimal(18,2);not null" json:"amount"`
	InterestRate *decimal.Decimal `gorm:"column:interest_rate;type:decimal(6,2)" json:"interest_rate"`
	Status       Status           `gorm:"column:status;size:20;not null;default:'requested';index:idx_loans_status" json:"status"`
	DueDate      *time.Time       `gorm:"column:due_date" json:"due_date"`
	DisbursedAt  *time.Time       `gorm:"column:disbursed_at" json:"disbursed_at"`
	RepaidAt     *time.Time       `gorm:"column:repaid_at" json:"repaid_at"`
	CreatedAt    time.Time        `gorm:"column:created_at" json:"created_at"`
}

func (Loan) TableName() string { return "loans" }

// RequestedWithin reports whether the loan was created inside the window ending at now (inclusive).
func (l *Loan) RequestedWithin(now time.Time, window time.Duration) bool {
	return !l.CreatedAt.Before(now.Add(-window))
}
