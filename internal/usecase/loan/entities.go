package loan

import (
	"time"

	domain "lending-ledger/internal/domain/loan"

	"github.com/shopspring/decimal"
)

type RequestInput struct {
	BorrowerID uint64
	Amount     decimal.Decimal
	// Recorded on the block; defaults to "borrower_<id>"
	Actor string
}

type DecideInput struct {
	LoanID   uint64
	Status   domain.Status
	LenderID uint64
	// Falls back to the lender's advertised rate when nil
	InterestRate *decimal.Decimal
	DueDate      *time.Time
	Actor        string
}

type RepayInput struct {
	LoanID uint64
	Actor  string
}

type LoanDTO struct {
	ID           uint64           `json:"id"`
	UniqueDataID string           `json:"unique_data_id"`
	BorrowerID   uint64           `json:"borrower_id"`
	LenderID     *uint64          `json:"lender_id"`
	Amount       decimal.Decimal  `json:"amount"`
	InterestRate *decimal.Decimal `json:"interest_rate"`
	Status       string           `json:"status"`
	DueDate      *time.Time       `json:"due_date"`
	DisbursedAt  *time.Time       `json:"disbursed_at"`
	RepaidAt     *time.Time       `json:"repaid_at"`
	CreatedAt    time.Time        `json:"created_at"`
}

type RepayResult struct {
	Loan           *LoanDTO        `json:"loan"`
	CreditChange   int             `json:"credit_change"`
	TotalRepayment decimal.Decimal `json:"total_repayment"`
}

func toDTO(l *domain.Loan) *LoanDTO {
	return &LoanDTO{
		ID:           l.ID,
		UniqueDataID: l.UniqueDataID,
		BorrowerID:   l.BorrowerID,
		LenderID:     l.LenderID,
		Amount:       l.Amount,
		InterestRate: l.InterestRate,
		Status:       string(l.Status),
		DueDate:      l.DueDate,
		DisbursedAt:  l.DisbursedAt,
		RepaidAt:     l.RepaidAt,
		CreatedAt:    l.CreatedAt,
	}
}

func toDTOs(ls []domain.Loan) []LoanDTO {
	out := make([]LoanDTO, 0, len(ls))
	for i := range ls {
		out = append(out, *toDTO(&ls[i]))
	}
	return out
}
