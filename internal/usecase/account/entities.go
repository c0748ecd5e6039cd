package account

import (
	domain "lending-ledger/internal/domain/account"

	"github.com/shopspring/decimal"
)

type RegisterInput struct {
	Name          string
	Email         string
	Password      string
	Role          domain.Role
	WalletAddress *string

	// Lender terms; zero values fall back to the defaults
	MinAmount    *decimal.Decimal
	MaxAmount    *decimal.Decimal
	InterestRate *decimal.Decimal
	Remarks      string

	Actor string
}

type RegisterResult struct {
	User       *domain.User `json:"user"`
	LenderID   *uint64      `json:"lender_id,omitempty"`
	BorrowerID *uint64      `json:"borrower_id,omitempty"`
}

type TopUpInput struct {
	Role      domain.Role
	AccountID uint64
	Amount    decimal.Decimal
}

type TopUpResult struct {
	Role       domain.Role     `json:"role"`
	AccountID  uint64          `json:"account_id"`
	NewBalance decimal.Decimal `json:"new_balance"`
}

// Profile is a user plus its role-specific account, if it has one.
type Profile struct {
	User     *domain.User     `json:"user"`
	Lender   *domain.Lender   `json:"lender,omitempty"`
	Borrower *domain.Borrower `json:"borrower,omitempty"`
}
