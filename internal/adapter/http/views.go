package http

import (
	"context"
	"time"

	"lending-ledger/internal/domain/account"
	accountuc "lending-ledger/internal/usecase/account"
	"lending-ledger/internal/usecase/loan"

	"github.com/shopspring/decimal"
)

type lenderView struct {
	ID             uint64          `json:"id"`
	UserID         uint64          `json:"user_id"`
	Name           string          `json:"name"`
	Email          string          `json:"email"`
	MinAmount      decimal.Decimal `json:"min_amount"`
	MaxAmount      decimal.Decimal `json:"max_amount"`
	InterestRate   decimal.Decimal `json:"interest_rate"`
	AccountBalance decimal.Decimal `json:"account_balance"`
	Remarks        string          `json:"remarks"`
	CreatedAt      time.Time       `json:"created_at"`
}

type borrowerView struct {
	ID             uint64          `json:"id"`
	UserID         uint64          `json:"user_id"`
	Name           string          `json:"name"`
	Email          string          `json:"email"`
	CreditScore    int             `json:"credit_score"`
	AccountBalance decimal.Decimal `json:"account_balance"`
	CreatedAt      time.Time       `json:"created_at"`
}

func toLenderView(l *account.Lender) lenderView {
	v := lenderView{
		ID:             l.ID,
		UserID:         l.UserID,
		MinAmount:      l.MinAmount,
		MaxAmount:      l.MaxAmount,
		InterestRate:   l.InterestRate,
		AccountBalance: l.AccountBalance,
		Remarks:        l.Remarks,
		CreatedAt:      l.CreatedAt,
	}
	if l.User != nil {
		v.Name, v.Email = l.User.Name, l.User.Email
	}
	return v
}

func toBorrowerView(b *account.Borrower) borrowerView {
	v := borrowerView{
		ID:             b.ID,
		UserID:         b.UserID,
		CreditScore:    b.CreditScore,
		AccountBalance: b.AccountBalance,
		CreatedAt:      b.CreatedAt,
	}
	if b.User != nil {
		v.Name, v.Email = b.User.Name, b.User.Email
	}
	return v
}

// profileView flattens a user and its role-specific account.
type profileView struct {
	ID            uint64    `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Role          string    `json:"role"`
	WalletAddress *string   `json:"wallet_address,omitempty"`
	CreatedAt     time.Time `json:"created_at"`

	LenderID       *uint64          `json:"lender_id,omitempty"`
	BorrowerID     *uint64          `json:"borrower_id,omitempty"`
	AccountBalance *decimal.Decimal `json:"account_balance,omitempty"`
	CreditScore    *int             `json:"credit_score,omitempty"`
	MinAmount      *decimal.Decimal `json:"min_amount,omitempty"`
	MaxAmount      *decimal.Decimal `json:"max_amount,omitempty"`
	InterestRate   *decimal.Decimal `json:"interest_rate,omitempty"`
}

func toProfileView(p *accountuc.Profile) profileView {
	v := profileView{
		ID:            p.User.ID,
		Name:          p.User.Name,
		Email:         p.User.Email,
		Role:          string(p.User.Role),
		WalletAddress: p.User.WalletAddress,
		CreatedAt:     p.User.CreatedAt,
	}
	if l := p.Lender; l != nil {
		v.LenderID = &l.ID
		v.AccountBalance = &l.AccountBalance
		v.MinAmount, v.MaxAmount, v.InterestRate = &l.MinAmount, &l.MaxAmount, &l.InterestRate
	}
	if b := p.Borrower; b != nil {
		v.BorrowerID = &b.ID
		v.AccountBalance = &b.AccountBalance
		v.CreditScore = &b.CreditScore
	}
	return v
}

// loanView is a loan with its lender's display name; null until a lender decides.
type loanView struct {
	loan.LoanDTO
	LenderName *string `json:"lender_name"`
}

func withLenderNames(ctx context.Context, accounts *accountuc.Usecase, loans []loan.LoanDTO) ([]loanView, error) {
	var ids []uint64
	for _, l := range loans {
		if l.LenderID != nil {
			ids = append(ids, *l.LenderID)
		}
	}
	names, err := accounts.LenderNames(ctx, ids)
	if err != nil {
		return nil, err
	}
	out := make([]loanView, 0, len(loans))
	for _, l := range loans {
		v := loanView{LoanDTO: l}
		if l.LenderID != nil {
			if n, found := names[*l.LenderID]; found {
				v.LenderName = &n
			}
		}
		out = append(out, v)
	}
	return out, nil
}
