package uow

import (
	"context"

	"lending-ledger/internal/domain/account"
	"lending-ledger/internal/domain/collateral"
	"lending-ledger/internal/domain/ledger"
	"lending-ledger/internal/domain/loan"
)

// Repos are bound to the transaction that created them.
type Repos struct {
	Loans       loan.Repository
	Accounts    account.Repository
	Blocks      ledger.Repository
	Collaterals collateral.Repository
}

type UnitOfWork interface {
	// plain tx
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// convenience: lock loan first, then pass it in; loan.ErrNotFound when absent
	WithinLoanTx(ctx context.Context, loanID uint64, fn func(r Repos, l *loan.Loan) error) error
}
