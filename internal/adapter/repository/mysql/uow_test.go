package mysql

import (
	"context"
	"errors"
	"testing"

	"lending-ledger/internal/domain/ledger"
	loanDomain "lending-ledger/internal/domain/loan"
	"lending-ledger/internal/domain/uow"
	"lending-ledger/internal/testutil/testdb"

	"github.com/shopspring/decimal"
)

const testTimestamp = "2025-01-02T08:34:05.000000+05:30"

func TestGormUoW_WithinTx_Commit(t *testing.T) {
	db := testdb.Open(t)
	ctx := context.Background()
	guow := NewGormUoW(db)

	l := makeLoan(1, "100")
	err := guow.WithinTx(ctx, func(r uow.Repos) error {
		if err := r.Loans.Create(ctx, l); err != nil {
			return err
		}
		tail, err := r.Blocks.TailForUpdate(ctx)
		if err != nil {
			return err
		}
		return r.Blocks.Create(ctx, ledger.NextBlock(tail, l.UniqueDataID, "borrower_1", ledger.EventLoanRequested, nil, testTimestamp))
	})
	if err != nil {
		t.Fatalf("WithinTx commit err: %v", err)
	}

	if _, err := NewLoanRepository(db).GetByID(ctx, l.ID); err != nil {
		t.Fatalf("loan not visible after commit: %v", err)
	}
	blocks, err := NewBlockRepository(db).ListByUniqueDataID(ctx, l.UniqueDataID)
	if err != nil || len(blocks) != 1 {
		t.Fatalf("block not visible after commit: %v %v", blocks, err)
	}
}

func TestGormUoW_WithinTx_Rollback(t *testing.T) {
	db := testdb.Open(t)
	ctx := context.Background()
	guow := NewGormUoW(db)
	sentinel := errors.New("boom")

	l := makeLoan(1, "100")
	err := guow.WithinTx(ctx, func(r uow.Repos) error {
		if err := r.Loans.Create(ctx, l); err != nil {
			return err
		}
		if err := r.Blocks.Create(ctx, ledger.NextBlock(nil, l.UniqueDataID, "borrower_1", ledger.EventLoanRequested, nil, testTimestamp)); err != nil {
			return err
		}
		return sentinel
	})
	if !errors.Is(err, sentinel) {
		t.Fatalf("expected sentinel, got %v", err)
	}

	if _, err := NewLoanRepository(db).GetByID(ctx, l.ID); !errors.Is(err, loanDomain.ErrNotFound) {
		t.Fatalf("expected loan not found after rollback, got %v", err)
	}
	tail, err := NewBlockRepository(db).TailForUpdate(ctx)
	if err != nil || tail != nil {
		t.Fatalf("expected empty ledger after rollback, got %+v %v", tail, err)
	}
}

func TestGormUoW_WithinLoanTx_Commit(t *testing.T) {
	db := testdb.Open(t)
	ctx := context.Background()
	guow := NewGormUoW(db)
	lender := testdb.SeedLender(t, db, "1000")

	seed := makeLoan(2, "400")
	if err := NewLoanRepository(db).Create(ctx, seed); err != nil {
		t.Fatalf("seed loan: %v", err)
	}

	err := guow.WithinLoanTx(ctx, seed.ID, func(r uow.Repos, l *loanDomain.Loan) error {
		if l == nil || l.ID != seed.ID || l.Status != loanDomain.StatusRequested {
			t.Fatalf("unexpected loan passed to fn: %+v", l)
		}
		if err := r.Accounts.UpdateLenderBalance(ctx, lender.ID, decimal.NewFromInt(600)); err != nil {
			return err
		}
		l.Status = loanDomain.StatusApproved
		l.LenderID = &lender.ID
		return r.Loans.Save(ctx, l)
	})
	if err != nil {
		t.Fatalf("WithinLoanTx commit err: %v", err)
	}

	got, err := NewLoanRepository(db).GetByID(ctx, seed.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Status != loanDomain.StatusApproved {
		t.Fatalf("loan status not updated, got=%s", got.Status)
	}
	if bal := testdb.Lender(t, db, lender.ID).AccountBalance; !bal.Equal(decimal.NewFromInt(600)) {
		t.Fatalf("lender balance = %s", bal)
	}
}

func TestGormUoW_WithinLoanTx_Rollback(t *testing.T) {
	db := testdb.Open(t)
	ctx := context.Background()
	guow := NewGormUoW(db)
	lender := testdb.SeedLender(t, db, "1000")

	seed := makeLoan(2, "400")
	if err := NewLoanRepository(db).Create(ctx, seed); err != nil {
		t.Fatalf("seed loan: %v", err)
	}
	sentinel := errors.New("stop")

	_ = guow.WithinLoanTx(ctx, seed.ID, func(r uow.Repos, l *loanDomain.Loan) error {
		if err := r.Accounts.UpdateLenderBalance(ctx, lender.ID, decimal.Zero); err != nil {
			return err
		}
		l.Status = loanDomain.StatusApproved
		if err := r.Loans.Save(ctx, l); err != nil {
			return err
		}
		return sentinel
	})

	got, err := NewLoanRepository(db).GetByID(ctx, seed.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Status != loanDomain.StatusRequested {
		t.Fatalf("expected requested after rollback, got %s", got.Status)
	}
	if bal := testdb.Lender(t, db, lender.ID).AccountBalance; !bal.Equal(decimal.NewFromInt(1000)) {
		t.Fatalf("lender balance changed despite rollback: %s", bal)
	}
}

func TestGormUoW_WithinLoanTx_LoanNotFound(t *testing.T) {
	guow := NewGormUoW(testdb.Open(t))

	err := guow.WithinLoanTx(context.Background(), 404, func(r uow.Repos, l *loanDomain.Loan) error {
		t.Fatalf("callback should not be called when loan missing")
		return nil
	})
	if !errors.Is(err, loanDomain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
