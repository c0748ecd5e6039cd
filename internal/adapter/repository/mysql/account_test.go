package mysql

import (
	"context"
	"errors"
	"testing"
	"time"

	accountDomain "lending-ledger/internal/domain/account"
	"lending-ledger/internal/testutil/testdb"

	"github.com/shopspring/decimal"
)

func TestAccount_CreateUserAndLender(t *testing.T) {
	db := testdb.Open(t)
	repo := NewAccountRepository(db)
	ctx := context.Background()

	u := &accountDomain.User{
		Name:         "Lena",
		Email:        "lena@example.com",
		PasswordHash: "hash",
		Role:         accountDomain.RoleLender,
		CreatedAt:    time.Now().UTC(),
	}
	if err := repo.CreateUser(ctx, u); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	l := &accountDomain.Lender{
		UserID:         u.ID,
		MinAmount:      accountDomain.DefaultLenderMinAmount,
		MaxAmount:      accountDomain.DefaultLenderMaxAmount,
		InterestRate:   accountDomain.DefaultLenderInterestRate,
		AccountBalance: decimal.Zero,
		User:           u,
	}
	if err := repo.CreateLender(ctx, l); err != nil {
		t.Fatalf("CreateLender: %v", err)
	}

	got, err := repo.GetLender(ctx, l.ID)
	if err != nil {
		t.Fatalf("GetLender: %v", err)
	}
	if got.User == nil || got.User.Email != "lena@example.com" {
		t.Fatalf("user not preloaded: %+v", got.User)
	}
	if !got.InterestRate.Equal(decimal.NewFromInt(5)) {
		t.Errorf("interest rate = %s", got.InterestRate)
	}

	byEmail, err := repo.GetUserByEmail(ctx, "lena@example.com")
	if err != nil || byEmail.ID != u.ID {
		t.Fatalf("GetUserByEmail: %+v %v", byEmail, err)
	}
}

func TestAccount_DuplicateEmail(t *testing.T) {
	repo := NewAccountRepository(testdb.Open(t))
	ctx := context.Background()

	mk := func() *accountDomain.User {
		return &accountDomain.User{Name: "x", Email: "dup@example.com", PasswordHash: "h", Role: accountDomain.RoleBorrower}
	}
	if err := repo.CreateUser(ctx, mk()); err != nil {
		t.Fatal(err)
	}
	if err := repo.CreateUser(ctx, mk()); err == nil {
		t.Fatalf("expected unique email violation")
	}
}

func TestAccount_NotFound(t *testing.T) {
	repo := NewAccountRepository(testdb.Open(t))
	ctx := context.Background()

	if _, err := repo.GetLender(ctx, 1); !errors.Is(err, accountDomain.ErrLenderNotFound) {
		t.Errorf("GetLender: %v", err)
	}
	if _, err := repo.GetLenderForUpdate(ctx, 1); !errors.Is(err, accountDomain.ErrLenderNotFound) {
		t.Errorf("GetLenderForUpdate: %v", err)
	}
	if _, err := repo.GetBorrower(ctx, 1); !errors.Is(err, accountDomain.ErrBorrowerNotFound) {
		t.Errorf("GetBorrower: %v", err)
	}
	if _, err := repo.GetBorrowerForUpdate(ctx, 1); !errors.Is(err, accountDomain.ErrBorrowerNotFound) {
		t.Errorf("GetBorrowerForUpdate: %v", err)
	}
	if _, err := repo.GetUserByEmail(ctx, "nobody@example.com"); !errors.Is(err, accountDomain.ErrUserNotFound) {
		t.Errorf("GetUserByEmail: %v", err)
	}
	if _, err := repo.GetUserByName(ctx, "nobody", ""); !errors.Is(err, accountDomain.ErrUserNotFound) {
		t.Errorf("GetUserByName: %v", err)
	}
	if _, err := repo.GetLenderByUserID(ctx, 1); !errors.Is(err, accountDomain.ErrLenderNotFound) {
		t.Errorf("GetLenderByUserID: %v", err)
	}
	if _, err := repo.GetBorrowerByUserID(ctx, 1); !errors.Is(err, accountDomain.ErrBorrowerNotFound) {
		t.Errorf("GetBorrowerByUserID: %v", err)
	}
}

func TestAccount_UpdateBalances(t *testing.T) {
	db := testdb.Open(t)
	repo := NewAccountRepository(db)
	ctx := context.Background()

	l := testdb.SeedLender(t, db, "1000")
	b := testdb.SeedBorrower(t, db, "0")

	if err := repo.UpdateLenderBalance(ctx, l.ID, decimal.NewFromInt(400)); err != nil {
		t.Fatalf("UpdateLenderBalance: %v", err)
	}
	if err := repo.UpdateBorrowerAccount(ctx, b.ID, decimal.RequireFromString("600.25"), 725); err != nil {
		t.Fatalf("UpdateBorrowerAccount: %v", err)
	}

	gotL, err := repo.GetLenderForUpdate(ctx, l.ID)
	if err != nil {
		t.Fatal(err)
	}
	if !gotL.AccountBalance.Equal(decimal.NewFromInt(400)) {
		t.Errorf("lender balance = %s", gotL.AccountBalance)
	}
	gotB, err := repo.GetBorrowerForUpdate(ctx, b.ID)
	if err != nil {
		t.Fatal(err)
	}
	if !gotB.AccountBalance.Equal(decimal.RequireFromString("600.25")) || gotB.CreditScore != 725 {
		t.Errorf("borrower = %+v", gotB)
	}
}

func TestAccount_Lists(t *testing.T) {
	db := testdb.Open(t)
	repo := NewAccountRepository(db)
	ctx := context.Background()

	testdb.SeedLender(t, db, "10")
	testdb.SeedLender(t, db, "20")
	testdb.SeedBorrower(t, db, "0")

	lenders, err := repo.ListLenders(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(lenders) != 2 || lenders[0].User == nil {
		t.Fatalf("ListLenders: %+v", lenders)
	}
	borrowers, err := repo.ListBorrowers(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(borrowers) != 1 || borrowers[0].CreditScore != accountDomain.InitialCreditScore {
		t.Fatalf("ListBorrowers: %+v", borrowers)
	}
}

func TestAccount_LookupByName(t *testing.T) {
	db := testdb.Open(t)
	repo := NewAccountRepository(db)
	ctx := context.Background()

	mk := func(name, email string, role accountDomain.Role) *accountDomain.User {
		u := &accountDomain.User{Name: name, Email: email, PasswordHash: "x", Role: role, CreatedAt: time.Now().UTC()}
		if err := repo.CreateUser(ctx, u); err != nil {
			t.Fatal(err)
		}
		return u
	}
	first := mk("Sam", "sam1@example.com", accountDomain.RoleBorrower)
	second := mk("Sam", "sam2@example.com", accountDomain.RoleLender)
	l := &accountDomain.Lender{
		UserID:         second.ID,
		MinAmount:      accountDomain.DefaultLenderMinAmount,
		MaxAmount:      accountDomain.DefaultLenderMaxAmount,
		InterestRate:   accountDomain.DefaultLenderInterestRate,
		AccountBalance: decimal.NewFromInt(75),
	}
	if err := repo.CreateLender(ctx, l); err != nil {
		t.Fatal(err)
	}
	b := &accountDomain.Borrower{UserID: first.ID, CreditScore: accountDomain.InitialCreditScore, AccountBalance: decimal.Zero}
	if err := repo.CreateBorrower(ctx, b); err != nil {
		t.Fatal(err)
	}

	got, err := repo.GetUserByName(ctx, "Sam", "")
	if err != nil || got.ID != first.ID {
		t.Fatalf("any role should return the oldest match: %+v %v", got, err)
	}
	got, err = repo.GetUserByName(ctx, "Sam", accountDomain.RoleLender)
	if err != nil || got.ID != second.ID {
		t.Fatalf("lender role: %+v %v", got, err)
	}

	gotL, err := repo.GetLenderByUserID(ctx, second.ID)
	if err != nil || gotL.ID != l.ID || gotL.User == nil || gotL.User.Email != "sam2@example.com" {
		t.Fatalf("GetLenderByUserID: %+v %v", gotL, err)
	}
	gotB, err := repo.GetBorrowerByUserID(ctx, first.ID)
	if err != nil || gotB.ID != b.ID {
		t.Fatalf("GetBorrowerByUserID: %+v %v", gotB, err)
	}

	lenders, err := repo.ListLendersByIDs(ctx, []uint64{l.ID, 999})
	if err != nil || len(lenders) != 1 || lenders[0].User == nil || lenders[0].User.Name != "Sam" {
		t.Fatalf("ListLendersByIDs: %+v %v", lenders, err)
	}
	if none, err := repo.ListLendersByIDs(ctx, nil); err != nil || none != nil {
		t.Fatalf("ListLendersByIDs(nil): %+v %v", none, err)
	}
}
