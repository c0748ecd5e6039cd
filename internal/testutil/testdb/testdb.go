// Package testdb opens migrated in-memory sqlite databases for tests.
package testdb

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"lending-ledger/internal/domain/account"
	infradb "lending-ledger/internal/infrastructure/db"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var seq atomic.Uint64

// Open returns a fresh in-memory database with every table migrated.
// A single connection keeps the :memory: database alive and shared across the tx.
func Open(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := infradb.Migrate(db); err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
	return db
}

func newUser(t *testing.T, db *gorm.DB, role account.Role) *account.User {
	t.Helper()
	n := seq.Add(1)
	u := &account.User{
		Name:         fmt.Sprintf("%s-%d", role, n),
		Email:        fmt.Sprintf("%s-%d@example.com", role, n),
		PasswordHash: "x",
		Role:         role,
		CreatedAt:    time.Now().UTC(),
	}
	if err := db.Create(u).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return u
}

// SeedLender inserts a lender (5% default rate) holding balance.
func SeedLender(t *testing.T, db *gorm.DB, balance string) *account.Lender {
	t.Helper()
	u := newUser(t, db, account.RoleLender)
	l := &account.Lender{
		UserID:         u.ID,
		MinAmount:      account.DefaultLenderMinAmount,
		MaxAmount:      account.DefaultLenderMaxAmount,
		InterestRate:   account.DefaultLenderInterestRate,
		AccountBalance: decimal.RequireFromString(balance),
		CreatedAt:      time.Now().UTC(),
	}
	if err := db.Omit("User").Create(l).Error; err != nil {
		t.Fatalf("seed lender: %v", err)
	}
	return l
}

// SeedBorrower inserts a borrower with the initial credit score holding balance.
func SeedBorrower(t *testing.T, db *gorm.DB, balance string) *account.Borrower {
	t.Helper()
	u := newUser(t, db, account.RoleBorrower)
	b := &account.Borrower{
		UserID:         u.ID,
		CreditScore:    account.InitialCreditScore,
		AccountBalance: decimal.RequireFromString(balance),
		CreatedAt:      time.Now().UTC(),
	}
	if err := db.Omit("User").Create(b).Error; err != nil {
		t.Fatalf("seed borrower: %v", err)
	}
	return b
}

func Lender(t *testing.T, db *gorm.DB, id uint64) *account.Lender {
	t.Helper()
	var l account.Lender
	if err := db.First(&l, id).Error; err != nil {
		t.Fatalf("load lender %d: %v", id, err)
	}
	return &l
}

func Borrower(t *testing.T, db *gorm.DB, id uint64) *account.Borrower {
	t.Helper()
	var b account.Borrower
	if err := db.First(&b, id).Error; err != nil {
		t.Fatalf("load borrower %d: %v", id, err)
	}
	return &b
}
