package account

import (
	"context"

	"github.com/shopspring/decimal"
)

type Repository interface {
	CreateUser(ctx context.Context, u *User) error
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	// Names are not unique; the oldest match wins. An empty role matches any.
	GetUserByName(ctx context.Context, name string, role Role) (*User, error)
	CreateLender(ctx context.Context, l *Lender) error
	CreateBorrower(ctx context.Context, b *Borrower) error

	// Reads preload the owning user for display
	GetLender(ctx context.Context, id uint64) (*Lender, error)
	GetBorrower(ctx context.Context, id uint64) (*Borrower, error)
	ListLenders(ctx context.Context) ([]Lender, error)
	ListBorrowers(ctx context.Context) ([]Borrower, error)
	GetLenderByUserID(ctx context.Context, userID uint64) (*Lender, error)
	GetBorrowerByUserID(ctx context.Context, userID uint64) (*Borrower, error)
	ListLendersByIDs(ctx context.Context, ids []uint64) ([]Lender, error)

	// Row-locked reads for check-then-mutate flows
	GetLenderForUpdate(ctx context.Context, id uint64) (*Lender, error)
	GetBorrowerForUpdate(ctx context.Context, id uint64) (*Borrower, error)

	UpdateLenderBalance(ctx context.Context, id uint64, balance decimal.Decimal) error
	UpdateBorrowerAccount(ctx context.Context, id uint64, balance decimal.Decimal, creditScore int) error
}
