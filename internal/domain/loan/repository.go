package loan

import "context"

type Repository interface {
	Create(ctx context.Context, l *Loan) error
	Save(ctx context.Context, l *Loan) error
	GetByID(ctx context.Context, id uint64) (*Loan, error)
	GetByIDForUpdate(ctx context.Context, id uint64) (*Loan, error)

	// Most recently created loan of the borrower
	GetLatestByBorrowerID(ctx context.Context, borrowerID uint64) (*Loan, error)

	ListByBorrowerID(ctx context.Context, borrowerID uint64) ([]Loan, error)
	ListByLenderID(ctx context.Context, lenderID uint64) ([]Loan, error)
	ListByStatus(ctx context.Context, status Status) ([]Loan, error)
	ListBetween(ctx context.Context, lenderID, borrowerID uint64) ([]Loan, error)
}
