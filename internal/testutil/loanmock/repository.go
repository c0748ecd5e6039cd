package loanmock

import (
	"context"

	domain "lending-ledger/internal/domain/loan"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
// Unset lookups return domain.ErrNotFound; unset writes succeed.
type Repo struct {
	CreateFn                func(ctx context.Context, l *domain.Loan) error
	SaveFn                  func(ctx context.Context, l *domain.Loan) error
	GetByIDFn               func(ctx context.Context, id uint64) (*domain.Loan, error)
	GetByIDForUpdateFn      func(ctx context.Context, id uint64) (*domain.Loan, error)
	GetLatestByBorrowerIDFn func(ctx context.Context, borrowerID uint64) (*domain.Loan, error)
	ListByBorrowerIDFn      func(ctx context.Context, borrowerID uint64) ([]domain.Loan, error)
	ListByLenderIDFn        func(ctx context.Context, lenderID uint64) ([]domain.Loan, error)
	ListByStatusFn          func(ctx context.Context, status domain.Status) ([]domain.Loan, error)
	ListBetweenFn           func(ctx context.Context, lenderID, borrowerID uint64) ([]domain.Loan, error)
}

func (m *Repo) Create(ctx context.Context, l *domain.Loan) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, l)
	}
	return nil
}

func (m *Repo) Save(ctx context.Context, l *domain.Loan) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, l)
	}
	return nil
}

func (m *Repo) GetByID(ctx context.Context, id uint64) (*domain.Loan, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, domain.ErrNotFound
}

func (m *Repo) GetByIDForUpdate(ctx context.Context, id uint64) (*domain.Loan, error) {
	if m.GetByIDForUpdateFn != nil {
		return m.GetByIDForUpdateFn(ctx, id)
	}
	return nil, domain.ErrNotFound
}

func (m *Repo) GetLatestByBorrowerID(ctx context.Context, borrowerID uint64) (*domain.Loan, error) {
	if m.GetLatestByBorrowerIDFn != nil {
		return m.GetLatestByBorrowerIDFn(ctx, borrowerID)
	}
	return nil, domain.ErrNotFound
}

func (m *Repo) ListByBorrowerID(ctx context.Context, borrowerID uint64) ([]domain.Loan, error) {
	if m.ListByBorrowerIDFn != nil {
		return m.ListByBorrowerIDFn(ctx, borrowerID)
	}
	return nil, nil
}

func (m *Repo) ListByLenderID(ctx context.Context, lenderID uint64) ([]domain.Loan, error) {
	if m.ListByLenderIDFn != nil {
		return m.ListByLenderIDFn(ctx, lenderID)
	}
	return nil, nil
}

func (m *Repo) ListByStatus(ctx context.Context, status domain.Status) ([]domain.Loan, error) {
	if m.ListByStatusFn != nil {
		return m.ListByStatusFn(ctx, status)
	}
	return nil, nil
}

func (m *Repo) ListBetween(ctx context.Context, lenderID, borrowerID uint64) ([]domain.Loan, error) {
	if m.ListBetweenFn != nil {
		return m.ListBetweenFn(ctx, lenderID, borrowerID)
	}
	return nil, nil
}
