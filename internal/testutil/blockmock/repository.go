package blockmock

import (
	"context"

	domain "lending-ledger/internal/domain/ledger"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
// Unset TailForUpdate reports an empty chain.
type Repo struct {
	CreateFn             func(ctx context.Context, b *domain.Block) error
	TailForUpdateFn      func(ctx context.Context) (*domain.Block, error)
	GetByIDFn            func(ctx context.Context, id uint64) (*domain.Block, error)
	ListFn               func(ctx context.Context, afterID uint64, limit int) ([]domain.Block, error)
	ListByUniqueDataIDFn func(ctx context.Context, uniqueDataID string) ([]domain.Block, error)
}

func (m *Repo) Create(ctx context.Context, b *domain.Block) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, b)
	}
	return nil
}

func (m *Repo) TailForUpdate(ctx context.Context) (*domain.Block, error) {
	if m.TailForUpdateFn != nil {
		return m.TailForUpdateFn(ctx)
	}
	return nil, nil
}

func (m *Repo) GetByID(ctx context.Context, id uint64) (*domain.Block, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, domain.ErrNotFound
}

func (m *Repo) List(ctx context.Context, afterID uint64, limit int) ([]domain.Block, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, afterID, limit)
	}
	return nil, nil
}

func (m *Repo) ListByUniqueDataID(ctx context.Context, uniqueDataID string) ([]domain.Block, error) {
	if m.ListByUniqueDataIDFn != nil {
		return m.ListByUniqueDataIDFn(ctx, uniqueDataID)
	}
	return nil, nil
}
