package collateral

import "context"

type Repository interface {
	Create(ctx context.Context, c *Collateral) error
	GetByID(ctx context.Context, id uint64) (*Collateral, error)
	ListByBorrowerID(ctx context.Context, borrowerID uint64) ([]Collateral, error)
}
