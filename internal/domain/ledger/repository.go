package ledger

import "context"

// Repository has no update or delete: the chain is append-only.
type Repository interface {
	Create(ctx context.Context, b *Block) error

	// Highest sequence id, row-locked for the rest of the transaction.
	// Returns (nil, nil) on an empty chain.
	TailForUpdate(ctx context.Context) (*Block, error)

	GetByID(ctx context.Context, id uint64) (*Block, error)

	// Ascending by id, starting after afterID. limit <= 0 means no limit.
	List(ctx context.Context, afterID uint64, limit int) ([]Block, error)

	ListByUniqueDataID(ctx context.Context, uniqueDataID string) ([]Block, error)
}
