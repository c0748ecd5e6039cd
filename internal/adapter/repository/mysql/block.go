package mysql

import (
	"context"
	"errors"

	ledgerDomain "lending-ledger/internal/domain/ledger"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BlockRepository only ever inserts; there is no update or delete path.
type BlockRepository struct{ db *gorm.DB }

func NewBlockRepository(db *gorm.DB) *BlockRepository { return &BlockRepository{db: db} }

func (r *BlockRepository) Create(ctx context.Context, b *ledgerDomain.Block) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *BlockRepository) TailForUpdate(ctx context.Context) (*ledgerDomain.Block, error) {
	var out ledgerDomain.Block
	res := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Order("id DESC").
		Limit(1).
		Find(&out)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}
	return &out, nil
}

func (r *BlockRepository) GetByID(ctx context.Context, id uint64) (*ledgerDomain.Block, error) {
	var out ledgerDomain.Block
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&out).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ledgerDomain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *BlockRepository) List(ctx context.Context, afterID uint64, limit int) ([]ledgerDomain.Block, error) {
	var out []ledgerDomain.Block
	q := r.db.WithContext(ctx).Where("id > ?", afterID).Order("id ASC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Find(&out).Error
	return out, err
}

func (r *BlockRepository) ListByUniqueDataID(ctx context.Context, uniqueDataID string) ([]ledgerDomain.Block, error) {
	var out []ledgerDomain.Block
	err := r.db.WithContext(ctx).
		Where("unique_data_id = ?", uniqueDataID).
		Order("id ASC").
		Find(&out).Error
	return out, err
}
