package mysql

import (
	"context"
	"errors"

	collateralDomain "lending-ledger/internal/domain/collateral"

	"gorm.io/gorm"
)

type CollateralRepository struct{ db *gorm.DB }

func NewCollateralRepository(db *gorm.DB) *CollateralRepository {
	return &CollateralRepository{db: db}
}

func (r *CollateralRepository) Create(ctx context.Context, c *collateralDomain.Collateral) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *CollateralRepository) GetByID(ctx context.Context, id uint64) (*collateralDomain.Collateral, error) {
	var out collateralDomain.Collateral
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&out).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, collateralDomain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *CollateralRepository) ListByBorrowerID(ctx context.Context, borrowerID uint64) ([]collateralDomain.Collateral, error) {
	var out []collateralDomain.Collateral
	err := r.db.WithContext(ctx).
		Where("borrower_id = ?", borrowerID).
		Order("id ASC").
		Find(&out).Error
	return out, err
}
