package mysql

import (
	"context"
	"errors"

	accountDomain "lending-ledger/internal/domain/account"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AccountRepository struct{ db *gorm.DB }

func NewAccountRepository(db *gorm.DB) *AccountRepository { return &AccountRepository{db: db} }

func (r *AccountRepository) CreateUser(ctx context.Context, u *accountDomain.User) error {
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *AccountRepository) GetUserByEmail(ctx context.Context, email string) (*accountDomain.User, error) {
	var out accountDomain.User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&out).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, accountDomain.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *AccountRepository) GetUserByName(ctx context.Context, name string, role accountDomain.Role) (*accountDomain.User, error) {
	q := r.db.WithContext(ctx).Where("name = ?", name)
	if role != "" {
		q = q.Where("role = ?", role)
	}
	var out accountDomain.User
	err := q.Order("id ASC").First(&out).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, accountDomain.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *AccountRepository) CreateLender(ctx context.Context, l *accountDomain.Lender) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(l).Error
}

func (r *AccountRepository) CreateBorrower(ctx context.Context, b *accountDomain.Borrower) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(b).Error
}

func (r *AccountRepository) GetLender(ctx context.Context, id uint64) (*accountDomain.Lender, error) {
	var out accountDomain.Lender
	err := r.db.WithContext(ctx).Preload("User").Where("id = ?", id).First(&out).Error
	return lenderResult(&out, err)
}

func (r *AccountRepository) GetBorrower(ctx context.Context, id uint64) (*accountDomain.Borrower, error) {
	var out accountDomain.Borrower
	err := r.db.WithContext(ctx).Preload("User").Where("id = ?", id).First(&out).Error
	return borrowerResult(&out, err)
}

func (r *AccountRepository) ListLenders(ctx context.Context) ([]accountDomain.Lender, error) {
	var out []accountDomain.Lender
	err := r.db.WithContext(ctx).Preload("User").Order("id ASC").Find(&out).Error
	return out, err
}

func (r *AccountRepository) ListBorrowers(ctx context.Context) ([]accountDomain.Borrower, error) {
	var out []accountDomain.Borrower
	err := r.db.WithContext(ctx).Preload("User").Order("id ASC").Find(&out).Error
	return out, err
}

func (r *AccountRepository) GetLenderByUserID(ctx context.Context, userID uint64) (*accountDomain.Lender, error) {
	var out accountDomain.Lender
	err := r.db.WithContext(ctx).Preload("User").Where("user_id = ?", userID).First(&out).Error
	return lenderResult(&out, err)
}

func (r *AccountRepository) GetBorrowerByUserID(ctx context.Context, userID uint64) (*accountDomain.Borrower, error) {
	var out accountDomain.Borrower
	err := r.db.WithContext(ctx).Preload("User").Where("user_id = ?", userID).First(&out).Error
	return borrowerResult(&out, err)
}

func (r *AccountRepository) ListLendersByIDs(ctx context.Context, ids []uint64) ([]accountDomain.Lender, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var out []accountDomain.Lender
	err := r.db.WithContext(ctx).Preload("User").Where("id IN ?", ids).Order("id ASC").Find(&out).Error
	return out, err
}

func (r *AccountRepository) GetLenderForUpdate(ctx context.Context, id uint64) (*accountDomain.Lender, error) {
	var out accountDomain.Lender
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&out).Error
	return lenderResult(&out, err)
}

func (r *AccountRepository) GetBorrowerForUpdate(ctx context.Context, id uint64) (*accountDomain.Borrower, error) {
	var out accountDomain.Borrower
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&out).Error
	return borrowerResult(&out, err)
}

func (r *AccountRepository) UpdateLenderBalance(ctx context.Context, id uint64, balance decimal.Decimal) error {
	return r.db.WithContext(ctx).
		Model(&accountDomain.Lender{}).
		Where("id = ?", id).
		Update("account_balance", balance).Error
}

func (r *AccountRepository) UpdateBorrowerAccount(ctx context.Context, id uint64, balance decimal.Decimal, creditScore int) error {
	return r.db.WithContext(ctx).
		Model(&accountDomain.Borrower{}).
		Where("id = ?", id).
		Updates(map[string]any{"account_balance": balance, "credit_score": creditScore}).Error
}

func lenderResult(l *accountDomain.Lender, err error) (*accountDomain.Lender, error) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, accountDomain.ErrLenderNotFound
	}
	if err != nil {
		return nil, err
	}
	return l, nil
}

func borrowerResult(b *accountDomain.Borrower, err error) (*accountDomain.Borrower, error) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, accountDomain.ErrBorrowerNotFound
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}
