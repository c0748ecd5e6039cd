package db

import (
	"gorm.io/gorm"

	"lending-ledger/internal/domain/account"
	"lending-ledger/internal/domain/collateral"
	"lending-ledger/internal/domain/ledger"
	"lending-ledger/internal/domain/loan"
)

// Models lists every table the service owns, in dependency order.
func Models() []any {
	return []any{
		&account.User{},
		&account.Lender{},
		&account.Borrower{},
		&loan.Loan{},
		&collateral.Collateral{},
		&ledger.Block{},
	}
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}
