package account

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrLenderNotFound    = errors.New("lender not found")
	ErrBorrowerNotFound  = errors.New("borrower not found")
	ErrUserNotFound      = errors.New("user not found")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrInvalidAmount     = errors.New("amount must be greater than zero")
	ErrInvalidRole       = errors.New("invalid role")
	ErrEmailTaken        = errors.New("email already registered")
)

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleLender   Role = "lender"
	RoleBorrower Role = "borrower"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleLender, RoleBorrower:
		return true
	}
	return false
}

// Table: users
type User struct {
	ID            uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name          string    `gorm:"column:name;size:100;not null" json:"name"`
	Email         string    `gorm:"column:email;size:100;not null;uniqueIndex:ux_users_email" json:"email"`
	PasswordHash  string    `gorm:"column:password;size:100;not null" json:"-"`
	Role          Role      `gorm:"column:role;size:20;not null" json:"role"`
	WalletAddress *string   `gorm:"column:wallet_address;size:100" json:"wallet_address,omitempty"`
	CreatedAt     time.Time `gorm:"column:created_at" json:"created_at"`
}

func (User) TableName() string { return "users" }

// Table: lenders
type Lender struct {
	ID             uint64          `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	UserID         uint64          `gorm:"column:user_id;not null;index" json:"user_id"`
	MinAmount      decimal.Decimal `gorm:"column:min_amount;type:decimal(18,2);not null" json:"min_amount"`
	MaxAmount      decimal.Decimal `gorm:"column:max_amount;type:decimal(18,2);not null" json:"max_amount"`
	InterestRate   decimal.Decimal `gorm:"column:interest_rate;type:decimal(6,2);not null" json:"interest_rate"`
	AccountBalance decimal.Decimal `gorm:"column:account_balance;type:decimal(18,2);not null" json:"account_balance"`
	Remarks        string          `gorm:"column:remarks;type:text" json:"remarks"`
	CreatedAt      time.Time       `gorm:"column:created_at" json:"created_at"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (Lender) TableName() string { return "lenders" }

// Table: borrowers
type Borrower struct {
	ID             uint64          `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	UserID         uint64          `gorm:"column:user_id;not null;index" json:"user_id"`
	CreditScore    int             `gorm:"column:credit_score;not null" json:"credit_score"`
	AccountBalance decimal.Decimal `gorm:"column:account_balance;type:decimal(18,2);not null" json:"account_balance"`
	CreatedAt      time.Time       `gorm:"column:created_at" json:"created_at"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (Borrower) TableName() string { return "borrowers" }
