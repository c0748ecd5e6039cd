package account

import (
	"time"

	"github.com/shopspring/decimal"
)

// Credit score adjustments. The score has no floor or ceiling.
const (
	InitialCreditScore = 750

	ApprovalCreditChange = -25
	OnTimeCreditChange   = 15
	EarlyCreditBonus     = 5
	LateCreditChange     = -25
)

// Defaults for a freshly registered lender.
var (
	DefaultLenderMinAmount    = decimal.Zero
	DefaultLenderMaxAmount    = decimal.NewFromInt(10000)
	DefaultLenderInterestRate = decimal.NewFromInt(5)
)

var hundred = decimal.NewFromInt(100)

func CanCover(balance, amount decimal.Decimal) bool { return balance.GreaterThanOrEqual(amount) }

func Debit(balance, amount decimal.Decimal) decimal.Decimal  { return balance.Sub(amount) }
func Credit(balance, amount decimal.Decimal) decimal.Decimal { return balance.Add(amount) }

// TotalRepayment = amount * (1 + ratePercent/100), rounded half away from zero
// to cents so the funds check compares what the balance columns will store.
func TotalRepayment(amount, ratePercent decimal.Decimal) decimal.Decimal {
	return amount.Add(amount.Mul(ratePercent).Div(hundred)).Round(2)
}

// RepaymentCreditChange scores a repayment against the due date. A loan without
// a due date is always scored as late.
func RepaymentCreditChange(repaidAt time.Time, dueDate *time.Time) int {
	if dueDate == nil || repaidAt.After(*dueDate) {
		return LateCreditChange
	}
	change := OnTimeCreditChange
	if repaidAt.Before(*dueDate) {
		change += EarlyCreditBonus
	}
	return change
}

// Transfer moves amount from one balance to another after checking the source can cover it.
func Transfer(from, to, amount decimal.Decimal) (newFrom, newTo decimal.Decimal, err error) {
	if !CanCover(from, amount) {
		return from, to, ErrInsufficientFunds
	}
	return Debit(from, amount), Credit(to, amount), nil
}
