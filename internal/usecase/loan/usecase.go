package loan

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"lending-ledger/internal/domain/account"
	ledgerDomain "lending-ledger/internal/domain/ledger"
	"lending-ledger/internal/domain/loan"
	"lending-ledger/internal/domain/uow"
	"lending-ledger/internal/infrastructure/metrics"
	ledgeruc "lending-ledger/internal/usecase/ledger"
	"lending-ledger/pkg/id"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type Usecase struct {
	repo    loan.Repository
	uow     uow.UnitOfWork
	chain   *ledgeruc.Chain
	log     *zap.Logger
	metrics *metrics.Metrics
	now     func() time.Time
}

func NewUsecase(r loan.Repository, tx uow.UnitOfWork, chain *ledgeruc.Chain, log *zap.Logger, m *metrics.Metrics) *Usecase {
	if log == nil {
		log = zap.NewNop()
	}
	return &Usecase{repo: r, uow: tx, chain: chain, log: log, metrics: m, now: time.Now}
}

func borrowerActor(id uint64) string { return "borrower_" + strconv.FormatUint(id, 10) }

// Request opens a loan in the requested state. A borrower gets one request per
// 24h window, measured from the creation of their latest loan.
func (u *Usecase) Request(ctx context.Context, in RequestInput) (*LoanDTO, error) {
	if in.BorrowerID == 0 {
		return nil, account.ErrBorrowerNotFound
	}
	if !in.Amount.IsPositive() {
		return nil, account.ErrInvalidAmount
	}
	actor := in.Actor
	if actor == "" {
		actor = borrowerActor(in.BorrowerID)
	}

	var out *loan.Loan
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		// Locking the borrower serializes concurrent requests for the rate check
		if _, err := r.Accounts.GetBorrowerForUpdate(ctx, in.BorrowerID); err != nil {
			return err
		}

		now := u.now()
		latest, err := r.Loans.GetLatestByBorrowerID(ctx, in.BorrowerID)
		switch {
		case err == nil:
			if latest.RequestedWithin(now, loan.RequestWindow) {
				return loan.ErrRateLimited
			}
		case !errors.Is(err, loan.ErrNotFound):
			return err
		}

		l := &loan.Loan{
			UniqueDataID: id.NewUniqueDataID(u.chain.Timestamp()),
			BorrowerID:   in.BorrowerID,
			Amount:       in.Amount,
			Status:       loan.StatusRequested,
			CreatedAt:    now.UTC(),
		}
		if err := r.Loans.Create(ctx, l); err != nil {
			return err
		}

		if _, err := u.chain.Append(ctx, r.Blocks, ledgeruc.AppendInput{
			UniqueDataID: l.UniqueDataID,
			Actor:        actor,
			EventType:    ledgerDomain.EventLoanRequested,
			Metadata: map[string]any{
				"loan_id":     l.ID,
				"amount":      json.Number(l.Amount.String()),
				"borrower_id": l.BorrowerID,
			},
		}); err != nil {
			return err
		}
		out = l
		return nil
	})
	if err != nil {
		return nil, err
	}

	u.committed(out, ledgerDomain.EventLoanRequested, actor)
	return toDTO(out), nil
}

// Decide approves or rejects a requested loan. Approval moves the principal from
// the lender to the borrower and costs the borrower 25 credit points.
func (u *Usecase) Decide(ctx context.Context, in DecideInput) (*LoanDTO, error) {
	if in.Status != loan.StatusApproved && in.Status != loan.StatusRejected {
		return nil, loan.ErrInvalidStatus
	}
	actor := in.Actor
	if actor == "" {
		actor = string(account.RoleAdmin)
	}

	var out *loan.Loan
	err := u.uow.WithinLoanTx(ctx, in.LoanID, func(r uow.Repos, l *loan.Loan) error {
		if !loan.CanTransition(l.Status, in.Status) {
			return fmt.Errorf("%w: %s -> %s", loan.ErrInvalidTransition, l.Status, in.Status)
		}

		if in.Status == loan.StatusApproved {
			if err := u.disburse(ctx, r, l, in); err != nil {
				return err
			}
		}
		l.Status = in.Status
		if err := r.Loans.Save(ctx, l); err != nil {
			return err
		}

		if _, err := u.chain.Append(ctx, r.Blocks, ledgeruc.AppendInput{
			UniqueDataID: l.UniqueDataID,
			Actor:        actor,
			EventType:    decisionEvent(in.Status),
			Metadata: map[string]any{
				"loan_id":     l.ID,
				"status":      string(in.Status),
				"approved_by": actor,
			},
		}); err != nil {
			return err
		}
		out = l
		return nil
	})
	if err != nil {
		return nil, err
	}

	u.committed(out, decisionEvent(in.Status), actor)
	return toDTO(out), nil
}

func (u *Usecase) disburse(ctx context.Context, r uow.Repos, l *loan.Loan, in DecideInput) error {
	if in.LenderID == 0 {
		return account.ErrLenderNotFound
	}
	// lender before borrower, same order as Repay
	lender, err := r.Accounts.GetLenderForUpdate(ctx, in.LenderID)
	if err != nil {
		return err
	}
	borrower, err := r.Accounts.GetBorrowerForUpdate(ctx, l.BorrowerID)
	if err != nil {
		return err
	}

	lenderBal, borrowerBal, err := account.Transfer(lender.AccountBalance, borrower.AccountBalance, l.Amount)
	if err != nil {
		return fmt.Errorf("lender %d cannot fund %s: %w", lender.ID, l.Amount, err)
	}
	if err := r.Accounts.UpdateLenderBalance(ctx, lender.ID, lenderBal); err != nil {
		return err
	}
	score := borrower.CreditScore + account.ApprovalCreditChange
	if err := r.Accounts.UpdateBorrowerAccount(ctx, borrower.ID, borrowerBal, score); err != nil {
		return err
	}

	rate := lender.InterestRate
	if in.InterestRate != nil {
		rate = *in.InterestRate
	}
	now := u.now().UTC()
	l.LenderID = &lender.ID
	l.InterestRate = &rate
	l.DisbursedAt = &now
	if in.DueDate != nil {
		due := in.DueDate.UTC()
		l.DueDate = &due
	}
	return nil
}

// Repay settles an approved loan: principal plus interest moves from the borrower
// back to the lender and the borrower's credit score is adjusted against the due date.
func (u *Usecase) Repay(ctx context.Context, in RepayInput) (*RepayResult, error) {
	var (
		out    *loan.Loan
		change int
		total  decimal.Decimal
		actor  = in.Actor
	)
	err := u.uow.WithinLoanTx(ctx, in.LoanID, func(r uow.Repos, l *loan.Loan) error {
		if !loan.CanTransition(l.Status, loan.StatusPaid) {
			return fmt.Errorf("%w: %s -> %s", loan.ErrInvalidTransition, l.Status, loan.StatusPaid)
		}
		if l.LenderID == nil {
			return account.ErrLenderNotFound
		}
		if actor == "" {
			actor = borrowerActor(l.BorrowerID)
		}

		lender, err := r.Accounts.GetLenderForUpdate(ctx, *l.LenderID)
		if err != nil {
			return err
		}
		borrower, err := r.Accounts.GetBorrowerForUpdate(ctx, l.BorrowerID)
		if err != nil {
			return err
		}

		rate := decimal.Zero
		if l.InterestRate != nil {
			rate = *l.InterestRate
		}
		total = account.TotalRepayment(l.Amount, rate)
		borrowerBal, lenderBal, err := account.Transfer(borrower.AccountBalance, lender.AccountBalance, total)
		if err != nil {
			return fmt.Errorf("borrower %d cannot repay %s: %w", borrower.ID, total, err)
		}

		now := u.now()
		change = account.RepaymentCreditChange(now, l.DueDate)
		if err := r.Accounts.UpdateBorrowerAccount(ctx, borrower.ID, borrowerBal, borrower.CreditScore+change); err != nil {
			return err
		}
		if err := r.Accounts.UpdateLenderBalance(ctx, lender.ID, lenderBal); err != nil {
			return err
		}

		repaidAt := now.UTC()
		l.Status = loan.StatusPaid
		l.RepaidAt = &repaidAt
		if err := r.Loans.Save(ctx, l); err != nil {
			return err
		}

		if _, err := u.chain.Append(ctx, r.Blocks, ledgeruc.AppendInput{
			UniqueDataID: l.UniqueDataID,
			Actor:        actor,
			EventType:    ledgerDomain.EventLoanRepaid,
			Metadata: map[string]any{
				"loan_id":       l.ID,
				"credit_change": change,
				"repaid_at":     ledgerDomain.FormatTimestamp(now, u.chain.Location()),
			},
		}); err != nil {
			return err
		}
		out = l
		return nil
	})
	if err != nil {
		return nil, err
	}

	u.committed(out, ledgerDomain.EventLoanRepaid, actor)
	return &RepayResult{Loan: toDTO(out), CreditChange: change, TotalRepayment: total}, nil
}

func (u *Usecase) Get(ctx context.Context, loanID uint64) (*LoanDTO, error) {
	l, err := u.repo.GetByID(ctx, loanID)
	if err != nil {
		return nil, err
	}
	return toDTO(l), nil
}

func (u *Usecase) ListByBorrower(ctx context.Context, borrowerID uint64) ([]LoanDTO, error) {
	ls, err := u.repo.ListByBorrowerID(ctx, borrowerID)
	if err != nil {
		return nil, err
	}
	return toDTOs(ls), nil
}

func (u *Usecase) ListByLender(ctx context.Context, lenderID uint64) ([]LoanDTO, error) {
	ls, err := u.repo.ListByLenderID(ctx, lenderID)
	if err != nil {
		return nil, err
	}
	return toDTOs(ls), nil
}

// ListBetween returns the loans one lender funded for one borrower, newest first.
func (u *Usecase) ListBetween(ctx context.Context, lenderID, borrowerID uint64) ([]LoanDTO, error) {
	ls, err := u.repo.ListBetween(ctx, lenderID, borrowerID)
	if err != nil {
		return nil, err
	}
	return toDTOs(ls), nil
}

// ListRequested returns loans still waiting for a decision, oldest first.
func (u *Usecase) ListRequested(ctx context.Context) ([]LoanDTO, error) {
	ls, err := u.repo.ListByStatus(ctx, loan.StatusRequested)
	if err != nil {
		return nil, err
	}
	return toDTOs(ls), nil
}

func decisionEvent(s loan.Status) string {
	if s == loan.StatusApproved {
		return ledgerDomain.EventLoanApproved
	}
	return ledgerDomain.EventLoanRejected
}

func (u *Usecase) committed(l *loan.Loan, event, actor string) {
	u.metrics.LoanTransition(string(l.Status))
	u.metrics.BlockAppended(event)
	u.log.Info("loan transition committed",
		zap.Uint64("loan_id", l.ID),
		zap.String("status", string(l.Status)),
		zap.String("event_type", event),
		zap.String("actor", actor))
}
