package account

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	domain "lending-ledger/internal/domain/account"
	ledgerDomain "lending-ledger/internal/domain/ledger"
	"lending-ledger/internal/domain/uow"
	"lending-ledger/internal/infrastructure/metrics"
	ledgeruc "lending-ledger/internal/usecase/ledger"
	"lending-ledger/pkg/id"
	"lending-ledger/pkg/password"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type Usecase struct {
	repo    domain.Repository
	uow     uow.UnitOfWork
	chain   *ledgeruc.Chain
	log     *zap.Logger
	metrics *metrics.Metrics
	now     func() time.Time
}

func NewUsecase(r domain.Repository, tx uow.UnitOfWork, chain *ledgeruc.Chain, log *zap.Logger, m *metrics.Metrics) *Usecase {
	if log == nil {
		log = zap.NewNop()
	}
	return &Usecase{repo: r, uow: tx, chain: chain, log: log, metrics: m, now: time.Now}
}

// Register creates the user plus its lender or borrower record and records
// "User Created" on the chain, all in one transaction.
func (u *Usecase) Register(ctx context.Context, in RegisterInput) (*RegisterResult, error) {
	if !in.Role.Valid() {
		return nil, domain.ErrInvalidRole
	}
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if in.Name == "" || in.Email == "" {
		return nil, errors.New("name and email are required")
	}
	if !password.Valid(in.Password) {
		return nil, fmt.Errorf("password must be at least %d characters", password.MinLength)
	}
	hash, err := password.Hash(in.Password)
	if err != nil {
		return nil, err
	}
	actor := in.Actor
	if actor == "" {
		actor = string(domain.RoleAdmin)
	}

	res := &RegisterResult{}
	err = u.uow.WithinTx(ctx, func(r uow.Repos) error {
		switch _, err := r.Accounts.GetUserByEmail(ctx, in.Email); {
		case err == nil:
			return domain.ErrEmailTaken
		case !errors.Is(err, domain.ErrUserNotFound):
			return err
		}

		now := u.now().UTC()
		user := &domain.User{
			Name:          in.Name,
			Email:         in.Email,
			PasswordHash:  hash,
			Role:          in.Role,
			WalletAddress: in.WalletAddress,
			CreatedAt:     now,
		}
		if err := r.Accounts.CreateUser(ctx, user); err != nil {
			return err
		}
		res.User = user

		switch in.Role {
		case domain.RoleLender:
			l := &domain.Lender{
				UserID:         user.ID,
				MinAmount:      orDefault(in.MinAmount, domain.DefaultLenderMinAmount),
				MaxAmount:      orDefault(in.MaxAmount, domain.DefaultLenderMaxAmount),
				InterestRate:   orDefault(in.InterestRate, domain.DefaultLenderInterestRate),
				AccountBalance: decimal.Zero,
				Remarks:        in.Remarks,
				CreatedAt:      now,
			}
			if err := r.Accounts.CreateLender(ctx, l); err != nil {
				return err
			}
			res.LenderID = &l.ID
		case domain.RoleBorrower:
			b := &domain.Borrower{
				UserID:         user.ID,
				CreditScore:    domain.InitialCreditScore,
				AccountBalance: decimal.Zero,
				CreatedAt:      now,
			}
			if err := r.Accounts.CreateBorrower(ctx, b); err != nil {
				return err
			}
			res.BorrowerID = &b.ID
		}

		_, err := u.chain.Append(ctx, r.Blocks, ledgeruc.AppendInput{
			UniqueDataID: id.NewUniqueDataID(u.chain.Timestamp()),
			Actor:        actor,
			EventType:    ledgerDomain.EventUserCreated,
			Metadata: map[string]any{
				"user_id": user.ID,
				"name":    user.Name,
				"role":    string(user.Role),
				"email":   user.Email,
			},
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	u.metrics.BlockAppended(ledgerDomain.EventUserCreated)
	u.log.Info("user registered",
		zap.Uint64("user_id", res.User.ID),
		zap.String("role", string(res.User.Role)))
	return res, nil
}

// TopUp credits a lender or borrower balance. There is no upper bound.
func (u *Usecase) TopUp(ctx context.Context, in TopUpInput) (*TopUpResult, error) {
	if !in.Amount.IsPositive() {
		return nil, domain.ErrInvalidAmount
	}
	out := &TopUpResult{Role: in.Role, AccountID: in.AccountID}
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		switch in.Role {
		case domain.RoleLender:
			l, err := r.Accounts.GetLenderForUpdate(ctx, in.AccountID)
			if err != nil {
				return err
			}
			out.NewBalance = domain.Credit(l.AccountBalance, in.Amount)
			return r.Accounts.UpdateLenderBalance(ctx, l.ID, out.NewBalance)
		case domain.RoleBorrower:
			b, err := r.Accounts.GetBorrowerForUpdate(ctx, in.AccountID)
			if err != nil {
				return err
			}
			out.NewBalance = domain.Credit(b.AccountBalance, in.Amount)
			return r.Accounts.UpdateBorrowerAccount(ctx, b.ID, out.NewBalance, b.CreditScore)
		default:
			return domain.ErrInvalidRole
		}
	})
	if err != nil {
		return nil, err
	}
	u.log.Info("account topped up",
		zap.String("role", string(in.Role)),
		zap.Uint64("account_id", in.AccountID),
		zap.String("amount", in.Amount.String()))
	return out, nil
}

func (u *Usecase) GetLender(ctx context.Context, id uint64) (*domain.Lender, error) {
	return u.repo.GetLender(ctx, id)
}

func (u *Usecase) GetBorrower(ctx context.Context, id uint64) (*domain.Borrower, error) {
	return u.repo.GetBorrower(ctx, id)
}

func (u *Usecase) ListLenders(ctx context.Context) ([]domain.Lender, error) {
	return u.repo.ListLenders(ctx)
}

func (u *Usecase) ListBorrowers(ctx context.Context) ([]domain.Borrower, error) {
	return u.repo.ListBorrowers(ctx)
}

// GetProfileByName resolves a display name to a user and its account. With a
// role set, a miss maps to that role's not-found error.
func (u *Usecase) GetProfileByName(ctx context.Context, name string, role domain.Role) (*Profile, error) {
	user, err := u.repo.GetUserByName(ctx, name, role)
	if errors.Is(err, domain.ErrUserNotFound) {
		switch role {
		case domain.RoleLender:
			return nil, domain.ErrLenderNotFound
		case domain.RoleBorrower:
			return nil, domain.ErrBorrowerNotFound
		}
	}
	if err != nil {
		return nil, err
	}

	p := &Profile{User: user}
	switch user.Role {
	case domain.RoleLender:
		l, err := u.repo.GetLenderByUserID(ctx, user.ID)
		if err != nil {
			return nil, err
		}
		l.User = nil
		p.Lender = l
	case domain.RoleBorrower:
		b, err := u.repo.GetBorrowerByUserID(ctx, user.ID)
		if err != nil {
			return nil, err
		}
		b.User = nil
		p.Borrower = b
	}
	return p, nil
}

// LenderNames maps lender ids to their users' names. Unknown ids are left out.
func (u *Usecase) LenderNames(ctx context.Context, ids []uint64) (map[uint64]string, error) {
	ls, err := u.repo.ListLendersByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	out := make(map[uint64]string, len(ls))
	for _, l := range ls {
		if l.User != nil {
			out[l.ID] = l.User.Name
		}
	}
	return out, nil
}

func orDefault(v *decimal.Decimal, d decimal.Decimal) decimal.Decimal {
	if v == nil {
		return d
	}
	return *v
}
