package ledger

import (
	"context"

	domain "lending-ledger/internal/domain/ledger"
	"lending-ledger/internal/domain/uow"
	"lending-ledger/internal/infrastructure/metrics"

	"go.uber.org/zap"
)

type Usecase struct {
	blocks  domain.Repository
	uow     uow.UnitOfWork
	chain   *Chain
	log     *zap.Logger
	metrics *metrics.Metrics
}

func NewUsecase(blocks domain.Repository, tx uow.UnitOfWork, chain *Chain, log *zap.Logger, m *metrics.Metrics) *Usecase {
	if log == nil {
		log = zap.NewNop()
	}
	return &Usecase{blocks: blocks, uow: tx, chain: chain, log: log, metrics: m}
}

// Append records a standalone event in its own transaction.
func (u *Usecase) Append(ctx context.Context, in AppendInput) (*domain.Block, error) {
	var out *domain.Block
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		b, err := u.chain.Append(ctx, r.Blocks, in)
		if err != nil {
			return err
		}
		out = b
		return nil
	})
	if err != nil {
		return nil, err
	}
	u.metrics.BlockAppended(out.EventType)
	u.log.Info("block appended",
		zap.Uint64("block_id", out.ID),
		zap.String("event_type", out.EventType),
		zap.String("actor", out.Actor))
	return out, nil
}

func (u *Usecase) Get(ctx context.Context, id uint64) (*domain.Block, error) {
	return u.blocks.GetByID(ctx, id)
}

// List pages through the chain in ascending order.
func (u *Usecase) List(ctx context.Context, in ListInput) ([]domain.Block, error) {
	limit := in.Limit
	switch {
	case limit <= 0:
		limit = DefaultListLimit
	case limit > MaxListLimit:
		limit = MaxListLimit
	}
	return u.blocks.List(ctx, in.AfterID, limit)
}

func (u *Usecase) History(ctx context.Context, uniqueDataID string) ([]domain.Block, error) {
	return u.blocks.ListByUniqueDataID(ctx, uniqueDataID)
}

// Verify loads the whole chain and checks every link. Integrity failures are
// reported in the result; only a failed read returns an error.
func (u *Usecase) Verify(ctx context.Context) (domain.VerifyResult, error) {
	blocks, err := u.blocks.List(ctx, 0, 0)
	if err != nil {
		return domain.VerifyResult{}, err
	}
	res := domain.Verify(blocks)
	u.metrics.VerifyCompleted(res.Valid)
	if !res.Valid {
		u.log.Warn("ledger verification failed",
			zap.Intp("index", res.Index),
			zap.Uint64("block_id", res.BlockID),
			zap.String("failure", string(res.Failure)))
	}
	return res, nil
}
