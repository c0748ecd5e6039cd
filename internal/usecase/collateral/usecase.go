package collateral

import (
	"context"
	"encoding/json"
	"io"
	"strconv"
	"time"

	domain "lending-ledger/internal/domain/collateral"
	ledgerDomain "lending-ledger/internal/domain/ledger"
	"lending-ledger/internal/domain/uow"
	"lending-ledger/internal/infrastructure/metrics"
	"lending-ledger/internal/infrastructure/storage"
	ledgeruc "lending-ledger/internal/usecase/ledger"
	"lending-ledger/pkg/id"

	"go.uber.org/zap"
)

// FileStore persists uploaded bytes and returns where they landed.
type FileStore interface {
	Save(ctx context.Context, name string, r io.Reader) (string, error)
	Remove(path string) error
}

type UploadInput struct {
	BorrowerID  uint64
	Filename    string
	ContentType string
	Size        int64
	Content     io.Reader
	Actor       string
}

type Usecase struct {
	repo    domain.Repository
	uow     uow.UnitOfWork
	files   FileStore
	chain   *ledgeruc.Chain
	log     *zap.Logger
	metrics *metrics.Metrics
	now     func() time.Time
}

func NewUsecase(r domain.Repository, tx uow.UnitOfWork, files FileStore, chain *ledgeruc.Chain, log *zap.Logger, m *metrics.Metrics) *Usecase {
	if log == nil {
		log = zap.NewNop()
	}
	return &Usecase{repo: r, uow: tx, files: files, chain: chain, log: log, metrics: m, now: time.Now}
}

// Upload stores the document, records it against the borrower and appends
// "Collateral Uploaded". The stored file is removed if the transaction fails.
func (u *Usecase) Upload(ctx context.Context, in UploadInput) (*domain.Collateral, error) {
	if in.Content == nil {
		return nil, domain.ErrEmptyFile
	}
	actor := in.Actor
	if actor == "" {
		actor = "borrower_" + strconv.FormatUint(in.BorrowerID, 10)
	}

	var out *domain.Collateral
	var stored string
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		if _, err := r.Accounts.GetBorrowerForUpdate(ctx, in.BorrowerID); err != nil {
			return err
		}

		uid := id.NewUniqueDataID(u.chain.Timestamp())
		name := id.NewID32()[:10] + "_upload"
		if in.Filename != "" {
			name = storage.StoredName(in.Filename, uid)
		}
		path, err := u.files.Save(ctx, name, in.Content)
		if err != nil {
			return err
		}
		stored = path

		filename := in.Filename
		if filename == "" {
			filename = name
		}
		meta, err := json.Marshal(map[string]any{"content_type": in.ContentType, "size": in.Size})
		if err != nil {
			return err
		}
		fileMeta := string(meta)
		c := &domain.Collateral{
			BorrowerID:   in.BorrowerID,
			Filename:     filename,
			Filepath:     path,
			FileMetadata: &fileMeta,
			UniqueDataID: uid,
			UploadedAt:   u.now().UTC(),
		}
		if err := r.Collaterals.Create(ctx, c); err != nil {
			return err
		}

		if _, err := u.chain.Append(ctx, r.Blocks, ledgeruc.AppendInput{
			UniqueDataID: c.UniqueDataID,
			Actor:        actor,
			EventType:    ledgerDomain.EventCollateralUploaded,
			Metadata: map[string]any{
				"collateral_id": c.ID,
				"filename":      c.Filename,
				"borrower_id":   c.BorrowerID,
			},
		}); err != nil {
			return err
		}
		out = c
		return nil
	})
	if err != nil {
		if stored != "" {
			if rmErr := u.files.Remove(stored); rmErr != nil {
				u.log.Warn("orphaned collateral file", zap.String("path", stored), zap.Error(rmErr))
			}
		}
		return nil, err
	}

	u.metrics.BlockAppended(ledgerDomain.EventCollateralUploaded)
	u.log.Info("collateral uploaded",
		zap.Uint64("collateral_id", out.ID),
		zap.Uint64("borrower_id", out.BorrowerID))
	return out, nil
}

func (u *Usecase) ListByBorrower(ctx context.Context, borrowerID uint64) ([]domain.Collateral, error) {
	return u.repo.ListByBorrowerID(ctx, borrowerID)
}
