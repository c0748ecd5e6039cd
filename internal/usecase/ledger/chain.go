package ledger

import (
	"context"
	"errors"
	"fmt"
	"time"

	domain "lending-ledger/internal/domain/ledger"
)

// Chain appends blocks. It holds no state of its own: the tail is read from the
// repository it is handed, so it must run inside the caller's transaction.
type Chain struct {
	loc *time.Location
	now func() time.Time
}

// NewChain renders timestamps in loc; now defaults to time.Now.
func NewChain(loc *time.Location, now func() time.Time) *Chain {
	if loc == nil {
		loc = domain.Zone(domain.DefaultOffsetMinutes)
	}
	if now == nil {
		now = time.Now
	}
	return &Chain{loc: loc, now: now}
}

// Timestamp is the current time in the chain's zone and layout.
func (c *Chain) Timestamp() string { return domain.FormatTimestamp(c.now(), c.loc) }

func (c *Chain) Location() *time.Location { return c.loc }

// Append reads the locked tail, links a new block to it and persists it.
func (c *Chain) Append(ctx context.Context, blocks domain.Repository, in AppendInput) (*domain.Block, error) {
	if in.UniqueDataID == "" || in.Actor == "" || in.EventType == "" {
		return nil, errors.New("unique_data_id, actor and event_type are required")
	}
	meta, err := domain.NewMetadata(in.Metadata)
	if err != nil {
		return nil, err
	}
	tail, err := blocks.TailForUpdate(ctx)
	if err != nil {
		return nil, fmt.Errorf("read chain tail: %w", err)
	}
	b := domain.NextBlock(tail, in.UniqueDataID, in.Actor, in.EventType, meta, c.Timestamp())
	if err := blocks.Create(ctx, b); err != nil {
		return nil, fmt.Errorf("append block: %w", err)
	}
	return b, nil
}
