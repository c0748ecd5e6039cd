package mysql

import (
	"context"
	"errors"
	"fmt"
	"testing"

	ledgerDomain "lending-ledger/internal/domain/ledger"
	"lending-ledger/internal/testutil/testdb"
)

func appendBlocks(t *testing.T, repo *BlockRepository, n int) []*ledgerDomain.Block {
	t.Helper()
	ctx := context.Background()
	var out []*ledgerDomain.Block
	for i := 0; i < n; i++ {
		tail, err := repo.TailForUpdate(ctx)
		if err != nil {
			t.Fatalf("TailForUpdate: %v", err)
		}
		meta, _ := ledgerDomain.NewMetadata(map[string]int{"seq": i})
		ts := fmt.Sprintf("2025-01-02T08:34:%02d.000000+05:30", i)
		b := ledgerDomain.NextBlock(tail, fmt.Sprintf("uid-%d", i), "admin", ledgerDomain.EventUserCreated, meta, ts)
		if err := repo.Create(ctx, b); err != nil {
			t.Fatalf("Create: %v", err)
		}
		out = append(out, b)
	}
	return out
}

func TestBlock_TailForUpdate_Empty(t *testing.T) {
	repo := NewBlockRepository(testdb.Open(t))

	tail, err := repo.TailForUpdate(context.Background())
	if err != nil {
		t.Fatalf("TailForUpdate: %v", err)
	}
	if tail != nil {
		t.Fatalf("expected nil tail on empty ledger, got %+v", tail)
	}
}

func TestBlock_AppendAndVerify(t *testing.T) {
	repo := NewBlockRepository(testdb.Open(t))
	ctx := context.Background()

	created := appendBlocks(t, repo, 5)
	if created[0].PrevHash != ledgerDomain.GenesisHash {
		t.Fatalf("first block prev_hash = %q", created[0].PrevHash)
	}

	tail, err := repo.TailForUpdate(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if tail.ID != created[4].ID || tail.Hash != created[4].Hash {
		t.Fatalf("tail = %+v, want id %d", tail, created[4].ID)
	}

	all, err := repo.List(ctx, 0, 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 5 {
		t.Fatalf("List returned %d blocks", len(all))
	}
	if res := ledgerDomain.Verify(all); !res.Valid {
		t.Fatalf("stored chain should verify: %+v", res)
	}

	var meta map[string]int
	if err := all[3].Metadata.Decode(&meta); err != nil || meta["seq"] != 3 {
		t.Fatalf("metadata round trip: %v %v", meta, err)
	}
}

func TestBlock_ListPaging(t *testing.T) {
	repo := NewBlockRepository(testdb.Open(t))
	ctx := context.Background()
	created := appendBlocks(t, repo, 6)

	page, err := repo.List(ctx, created[1].ID, 3)
	if err != nil {
		t.Fatal(err)
	}
	if len(page) != 3 || page[0].ID != created[2].ID || page[2].ID != created[4].ID {
		t.Fatalf("unexpected page: %+v", page)
	}
}

func TestBlock_GetByID(t *testing.T) {
	repo := NewBlockRepository(testdb.Open(t))
	ctx := context.Background()
	created := appendBlocks(t, repo, 2)

	got, err := repo.GetByID(ctx, created[1].ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Hash != created[1].Hash || got.EventType != ledgerDomain.EventUserCreated {
		t.Fatalf("unexpected block: %+v", got)
	}

	if _, err := repo.GetByID(ctx, 404); !errors.Is(err, ledgerDomain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestBlock_ListByUniqueDataID(t *testing.T) {
	repo := NewBlockRepository(testdb.Open(t))
	ctx := context.Background()
	appendBlocks(t, repo, 3)

	got, err := repo.ListByUniqueDataID(ctx, "uid-1")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].UniqueDataID != "uid-1" {
		t.Fatalf("unexpected history: %+v", got)
	}
}

func TestBlock_ForkRejected(t *testing.T) {
	repo := NewBlockRepository(testdb.Open(t))
	ctx := context.Background()
	created := appendBlocks(t, repo, 2)

	// A second child of block 0 would fork the chain.
	fork := ledgerDomain.NextBlock(created[0], "uid-fork", "admin", ledgerDomain.EventUserCreated, nil,
		"2025-01-02T09:00:00.000000+05:30")
	if err := repo.Create(ctx, fork); err == nil {
		t.Fatalf("expected unique prev_hash violation")
	}
}
