package ledger

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"testing"
	"time"
)

// buildChain links n blocks one second apart starting at a fixed instant.
func buildChain(n int) []Block {
	base := time.Date(2025, 1, 2, 3, 4, 5, 123456000, time.UTC)
	loc := Zone(DefaultOffsetMinutes)
	var out []Block
	var tail *Block
	for i := 0; i < n; i++ {
		ts := FormatTimestamp(base.Add(time.Duration(i)*time.Second), loc)
		b := NextBlock(tail, fmt.Sprintf("uid-%d", i), "admin", EventUserCreated, nil, ts)
		b.ID = uint64(i + 1)
		out = append(out, *b)
		tail = &out[len(out)-1]
	}
	return out
}

func TestComputeHash_MatchesFormula(t *testing.T) {
	prev := GenesisHash
	uid := "abc_2025-01-02T08:34:05.123456+05:30"
	ts := "2025-01-02T08:34:05.123456+05:30"

	sum := sha256.Sum256([]byte(prev + uid + ts + "0"))
	want := hex.EncodeToString(sum[:])

	if got := ComputeHash(prev, uid, ts, 0); got != want {
		t.Fatalf("ComputeHash = %s, want %s", got, want)
	}
	if len(GenesisHash) != 64 || strings.Trim(GenesisHash, "0") != "" {
		t.Fatalf("genesis sentinel malformed: %q", GenesisHash)
	}
}

func TestFormatTimestamp_UsesFixedOffset(t *testing.T) {
	at := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	got := FormatTimestamp(at, Zone(DefaultOffsetMinutes))
	if got != "2025-01-02T08:34:05.000000+05:30" {
		t.Fatalf("timestamp = %q", got)
	}
}

func TestNextBlock_LinksToTail(t *testing.T) {
	chain := buildChain(4)
	if chain[0].PrevHash != GenesisHash {
		t.Fatalf("block[0].prev_hash = %s", chain[0].PrevHash)
	}
	for i := 1; i < len(chain); i++ {
		if chain[i].PrevHash != chain[i-1].Hash {
			t.Fatalf("block[%d] not linked to block[%d]", i, i-1)
		}
		if chain[i].Nonce != 0 {
			t.Fatalf("block[%d] nonce = %d", i, chain[i].Nonce)
		}
	}
}

func TestVerify_ValidForAnyLength(t *testing.T) {
	for _, n := range []int{0, 1, 2, 7, 25} {
		res := Verify(buildChain(n))
		if !res.Valid || res.Error != "" || res.Index != nil {
			t.Fatalf("n=%d: want valid, got %+v", n, res)
		}
		if res.Checked != n {
			t.Fatalf("n=%d: checked = %d", n, res.Checked)
		}
	}
}

func TestVerify_DetectsTampering(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(b *Block)
		kind   Failure
	}{
		{"prev_hash", func(b *Block) { b.PrevHash = strings.Repeat("f", 64) }, FailurePrevHash},
		{"unique_data_id", func(b *Block) { b.UniqueDataID += "x" }, FailureHash},
		{"timestamp", func(b *Block) { b.Timestamp = "2030-01-01T00:00:00.000000+05:30" }, FailureHash},
		{"hash", func(b *Block) { b.Hash = strings.Repeat("a", 64) }, FailureHash},
	}
	for _, tc := range cases {
		for target := 1; target < 5; target++ {
			t.Run(fmt.Sprintf("%s@%d", tc.name, target), func(t *testing.T) {
				chain := buildChain(5)
				tc.mutate(&chain[target])
				res := Verify(chain)
				if res.Valid {
					t.Fatalf("tampered chain reported valid")
				}
				if res.Index == nil || *res.Index != target {
					t.Fatalf("index = %v, want %d", res.Index, target)
				}
				if res.Failure != tc.kind {
					t.Fatalf("failure = %s, want %s", res.Failure, tc.kind)
				}
				if res.BlockID != chain[target].ID {
					t.Fatalf("block id = %d, want %d", res.BlockID, chain[target].ID)
				}
			})
		}
	}
}

func TestVerify_BadGenesis(t *testing.T) {
	chain := buildChain(3)
	chain[0].PrevHash = strings.Repeat("1", 64)
	res := Verify(chain)
	if res.Valid || res.Failure != FailureGenesis || res.Index == nil || *res.Index != 0 {
		t.Fatalf("unexpected result: %+v", res)
	}
	if res.Error != "Invalid genesis block prev_hash at index 0" {
		t.Fatalf("message = %q", res.Error)
	}
}

func TestVerify_Messages(t *testing.T) {
	chain := buildChain(3)
	chain[2].PrevHash = strings.Repeat("e", 64)
	if got := Verify(chain).Error; got != "Hash mismatch at block 2" {
		t.Fatalf("message = %q", got)
	}

	chain = buildChain(3)
	chain[1].Timestamp += " "
	if got := Verify(chain).Error; got != "Hash calculation mismatch at block 1" {
		t.Fatalf("message = %q", got)
	}
}

func TestMetadata_RoundTrip(t *testing.T) {
	m, err := NewMetadata(map[string]int{"loan_id": 7})
	if err != nil {
		t.Fatalf("NewMetadata: %v", err)
	}
	v, err := m.Value()
	if err != nil {
		t.Fatalf("Value: %v", err)
	}
	var back Metadata
	if err := back.Scan([]byte(v.(string))); err != nil {
		t.Fatalf("Scan: %v", err)
	}
	var got struct {
		LoanID int `json:"loan_id"`
	}
	if err := back.Decode(&got); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got.LoanID != 7 {
		t.Fatalf("loan_id = %d", got.LoanID)
	}

	empty, err := NewMetadata(nil)
	if err != nil || empty != nil {
		t.Fatalf("nil metadata: %v %v", empty, err)
	}
	if v, _ := empty.Value(); v != nil {
		t.Fatalf("empty metadata should store NULL, got %v", v)
	}
}
