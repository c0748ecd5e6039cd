package ledger

import "fmt"

type Failure string

const (
	FailureGenesis  Failure = "genesis_prev_hash"
	FailurePrevHash Failure = "prev_hash_mismatch"
	FailureHash     Failure = "hash_mismatch"
)

// VerifyResult describes the first inconsistency found, if any.
type VerifyResult struct {
	Valid   bool    `json:"is_valid"`
	Checked int     `json:"checked"`
	Index   *int    `json:"index,omitempty"`
	BlockID uint64  `json:"block_id,omitempty"`
	Failure Failure `json:"failure,omitempty"`
	Error   string  `json:"error_message,omitempty"`
}

// Verify walks blocks (ascending sequence) and stops at the first broken link.
// The first block is only checked for the genesis prev_hash; every later block
// must point at its predecessor and reproduce its own hash.
func Verify(blocks []Block) VerifyResult {
	for i := range blocks {
		b := &blocks[i]
		if i == 0 {
			if b.PrevHash != GenesisHash {
				return failed(i, b, FailureGenesis, fmt.Sprintf("Invalid genesis block prev_hash at index %d", i))
			}
			continue
		}
		if b.PrevHash != blocks[i-1].Hash {
			return failed(i, b, FailurePrevHash, fmt.Sprintf("Hash mismatch at block %d", i))
		}
		if b.Hash != b.ComputeHash() {
			return failed(i, b, FailureHash, fmt.Sprintf("Hash calculation mismatch at block %d", i))
		}
	}
	return VerifyResult{Valid: true, Checked: len(blocks)}
}

func failed(i int, b *Block, kind Failure, msg string) VerifyResult {
	idx := i
	return VerifyResult{
		Valid:   false,
		Checked: i + 1,
		Index:   &idx,
		BlockID: b.ID,
		Failure: kind,
		Error:   msg,
	}
}
