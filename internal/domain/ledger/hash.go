package ledger

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"
	"time"
)

// TimestampLayout is hashed verbatim; changing it breaks verification of existing chains.
const TimestampLayout = "2006-01-02T15:04:05.000000-07:00"

// DefaultOffsetMinutes is UTC+05:30 (Asia/Kolkata), the zone every block timestamp uses.
const DefaultOffsetMinutes = 330

// GenesisHash is the prev_hash of the first block.
var GenesisHash = strings.Repeat("0", sha256.Size*2)

// Zone returns the fixed-offset location block timestamps are rendered in.
func Zone(offsetMinutes int) *time.Location {
	if offsetMinutes == DefaultOffsetMinutes {
		return time.FixedZone("IST", offsetMinutes*60)
	}
	return time.FixedZone("", offsetMinutes*60)
}

// FormatTimestamp renders t in loc using TimestampLayout.
func FormatTimestamp(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(TimestampLayout)
}

// ComputeHash = sha256(prevHash + uniqueDataID + timestamp + nonce), lowercase hex.
func ComputeHash(prevHash, uniqueDataID, timestamp string, nonce int) string {
	sum := sha256.Sum256([]byte(prevHash + uniqueDataID + timestamp + strconv.Itoa(nonce)))
	return hex.EncodeToString(sum[:])
}

// ComputeHash recomputes the hash over the block's stored fields.
func (b *Block) ComputeHash() string {
	return ComputeHash(b.PrevHash, b.UniqueDataID, b.Timestamp, b.Nonce)
}

// NextBlock links a new block after tail (nil for an empty chain).
func NextBlock(tail *Block, uniqueDataID, actor, eventType string, meta Metadata, timestamp string) *Block {
	prev := GenesisHash
	if tail != nil {
		prev = tail.Hash
	}
	b := &Block{
		UniqueDataID: uniqueDataID,
		PrevHash:     prev,
		Timestamp:    timestamp,
		Nonce:        0,
		Actor:        actor,
		EventType:    eventType,
		Metadata:     meta,
	}
	b.Hash = b.ComputeHash()
	return b
}
