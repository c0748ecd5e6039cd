package ledger

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
)

var (
	ErrNotFound = errors.New("block not found")
)

// Event labels recorded on the chain.
const (
	EventUserCreated        = "User Created"
	EventCollateralUploaded = "Collateral Uploaded"
	EventLoanRequested      = "Loan Requested"
	EventLoanApproved       = "Loan Approved"
	EventLoanRejected       = "Loan Rejected"
	EventLoanRepaid         = "Loan Repaid"
)

// Table: blocks. Rows are written once and never updated.
type Block struct {
	// Sequence id; chain order is ascending id
	ID           uint64 `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	UniqueDataID string `gorm:"column:unique_data_id;size:100;not null;index:idx_blocks_unique_data_id" json:"unique_data_id"`
	// A second block claiming the same predecessor is a fork; the unique index refuses it
	PrevHash  string   `gorm:"column:prev_hash;type:char(64);not null;uniqueIndex:ux_blocks_prev_hash" json:"prev_hash"`
	Hash      string   `gorm:"column:hash;type:char(64);not null" json:"hash"`
	Timestamp string   `gorm:"column:timestamp;size:50;not null" json:"timestamp"`
	Nonce     int      `gorm:"column:nonce;not null" json:"-"`
	Actor     string   `gorm:"column:actor;size:50;not null" json:"actor"`
	EventType string   `gorm:"column:event_type;size:50;not null" json:"event_type"`
	Metadata  Metadata `gorm:"column:block_metadata" json:"metadata"`
}

func (Block) TableName() string { return "blocks" }

// Metadata is an opaque JSON payload, stored verbatim as text and replayed on read.
type Metadata json.RawMessage

// NewMetadata encodes v; a nil v yields an empty payload.
func NewMetadata(v any) (Metadata, error) {
	if v == nil {
		return nil, nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode block metadata: %w", err)
	}
	if string(b) == "null" {
		return nil, nil
	}
	return Metadata(b), nil
}

// Decode unmarshals the payload into v. Empty payloads leave v untouched.
func (m Metadata) Decode(v any) error {
	if len(m) == 0 {
		return nil
	}
	return json.Unmarshal(m, v)
}

func (Metadata) GormDataType() string { return "text" }

func (m Metadata) Value() (driver.Value, error) {
	if len(m) == 0 {
		return nil, nil
	}
	return string(m), nil
}

func (m *Metadata) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*m = nil
	case []byte:
		*m = append(Metadata(nil), v...)
	case string:
		*m = Metadata(v)
	default:
		return fmt.Errorf("block metadata: unsupported type %T", src)
	}
	return nil
}

func (m Metadata) MarshalJSON() ([]byte, error) {
	if len(m) == 0 {
		return []byte("null"), nil
	}
	return m, nil
}

func (m *Metadata) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*m = nil
		return nil
	}
	*m = append(Metadata(nil), b...)
	return nil
}
