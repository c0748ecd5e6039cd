package collateral

import (
	"errors"
	"time"
)

var (
	ErrNotFound  = errors.New("collateral not found")
	ErrEmptyFile = errors.New("no file provided")
)

// Table: collaterals
type Collateral struct {
	ID           uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	BorrowerID   uint64    `gorm:"column:borrower_id;not null;index" json:"borrower_id"`
	Filename     string    `gorm:"column:filename;size:100;not null" json:"filename"`
	Filepath     string    `gorm:"column:filepath;size:200;not null" json:"filepath"`
	FileMetadata *string   `gorm:"column:file_metadata;type:text" json:"file_metadata,omitempty"`
	UniqueDataID string    `gorm:"column:unique_data_id;size:100;not null;uniqueIndex:ux_collaterals_unique_data_id" json:"unique_data_id"`
	UploadedAt   time.Time `gorm:"column:uploaded_at" json:"uploaded_at"`
}

func (Collateral) TableName() string { return "collaterals" }
