package models

import (
	"gorm.io/gorm"

	"github.com/inboxd/inboxd/internal/utils"
)

// BlockedSender is a spam-blocking rule. Domain is set only when the block
// applies to the whole mail domain rather than the exact address.
type BlockedSender struct {
	ID     string `gorm:"column:id;type:varchar(50);primaryKey" json:"id"`
	Email  string `gorm:"column:email;uniqueIndex;type:varchar(255);not null" json:"email"`
	Domain string `gorm:"column:domain;type:varchar(255);index" json:"domain,omitempty"`
	Reason string `gorm:"column:reason;type:text" json:"reason,omitempty"`

	// Epoch milliseconds, creation time
	BlockedAt int64 `gorm:"column:blocked_at" json:"blockedAt"`
}

func (BlockedSender) TableName() string {
	return "blocked_senders"
}

func (b *BlockedSender) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = utils.GenerateNanoIDWithPrefix("blk", 16)
	}
	if b.BlockedAt == 0 {
		b.BlockedAt = utils.NowMillis()
	}
	return nil
}
