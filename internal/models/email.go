package models

import (
	"time"

	"gorm.io/gorm"

	"github.com/inboxd/inboxd/internal/enum"
	"github.com/inboxd/inboxd/internal/utils"
)

// Email represents a stored mail message. Inbound messages are created from
// the Resend "email.received" webhook, outbound ones on send confirmation.
type Email struct {
	ID       string `gorm:"column:id;type:varchar(50);primaryKey" json:"id"`
	ResendID string `gorm:"column:resend_id;uniqueIndex;type:varchar(255);not null" json:"resendId"`

	// Core email metadata
	FromAddress string      `gorm:"column:from_address;type:varchar(255);index" json:"-"`
	FromName    string      `gorm:"column:from_name;type:varchar(255)" json:"-"`
	ToAddresses AddressList `gorm:"column:to_addresses;type:jsonb" json:"to"`
	CcAddresses AddressList `gorm:"column:cc_addresses;type:jsonb" json:"cc,omitempty"`
	Subject     string      `gorm:"column:subject;type:varchar(1000)" json:"subject"`

	// Epoch milliseconds, assigned by the ingesting side
	Timestamp int64 `gorm:"column:timestamp;index" json:"timestamp"`

	// Status
	IsRead bool             `gorm:"column:is_read;default:false" json:"isRead"`
	IsSpam bool             `gorm:"column:is_spam;default:false;index" json:"isSpam"`
	Folder enum.EmailFolder `gorm:"column:folder;type:varchar(20);index;not null" json:"folder"`

	// Delivery tracking, folder = sent only
	DeliveryStatus enum.DeliveryStatus `gorm:"column:delivery_status;type:varchar(20)" json:"deliveryStatus,omitempty"`
	BounceType     enum.BounceType     `gorm:"column:bounce_type;type:varchar(10)" json:"-"`
	BounceMessage  string              `gorm:"column:bounce_message;type:text" json:"-"`
	StatusHistory  StatusHistory       `gorm:"column:status_history;type:jsonb" json:"statusHistory,omitempty"`

	// Attachment metadata only, never content
	Attachments AttachmentList `gorm:"column:attachments;type:jsonb" json:"attachments,omitempty"`

	// Standard timestamps
	CreatedAt time.Time `gorm:"column:created_at;type:timestamp;default:current_timestamp" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at;type:timestamp;default:current_timestamp" json:"updatedAt"`
}

func (Email) TableName() string {
	return "emails"
}

func (e *Email) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = utils.GenerateNanoIDWithPrefix("email", 24)
	}
	e.CreatedAt = utils.Now()
	return nil
}

// From returns the sender as a structured address.
func (e *Email) From() utils.EmailAddress {
	return utils.EmailAddress{Email: e.FromAddress, Name: e.FromName}
}

// BounceInfo is present if and only if the latest delivery status is bounced.
type BounceInfo struct {
	Type    enum.BounceType `json:"type"`
	Message string          `json:"message,omitempty"`
}

func (e *Email) BounceInfo() *BounceInfo {
	if e.BounceType == "" {
		return nil
	}
	return &BounceInfo{Type: e.BounceType, Message: e.BounceMessage}
}
