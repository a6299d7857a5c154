package dto

import (
	"github.com/inboxd/inboxd/internal/enum"
	"github.com/inboxd/inboxd/internal/models"
	"github.com/inboxd/inboxd/internal/utils"
)

// EmailResponse is the API projection of a stored email.
type EmailResponse struct {
	ID             string               `json:"id"`
	ResendID       string               `json:"resendId"`
	From           utils.EmailAddress   `json:"from"`
	To             []utils.EmailAddress `json:"to"`
	Cc             []utils.EmailAddress `json:"cc,omitempty"`
	Subject        string               `json:"subject"`
	Timestamp      int64                `json:"timestamp"`
	IsRead         bool                 `json:"isRead"`
	IsSpam         bool                 `json:"isSpam"`
	Folder         enum.EmailFolder     `json:"folder"`
	DeliveryStatus enum.DeliveryStatus  `json:"deliveryStatus,omitempty"`
	BounceInfo     *models.BounceInfo   `json:"bounceInfo,omitempty"`
	StatusHistory  []models.StatusEvent `json:"statusHistory,omitempty"`
	Attachments    []models.Attachment  `json:"attachments,omitempty"`
}

func MapEmailToResponse(email *models.Email) *EmailResponse {
	if email == nil {
		return nil
	}
	return &EmailResponse{
		ID:             email.ID,
		ResendID:       email.ResendID,
		From:           email.From(),
		To:             email.ToAddresses,
		Cc:             email.CcAddresses,
		Subject:        email.Subject,
		Timestamp:      email.Timestamp,
		IsRead:         email.IsRead,
		IsSpam:         email.IsSpam,
		Folder:         email.Folder,
		DeliveryStatus: email.DeliveryStatus,
		BounceInfo:     email.BounceInfo(),
		StatusHistory:  email.StatusHistory,
		Attachments:    email.Attachments,
	}
}

func MapEmailsToResponse(emails []*models.Email) []*EmailResponse {
	responses := make([]*EmailResponse, 0, len(emails))
	for _, email := range emails {
		responses = append(responses, MapEmailToResponse(email))
	}
	return responses
}

// EmailStats are the dashboard counters. TotalInbox excludes spam;
// UnreadCount and TodayCount are subsets of TotalInbox.
type EmailStats struct {
	TotalInbox  int `json:"totalInbox"`
	TotalSent   int `json:"totalSent"`
	UnreadCount int `json:"unreadCount"`
	TodayCount  int `json:"todayCount"`
	SpamCount   int `json:"spamCount"`
}

// SenderCount is one row of the per-sender breakdown.
type SenderCount struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// SendEmailRequest is the API request for sending a new email.
type SendEmailRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Cc      []string `json:"cc,omitempty"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html,omitempty"`
	Text    string   `json:"text,omitempty"`
}

// BlockSenderRequest is the API request for adding a blocklist rule.
type BlockSenderRequest struct {
	Email      string `json:"email"`
	DomainWide bool   `json:"domainWide,omitempty"`
	Reason     string `json:"reason,omitempty"`
}
