package dto

import (
	"github.com/inboxd/inboxd/internal/enum"
)

const (
	EventTypeEmailReceived = "email.received"
	EventTypeEmailBounced  = "email.bounced"

	// Resend bounce classification for permanent failures
	BounceClassificationPermanent = "Permanent"
)

// DeliveryStatusByEventType maps Resend status event types to delivery
// statuses. Event types missing here are acknowledged and ignored, so the
// provider can add new types without breaking the integration.
var DeliveryStatusByEventType = map[string]enum.DeliveryStatus{
	"email.sent":             enum.DeliveryStatusSent,
	"email.delivered":        enum.DeliveryStatusDelivered,
	"email.delivery_delayed": enum.DeliveryStatusDelayed,
	"email.bounced":          enum.DeliveryStatusBounced,
	"email.complained":       enum.DeliveryStatusComplained,
}

// EmailReceivedEvent is the verified envelope posted to
// /webhooks/resend/email-received.
type EmailReceivedEvent struct {
	Type string            `json:"type"`
	Data EmailReceivedData `json:"data"`
}

type EmailReceivedData struct {
	EmailID     string              `json:"email_id"`
	From        string              `json:"from"`
	To          []string            `json:"to"`
	Cc          []string            `json:"cc,omitempty"`
	Subject     string              `json:"subject"`
	Attachments []WebhookAttachment `json:"attachments,omitempty"`
}

type WebhookAttachment struct {
	ID          string `json:"id"`
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
}

// EmailStatusEvent is the verified envelope posted to
// /webhooks/resend/email-status.
type EmailStatusEvent struct {
	Type      string          `json:"type"`
	CreatedAt string          `json:"created_at"`
	Data      EmailStatusData `json:"data"`
}

type EmailStatusData struct {
	EmailID string      `json:"email_id"`
	Bounce  *BounceData `json:"bounce,omitempty"`
}

type BounceData struct {
	Type    string `json:"type"`
	Message string `json:"message,omitempty"`
}
