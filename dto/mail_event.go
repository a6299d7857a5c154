package dto

// MailEvent is the fan-out message published after a webhook mutation commits.
type MailEvent struct {
	Type       string `json:"type"`
	EmailID    string `json:"emailId"`
	ResendID   string `json:"resendId"`
	Status     string `json:"status,omitempty"`
	OccurredAt int64  `json:"occurredAt"`
}

const (
	MailEventReceived      = "mail.received"
	MailEventStatusUpdated = "mail.status_updated"
)
