package interfaces

import "context"

// SendMessageRequest is the outbound send contract towards the email provider.
type SendMessageRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Cc      []string `json:"cc,omitempty"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html,omitempty"`
	Text    string   `json:"text,omitempty"`
}

// MessageContent is the lazily-fetched body of a stored message.
type MessageContent struct {
	HTML string `json:"html,omitempty"`
	Text string `json:"text,omitempty"`
}

// AttachmentContent is provider-resolved attachment data; content stays with
// the provider, only a download location is returned.
type AttachmentContent struct {
	DownloadURL string `json:"downloadUrl"`
	Filename    string `json:"filename"`
	ContentType string `json:"contentType"`
	Size        int64  `json:"size"`
}

// EmailProviderClient is the minimal contract towards the transactional email
// provider (Resend).
type EmailProviderClient interface {
	SendMessage(ctx context.Context, request SendMessageRequest) (string, error)
	FetchMessageContent(ctx context.Context, resendID string) (*MessageContent, error)
	FetchAttachment(ctx context.Context, resendID, attachmentID string) (*AttachmentContent, error)
}
