package interfaces

import (
	"context"

	"github.com/inboxd/inboxd/dto"
	"github.com/inboxd/inboxd/internal/enum"
	"github.com/inboxd/inboxd/internal/models"
)

// BlocklistService maintains spam-blocking rules. Blocking is forward-looking
// only: already-stored messages are never re-classified.
type BlocklistService interface {
	IsBlocked(ctx context.Context, address string) (bool, error)
	Block(ctx context.Context, email string, domainWide bool, reason string) (string, error)
	Unblock(ctx context.Context, email string) error
	List(ctx context.Context) ([]*models.BlockedSender, error)
}

type SpamService interface {
	// ClassifyInbound decides the spam flag for a new inbound message. Called
	// once at insert time, never re-evaluated.
	ClassifyInbound(ctx context.Context, fromEmail string) (bool, error)
	MarkAsSpam(ctx context.Context, emailID string, blockSender bool) error
	MarkAsNotSpam(ctx context.Context, emailID string) error
}

type WebhookService interface {
	// ProcessEmailReceived ingests a verified "email.received" event and
	// returns the stored email id. Idempotent on the provider id.
	ProcessEmailReceived(ctx context.Context, event dto.EmailReceivedEvent) (string, error)
	// ProcessEmailStatus applies a verified delivery-status event. It returns
	// the affected email id, or "" when the event was ignored or the target
	// message is unknown.
	ProcessEmailStatus(ctx context.Context, event dto.EmailStatusEvent) (string, error)
}

type EmailService interface {
	ListInbox(ctx context.Context, filter enum.InboxFilter) ([]*models.Email, error)
	ListSent(ctx context.Context) ([]*models.Email, error)
	ListUnread(ctx context.Context) ([]*models.Email, error)
	GetByID(ctx context.Context, id string) (*models.Email, error)
	GetByResendID(ctx context.Context, resendID string) (*models.Email, error)
	GetStats(ctx context.Context) (*dto.EmailStats, error)
	GetSenderBreakdown(ctx context.Context, limit int) ([]dto.SenderCount, error)
	Send(ctx context.Context, request dto.SendEmailRequest) (*models.Email, error)
	MarkAsRead(ctx context.Context, id string) error
	MarkAsUnread(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
	GetContent(ctx context.Context, id string) (*MessageContent, error)
	GetAttachment(ctx context.Context, id, attachmentID string) (*AttachmentContent, error)
}
