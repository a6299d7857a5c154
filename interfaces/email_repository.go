package interfaces

import (
	"context"

	"github.com/inboxd/inboxd/internal/enum"
	"github.com/inboxd/inboxd/internal/models"
)

type EmailRepository interface {
	// Create inserts the email, returning the id of the already-stored record
	// when one exists for the same resend id.
	Create(ctx context.Context, email *models.Email) (string, error)
	GetByID(ctx context.Context, id string) (*models.Email, error)
	GetByResendID(ctx context.Context, resendID string) (*models.Email, error)
	ListByFolder(ctx context.Context, folder enum.EmailFolder, filter enum.InboxFilter) ([]*models.Email, error)
	ListUnread(ctx context.Context) ([]*models.Email, error)
	ListAll(ctx context.Context) ([]*models.Email, error)
	// UpdateFields patches the given columns; unknown ids are a silent no-op.
	UpdateFields(ctx context.Context, id string, updates map[string]interface{}) error
	Delete(ctx context.Context, id string) error
}
