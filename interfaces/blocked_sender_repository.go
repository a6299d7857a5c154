package interfaces

import (
	"context"

	"github.com/inboxd/inboxd/internal/models"
)

type BlockedSenderRepository interface {
	// Create inserts the rule, returning the id of the existing record when
	// one is already present for the same email.
	Create(ctx context.Context, sender *models.BlockedSender) (string, error)
	GetByEmail(ctx context.Context, email string) (*models.BlockedSender, error)
	ExistsByEmailOrDomain(ctx context.Context, email, domain string) (bool, error)
	List(ctx context.Context) ([]*models.BlockedSender, error)
	// DeleteByEmail removes the rule for email; absent rules are a no-op.
	DeleteByEmail(ctx context.Context, email string) error
}
