package mocks

import (
	"context"
	"sort"
	"sync"

	"github.com/inboxd/inboxd/internal/enum"
	"github.com/inboxd/inboxd/internal/models"
	"github.com/inboxd/inboxd/internal/utils"
)

// InMemoryEmailRepository is a map-backed test double with the same
// idempotency and filtering behavior as the Postgres repository.
type InMemoryEmailRepository struct {
	mu     sync.Mutex
	Emails map[string]*models.Email
}

func NewInMemoryEmailRepository() *InMemoryEmailRepository {
	return &InMemoryEmailRepository{
		Emails: make(map[string]*models.Email),
	}
}

func (r *InMemoryEmailRepository) Create(ctx context.Context, email *models.Email) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.Emails {
		if existing.ResendID == email.ResendID {
			return existing.ID, nil
		}
	}

	if email.ID == "" {
		email.ID = utils.GenerateNanoIDWithPrefix("email", 24)
	}
	email.CreatedAt = utils.Now()
	r.Emails[email.ID] = email
	return email.ID, nil
}

func (r *InMemoryEmailRepository) GetByID(ctx context.Context, id string) (*models.Email, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.Emails[id], nil
}

func (r *InMemoryEmailRepository) GetByResendID(ctx context.Context, resendID string) (*models.Email, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, email := range r.Emails {
		if email.ResendID == resendID {
			return email, nil
		}
	}
	return nil, nil
}

func (r *InMemoryEmailRepository) ListByFolder(ctx context.Context, folder enum.EmailFolder, filter enum.InboxFilter) ([]*models.Email, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var result []*models.Email
	for _, email := range r.Emails {
		if email.Folder != folder {
			continue
		}
		if folder == enum.FolderInbox {
			switch filter {
			case enum.InboxFilterSpam:
				if !email.IsSpam {
					continue
				}
			case enum.InboxFilterAll:
			default:
				if email.IsSpam {
					continue
				}
			}
		}
		result = append(result, email)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Timestamp > result[j].Timestamp
	})
	return result, nil
}

func (r *InMemoryEmailRepository) ListUnread(ctx context.Context) ([]*models.Email, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var result []*models.Email
	for _, email := range r.Emails {
		if email.Folder == enum.FolderInbox && !email.IsRead && !email.IsSpam {
			result = append(result, email)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Timestamp > result[j].Timestamp
	})
	return result, nil
}

func (r *InMemoryEmailRepository) ListAll(ctx context.Context) ([]*models.Email, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var result []*models.Email
	for _, email := range r.Emails {
		result = append(result, email)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Timestamp < result[j].Timestamp
	})
	return result, nil
}

func (r *InMemoryEmailRepository) UpdateFields(ctx context.Context, id string, updates map[string]interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	email, ok := r.Emails[id]
	if !ok {
		return nil
	}

	for column, value := range updates {
		switch column {
		case "is_read":
			email.IsRead = value.(bool)
		case "is_spam":
			email.IsSpam = value.(bool)
		case "delivery_status":
			email.DeliveryStatus = value.(enum.DeliveryStatus)
		case "status_history":
			email.StatusHistory = value.(models.StatusHistory)
		case "bounce_type":
			email.BounceType = value.(enum.BounceType)
		case "bounce_message":
			email.BounceMessage = value.(string)
		}
	}
	email.UpdatedAt = utils.Now()
	return nil
}

func (r *InMemoryEmailRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.Emails, id)
	return nil
}

// InMemoryBlockedSenderRepository is a map-backed test double keyed by email.
type InMemoryBlockedSenderRepository struct {
	mu      sync.Mutex
	Senders map[string]*models.BlockedSender
}

func NewInMemoryBlockedSenderRepository() *InMemoryBlockedSenderRepository {
	return &InMemoryBlockedSenderRepository{
		Senders: make(map[string]*models.BlockedSender),
	}
}

func (r *InMemoryBlockedSenderRepository) Create(ctx context.Context, sender *models.BlockedSender) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.Senders[sender.Email]; ok {
		return existing.ID, nil
	}

	if sender.ID == "" {
		sender.ID = utils.GenerateNanoIDWithPrefix("blk", 16)
	}
	if sender.BlockedAt == 0 {
		sender.BlockedAt = utils.NowMillis()
	}
	r.Senders[sender.Email] = sender
	return sender.ID, nil
}

func (r *InMemoryBlockedSenderRepository) GetByEmail(ctx context.Context, email string) (*models.BlockedSender, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.Senders[email], nil
}

func (r *InMemoryBlockedSenderRepository) ExistsByEmailOrDomain(ctx context.Context, email, domain string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, sender := range r.Senders {
		if sender.Email == email {
			return true, nil
		}
		if domain != "" && sender.Domain == domain {
			return true, nil
		}
	}
	return false, nil
}

func (r *InMemoryBlockedSenderRepository) List(ctx context.Context) ([]*models.BlockedSender, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var result []*models.BlockedSender
	for _, sender := range r.Senders {
		result = append(result, sender)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].BlockedAt > result[j].BlockedAt
	})
	return result, nil
}

func (r *InMemoryBlockedSenderRepository) DeleteByEmail(ctx context.Context, email string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.Senders, email)
	return nil
}
