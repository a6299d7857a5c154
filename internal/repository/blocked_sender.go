package repository

import (
	"context"
	"errors"

	"github.com/opentracing/opentracing-go"
	"gorm.io/gorm"

	"github.com/inboxd/inboxd/interfaces"
	er "github.com/inboxd/inboxd/internal/errors"
	"github.com/inboxd/inboxd/internal/models"
	"github.com/inboxd/inboxd/internal/tracing"
)

type blockedSenderRepository struct {
	db *gorm.DB
}

func NewBlockedSenderRepository(db *gorm.DB) interfaces.BlockedSenderRepository {
	return &blockedSenderRepository{
		db: db,
	}
}

// Create inserts a blocklist rule, deduplicating on the email address.
// Blocking an already-blocked sender returns the existing rule's id.
func (r *blockedSenderRepository) Create(ctx context.Context, sender *models.BlockedSender) (string, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "blockedSenderRepository.Create")
	defer span.Finish()
	tracing.TagComponentPostgresRepository(span)

	if sender == nil || sender.Email == "" {
		return "", er.ErrInvalidInput
	}

	existing := &models.BlockedSender{}
	err := r.db.WithContext(ctx).
		Where("email = ?", sender.Email).
		First(existing).Error

	if err == nil {
		span.SetTag("duplicate", true)
		return existing.ID, nil
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		tracing.TraceErr(span, err)
		return "", err
	}

	result := r.db.WithContext(ctx).Create(sender)
	if result.Error != nil {
		tracing.TraceErr(span, result.Error)
		return "", result.Error
	}

	return sender.ID, nil
}

func (r *blockedSenderRepository) GetByEmail(ctx context.Context, email string) (*models.BlockedSender, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "blockedSenderRepository.GetByEmail")
	defer span.Finish()
	tracing.TagComponentPostgresRepository(span)

	var sender models.BlockedSender
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&sender).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		tracing.TraceErr(span, err)
		return nil, err
	}
	return &sender, nil
}

// ExistsByEmailOrDomain reports whether a rule blocks the exact address or
// its whole domain.
func (r *blockedSenderRepository) ExistsByEmailOrDomain(ctx context.Context, email, domain string) (bool, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "blockedSenderRepository.ExistsByEmailOrDomain")
	defer span.Finish()
	tracing.TagComponentPostgresRepository(span)

	query := r.db.WithContext(ctx).Model(&models.BlockedSender{})
	if domain != "" {
		query = query.Where("email = ? OR domain = ?", email, domain)
	} else {
		query = query.Where("email = ?", email)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		tracing.TraceErr(span, err)
		return false, err
	}

	return count > 0, nil
}

// List returns all blocklist rules, most recently blocked first
func (r *blockedSenderRepository) List(ctx context.Context) ([]*models.BlockedSender, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "blockedSenderRepository.List")
	defer span.Finish()
	tracing.TagComponentPostgresRepository(span)

	var senders []*models.BlockedSender
	if err := r.db.WithContext(ctx).Order("blocked_at DESC").Find(&senders).Error; err != nil {
		tracing.TraceErr(span, err)
		return nil, err
	}

	return senders, nil
}

// DeleteByEmail removes the rule for an address; unblocking an address that
// was never blocked is a no-op.
func (r *blockedSenderRepository) DeleteByEmail(ctx context.Context, email string) error {
	span, ctx := opentracing.StartSpanFromContext(ctx, "blockedSenderRepository.DeleteByEmail")
	defer span.Finish()
	tracing.TagComponentPostgresRepository(span)

	if email == "" {
		return er.ErrInvalidInput
	}

	result := r.db.WithContext(ctx).Where("email = ?", email).Delete(&models.BlockedSender{})
	if result.Error != nil {
		tracing.TraceErr(span, result.Error)
		return result.Error
	}

	return nil
}
