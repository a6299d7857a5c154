package repository

import (
	"context"
	"errors"

	"github.com/opentracing/opentracing-go"
	"gorm.io/gorm"

	"github.com/inboxd/inboxd/interfaces"
	"github.com/inboxd/inboxd/internal/enum"
	er "github.com/inboxd/inboxd/internal/errors"
	"github.com/inboxd/inboxd/internal/models"
	"github.com/inboxd/inboxd/internal/tracing"
	"github.com/inboxd/inboxd/internal/utils"
)

type emailRepository struct {
	db *gorm.DB
}

func NewEmailRepository(db *gorm.DB) interfaces.EmailRepository {
	return &emailRepository{
		db: db,
	}
}

// Create inserts an email, deduplicating on resend id. Duplicate webhook
// deliveries return the stored record's id instead of creating a second row.
func (r *emailRepository) Create(ctx context.Context, email *models.Email) (string, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "emailRepository.Create")
	defer span.Finish()
	tracing.TagComponentPostgresRepository(span)

	if email == nil {
		return "", er.ErrInvalidInput
	}

	// Check if the email already exists before creating
	existingEmail := &models.Email{}
	err := r.db.WithContext(ctx).
		Where("resend_id = ?", email.ResendID).
		First(existingEmail).Error

	if err == nil {
		span.SetTag("duplicate", true)
		return existingEmail.ID, nil
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		tracing.TraceErr(span, err)
		return "", err
	}

	result := r.db.WithContext(ctx).Create(email)
	if result.Error != nil {
		tracing.TraceErr(span, result.Error)
		return "", result.Error
	}

	return email.ID, nil
}

// GetByID retrieves an email by its ID; missing records return nil, not an error
func (r *emailRepository) GetByID(ctx context.Context, id string) (*models.Email, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "emailRepository.GetByID")
	defer span.Finish()
	tracing.TagComponentPostgresRepository(span)

	var email models.Email
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		tracing.TraceErr(span, err)
		return nil, err
	}
	return &email, nil
}

// GetByResendID retrieves an email by the provider-assigned id
func (r *emailRepository) GetByResendID(ctx context.Context, resendID string) (*models.Email, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "emailRepository.GetByResendID")
	defer span.Finish()
	tracing.TagComponentPostgresRepository(span)

	var email models.Email
	if err := r.db.WithContext(ctx).Where("resend_id = ?", resendID).First(&email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		tracing.TraceErr(span, err)
		return nil, err
	}
	return &email, nil
}

// ListByFolder retrieves folder messages newest first. For the inbox, filter
// selects the spam slice: default hides spam, "spam" shows only spam, "all"
// shows both.
func (r *emailRepository) ListByFolder(ctx context.Context, folder enum.EmailFolder, filter enum.InboxFilter) ([]*models.Email, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "emailRepository.ListByFolder")
	defer span.Finish()
	tracing.TagComponentPostgresRepository(span)

	query := r.db.WithContext(ctx).Where("folder = ?", folder)

	if folder == enum.FolderInbox {
		switch filter {
		case enum.InboxFilterSpam:
			query = query.Where("is_spam = ?", true)
		case enum.InboxFilterAll:
			// no spam condition
		default:
			query = query.Where("is_spam = ?", false)
		}
	}

	var emails []*models.Email
	if err := query.Order("timestamp DESC").Find(&emails).Error; err != nil {
		tracing.TraceErr(span, err)
		return nil, err
	}

	return emails, nil
}

// ListUnread retrieves unread, non-spam inbox messages newest first
func (r *emailRepository) ListUnread(ctx context.Context) ([]*models.Email, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "emailRepository.ListUnread")
	defer span.Finish()
	tracing.TagComponentPostgresRepository(span)

	var emails []*models.Email
	if err := r.db.WithContext(ctx).
		Where("folder = ? AND is_read = ? AND is_spam = ?", enum.FolderInbox, false, false).
		Order("timestamp DESC").
		Find(&emails).Error; err != nil {
		tracing.TraceErr(span, err)
		return nil, err
	}

	return emails, nil
}

// ListAll retrieves every stored email, oldest first
func (r *emailRepository) ListAll(ctx context.Context) ([]*models.Email, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "emailRepository.ListAll")
	defer span.Finish()
	tracing.TagComponentPostgresRepository(span)

	var emails []*models.Email
	if err := r.db.WithContext(ctx).Order("timestamp ASC").Find(&emails).Error; err != nil {
		tracing.TraceErr(span, err)
		return nil, err
	}

	return emails, nil
}

// UpdateFields patches the given columns on one email. Updating a missing id
// affects zero rows and is not an error.
func (r *emailRepository) UpdateFields(ctx context.Context, id string, updates map[string]interface{}) error {
	span, ctx := opentracing.StartSpanFromContext(ctx, "emailRepository.UpdateFields")
	defer span.Finish()
	tracing.TagComponentPostgresRepository(span)
	tracing.TagEntity(span, id)

	if id == "" || len(updates) == 0 {
		return er.ErrInvalidInput
	}

	updates["updated_at"] = utils.Now()

	result := r.db.WithContext(ctx).
		Model(&models.Email{}).
		Where("id = ?", id).
		Updates(updates)

	if result.Error != nil {
		tracing.TraceErr(span, result.Error)
		return result.Error
	}

	return nil
}

// Delete hard-deletes an email; no tombstone is kept
func (r *emailRepository) Delete(ctx context.Context, id string) error {
	span, ctx := opentracing.StartSpanFromContext(ctx, "emailRepository.Delete")
	defer span.Finish()
	tracing.TagComponentPostgresRepository(span)
	tracing.TagEntity(span, id)

	if id == "" {
		return er.ErrInvalidInput
	}

	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Email{})
	if result.Error != nil {
		tracing.TraceErr(span, result.Error)
		return result.Error
	}

	return nil
}
