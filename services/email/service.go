package email

import (
	"context"
	"sort"

	"github.com/opentracing/opentracing-go"
	"github.com/pkg/errors"

	"github.com/inboxd/inboxd/dto"
	"github.com/inboxd/inboxd/interfaces"
	"github.com/inboxd/inboxd/internal/enum"
	er "github.com/inboxd/inboxd/internal/errors"
	"github.com/inboxd/inboxd/internal/models"
	"github.com/inboxd/inboxd/internal/repository"
	"github.com/inboxd/inboxd/internal/tracing"
	"github.com/inboxd/inboxd/internal/utils"
)

const defaultSenderBreakdownLimit = 5

type emailService struct {
	repos    *repository.Repositories
	provider interfaces.EmailProviderClient
}

func NewEmailService(repos *repository.Repositories, provider interfaces.EmailProviderClient) interfaces.EmailService {
	return &emailService{
		repos:    repos,
		provider: provider,
	}
}

func (s *emailService) ListInbox(ctx context.Context, filter enum.InboxFilter) ([]*models.Email, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "EmailService.ListInbox")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)

	return s.repos.EmailRepository.ListByFolder(ctx, enum.FolderInbox, filter)
}

func (s *emailService) ListSent(ctx context.Context) ([]*models.Email, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "EmailService.ListSent")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)

	return s.repos.EmailRepository.ListByFolder(ctx, enum.FolderSent, enum.InboxFilterDefault)
}

func (s *emailService) ListUnread(ctx context.Context) ([]*models.Email, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "EmailService.ListUnread")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)

	return s.repos.EmailRepository.ListUnread(ctx)
}

func (s *emailService) GetByID(ctx context.Context, id string) (*models.Email, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "EmailService.GetByID")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)
	tracing.TagEntity(span, id)

	return s.repos.EmailRepository.GetByID(ctx, id)
}

func (s *emailService) GetByResendID(ctx context.Context, resendID string) (*models.Email, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "EmailService.GetByResendID")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)

	return s.repos.EmailRepository.GetByResendID(ctx, resendID)
}

// GetStats computes the dashboard counters. Spam is excluded from totalInbox
// and counted separately; todayCount uses local midnight as the boundary.
func (s *emailService) GetStats(ctx context.Context) (*dto.EmailStats, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "EmailService.GetStats")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)

	emails, err := s.repos.EmailRepository.ListAll(ctx)
	if err != nil {
		tracing.TraceErr(span, err)
		return nil, errors.Wrap(err, "failed to load emails")
	}

	stats := &dto.EmailStats{}
	startOfToday := utils.StartOfToday()

	for _, email := range emails {
		switch email.Folder {
		case enum.FolderSent:
			stats.TotalSent++
		case enum.FolderInbox:
			if email.IsSpam {
				stats.SpamCount++
				continue
			}
			stats.TotalInbox++
			if !email.IsRead {
				stats.UnreadCount++
			}
			if email.Timestamp >= startOfToday {
				stats.TodayCount++
			}
		}
	}

	return stats, nil
}

// GetSenderBreakdown groups non-spam inbox mail by sender address and returns
// the top senders by count. Ties keep first-seen order (stable sort).
func (s *emailService) GetSenderBreakdown(ctx context.Context, limit int) ([]dto.SenderCount, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "EmailService.GetSenderBreakdown")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)

	if limit <= 0 {
		limit = defaultSenderBreakdownLimit
	}

	emails, err := s.repos.EmailRepository.ListByFolder(ctx, enum.FolderInbox, enum.InboxFilterDefault)
	if err != nil {
		tracing.TraceErr(span, err)
		return nil, errors.Wrap(err, "failed to load inbox")
	}

	counts := make(map[string]int)
	var order []dto.SenderCount
	for _, email := range emails {
		if _, seen := counts[email.FromAddress]; !seen {
			order = append(order, dto.SenderCount{Email: email.FromAddress, Name: email.FromName})
		}
		counts[email.FromAddress]++
	}

	for i := range order {
		order[i].Count = counts[order[i].Email]
	}

	sort.SliceStable(order, func(i, j int) bool {
		return order[i].Count > order[j].Count
	})

	if len(order) > limit {
		order = order[:limit]
	}

	return order, nil
}

// Send dispatches a message through the provider and records it in the sent
// folder. Sent messages are created already-read and never flagged as spam.
func (s *emailService) Send(ctx context.Context, request dto.SendEmailRequest) (*models.Email, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "EmailService.Send")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)

	if request.From == "" || len(request.To) == 0 {
		return nil, er.ErrInvalidInput
	}

	resendID, err := s.provider.SendMessage(ctx, interfaces.SendMessageRequest{
		From:    request.From,
		To:      request.To,
		Cc:      request.Cc,
		Subject: request.Subject,
		HTML:    request.HTML,
		Text:    request.Text,
	})
	if err != nil {
		tracing.TraceErr(span, err)
		return nil, errors.Wrap(err, "failed to send email")
	}

	from := utils.ParseEmailAddress(request.From)
	now := utils.NowMillis()

	email := &models.Email{
		ResendID:       resendID,
		FromAddress:    from.Email,
		FromName:       from.Name,
		ToAddresses:    models.AddressList(utils.ParseEmailAddresses(request.To)),
		CcAddresses:    models.AddressList(utils.ParseEmailAddresses(request.Cc)),
		Subject:        request.Subject,
		Timestamp:      now,
		IsRead:         true,
		Folder:         enum.FolderSent,
		DeliveryStatus: enum.DeliveryStatusQueued,
		StatusHistory: models.StatusHistory{
			{Status: enum.DeliveryStatusQueued, Timestamp: now},
		},
	}

	id, err := s.repos.EmailRepository.Create(ctx, email)
	if err != nil {
		tracing.TraceErr(span, err)
		return nil, errors.Wrap(err, "failed to record sent email")
	}
	email.ID = id

	tracing.TagEntity(span, id)
	return email, nil
}

func (s *emailService) MarkAsRead(ctx context.Context, id string) error {
	span, ctx := opentracing.StartSpanFromContext(ctx, "EmailService.MarkAsRead")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)
	tracing.TagEntity(span, id)

	return s.repos.EmailRepository.UpdateFields(ctx, id, map[string]interface{}{
		"is_read": true,
	})
}

func (s *emailService) MarkAsUnread(ctx context.Context, id string) error {
	span, ctx := opentracing.StartSpanFromContext(ctx, "EmailService.MarkAsUnread")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)
	tracing.TagEntity(span, id)

	return s.repos.EmailRepository.UpdateFields(ctx, id, map[string]interface{}{
		"is_read": false,
	})
}

func (s *emailService) Delete(ctx context.Context, id string) error {
	span, ctx := opentracing.StartSpanFromContext(ctx, "EmailService.Delete")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)
	tracing.TagEntity(span, id)

	return s.repos.EmailRepository.Delete(ctx, id)
}

// GetContent resolves the message body lazily from the provider.
func (s *emailService) GetContent(ctx context.Context, id string) (*interfaces.MessageContent, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "EmailService.GetContent")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)
	tracing.TagEntity(span, id)

	email, err := s.repos.EmailRepository.GetByID(ctx, id)
	if err != nil {
		tracing.TraceErr(span, err)
		return nil, err
	}
	if email == nil {
		return nil, er.ErrEmailNotFound
	}

	content, err := s.provider.FetchMessageContent(ctx, email.ResendID)
	if err != nil {
		tracing.TraceErr(span, err)
		return nil, errors.Wrap(err, "failed to fetch message content")
	}

	return content, nil
}

// GetAttachment resolves attachment data from the provider by attachment id.
func (s *emailService) GetAttachment(ctx context.Context, id, attachmentID string) (*interfaces.AttachmentContent, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "EmailService.GetAttachment")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)
	tracing.TagEntity(span, id)

	email, err := s.repos.EmailRepository.GetByID(ctx, id)
	if err != nil {
		tracing.TraceErr(span, err)
		return nil, err
	}
	if email == nil {
		return nil, er.ErrEmailNotFound
	}

	attachment, err := s.provider.FetchAttachment(ctx, email.ResendID, attachmentID)
	if err != nil {
		tracing.TraceErr(span, err)
		return nil, errors.Wrap(err, "failed to fetch attachment")
	}

	return attachment, nil
}
