package webhook

import (
	"context"
	"time"

	"github.com/opentracing/opentracing-go"
	"github.com/pkg/errors"

	"github.com/inboxd/inboxd/dto"
	"github.com/inboxd/inboxd/interfaces"
	"github.com/inboxd/inboxd/internal/enum"
	"github.com/inboxd/inboxd/internal/logger"
	"github.com/inboxd/inboxd/internal/models"
	"github.com/inboxd/inboxd/internal/repository"
	"github.com/inboxd/inboxd/internal/tracing"
	"github.com/inboxd/inboxd/internal/utils"
	"github.com/inboxd/inboxd/services/events"
)

// PlaceholderSubject replaces empty inbound subjects.
const PlaceholderSubject = "(No Subject)"

type webhookService struct {
	repos  *repository.Repositories
	spam   interfaces.SpamService
	events *events.EventsService
	log    logger.Logger
}

func NewWebhookService(repos *repository.Repositories, spam interfaces.SpamService, eventsService *events.EventsService, log logger.Logger) interfaces.WebhookService {
	return &webhookService{
		repos:  repos,
		spam:   spam,
		events: eventsService,
		log:    log,
	}
}

// ProcessEmailReceived stores a verified inbound message. The timestamp is
// assigned at processing time so inbox ordering reflects arrival order, not
// provider-asserted time. Redelivered events return the stored id without
// re-running spam classification.
func (s *webhookService) ProcessEmailReceived(ctx context.Context, event dto.EmailReceivedEvent) (string, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "WebhookService.ProcessEmailReceived")
	defer span.Finish()
	tracing.TagComponentWebhook(span)
	span.LogKV("resendId", event.Data.EmailID)

	existing, err := s.repos.EmailRepository.GetByResendID(ctx, event.Data.EmailID)
	if err != nil {
		tracing.TraceErr(span, err)
		return "", errors.Wrap(err, "failed to check for existing email")
	}
	if existing != nil {
		span.SetTag("duplicate", true)
		return existing.ID, nil
	}

	from := utils.ParseEmailAddress(event.Data.From)

	isSpam, err := s.spam.ClassifyInbound(ctx, from.Email)
	if err != nil {
		tracing.TraceErr(span, err)
		return "", errors.Wrap(err, "failed to classify inbound email")
	}

	subject := event.Data.Subject
	if subject == "" {
		subject = PlaceholderSubject
	}

	email := &models.Email{
		ResendID:    event.Data.EmailID,
		FromAddress: from.Email,
		FromName:    from.Name,
		ToAddresses: models.AddressList(utils.ParseEmailAddresses(event.Data.To)),
		CcAddresses: models.AddressList(utils.ParseEmailAddresses(event.Data.Cc)),
		Subject:     subject,
		Timestamp:   utils.NowMillis(),
		IsRead:      false,
		IsSpam:      isSpam,
		Folder:      enum.FolderInbox,
		Attachments: mapAttachments(event.Data.Attachments),
	}

	id, err := s.repos.EmailRepository.Create(ctx, email)
	if err != nil {
		tracing.TraceErr(span, err)
		return "", errors.Wrap(err, "failed to store email")
	}

	s.publishMailEvent(ctx, dto.MailEvent{
		Type:       dto.MailEventReceived,
		EmailID:    id,
		ResendID:   event.Data.EmailID,
		OccurredAt: email.Timestamp,
	})

	tracing.TagEntity(span, id)
	span.LogKV("isSpam", isSpam)
	return id, nil
}

// ProcessEmailStatus applies a delivery-status event to the matching sent
// message. Unmapped event types and unknown provider ids are acknowledged
// without mutation. A redelivered event appends a duplicate history entry;
// events are not deduplicated by event id.
func (s *webhookService) ProcessEmailStatus(ctx context.Context, event dto.EmailStatusEvent) (string, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "WebhookService.ProcessEmailStatus")
	defer span.Finish()
	tracing.TagComponentWebhook(span)
	span.LogKV("eventType", event.Type, "resendId", event.Data.EmailID)

	status, mapped := dto.DeliveryStatusByEventType[event.Type]
	if !mapped {
		s.log.Infof("Ignoring unhandled event type: %s", event.Type)
		span.LogKV("result", "ignored")
		return "", nil
	}

	email, err := s.repos.EmailRepository.GetByResendID(ctx, event.Data.EmailID)
	if err != nil {
		tracing.TraceErr(span, err)
		return "", errors.Wrap(err, "failed to look up email")
	}
	if email == nil {
		// Status webhooks can arrive before the send confirmation commits
		s.log.Warnf("Status event %s for unknown email %s, skipping", event.Type, event.Data.EmailID)
		span.LogKV("result", "email not found")
		return "", nil
	}

	timestamp := statusTimestamp(event.CreatedAt)

	entry := models.StatusEvent{
		Status:    status,
		Timestamp: timestamp,
	}

	updates := map[string]interface{}{
		"delivery_status": status,
	}

	if event.Type == dto.EventTypeEmailBounced && event.Data.Bounce != nil {
		entry.Details = event.Data.Bounce.Message
		updates["bounce_message"] = event.Data.Bounce.Message
		if event.Data.Bounce.Type == dto.BounceClassificationPermanent {
			updates["bounce_type"] = enum.BounceHard
		} else {
			updates["bounce_type"] = enum.BounceSoft
		}
	}

	updates["status_history"] = append(email.StatusHistory, entry)

	if err := s.repos.EmailRepository.UpdateFields(ctx, email.ID, updates); err != nil {
		tracing.TraceErr(span, err)
		return "", errors.Wrap(err, "failed to apply status update")
	}

	s.publishMailEvent(ctx, dto.MailEvent{
		Type:       dto.MailEventStatusUpdated,
		EmailID:    email.ID,
		ResendID:   event.Data.EmailID,
		Status:     status.String(),
		OccurredAt: timestamp,
	})

	tracing.TagEntity(span, email.ID)
	span.LogKV("status", status.String())
	return email.ID, nil
}

// publishMailEvent is best-effort fan-out; the mutation has already committed
func (s *webhookService) publishMailEvent(ctx context.Context, event dto.MailEvent) {
	if err := s.events.PublishMailEvent(ctx, event); err != nil {
		s.log.Errorf("Failed to publish mail event %s for %s: %v", event.Type, event.EmailID, err)
	}
}

func mapAttachments(attachments []dto.WebhookAttachment) models.AttachmentList {
	if len(attachments) == 0 {
		return nil
	}
	mapped := make(models.AttachmentList, 0, len(attachments))
	for _, a := range attachments {
		mapped = append(mapped, models.Attachment{
			ID:          a.ID,
			Filename:    a.Filename,
			ContentType: a.ContentType,
		})
	}
	return mapped
}

// statusTimestamp prefers the provider-asserted event creation time, falling
// back to processing time when absent or unparseable.
func statusTimestamp(createdAt string) int64 {
	if createdAt == "" {
		return utils.NowMillis()
	}
	parsed, err := time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return utils.NowMillis()
	}
	return parsed.UnixMilli()
}
