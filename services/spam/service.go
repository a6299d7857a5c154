package spam

import (
	"context"

	"github.com/opentracing/opentracing-go"
	"github.com/pkg/errors"

	"github.com/inboxd/inboxd/interfaces"
	"github.com/inboxd/inboxd/internal/repository"
	"github.com/inboxd/inboxd/internal/tracing"
)

// BlockReasonMarkedAsSpam is recorded on rules created from the spam flow.
const BlockReasonMarkedAsSpam = "Marked as spam"

type spamService struct {
	repos     *repository.Repositories
	blocklist interfaces.BlocklistService
}

func NewSpamService(repos *repository.Repositories, blocklist interfaces.BlocklistService) interfaces.SpamService {
	return &spamService{
		repos:     repos,
		blocklist: blocklist,
	}
}

// ClassifyInbound consults the blocklist for a new inbound sender. The result
// is fixed at insert time; later blocklist changes do not touch stored mail.
func (s *spamService) ClassifyInbound(ctx context.Context, fromEmail string) (bool, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "SpamService.ClassifyInbound")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)

	blocked, err := s.blocklist.IsBlocked(ctx, fromEmail)
	if err != nil {
		tracing.TraceErr(span, err)
		return false, err
	}

	return blocked, nil
}

// MarkAsSpam flags a message as spam and optionally blocks its sender by
// exact address. Unknown message ids are a silent no-op. Folder, read state
// and delivery fields are never touched.
func (s *spamService) MarkAsSpam(ctx context.Context, emailID string, blockSender bool) error {
	span, ctx := opentracing.StartSpanFromContext(ctx, "SpamService.MarkAsSpam")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)
	tracing.TagEntity(span, emailID)

	email, err := s.repos.EmailRepository.GetByID(ctx, emailID)
	if err != nil {
		tracing.TraceErr(span, err)
		return errors.Wrap(err, "failed to load email")
	}
	if email == nil {
		span.LogKV("result", "email not found, skipping")
		return nil
	}

	if err := s.repos.EmailRepository.UpdateFields(ctx, emailID, map[string]interface{}{
		"is_spam": true,
	}); err != nil {
		tracing.TraceErr(span, err)
		return errors.Wrap(err, "failed to flag email as spam")
	}

	if blockSender {
		if _, err := s.blocklist.Block(ctx, email.FromAddress, false, BlockReasonMarkedAsSpam); err != nil {
			tracing.TraceErr(span, err)
			return errors.Wrap(err, "failed to block sender")
		}
	}

	return nil
}

// MarkAsNotSpam clears the spam flag. Restoring a message never unblocks its
// sender. Unknown message ids are a silent no-op.
func (s *spamService) MarkAsNotSpam(ctx context.Context, emailID string) error {
	span, ctx := opentracing.StartSpanFromContext(ctx, "SpamService.MarkAsNotSpam")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)
	tracing.TagEntity(span, emailID)

	email, err := s.repos.EmailRepository.GetByID(ctx, emailID)
	if err != nil {
		tracing.TraceErr(span, err)
		return errors.Wrap(err, "failed to load email")
	}
	if email == nil {
		span.LogKV("result", "email not found, skipping")
		return nil
	}

	if err := s.repos.EmailRepository.UpdateFields(ctx, emailID, map[string]interface{}{
		"is_spam": false,
	}); err != nil {
		tracing.TraceErr(span, err)
		return errors.Wrap(err, "failed to restore email from spam")
	}

	return nil
}
