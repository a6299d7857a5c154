package blocklist

import (
	"context"

	"github.com/opentracing/opentracing-go"
	"github.com/pkg/errors"

	"github.com/inboxd/inboxd/interfaces"
	"github.com/inboxd/inboxd/internal/models"
	"github.com/inboxd/inboxd/internal/repository"
	"github.com/inboxd/inboxd/internal/tracing"
	"github.com/inboxd/inboxd/internal/utils"
)

type blocklistService struct {
	repos *repository.Repositories
}

func NewBlocklistService(repos *repository.Repositories) interfaces.BlocklistService {
	return &blocklistService{
		repos: repos,
	}
}

// IsBlocked reports whether an address is blocked, either exactly or because
// a rule blocks its whole domain.
func (s *blocklistService) IsBlocked(ctx context.Context, address string) (bool, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "BlocklistService.IsBlocked")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)

	if address == "" {
		return false, nil
	}

	domain := utils.ExtractDomainFromEmail(address)

	blocked, err := s.repos.BlockedSenderRepository.ExistsByEmailOrDomain(ctx, address, domain)
	if err != nil {
		tracing.TraceErr(span, err)
		return false, errors.Wrap(err, "failed to check blocklist")
	}

	span.LogKV("blocked", blocked)
	return blocked, nil
}

// Block adds a rule for the address. The sender's domain is stored only when
// domainWide is set, which makes the rule match every address on that domain.
// Blocking an already-blocked address returns the existing rule's id.
func (s *blocklistService) Block(ctx context.Context, email string, domainWide bool, reason string) (string, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "BlocklistService.Block")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)

	sender := &models.BlockedSender{
		Email:  email,
		Reason: reason,
	}
	if domainWide {
		sender.Domain = utils.ExtractDomainFromEmail(email)
	}

	id, err := s.repos.BlockedSenderRepository.Create(ctx, sender)
	if err != nil {
		tracing.TraceErr(span, err)
		return "", errors.Wrap(err, "failed to block sender")
	}

	tracing.TagEntity(span, id)
	return id, nil
}

// Unblock removes the rule for the address; absent rules are a no-op.
func (s *blocklistService) Unblock(ctx context.Context, email string) error {
	span, ctx := opentracing.StartSpanFromContext(ctx, "BlocklistService.Unblock")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)

	if err := s.repos.BlockedSenderRepository.DeleteByEmail(ctx, email); err != nil {
		tracing.TraceErr(span, err)
		return errors.Wrap(err, "failed to unblock sender")
	}

	return nil
}

func (s *blocklistService) List(ctx context.Context) ([]*models.BlockedSender, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "BlocklistService.List")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)

	senders, err := s.repos.BlockedSenderRepository.List(ctx)
	if err != nil {
		tracing.TraceErr(span, err)
		return nil, errors.Wrap(err, "failed to list blocked senders")
	}

	return senders, nil
}
