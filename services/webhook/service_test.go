package webhook

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inboxd/inboxd/dto"
	"github.com/inboxd/inboxd/interfaces"
	"github.com/inboxd/inboxd/internal/enum"
	"github.com/inboxd/inboxd/internal/logger"
	"github.com/inboxd/inboxd/internal/mocks"
	"github.com/inboxd/inboxd/internal/models"
	"github.com/inboxd/inboxd/internal/repository"
	"github.com/inboxd/inboxd/services/blocklist"
	"github.com/inboxd/inboxd/services/spam"
)

func getLogger() logger.Logger {
	appLogger := logger.NewAppLogger(&logger.Config{
		DevMode: true,
	})
	appLogger.InitLogger()
	return appLogger
}

func setup() (*repository.Repositories, interfaces.BlocklistService, interfaces.WebhookService) {
	repos := &repository.Repositories{
		EmailRepository:         mocks.NewInMemoryEmailRepository(),
		BlockedSenderRepository: mocks.NewInMemoryBlockedSenderRepository(),
	}
	bl := blocklist.NewBlocklistService(repos)
	spamSvc := spam.NewSpamService(repos, bl)
	return repos, bl, NewWebhookService(repos, spamSvc, nil, getLogger())
}

func receivedEvent(resendID, from, subject string) dto.EmailReceivedEvent {
	return dto.EmailReceivedEvent{
		Type: dto.EventTypeEmailReceived,
		Data: dto.EmailReceivedData{
			EmailID: resendID,
			From:    from,
			To:      []string{"me@inboxd.dev"},
			Subject: subject,
		},
	}
}

func TestProcessEmailReceived_StoresEmail(t *testing.T) {
	repos, _, svc := setup()
	ctx := context.Background()

	id, err := svc.ProcessEmailReceived(ctx, receivedEvent("re_1", "John Doe <john@example.com>", "Hello"))
	require.NoError(t, err)
	require.NotEmpty(t, id)

	email, err := repos.EmailRepository.GetByID(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, email)
	assert.Equal(t, "re_1", email.ResendID)
	assert.Equal(t, "john@example.com", email.FromAddress)
	assert.Equal(t, "John Doe", email.FromName)
	assert.Equal(t, "Hello", email.Subject)
	assert.Equal(t, enum.FolderInbox, email.Folder)
	assert.False(t, email.IsRead)
	assert.False(t, email.IsSpam)
	assert.NotZero(t, email.Timestamp)
}

func TestProcessEmailReceived_EmptySubjectGetsPlaceholder(t *testing.T) {
	repos, _, svc := setup()
	ctx := context.Background()

	id, err := svc.ProcessEmailReceived(ctx, receivedEvent("re_1", "john@example.com", ""))
	require.NoError(t, err)

	email, err := repos.EmailRepository.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, PlaceholderSubject, email.Subject)
}

func TestProcessEmailReceived_Idempotent(t *testing.T) {
	repos, _, svc := setup()
	ctx := context.Background()

	first, err := svc.ProcessEmailReceived(ctx, receivedEvent("re_1", "john@example.com", "Hello"))
	require.NoError(t, err)

	second, err := svc.ProcessEmailReceived(ctx, receivedEvent("re_1", "john@example.com", "Hello"))
	require.NoError(t, err)

	assert.Equal(t, first, second)

	all, err := repos.EmailRepository.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestProcessEmailReceived_BlockedSenderFlaggedAsSpam(t *testing.T) {
	repos, bl, svc := setup()
	ctx := context.Background()

	_, err := bl.Block(ctx, "spammer@bad.com", false, "Marked as spam")
	require.NoError(t, err)

	id, err := svc.ProcessEmailReceived(ctx, receivedEvent("re_1", "spammer@bad.com", "Buy now"))
	require.NoError(t, err)

	email, err := repos.EmailRepository.GetByID(ctx, id)
	require.NoError(t, err)
	assert.True(t, email.IsSpam)
	// Spam still lands in the inbox, just flagged
	assert.Equal(t, enum.FolderInbox, email.Folder)
}

func TestProcessEmailReceived_DomainBlockFlagsAnyAddress(t *testing.T) {
	repos, bl, svc := setup()
	ctx := context.Background()

	_, err := bl.Block(ctx, "known@bad.com", true, "")
	require.NoError(t, err)

	id, err := svc.ProcessEmailReceived(ctx, receivedEvent("re_1", "unseen@bad.com", "Buy now"))
	require.NoError(t, err)

	email, err := repos.EmailRepository.GetByID(ctx, id)
	require.NoError(t, err)
	assert.True(t, email.IsSpam)
}

func storeSentEmail(t *testing.T, repos *repository.Repositories, resendID string) string {
	t.Helper()
	id, err := repos.EmailRepository.Create(context.Background(), &models.Email{
		ResendID:       resendID,
		Folder:         enum.FolderSent,
		DeliveryStatus: enum.DeliveryStatusQueued,
		StatusHistory: models.StatusHistory{
			{Status: enum.DeliveryStatusQueued, Timestamp: 1},
		},
	})
	require.NoError(t, err)
	return id
}

func TestProcessEmailStatus_AppliesDeliveredStatus(t *testing.T) {
	repos, _, svc := setup()
	ctx := context.Background()
	id := storeSentEmail(t, repos, "re_1")

	affected, err := svc.ProcessEmailStatus(ctx, dto.EmailStatusEvent{
		Type:      "email.delivered",
		CreatedAt: "2026-09-01T10:00:00Z",
		Data:      dto.EmailStatusData{EmailID: "re_1"},
	})
	require.NoError(t, err)
	assert.Equal(t, id, affected)

	email, err := repos.EmailRepository.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, enum.DeliveryStatusDelivered, email.DeliveryStatus)
	require.Len(t, email.StatusHistory, 2)
	assert.Equal(t, enum.DeliveryStatusDelivered, email.StatusHistory[1].Status)
	assert.Nil(t, email.BounceInfo())
}

func TestProcessEmailStatus_PermanentBounceIsHard(t *testing.T) {
	repos, _, svc := setup()
	ctx := context.Background()
	id := storeSentEmail(t, repos, "re_1")

	_, err := svc.ProcessEmailStatus(ctx, dto.EmailStatusEvent{
		Type: "email.bounced",
		Data: dto.EmailStatusData{
			EmailID: "re_1",
			Bounce:  &dto.BounceData{Type: "Permanent", Message: "mailbox does not exist"},
		},
	})
	require.NoError(t, err)

	email, err := repos.EmailRepository.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, enum.DeliveryStatusBounced, email.DeliveryStatus)
	require.NotNil(t, email.BounceInfo())
	assert.Equal(t, enum.BounceHard, email.BounceInfo().Type)
	assert.Equal(t, "mailbox does not exist", email.BounceInfo().Message)
	// The bounce detail also lands in the history entry
	assert.Equal(t, "mailbox does not exist", email.StatusHistory[len(email.StatusHistory)-1].Details)
}

func TestProcessEmailStatus_TransientBounceIsSoft(t *testing.T) {
	repos, _, svc := setup()
	ctx := context.Background()
	id := storeSentEmail(t, repos, "re_1")

	_, err := svc.ProcessEmailStatus(ctx, dto.EmailStatusEvent{
		Type: "email.bounced",
		Data: dto.EmailStatusData{
			EmailID: "re_1",
			Bounce:  &dto.BounceData{Type: "Transient", Message: "mailbox full"},
		},
	})
	require.NoError(t, err)

	email, err := repos.EmailRepository.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, enum.BounceSoft, email.BounceInfo().Type)
}

func TestProcessEmailStatus_DuplicateEventsAppendDuplicateHistory(t *testing.T) {
	repos, _, svc := setup()
	ctx := context.Background()
	id := storeSentEmail(t, repos, "re_1")

	event := dto.EmailStatusEvent{
		Type: "email.delivered",
		Data: dto.EmailStatusData{EmailID: "re_1"},
	}

	_, err := svc.ProcessEmailStatus(ctx, event)
	require.NoError(t, err)
	_, err = svc.ProcessEmailStatus(ctx, event)
	require.NoError(t, err)

	email, err := repos.EmailRepository.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Len(t, email.StatusHistory, 3)
}

func TestProcessEmailStatus_UnmappedEventTypeIgnored(t *testing.T) {
	repos, _, svc := setup()
	ctx := context.Background()
	id := storeSentEmail(t, repos, "re_1")

	affected, err := svc.ProcessEmailStatus(ctx, dto.EmailStatusEvent{
		Type: "email.opened",
		Data: dto.EmailStatusData{EmailID: "re_1"},
	})
	require.NoError(t, err)
	assert.Empty(t, affected)

	email, err := repos.EmailRepository.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, enum.DeliveryStatusQueued, email.DeliveryStatus)
	assert.Len(t, email.StatusHistory, 1)
}

func TestProcessEmailStatus_UnknownResendIDTolerated(t *testing.T) {
	_, _, svc := setup()

	affected, err := svc.ProcessEmailStatus(context.Background(), dto.EmailStatusEvent{
		Type: "email.delivered",
		Data: dto.EmailStatusData{EmailID: "re_missing"},
	})
	require.NoError(t, err)
	assert.Empty(t, affected)
}
