package email

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inboxd/inboxd/dto"
	"github.com/inboxd/inboxd/interfaces"
	"github.com/inboxd/inboxd/internal/enum"
	er "github.com/inboxd/inboxd/internal/errors"
	"github.com/inboxd/inboxd/internal/mocks"
	"github.com/inboxd/inboxd/internal/models"
	"github.com/inboxd/inboxd/internal/repository"
	"github.com/inboxd/inboxd/internal/utils"
)

func setup() (*repository.Repositories, *mocks.FakeEmailProviderClient, interfaces.EmailService) {
	repos := &repository.Repositories{
		EmailRepository:         mocks.NewInMemoryEmailRepository(),
		BlockedSenderRepository: mocks.NewInMemoryBlockedSenderRepository(),
	}
	provider := &mocks.FakeEmailProviderClient{}
	return repos, provider, NewEmailService(repos, provider)
}

func storeEmail(t *testing.T, repos *repository.Repositories, email *models.Email) string {
	t.Helper()
	if email.Timestamp == 0 {
		email.Timestamp = utils.NowMillis()
	}
	id, err := repos.EmailRepository.Create(context.Background(), email)
	require.NoError(t, err)
	return id
}

func TestListInbox_FilterSlices(t *testing.T) {
	repos, _, svc := setup()
	ctx := context.Background()

	storeEmail(t, repos, &models.Email{ResendID: "re_1", Folder: enum.FolderInbox, FromAddress: "a@x.com"})
	storeEmail(t, repos, &models.Email{ResendID: "re_2", Folder: enum.FolderInbox, FromAddress: "b@x.com", IsSpam: true})
	storeEmail(t, repos, &models.Email{ResendID: "re_3", Folder: enum.FolderSent, FromAddress: "me@x.com"})

	clean, err := svc.ListInbox(ctx, enum.InboxFilterDefault)
	require.NoError(t, err)
	spam, err := svc.ListInbox(ctx, enum.InboxFilterSpam)
	require.NoError(t, err)
	all, err := svc.ListInbox(ctx, enum.InboxFilterAll)
	require.NoError(t, err)

	assert.Len(t, clean, 1)
	assert.Len(t, spam, 1)
	// "all" is exactly the union of the default and spam slices
	assert.Len(t, all, len(clean)+len(spam))
}

func TestListInbox_NewestFirst(t *testing.T) {
	repos, _, svc := setup()
	ctx := context.Background()

	storeEmail(t, repos, &models.Email{ResendID: "re_old", Folder: enum.FolderInbox, Timestamp: 1000})
	storeEmail(t, repos, &models.Email{ResendID: "re_new", Folder: enum.FolderInbox, Timestamp: 2000})

	emails, err := svc.ListInbox(ctx, enum.InboxFilterDefault)
	require.NoError(t, err)
	require.Len(t, emails, 2)
	assert.Equal(t, "re_new", emails[0].ResendID)
}

func TestGetStats(t *testing.T) {
	repos, _, svc := setup()
	ctx := context.Background()

	today := utils.NowMillis()
	yesterday := utils.StartOfToday() - 1000

	storeEmail(t, repos, &models.Email{ResendID: "re_1", Folder: enum.FolderInbox, Timestamp: today})
	storeEmail(t, repos, &models.Email{ResendID: "re_2", Folder: enum.FolderInbox, Timestamp: yesterday, IsRead: true})
	storeEmail(t, repos, &models.Email{ResendID: "re_3", Folder: enum.FolderInbox, Timestamp: today, IsSpam: true})
	storeEmail(t, repos, &models.Email{ResendID: "re_4", Folder: enum.FolderSent, Timestamp: today, IsRead: true})

	stats, err := svc.GetStats(ctx)
	require.NoError(t, err)

	assert.Equal(t, 2, stats.TotalInbox)
	assert.Equal(t, 1, stats.TotalSent)
	assert.Equal(t, 1, stats.UnreadCount)
	assert.Equal(t, 1, stats.TodayCount)
	assert.Equal(t, 1, stats.SpamCount)
}

func TestGetSenderBreakdown(t *testing.T) {
	repos, _, svc := setup()
	ctx := context.Background()

	storeEmail(t, repos, &models.Email{ResendID: "re_1", Folder: enum.FolderInbox, FromAddress: "busy@x.com", FromName: "Busy", Timestamp: 1})
	storeEmail(t, repos, &models.Email{ResendID: "re_2", Folder: enum.FolderInbox, FromAddress: "busy@x.com", FromName: "Busy", Timestamp: 2})
	storeEmail(t, repos, &models.Email{ResendID: "re_3", Folder: enum.FolderInbox, FromAddress: "quiet@x.com", FromName: "Quiet", Timestamp: 3})
	// Spam is excluded from the breakdown
	storeEmail(t, repos, &models.Email{ResendID: "re_4", Folder: enum.FolderInbox, FromAddress: "spam@x.com", IsSpam: true, Timestamp: 4})

	senders, err := svc.GetSenderBreakdown(ctx, 0)
	require.NoError(t, err)

	require.Len(t, senders, 2)
	assert.Equal(t, "busy@x.com", senders[0].Email)
	assert.Equal(t, 2, senders[0].Count)
	assert.Equal(t, "quiet@x.com", senders[1].Email)
	assert.Equal(t, 1, senders[1].Count)
}

func TestGetSenderBreakdown_Limit(t *testing.T) {
	repos, _, svc := setup()
	ctx := context.Background()

	storeEmail(t, repos, &models.Email{ResendID: "re_1", Folder: enum.FolderInbox, FromAddress: "a@x.com", Timestamp: 1})
	storeEmail(t, repos, &models.Email{ResendID: "re_2", Folder: enum.FolderInbox, FromAddress: "b@x.com", Timestamp: 2})

	senders, err := svc.GetSenderBreakdown(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, senders, 1)
}

func TestSend(t *testing.T) {
	repos, provider, svc := setup()
	ctx := context.Background()
	provider.NextID = "re_sent_1"

	email, err := svc.Send(ctx, dto.SendEmailRequest{
		From:    "Me <me@inboxd.dev>",
		To:      []string{"you@example.com"},
		Subject: "Hi",
		Text:    "hello",
	})
	require.NoError(t, err)

	require.Len(t, provider.SentRequests, 1)
	assert.Equal(t, "re_sent_1", email.ResendID)
	assert.Equal(t, enum.FolderSent, email.Folder)
	assert.True(t, email.IsRead)
	assert.Equal(t, enum.DeliveryStatusQueued, email.DeliveryStatus)
	require.Len(t, email.StatusHistory, 1)
	assert.Equal(t, enum.DeliveryStatusQueued, email.StatusHistory[0].Status)

	stored, err := repos.EmailRepository.GetByID(ctx, email.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "me@inboxd.dev", stored.FromAddress)
	assert.Equal(t, "Me", stored.FromName)
}

func TestSend_InvalidRequest(t *testing.T) {
	_, provider, svc := setup()

	_, err := svc.Send(context.Background(), dto.SendEmailRequest{To: []string{"you@example.com"}})
	assert.ErrorIs(t, err, er.ErrInvalidInput)
	assert.Empty(t, provider.SentRequests)
}

func TestMarkAsReadAndUnread(t *testing.T) {
	repos, _, svc := setup()
	ctx := context.Background()
	id := storeEmail(t, repos, &models.Email{ResendID: "re_1", Folder: enum.FolderInbox})

	require.NoError(t, svc.MarkAsRead(ctx, id))
	email, _ := repos.EmailRepository.GetByID(ctx, id)
	assert.True(t, email.IsRead)

	require.NoError(t, svc.MarkAsUnread(ctx, id))
	email, _ = repos.EmailRepository.GetByID(ctx, id)
	assert.False(t, email.IsRead)

	// Unknown ids are a silent no-op
	assert.NoError(t, svc.MarkAsRead(ctx, "email_missing"))
}

func TestDelete(t *testing.T) {
	repos, _, svc := setup()
	ctx := context.Background()
	id := storeEmail(t, repos, &models.Email{ResendID: "re_1", Folder: enum.FolderInbox})

	require.NoError(t, svc.Delete(ctx, id))

	email, err := repos.EmailRepository.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Nil(t, email)
}

func TestGetContent_UnknownID(t *testing.T) {
	_, _, svc := setup()

	_, err := svc.GetContent(context.Background(), "email_missing")
	assert.ErrorIs(t, err, er.ErrEmailNotFound)
}

func TestGetContent(t *testing.T) {
	repos, provider, svc := setup()
	ctx := context.Background()
	provider.Content = &interfaces.MessageContent{HTML: "<p>hi</p>", Text: "hi"}
	id := storeEmail(t, repos, &models.Email{ResendID: "re_1", Folder: enum.FolderInbox})

	content, err := svc.GetContent(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "<p>hi</p>", content.HTML)
}
