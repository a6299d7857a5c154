package blocklist

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inboxd/inboxd/internal/mocks"
	"github.com/inboxd/inboxd/internal/repository"
)

func setup() (*repository.Repositories, *blocklistService) {
	repos := &repository.Repositories{
		EmailRepository:         mocks.NewInMemoryEmailRepository(),
		BlockedSenderRepository: mocks.NewInMemoryBlockedSenderRepository(),
	}
	return repos, NewBlocklistService(repos).(*blocklistService)
}

func TestBlock_ExactAddress(t *testing.T) {
	_, svc := setup()
	ctx := context.Background()

	id, err := svc.Block(ctx, "spammer@bad.com", false, "Marked as spam")
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	blocked, err := svc.IsBlocked(ctx, "spammer@bad.com")
	require.NoError(t, err)
	assert.True(t, blocked)

	// Exact block must not cover other addresses on the same domain
	blocked, err = svc.IsBlocked(ctx, "other@bad.com")
	require.NoError(t, err)
	assert.False(t, blocked)
}

func TestBlock_DomainWide(t *testing.T) {
	_, svc := setup()
	ctx := context.Background()

	_, err := svc.Block(ctx, "spammer@bad.com", true, "")
	require.NoError(t, err)

	blocked, err := svc.IsBlocked(ctx, "other@bad.com")
	require.NoError(t, err)
	assert.True(t, blocked)

	blocked, err = svc.IsBlocked(ctx, "someone@good.com")
	require.NoError(t, err)
	assert.False(t, blocked)
}

func TestBlock_DuplicateReturnsExistingID(t *testing.T) {
	_, svc := setup()
	ctx := context.Background()

	first, err := svc.Block(ctx, "spammer@bad.com", false, "first")
	require.NoError(t, err)

	second, err := svc.Block(ctx, "spammer@bad.com", true, "second")
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestIsBlocked_EmptyAddress(t *testing.T) {
	_, svc := setup()

	blocked, err := svc.IsBlocked(context.Background(), "")
	require.NoError(t, err)
	assert.False(t, blocked)
}

func TestUnblock(t *testing.T) {
	_, svc := setup()
	ctx := context.Background()

	_, err := svc.Block(ctx, "spammer@bad.com", false, "")
	require.NoError(t, err)

	require.NoError(t, svc.Unblock(ctx, "spammer@bad.com"))

	blocked, err := svc.IsBlocked(ctx, "spammer@bad.com")
	require.NoError(t, err)
	assert.False(t, blocked)

	// Unblocking an address without a rule is a no-op
	require.NoError(t, svc.Unblock(ctx, "never-blocked@good.com"))
}

func TestList(t *testing.T) {
	_, svc := setup()
	ctx := context.Background()

	_, err := svc.Block(ctx, "a@bad.com", false, "")
	require.NoError(t, err)
	_, err = svc.Block(ctx, "b@bad.com", true, "")
	require.NoError(t, err)

	senders, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, senders, 2)
}
