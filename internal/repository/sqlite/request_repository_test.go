package sqlite

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"devmatch/internal/domain"
	"devmatch/internal/repository"
)

// TestRequestCreate_DuplicatePair verifies that only one record may exist per
// user pair, whichever direction the second send comes from.
func TestRequestCreate_DuplicatePair(t *testing.T) {
	users, requests := openTestRepos(t)
	ctx := context.Background()
	alice := createTestUser(t, users, "Alice", "alice@example.com")
	bob := createTestUser(t, users, "Bob", "bob@example.com")

	_, err := requests.Create(ctx, &domain.ConnectionRequest{
		FromUserID: alice,
		ToUserID:   bob,
		Status:     domain.RequestStatusInterested,
	})
	require.NoError(t, err)

	_, err = requests.Create(ctx, &domain.ConnectionRequest{
		FromUserID: alice,
		ToUserID:   bob,
		Status:     domain.RequestStatusInterested,
	})
	assert.ErrorIs(t, err, repository.ErrDuplicate, "same direction duplicate")

	_, err = requests.Create(ctx, &domain.ConnectionRequest{
		FromUserID: bob,
		ToUserID:   alice,
		Status:     domain.RequestStatusIgnored,
	})
	assert.ErrorIs(t, err, repository.ErrDuplicate, "reverse direction duplicate")
}

// TestRequestCreate_ConcurrentOppositeSends races sends from both directions;
// the pair index must let at most one of them through.
func TestRequestCreate_ConcurrentOppositeSends(t *testing.T) {
	users, requests := openTestRepos(t)
	ctx := context.Background()
	alice := createTestUser(t, users, "Alice", "alice@example.com")
	bob := createTestUser(t, users, "Bob", "bob@example.com")

	errs := make([]error, 2)
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		_, errs[0] = requests.Create(ctx, &domain.ConnectionRequest{
			FromUserID: alice, ToUserID: bob, Status: domain.RequestStatusInterested,
		})
	}()
	go func() {
		defer wg.Done()
		_, errs[1] = requests.Create(ctx, &domain.ConnectionRequest{
			FromUserID: bob, ToUserID: alice, Status: domain.RequestStatusInterested,
		})
	}()
	wg.Wait()

	var ok, dup int
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		default:
			require.ErrorIs(t, err, repository.ErrDuplicate)
			dup++
		}
	}
	assert.Equal(t, 1, ok, "exactly one send should win")
	assert.Equal(t, 1, dup, "the other must fail as a duplicate")
}

// TestRequestReview_ConditionalUpdate verifies the review CAS: it succeeds
// exactly once, only for the recipient, and only from the interested state.
func TestRequestReview_ConditionalUpdate(t *testing.T) {
	users, requests := openTestRepos(t)
	ctx := context.Background()
	alice := createTestUser(t, users, "Alice", "alice@example.com")
	bob := createTestUser(t, users, "Bob", "bob@example.com")

	id, err := requests.Create(ctx, &domain.ConnectionRequest{
		FromUserID: alice, ToUserID: bob, Status: domain.RequestStatusInterested,
	})
	require.NoError(t, err)

	// sender may not review their own request
	_, err = requests.Review(ctx, id, alice, domain.RequestStatusAccepted)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	updated, err := requests.Review(ctx, id, bob, domain.RequestStatusAccepted)
	require.NoError(t, err)
	assert.Equal(t, domain.RequestStatusAccepted, updated.Status)

	// accepted is terminal, a second review must not match
	_, err = requests.Review(ctx, id, bob, domain.RequestStatusRejected)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	stored, err := requests.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, domain.RequestStatusAccepted, stored.Status)
}

// TestRequestReview_IgnoredIsTerminal verifies an ignored record never
// becomes reviewable.
func TestRequestReview_IgnoredIsTerminal(t *testing.T) {
	users, requests := openTestRepos(t)
	ctx := context.Background()
	alice := createTestUser(t, users, "Alice", "alice@example.com")
	carol := createTestUser(t, users, "Carol", "carol@example.com")

	id, err := requests.Create(ctx, &domain.ConnectionRequest{
		FromUserID: alice, ToUserID: carol, Status: domain.RequestStatusIgnored,
	})
	require.NoError(t, err)

	_, err = requests.Review(ctx, id, carol, domain.RequestStatusAccepted)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

// TestCounterpartIDs verifies both directions contribute to the set.
func TestCounterpartIDs(t *testing.T) {
	users, requests := openTestRepos(t)
	ctx := context.Background()
	alice := createTestUser(t, users, "Alice", "alice@example.com")
	bob := createTestUser(t, users, "Bob", "bob@example.com")
	carol := createTestUser(t, users, "Carol", "carol@example.com")
	dave := createTestUser(t, users, "Dave", "dave@example.com")

	_, err := requests.Create(ctx, &domain.ConnectionRequest{
		FromUserID: alice, ToUserID: bob, Status: domain.RequestStatusInterested,
	})
	require.NoError(t, err)
	_, err = requests.Create(ctx, &domain.ConnectionRequest{
		FromUserID: carol, ToUserID: alice, Status: domain.RequestStatusIgnored,
	})
	require.NoError(t, err)

	ids, err := requests.CounterpartIDs(ctx, alice)
	require.NoError(t, err)
	assert.ElementsMatch(t, []int64{bob, carol}, ids)

	ids, err = requests.CounterpartIDs(ctx, dave)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

// TestListForUser_AcceptedEitherEndpoint verifies the connections query sees
// the user on both sides of the edge.
func TestListForUser_AcceptedEitherEndpoint(t *testing.T) {
	users, requests := openTestRepos(t)
	ctx := context.Background()
	alice := createTestUser(t, users, "Alice", "alice@example.com")
	bob := createTestUser(t, users, "Bob", "bob@example.com")
	carol := createTestUser(t, users, "Carol", "carol@example.com")

	id, err := requests.Create(ctx, &domain.ConnectionRequest{
		FromUserID: alice, ToUserID: bob, Status: domain.RequestStatusInterested,
	})
	require.NoError(t, err)
	_, err = requests.Review(ctx, id, bob, domain.RequestStatusAccepted)
	require.NoError(t, err)

	_, err = requests.Create(ctx, &domain.ConnectionRequest{
		FromUserID: alice, ToUserID: carol, Status: domain.RequestStatusInterested,
	})
	require.NoError(t, err)

	forAlice, err := requests.ListForUser(ctx, alice, domain.RequestStatusAccepted)
	require.NoError(t, err)
	require.Len(t, forAlice, 1)
	assert.Equal(t, bob, forAlice[0].CounterpartOf(alice))

	forBob, err := requests.ListForUser(ctx, bob, domain.RequestStatusAccepted)
	require.NoError(t, err)
	require.Len(t, forBob, 1)
	assert.Equal(t, alice, forBob[0].CounterpartOf(bob))
}
